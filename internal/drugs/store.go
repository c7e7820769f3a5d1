// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

package drugs

import (
	"context"

	"github.com/hfahrudin/apotek/pkg/pagination"
)

// Store persists inventory records.
type Store interface {
	// List returns one page of drugs ordered by name, plus the total count.
	List(ctx context.Context, params pagination.Params) ([]Drug, int, error)

	// ListAll returns the entire catalogue ordered by name. The order form
	// uses it to lay out one quantity input per drug.
	ListAll(ctx context.Context) ([]Drug, error)

	// FindByID returns the drug, or [apperr.NotFound] when absent.
	FindByID(ctx context.Context, id int) (*Drug, error)

	// Create inserts the drug and fills in its assigned ID.
	Create(ctx context.Context, drug *Drug) error

	// Update rewrites every editable column. Returns affected rows.
	Update(ctx context.Context, drug *Drug) (int64, error)

	// Delete removes the drug. A sale line still referencing it surfaces
	// as [apperr.ConstraintViolation]. Returns affected rows.
	Delete(ctx context.Context, id int) (int64, error)
}
