// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

package orders

import "context"

// Store persists sales.
type Store interface {
	// List returns every sale, newest first.
	List(ctx context.Context) ([]Order, error)

	// ListByUser returns the sales placed by one account, newest first.
	ListByUser(ctx context.Context, userID int) ([]Order, error)

	// FindByID returns the sale header, or [apperr.NotFound] when absent.
	FindByID(ctx context.Context, id int) (*Order, error)

	// Lines returns the sale lines with their drug names.
	Lines(ctx context.Context, orderID int) ([]Line, error)

	// Place atomically decrements stock for every requested line, prices
	// the lines from the catalogue, and writes the sale. Any line that
	// cannot be satisfied aborts the whole transaction.
	Place(ctx context.Context, order *Order, requests []LineRequest) error
}
