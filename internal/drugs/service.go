// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

package drugs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hfahrudin/apotek/internal/platform/apperr"
	"github.com/hfahrudin/apotek/pkg/pagination"
)

// # Service Layer

// Service orchestrates inventory management.
type Service struct {
	store  Store
	logger *slog.Logger
}

// NewService constructs a new [Service] with its store dependency.
func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// List returns one page of the catalogue with navigation metadata.
func (service *Service) List(ctx context.Context, params pagination.Params) ([]Drug, pagination.Meta, error) {
	catalogue, total, err := service.store.List(ctx, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return catalogue, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// ListAll returns the entire catalogue for the order form.
func (service *Service) ListAll(ctx context.Context) ([]Drug, error) {
	return service.store.ListAll(ctx)
}

// Get returns a single drug for the edit form.
func (service *Service) Get(ctx context.Context, id int) (*Drug, error) {
	return service.store.FindByID(ctx, id)
}

// Input carries the already-validated fields of a drug.
type Input struct {
	Name     string
	Category string
	Unit     string
	Price    int
	Stock    int
}

// Create adds a new drug to the catalogue.
func (service *Service) Create(ctx context.Context, input Input) (*Drug, error) {
	drug := &Drug{
		Name:     input.Name,
		Category: input.Category,
		Unit:     input.Unit,
		Price:    input.Price,
		Stock:    input.Stock,
	}
	if err := service.store.Create(ctx, drug); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "drug_created",
		slog.Int("drug_id", drug.ID),
		slog.String("name", drug.Name),
	)

	return drug, nil
}

/*
Update rewrites a drug's editable fields.

Parameters:
  - ctx: context.Context
  - id: int
  - input: Input

Returns:
  - bool: Whether a row was actually updated; false means the drug vanished
  - error: Persistence failures
*/
func (service *Service) Update(ctx context.Context, id int, input Input) (bool, error) {
	affected, err := service.store.Update(ctx, &Drug{
		ID:       id,
		Name:     input.Name,
		Category: input.Category,
		Unit:     input.Unit,
		Price:    input.Price,
		Stock:    input.Stock,
	})
	if err != nil {
		return false, err
	}

	if affected > 0 {
		service.logger.InfoContext(ctx, "drug_updated", slog.Int("drug_id", id))
	}

	return affected > 0, nil
}

/*
Delete removes a drug from the catalogue.

Description: The drug is loaded first so a constraint rejection can name it
in the message shown to the pharmacist. A drug referenced by any sale line
is never removed.

Parameters:
  - ctx: context.Context
  - id: int

Returns:
  - bool: Whether a row was actually deleted; false means it was already gone
  - error: Constraint or persistence failures
*/
func (service *Service) Delete(ctx context.Context, id int) (bool, error) {
	drug, err := service.store.FindByID(ctx, id)
	if err != nil {
		if apperr.IsCode(err, apperr.CodeNotFound) {
			return false, nil
		}
		return false, err
	}

	affected, err := service.store.Delete(ctx, id)
	if err != nil {
		if apperr.IsCode(err, apperr.CodeConstraintViolation) {
			service.logger.WarnContext(ctx, "drug_delete_blocked",
				slog.Int("drug_id", id),
				slog.String("name", drug.Name),
			)
			return false, apperr.ConstraintViolation(
				fmt.Sprintf("%q cannot be deleted because it appears in recorded sales", drug.Name),
				err,
			)
		}
		return false, err
	}

	if affected > 0 {
		service.logger.InfoContext(ctx, "drug_deleted", slog.Int("drug_id", id))
	}

	return affected > 0, nil
}
