// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

package orders

import (
	"context"
	"log/slog"

	"github.com/hfahrudin/apotek/internal/platform/apperr"
	"github.com/hfahrudin/apotek/internal/session"
)

// # Service Layer

// Service orchestrates sale recording and retrieval.
//
// Staff see every sale; a customer only ever sees their own, and a foreign
// order looks exactly like a missing one to them.
type Service struct {
	store  Store
	logger *slog.Logger
}

// NewService constructs a new [Service] with its store dependency.
func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// List returns the sales the principal is allowed to see, newest first.
func (service *Service) List(ctx context.Context, principal *session.Principal) ([]Order, error) {
	if principal.Role.IsStaff() {
		return service.store.List(ctx)
	}
	return service.store.ListByUser(ctx, principal.ID)
}

/*
Get returns one sale with its lines.

Description: Customers are scoped to their own sales. A foreign sale is
reported as [apperr.NotFound] rather than a denial, so order identifiers
cannot be probed.

Parameters:
  - ctx: context.Context
  - principal: *session.Principal
  - id: int

Returns:
  - *Order: The sale header
  - []Line: Its lines, drug names included
  - error: Not found or persistence failures
*/
func (service *Service) Get(ctx context.Context, principal *session.Principal, id int) (*Order, []Line, error) {
	order, err := service.store.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	if !principal.Role.IsStaff() && order.UserID != principal.ID {
		return nil, nil, apperr.NotFound("order")
	}

	lines, err := service.store.Lines(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return order, lines, nil
}

/*
Place records a new sale on behalf of the principal.

Description: Quantities arrive pre-validated; pricing and stock reservation
happen inside the storage transaction so a concurrent order can never
oversell a drug.

Parameters:
  - ctx: context.Context
  - principal: *session.Principal
  - customerName: string
  - requests: []LineRequest, at least one

Returns:
  - *Order: The stored sale with its identifier and computed total
  - error: Stock, constraint, or persistence failures
*/
func (service *Service) Place(ctx context.Context, principal *session.Principal, customerName string, requests []LineRequest) (*Order, error) {
	order := &Order{
		UserID:       principal.ID,
		CustomerName: customerName,
		PlacedBy:     principal.FullName,
	}

	if err := service.store.Place(ctx, order, requests); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "order_placed",
		slog.Int("order_id", order.ID),
		slog.Int("user_id", principal.ID),
		slog.Int("total", order.Total),
		slog.Int("lines", len(requests)),
	)

	return order, nil
}
