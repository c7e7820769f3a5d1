// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hfahrudin/apotek/internal/platform/apperr"
	"github.com/hfahrudin/apotek/internal/platform/database/schema"
	"github.com/hfahrudin/apotek/internal/platform/dberr"
)

// PostgresStore implements [Store] using pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewStore creates a PostgreSQL implementation of the Store.
func NewStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const orderSelect = `
	SELECT s.id, s.user_id, s.customer_name, s.total, s.created_at, u.full_name
	FROM sales s
	JOIN users u ON u.id = s.user_id`

func (store *PostgresStore) scanOrders(rows pgx.Rows) ([]Order, error) {
	defer rows.Close()

	sales := []Order{}
	for rows.Next() {
		var order Order
		if err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.CustomerName,
			&order.Total,
			&order.CreatedAt,
			&order.PlacedBy,
		); err != nil {
			return nil, fmt.Errorf("postgres_orders_scan_failed: %w", err)
		}
		sales = append(sales, order)
	}

	return sales, rows.Err()
}

// List returns every sale, newest first.
func (store *PostgresStore) List(ctx context.Context) ([]Order, error) {
	rows, err := store.pool.Query(ctx, orderSelect+` ORDER BY s.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("postgres_orders_list_failed: %w", err)
	}
	return store.scanOrders(rows)
}

// ListByUser returns the sales placed by one account, newest first.
func (store *PostgresStore) ListByUser(ctx context.Context, userID int) ([]Order, error) {
	rows, err := store.pool.Query(ctx, orderSelect+` WHERE s.user_id = $1 ORDER BY s.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_orders_list_by_user_failed: %w", err)
	}
	return store.scanOrders(rows)
}

// FindByID returns one sale header.
func (store *PostgresStore) FindByID(ctx context.Context, id int) (*Order, error) {
	order := &Order{}
	err := store.pool.QueryRow(ctx, orderSelect+` WHERE s.id = $1`, id).Scan(
		&order.ID,
		&order.UserID,
		&order.CustomerName,
		&order.Total,
		&order.CreatedAt,
		&order.PlacedBy,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "order")
	}

	return order, nil
}

// Lines returns the sale lines with their drug names joined in.
func (store *PostgresStore) Lines(ctx context.Context, orderID int) ([]Line, error) {
	const query = `
		SELECT i.id, i.sale_id, i.drug_id, d.name, i.quantity, i.unit_price, i.subtotal
		FROM sale_items i
		JOIN drugs d ON d.id = i.drug_id
		WHERE i.sale_id = $1
		ORDER BY d.name ASC`

	rows, err := store.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("postgres_order_lines_failed: %w", err)
	}
	defer rows.Close()

	lines := []Line{}
	for rows.Next() {
		var line Line
		if err := rows.Scan(
			&line.ID,
			&line.OrderID,
			&line.DrugID,
			&line.DrugName,
			&line.Quantity,
			&line.UnitPrice,
			&line.Subtotal,
		); err != nil {
			return nil, fmt.Errorf("postgres_order_lines_scan_failed: %w", err)
		}
		lines = append(lines, line)
	}

	return lines, rows.Err()
}

// Place writes a sale inside one transaction.
//
// Stock is reserved first with a guarded decrement: the UPDATE only matches
// when enough stock remains, so two concurrent orders can never both take
// the last strip. A line that matches no row aborts everything.
func (store *PostgresStore) Place(ctx context.Context, order *Order, requests []LineRequest) error {
	transaction, err := store.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres_orders_place_begin_failed: %w", err)
	}
	defer transaction.Rollback(ctx)

	const reserveQuery = `
		UPDATE drugs
		SET stock = stock - $1, updated_at = $2
		WHERE id = $3 AND stock >= $1
		RETURNING name, price`

	now := time.Now()

	type pricedLine struct {
		request LineRequest
		price   int
	}
	priced := make([]pricedLine, 0, len(requests))
	total := 0

	for _, request := range requests {
		var name string
		var price int
		err := transaction.QueryRow(ctx, reserveQuery, request.Quantity, now, request.DrugID).
			Scan(&name, &price)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return store.reserveFailure(ctx, request)
			}
			return fmt.Errorf("postgres_orders_reserve_failed: %w", err)
		}

		priced = append(priced, pricedLine{request: request, price: price})
		total += price * request.Quantity
	}

	order.Total = total
	order.CreatedAt = now

	saleQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		RETURNING %s`,
		schema.Sales.Table,
		schema.Sales.UserID,
		schema.Sales.CustomerName,
		schema.Sales.Total,
		schema.Sales.CreatedAt,
		schema.Sales.ID,
	)

	err = transaction.QueryRow(ctx, saleQuery,
		order.UserID,
		order.CustomerName,
		order.Total,
		order.CreatedAt,
	).Scan(&order.ID)
	if err != nil {
		return dberr.Wrap(err, "order")
	}

	lineQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)`,
		schema.SaleItems.Table,
		schema.SaleItems.SaleID,
		schema.SaleItems.DrugID,
		schema.SaleItems.Quantity,
		schema.SaleItems.UnitPrice,
		schema.SaleItems.Subtotal,
	)

	for _, line := range priced {
		_, err := transaction.Exec(ctx, lineQuery,
			order.ID,
			line.request.DrugID,
			line.request.Quantity,
			line.price,
			line.price*line.request.Quantity,
		)
		if err != nil {
			return dberr.Wrap(err, "order")
		}
	}

	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("postgres_orders_place_commit_failed: %w", err)
	}

	return nil
}

// reserveFailure distinguishes "drug vanished" from "not enough stock" for
// the message shown on the order form. The transaction is already doomed
// when this runs; the read goes straight to the pool.
func (store *PostgresStore) reserveFailure(ctx context.Context, request LineRequest) error {
	var name string
	var stock int
	err := store.pool.QueryRow(ctx,
		`SELECT name, stock FROM drugs WHERE id = $1`, request.DrugID,
	).Scan(&name, &stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("drug")
		}
		return fmt.Errorf("postgres_orders_reserve_lookup_failed: %w", err)
	}

	return apperr.ConstraintViolation(
		fmt.Sprintf("Not enough stock of %q: %d requested, %d available", name, request.Quantity, stock),
		nil,
	)
}
