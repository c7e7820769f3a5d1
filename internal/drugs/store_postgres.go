// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

package drugs

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hfahrudin/apotek/internal/platform/database/schema"
	"github.com/hfahrudin/apotek/internal/platform/dberr"
	"github.com/hfahrudin/apotek/pkg/pagination"
)

// PostgresStore implements [Store] using pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewStore creates a PostgreSQL implementation of the Store.
func NewStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// drugColumns is the SELECT column list shared by every read query.
func drugColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s",
		schema.Drugs.ID,
		schema.Drugs.Name,
		schema.Drugs.Category,
		schema.Drugs.Unit,
		schema.Drugs.Price,
		schema.Drugs.Stock,
		schema.Drugs.CreatedAt,
		schema.Drugs.UpdatedAt,
	)
}

func scanDrug(row interface{ Scan(...any) error }) (Drug, error) {
	var drug Drug
	err := row.Scan(
		&drug.ID,
		&drug.Name,
		&drug.Category,
		&drug.Unit,
		&drug.Price,
		&drug.Stock,
		&drug.CreatedAt,
		&drug.UpdatedAt,
	)
	return drug, err
}

// List returns one page of the catalogue plus the total row count.
func (store *PostgresStore) List(ctx context.Context, params pagination.Params) ([]Drug, int, error) {
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, schema.Drugs.Table)

	var total int
	if err := store.pool.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_drugs_count_failed: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		ORDER BY %s ASC
		LIMIT $1 OFFSET $2`,
		drugColumns(),
		schema.Drugs.Table,
		schema.Drugs.Name,
	)

	rows, err := store.pool.Query(ctx, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_drugs_list_failed: %w", err)
	}
	defer rows.Close()

	catalogue := []Drug{}
	for rows.Next() {
		drug, err := scanDrug(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_drugs_scan_failed: %w", err)
		}
		catalogue = append(catalogue, drug)
	}

	return catalogue, total, rows.Err()
}

// ListAll returns the entire catalogue ordered by name.
func (store *PostgresStore) ListAll(ctx context.Context) ([]Drug, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC`,
		drugColumns(),
		schema.Drugs.Table,
		schema.Drugs.Name,
	)

	rows, err := store.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_drugs_list_all_failed: %w", err)
	}
	defer rows.Close()

	catalogue := []Drug{}
	for rows.Next() {
		drug, err := scanDrug(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_drugs_scan_failed: %w", err)
		}
		catalogue = append(catalogue, drug)
	}

	return catalogue, rows.Err()
}

// FindByID returns a single drug row.
func (store *PostgresStore) FindByID(ctx context.Context, id int) (*Drug, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		drugColumns(),
		schema.Drugs.Table,
		schema.Drugs.ID,
	)

	drug, err := scanDrug(store.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "drug")
	}

	return &drug, nil
}

// Create inserts a new drug row and reads back the generated identifier.
func (store *PostgresStore) Create(ctx context.Context, drug *Drug) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s`,
		schema.Drugs.Table,
		schema.Drugs.Name,
		schema.Drugs.Category,
		schema.Drugs.Unit,
		schema.Drugs.Price,
		schema.Drugs.Stock,
		schema.Drugs.CreatedAt,
		schema.Drugs.UpdatedAt,
		schema.Drugs.ID,
	)

	now := time.Now()
	drug.CreatedAt = now
	drug.UpdatedAt = now

	err := store.pool.QueryRow(ctx, query,
		drug.Name,
		drug.Category,
		drug.Unit,
		drug.Price,
		drug.Stock,
		drug.CreatedAt,
		drug.UpdatedAt,
	).Scan(&drug.ID)
	if err != nil {
		return dberr.Wrap(err, "drug")
	}

	return nil
}

// Update rewrites every editable column of a drug.
func (store *PostgresStore) Update(ctx context.Context, drug *Drug) (int64, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5, %s = $6
		WHERE %s = $7`,
		schema.Drugs.Table,
		schema.Drugs.Name,
		schema.Drugs.Category,
		schema.Drugs.Unit,
		schema.Drugs.Price,
		schema.Drugs.Stock,
		schema.Drugs.UpdatedAt,
		schema.Drugs.ID,
	)

	tag, err := store.pool.Exec(ctx, query,
		drug.Name,
		drug.Category,
		drug.Unit,
		drug.Price,
		drug.Stock,
		time.Now(),
		drug.ID,
	)
	if err != nil {
		return 0, dberr.Wrap(err, "drug")
	}

	return tag.RowsAffected(), nil
}

// Delete removes a drug row. The sale_items foreign key fires when the drug
// has recorded sales; dberr maps it to a constraint violation.
func (store *PostgresStore) Delete(ctx context.Context, id int) (int64, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.Drugs.Table,
		schema.Drugs.ID,
	)

	tag, err := store.pool.Exec(ctx, query, id)
	if err != nil {
		return 0, dberr.Wrap(err, "drug")
	}

	return tag.RowsAffected(), nil
}
