// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

package auth

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hfahrudin/apotek/internal/platform/dberr"
)

// PostgresAccountStore implements [AccountStore] using pgx.
type PostgresAccountStore struct {
	pool *pgxpool.Pool
}

// NewAccountStore creates a PostgreSQL implementation of the AccountStore.
func NewAccountStore(pool *pgxpool.Pool) *PostgresAccountStore {
	return &PostgresAccountStore{pool: pool}
}

// FindByUsername retrieves a credential record by exact username.
//
// # Returns
//
// Returns [*Account] if found, or [apperr.NotFound] if no account exists.
func (store *PostgresAccountStore) FindByUsername(ctx context.Context, username string) (*Account, error) {
	const query = `
		SELECT id, full_name, username, password_hash, role, created_at
		FROM users
		WHERE username = $1`

	account := &Account{}
	err := store.pool.QueryRow(ctx, query, username).Scan(
		&account.ID,
		&account.FullName,
		&account.Username,
		&account.PasswordHash,
		&account.Role,
		&account.CreatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("postgres_account_store_find_by_username_failed: %w", dberr.Wrap(err, "account"))
	}

	return account, nil
}
