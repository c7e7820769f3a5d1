// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

package users

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

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

// List returns every account ordered by full name.
func (store *PostgresStore) List(ctx context.Context) ([]User, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		ORDER BY %s ASC`,
		schema.Users.ID,
		schema.Users.FullName,
		schema.Users.Username,
		schema.Users.Role,
		schema.Users.CreatedAt,
		schema.Users.UpdatedAt,
		schema.Users.Table,
		schema.Users.FullName,
	)

	rows, err := store.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_users_list_failed: %w", err)
	}
	defer rows.Close()

	accounts := []User{}
	for rows.Next() {
		var user User
		if err := rows.Scan(
			&user.ID,
			&user.FullName,
			&user.Username,
			&user.Role,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres_users_scan_failed: %w", err)
		}
		accounts = append(accounts, user)
	}

	return accounts, rows.Err()
}

// FindByID returns a single account row.
func (store *PostgresStore) FindByID(ctx context.Context, id int) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.Users.ID,
		schema.Users.FullName,
		schema.Users.Username,
		schema.Users.Role,
		schema.Users.CreatedAt,
		schema.Users.UpdatedAt,
		schema.Users.Table,
		schema.Users.ID,
	)

	user := &User{}
	err := store.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.FullName,
		&user.Username,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "user")
	}

	return user, nil
}

// UsernameTaken checks username availability with an exact, case-sensitive
// match.
func (store *PostgresStore) UsernameTaken(ctx context.Context, username string, excludeID int) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s WHERE %s = $1 AND %s <> $2
		)`,
		schema.Users.Table,
		schema.Users.Username,
		schema.Users.ID,
	)

	var taken bool
	if err := store.pool.QueryRow(ctx, query, username, excludeID).Scan(&taken); err != nil {
		return false, fmt.Errorf("postgres_users_username_taken_failed: %w", err)
	}

	return taken, nil
}

// Create inserts a new account row and reads back the generated identifier.
func (store *PostgresStore) Create(ctx context.Context, user *User, passwordHash string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s`,
		schema.Users.Table,
		schema.Users.FullName,
		schema.Users.Username,
		schema.Users.PasswordHash,
		schema.Users.Role,
		schema.Users.CreatedAt,
		schema.Users.UpdatedAt,
		schema.Users.ID,
	)

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	err := store.pool.QueryRow(ctx, query,
		user.FullName,
		user.Username,
		passwordHash,
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)
	if err != nil {
		return dberr.Wrap(err, "username")
	}

	return nil
}

// Update rewrites the profile and, when a new digest is supplied, the
// credential inside the same transaction.
func (store *PostgresStore) Update(ctx context.Context, user *User, passwordHash string) (int64, error) {
	transaction, err := store.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("postgres_users_update_begin_failed: %w", err)
	}
	defer transaction.Rollback(ctx)

	profileQuery := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = $4
		WHERE %s = $5`,
		schema.Users.Table,
		schema.Users.FullName,
		schema.Users.Username,
		schema.Users.Role,
		schema.Users.UpdatedAt,
		schema.Users.ID,
	)

	tag, err := transaction.Exec(ctx, profileQuery,
		user.FullName,
		user.Username,
		user.Role,
		time.Now(),
		user.ID,
	)
	if err != nil {
		return 0, dberr.Wrap(err, "username")
	}

	if passwordHash != "" {
		credentialQuery := fmt.Sprintf(
			`UPDATE %s SET %s = $1 WHERE %s = $2`,
			schema.Users.Table,
			schema.Users.PasswordHash,
			schema.Users.ID,
		)
		if _, err := transaction.Exec(ctx, credentialQuery, passwordHash, user.ID); err != nil {
			return 0, dberr.Wrap(err, "user")
		}
	}

	if err := transaction.Commit(ctx); err != nil {
		return 0, fmt.Errorf("postgres_users_update_commit_failed: %w", err)
	}

	return tag.RowsAffected(), nil
}

// UpdatePassword replaces only the stored credential.
func (store *PostgresStore) UpdatePassword(ctx context.Context, id int, passwordHash string) (int64, error) {
	query := fmt.Sprintf(
		`UPDATE %s SET %s = $1, %s = $2 WHERE %s = $3`,
		schema.Users.Table,
		schema.Users.PasswordHash,
		schema.Users.UpdatedAt,
		schema.Users.ID,
	)

	tag, err := store.pool.Exec(ctx, query, passwordHash, time.Now(), id)
	if err != nil {
		return 0, dberr.Wrap(err, "user")
	}

	return tag.RowsAffected(), nil
}

// Delete removes an account row.
func (store *PostgresStore) Delete(ctx context.Context, id int) (int64, error) {
	query := fmt.Sprintf(
		`DELETE FROM %s WHERE %s = $1`,
		schema.Users.Table,
		schema.Users.ID,
	)

	tag, err := store.pool.Exec(ctx, query, id)
	if err != nil {
		return 0, dberr.Wrap(err, "user")
	}

	return tag.RowsAffected(), nil
}
