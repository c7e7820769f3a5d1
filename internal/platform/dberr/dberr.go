// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

// Package dberr provides a bridge between low-level database errors and
// the application error taxonomy.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hfahrudin/apotek/internal/platform/apperr"
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the user while classifying the error
// by its Postgres SQLSTATE.
//
// # Classification
//
//   - pgx.ErrNoRows            → NOT_FOUND
//   - SQLSTATE 23503 (FK)      → CONSTRAINT_VIOLATION (dependent records exist)
//   - SQLSTATE 23505 (unique)  → CONSTRAINT_VIOLATION (duplicate value)
//   - anything else            → PERSISTENCE_FAILURE
//
// The resource name is used in the client-safe message; the raw error only
// ever travels in the Cause for server-side logging.
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case pgerrcode.ForeignKeyViolation:
			return apperr.ConstraintViolation(
				fmt.Sprintf("%s is still referenced by other records and cannot be removed", resource),
				err,
			)
		case pgerrcode.UniqueViolation:
			return apperr.ConstraintViolation(
				fmt.Sprintf("A %s with that value already exists", resource),
				err,
			)
		}
	}

	return apperr.PersistenceFailure(err)
}
