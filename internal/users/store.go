// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

package users

import "context"

// Store persists account records.
//
// Row counts come back from the mutating calls so the service can tell a
// successful write apart from one that matched no row at all.
type Store interface {
	// List returns every account ordered by full name.
	List(ctx context.Context) ([]User, error)

	// FindByID returns the account, or [apperr.NotFound] when absent.
	FindByID(ctx context.Context, id int) (*User, error)

	// UsernameTaken reports whether the exact username is already held by
	// an account other than excludeID. Pass 0 to exclude nobody.
	UsernameTaken(ctx context.Context, username string, excludeID int) (bool, error)

	// Create inserts the account and fills in its assigned ID.
	Create(ctx context.Context, user *User, passwordHash string) error

	// Update rewrites the profile columns and, when passwordHash is
	// non-empty, the credential as well, atomically. Returns affected rows.
	Update(ctx context.Context, user *User, passwordHash string) (int64, error)

	// UpdatePassword replaces only the credential. Returns affected rows.
	UpdatePassword(ctx context.Context, id int, passwordHash string) (int64, error)

	// Delete removes the account. Returns affected rows.
	Delete(ctx context.Context, id int) (int64, error)
}
