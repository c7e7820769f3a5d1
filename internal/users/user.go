// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

// Package users manages pharmacy staff and customer accounts.
//
// # Scope
//
// Listing, creation, profile edits, password resets, and deletion, together
// with the two self-protection rules: an administrator can neither demote
// nor delete their own signed-in account.
package users

import (
	"time"

	"github.com/hfahrudin/apotek/internal/platform/sec"
)

// User is the full account row as administration pages see it. The password
// digest never leaves the storage layer.
type User struct {
	ID        int
	FullName  string
	Username  string
	Role      sec.Role
	CreatedAt time.Time
	UpdatedAt time.Time
}
