// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

// Package auth owns the sign-in and sign-out lifecycle.
//
// # Scope
//
// It verifies submitted credentials against stored bcrypt digests and, on
// success, hands the caller an identity snapshot to bind into the session.
// Account administration (creating users, changing roles) lives in the
// users package; auth only reads.
package auth

import (
	"time"

	"github.com/hfahrudin/apotek/internal/platform/sec"
)

// Account is the credential view of a user row. It carries exactly what a
// login decision needs and nothing an attacker would enjoy caching.
type Account struct {
	ID           int
	FullName     string
	Username     string
	PasswordHash string
	Role         sec.Role
	CreatedAt    time.Time
}
