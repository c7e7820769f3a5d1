// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

package auth

import "context"

// AccountStore retrieves credential records for authentication.
type AccountStore interface {
	// FindByUsername returns the account owning the username, matched
	// case-sensitively. Absence is reported as [apperr.NotFound].
	FindByUsername(ctx context.Context, username string) (*Account, error)
}
