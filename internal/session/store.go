// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

package session

import (
	"context"
)

// Store abstracts the process-external session storage.
//
// # Contracts
//
//   - Load returns (nil, nil) for unknown or expired session IDs; an absent
//     session is not an error.
//   - ConsumeCSRF atomically removes and returns the pending token; it
//     returns ("", nil) when no token is pending. The remove-then-compare
//     split guarantees a token is never usable twice, even under two
//     concurrent submissions.
//   - PopFlash removes and returns the pending flash; (nil, nil) when absent.
type Store interface {
	// Load fetches the session document for the given ID.
	Load(ctx context.Context, id string) (*Session, error)

	// Save persists the session document, refreshing its TTL.
	Save(ctx context.Context, session *Session) error

	// Delete removes the session document and its one-shot keys.
	Delete(ctx context.Context, id string) error

	// SetCSRF stores the pending one-shot token, overwriting any prior one.
	SetCSRF(ctx context.Context, id string, token string) error

	// ConsumeCSRF atomically removes and returns the pending token.
	ConsumeCSRF(ctx context.Context, id string) (string, error)

	// SetFlash stores the pending one-shot flash message.
	SetFlash(ctx context.Context, id string, flash Flash) error

	// PopFlash atomically removes and returns the pending flash.
	PopFlash(ctx context.Context, id string) (*Flash, error)
}
