// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

// Package ctxkey defines the private context key types used across the platform.
//
// Using unexported key types prevents collisions with third-party packages
// that also store values in [context.Context].
package ctxkey

// Key is the private type for all Apotek context keys.
type Key int

const (
	// KeyRequestID carries the correlation ID for the current request.
	KeyRequestID Key = iota

	// KeyLogger carries the request-scoped *slog.Logger.
	KeyLogger

	// KeySession carries the *session.Session loaded for this request.
	KeySession
)
