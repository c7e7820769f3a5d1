// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

// Package ctxutil provides helpers for interacting with values stored in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/hfahrudin/apotek/internal/platform/ctxkey"
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID returns the request ID from the context, or "" if absent.
func GetRequestID(ctx context.Context) string {
	id, ok := ctx.Value(ctxkey.KeyRequestID).(string)
	if !ok {
		return ""
	}
	return id
}

// # Request-Scoped Logging

// WithLogger returns a new context carrying a request-scoped logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger returns the request-scoped logger from the context.
//
// It falls back to [slog.Default] so callers never receive nil.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}
