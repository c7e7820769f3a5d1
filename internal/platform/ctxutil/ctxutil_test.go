// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hfahrudin/apotek/internal/platform/ctxutil"
)

/*
TestRequestID verifies the round-trip of the correlation ID and the
empty-string fallback for bare contexts.
*/
func TestRequestID(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, "", ctxutil.GetRequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, "req-123")
	assert.Equal(t, "req-123", ctxutil.GetRequestID(ctx))
}

/*
TestLogger verifies that a stored logger is returned as-is and that a bare
context falls back to the default logger rather than nil.
*/
func TestLogger(t *testing.T) {
	ctx := context.Background()

	assert.NotNil(t, ctxutil.GetLogger(ctx), "bare context must fall back to slog.Default")

	custom := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx = ctxutil.WithLogger(ctx, custom)
	assert.Same(t, custom, ctxutil.GetLogger(ctx))
}
