// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hfahrudin/apotek/internal/session"
)

func newTestSession(t *testing.T, store session.Store) *session.Session {
	t.Helper()
	sess := &session.Session{ID: "test-session-id"}
	require.NoError(t, store.Save(context.Background(), sess))
	return sess
}

/*
TestCsrf_OneShot verifies that a token validates at most once per issue:
the first submission succeeds, an identical replay is rejected.
*/
func TestCsrf_OneShot(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()
	sess := newTestSession(t, store)

	token, err := session.IssueToken(ctx, store, sess)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	ok, err := session.ValidateAndConsume(ctx, store, sess, token)
	require.NoError(t, err)
	assert.True(t, ok, "first submission with the issued token must pass")

	ok, err = session.ValidateAndConsume(ctx, store, sess, token)
	require.NoError(t, err)
	assert.False(t, ok, "replaying a consumed token must be rejected")
}

/*
TestCsrf_Mismatch verifies that a wrong token is rejected AND consumes the
pending token, so the genuine token cannot be used afterwards either.
*/
func TestCsrf_Mismatch(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()
	sess := newTestSession(t, store)

	token, err := session.IssueToken(ctx, store, sess)
	require.NoError(t, err)

	ok, err := session.ValidateAndConsume(ctx, store, sess, "forged-token")
	require.NoError(t, err)
	assert.False(t, ok)

	// The mismatch consumed the pending token.
	ok, err = session.ValidateAndConsume(ctx, store, sess, token)
	require.NoError(t, err)
	assert.False(t, ok, "pending token must be gone after a mismatched submission")
}

/*
TestCsrf_NoPendingToken verifies the missing-token and empty-submission cases.
*/
func TestCsrf_NoPendingToken(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()
	sess := newTestSession(t, store)

	ok, err := session.ValidateAndConsume(ctx, store, sess, "anything")
	require.NoError(t, err)
	assert.False(t, ok, "no pending token means rejection")

	_, err = session.IssueToken(ctx, store, sess)
	require.NoError(t, err)

	ok, err = session.ValidateAndConsume(ctx, store, sess, "")
	require.NoError(t, err)
	assert.False(t, ok, "empty submission never matches")
}

/*
TestCsrf_ReissueOverwrites verifies that issuing a new token invalidates the
previous pending one: only one outstanding token per session.
*/
func TestCsrf_ReissueOverwrites(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()
	sess := newTestSession(t, store)

	first, err := session.IssueToken(ctx, store, sess)
	require.NoError(t, err)

	second, err := session.IssueToken(ctx, store, sess)
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	ok, err := session.ValidateAndConsume(ctx, store, sess, first)
	require.NoError(t, err)
	assert.False(t, ok, "overwritten token must no longer validate")

	// And the consume above also cleared the second token.
	ok, err = session.ValidateAndConsume(ctx, store, sess, second)
	require.NoError(t, err)
	assert.False(t, ok)
}
