// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hfahrudin/apotek/internal/platform/sec"
	"github.com/hfahrudin/apotek/internal/session"
)

/*
TestSession_Principal verifies identity resolution out of the session value:
a bound principal round-trips, an anonymous session resolves to nil.
*/
func TestSession_Principal(t *testing.T) {
	sess := &session.Session{ID: "s1"}
	assert.Nil(t, sess.Principal(), "anonymous session has no principal")
	assert.False(t, sess.IsAuthenticated())

	sess.Bind(session.Principal{ID: 3, Username: "siti", FullName: "Siti Rahma", Role: sec.RoleAdmin})

	principal := sess.Principal()
	require.NotNil(t, principal)
	assert.Equal(t, 3, principal.ID)
	assert.Equal(t, "siti", principal.Username)
	assert.Equal(t, "Siti Rahma", principal.FullName)
	assert.Equal(t, sec.RoleAdmin, principal.Role)
}

/*
TestMemoryStore_Lifecycle verifies save/load/delete round-trips and that
loading an unknown ID is a nil result, not an error.
*/
func TestMemoryStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()

	loaded, err := store.Load(ctx, "unknown")
	require.NoError(t, err)
	assert.Nil(t, loaded)

	sess := &session.Session{ID: "s1", UserID: 7, Username: "budi", Role: sec.RoleCashier}
	require.NoError(t, store.Save(ctx, sess))

	loaded, err = store.Load(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, 7, loaded.UserID)
	assert.Equal(t, sec.RoleCashier, loaded.Role)

	// Mutating the loaded copy must not leak back into the store.
	loaded.UserID = 99
	again, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 7, again.UserID)

	require.NoError(t, store.Delete(ctx, "s1"))
	gone, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

/*
TestFlash_OneShot verifies that a flash message is readable exactly once.
*/
func TestFlash_OneShot(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()

	require.NoError(t, store.SetFlash(ctx, "s1", session.Flash{
		Message: "Drug saved",
		Status:  session.FlashSuccess,
	}))

	flash, err := store.PopFlash(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, flash)
	assert.Equal(t, "Drug saved", flash.Message)
	assert.Equal(t, session.FlashSuccess, flash.Status)

	flash, err = store.PopFlash(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, flash, "flash must be cleared after the first read")
}
