// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

package users

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hfahrudin/apotek/internal/platform/apperr"
	"github.com/hfahrudin/apotek/internal/platform/sec"
)

// fakeStore is an in-memory Store that records credential writes so tests
// can assert nothing was persisted on blocked paths.
type fakeStore struct {
	users  map[int]*User
	nextID int
	writes int
}

func newFakeStore(seed ...*User) *fakeStore {
	store := &fakeStore{users: map[int]*User{}, nextID: 1}
	for _, user := range seed {
		store.users[user.ID] = user
		if user.ID >= store.nextID {
			store.nextID = user.ID + 1
		}
	}
	return store
}

func (store *fakeStore) List(_ context.Context) ([]User, error) {
	accounts := []User{}
	for _, user := range store.users {
		accounts = append(accounts, *user)
	}
	return accounts, nil
}

func (store *fakeStore) FindByID(_ context.Context, id int) (*User, error) {
	user, found := store.users[id]
	if !found {
		return nil, apperr.NotFound("user")
	}
	clone := *user
	return &clone, nil
}

func (store *fakeStore) UsernameTaken(_ context.Context, username string, excludeID int) (bool, error) {
	for _, user := range store.users {
		if user.Username == username && user.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (store *fakeStore) Create(_ context.Context, user *User, _ string) error {
	user.ID = store.nextID
	store.nextID++
	clone := *user
	store.users[user.ID] = &clone
	store.writes++
	return nil
}

func (store *fakeStore) Update(_ context.Context, user *User, _ string) (int64, error) {
	if _, found := store.users[user.ID]; !found {
		return 0, nil
	}
	clone := *user
	store.users[user.ID] = &clone
	store.writes++
	return 1, nil
}

func (store *fakeStore) UpdatePassword(_ context.Context, id int, _ string) (int64, error) {
	if _, found := store.users[id]; !found {
		return 0, nil
	}
	store.writes++
	return 1, nil
}

func (store *fakeStore) Delete(_ context.Context, id int) (int64, error) {
	if _, found := store.users[id]; !found {
		return 0, nil
	}
	delete(store.users, id)
	store.writes++
	return 1, nil
}

func seedAdmin() *User {
	return &User{ID: 1, FullName: "Siti Admin", Username: "siti", Role: sec.RoleAdmin}
}

func seedCashier() *User {
	return &User{ID: 2, FullName: "Andi Kasir", Username: "andi", Role: sec.RoleCashier}
}

func TestUpdate_SelfDemotionIsBlockedWithoutWriting(t *testing.T) {
	store := newFakeStore(seedAdmin())
	service := NewService(store, slog.Default())

	found, err := service.Update(context.Background(), 1, 1, UpdateInput{
		FullName: "Siti Admin",
		Username: "siti",
		Role:     sec.RoleCashier,
	})

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeSelfActionBlocked))
	assert.False(t, found)
	assert.Zero(t, store.writes)
	assert.Equal(t, sec.RoleAdmin, store.users[1].Role)
}

func TestUpdate_SelfEditWithoutRoleChangeSucceeds(t *testing.T) {
	store := newFakeStore(seedAdmin())
	service := NewService(store, slog.Default())

	found, err := service.Update(context.Background(), 1, 1, UpdateInput{
		FullName: "Siti A. Rahma",
		Username: "siti",
		Role:     sec.RoleAdmin,
	})

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Siti A. Rahma", store.users[1].FullName)
}

func TestDelete_SelfDeletionIsBlocked(t *testing.T) {
	store := newFakeStore(seedAdmin(), seedCashier())
	service := NewService(store, slog.Default())

	found, err := service.Delete(context.Background(), 1, 1)

	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeSelfActionBlocked))
	assert.False(t, found)
	assert.Contains(t, store.users, 1)
}

func TestDelete_OtherAccountSucceeds(t *testing.T) {
	store := newFakeStore(seedAdmin(), seedCashier())
	service := NewService(store, slog.Default())

	found, err := service.Delete(context.Background(), 1, 2)

	require.NoError(t, err)
	assert.True(t, found)
	assert.NotContains(t, store.users, 2)
}

func TestDelete_VanishedTargetIsReportedNotFailed(t *testing.T) {
	store := newFakeStore(seedAdmin())
	service := NewService(store, slog.Default())

	found, err := service.Delete(context.Background(), 1, 99)

	require.NoError(t, err)
	assert.False(t, found)
}

func TestCreate_TakenUsernameIsAFieldError(t *testing.T) {
	store := newFakeStore(seedAdmin())
	service := NewService(store, slog.Default())

	_, err := service.Create(context.Background(), CreateInput{
		FullName: "Second Siti",
		Username: "siti",
		Password: "rahasia1",
		Role:     sec.RoleCashier,
	})

	require.Error(t, err)
	require.True(t, apperr.IsCode(err, apperr.CodeValidationFailed))
	details := apperr.As(err).Details
	require.Len(t, details, 1)
	assert.Equal(t, "username", details[0].Field)
}

func TestCreate_UsernameMatchIsCaseSensitive(t *testing.T) {
	store := newFakeStore(seedAdmin())
	service := NewService(store, slog.Default())

	user, err := service.Create(context.Background(), CreateInput{
		FullName: "Siti Uppercase",
		Username: "Siti",
		Password: "rahasia1",
		Role:     sec.RoleCashier,
	})

	require.NoError(t, err)
	assert.NotZero(t, user.ID)
}

func TestUpdate_KeepingOwnUsernameSkipsAvailabilityCheck(t *testing.T) {
	store := newFakeStore(seedAdmin(), seedCashier())
	service := NewService(store, slog.Default())

	found, err := service.Update(context.Background(), 1, 2, UpdateInput{
		FullName: "Andi Kasir",
		Username: "andi",
		Role:     sec.RoleCashier,
	})

	require.NoError(t, err)
	assert.True(t, found)
}

func TestResetPassword_VanishedTargetIsReportedNotFailed(t *testing.T) {
	store := newFakeStore()
	service := NewService(store, slog.Default())

	found, err := service.ResetPassword(context.Background(), 42, "panjangsekali")

	require.NoError(t, err)
	assert.False(t, found)
	assert.Zero(t, store.writes)
}
