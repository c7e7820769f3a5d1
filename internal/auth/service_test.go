// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

package auth

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hfahrudin/apotek/internal/platform/apperr"
	"github.com/hfahrudin/apotek/internal/platform/sec"
)

// fakeAccountStore serves accounts from memory, keyed by exact username.
type fakeAccountStore struct {
	accounts map[string]*Account
}

func (store *fakeAccountStore) FindByUsername(_ context.Context, username string) (*Account, error) {
	account, found := store.accounts[username]
	if !found {
		return nil, apperr.NotFound("account")
	}
	return account, nil
}

func newTestService(t *testing.T, password string) *Service {
	t.Helper()

	hash, err := sec.HashPassword(password)
	require.NoError(t, err)

	store := &fakeAccountStore{accounts: map[string]*Account{
		"budi": {
			ID:           7,
			FullName:     "Budi Santoso",
			Username:     "budi",
			PasswordHash: hash,
			Role:         sec.RolePharmacist,
		},
	}}

	return NewService(store, slog.Default())
}

func TestLogin_Success(t *testing.T) {
	service := newTestService(t, "rahasia1")

	principal, err := service.Login(context.Background(), "budi", "rahasia1")
	require.NoError(t, err)

	assert.Equal(t, 7, principal.ID)
	assert.Equal(t, "budi", principal.Username)
	assert.Equal(t, "Budi Santoso", principal.FullName)
	assert.Equal(t, sec.RolePharmacist, principal.Role)
}

func TestLogin_WrongPasswordAndUnknownUserAreIndistinguishable(t *testing.T) {
	service := newTestService(t, "rahasia1")

	_, wrongPassword := service.Login(context.Background(), "budi", "salah")
	_, unknownUser := service.Login(context.Background(), "siapa", "salah")

	require.Error(t, wrongPassword)
	require.Error(t, unknownUser)

	// Both rejections surface the same message; neither names a field the
	// attacker can use to enumerate accounts.
	assert.Equal(t, apperr.As(wrongPassword).Details, apperr.As(unknownUser).Details)
	assert.Equal(t, "Invalid username or password", apperr.As(wrongPassword).Details[0].Message)
	assert.True(t, apperr.IsCode(wrongPassword, apperr.CodeValidationFailed))
}

func TestLogin_UsernameIsCaseSensitive(t *testing.T) {
	service := newTestService(t, "rahasia1")

	_, err := service.Login(context.Background(), "Budi", "rahasia1")
	require.Error(t, err)
	assert.True(t, apperr.IsCode(err, apperr.CodeValidationFailed))
}
