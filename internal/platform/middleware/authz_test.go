// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hfahrudin/apotek/internal/platform/middleware"
	"github.com/hfahrudin/apotek/internal/platform/sec"
	"github.com/hfahrudin/apotek/internal/session"
)

// gateFixture is a router with one admin-gated route, plus the session
// plumbing needed to inspect the flash the gate leaves behind.
type gateFixture struct {
	router  chi.Router
	store   session.Store
	manager *session.Manager
	reached bool
}

func newGateFixture(t *testing.T) *gateFixture {
	t.Helper()

	fixture := &gateFixture{store: session.NewMemoryStore()}
	fixture.manager = session.NewManager(fixture.store, "apotek_session", false)

	router := chi.NewRouter()
	router.Use(fixture.manager.Middleware())
	router.Route("/users", func(r chi.Router) {
		r.Use(middleware.RequireRole(fixture.manager, sec.RoleAdmin))
		r.Get("/", func(http.ResponseWriter, *http.Request) { fixture.reached = true })
	})
	fixture.router = router

	return fixture
}

func (fixture *gateFixture) sessionFor(t *testing.T, role sec.Role) *session.Session {
	t.Helper()
	sess := &session.Session{ID: "gate-test-session"}
	if role != "" {
		sess.Bind(session.Principal{ID: 9, Username: "dewi", FullName: "Dewi", Role: role})
	}
	require.NoError(t, fixture.store.Save(context.Background(), sess))
	return sess
}

func (fixture *gateFixture) get(t *testing.T, sess *session.Session) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(http.MethodGet, "/users", nil)
	request.AddCookie(&http.Cookie{Name: "apotek_session", Value: sess.ID})

	recorder := httptest.NewRecorder()
	fixture.router.ServeHTTP(recorder, request)
	return recorder
}

/*
TestRequireRole_AnonymousIsSentToLogin verifies that a session with no bound
principal never reaches the gated handler: it is redirected to the sign-in
page with the informational "sign in to continue" flash pending.
*/
func TestRequireRole_AnonymousIsSentToLogin(t *testing.T) {
	fixture := newGateFixture(t)
	sess := fixture.sessionFor(t, "")

	recorder := fixture.get(t, sess)

	require.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, "/login", recorder.Header().Get("Location"))
	assert.False(t, fixture.reached)

	flash, err := fixture.store.PopFlash(context.Background(), sess.ID)
	require.NoError(t, err)
	require.NotNil(t, flash)
	assert.Equal(t, session.FlashInfo, flash.Status)
	assert.Equal(t, "Please sign in to continue", flash.Message)
}

/*
TestRequireRole_RoleOutsideTheSetIsDenied verifies that an authenticated
principal whose role is not in the allowed set is turned away with the
permission-denied error flash, and the handler never runs.
*/
func TestRequireRole_RoleOutsideTheSetIsDenied(t *testing.T) {
	fixture := newGateFixture(t)
	sess := fixture.sessionFor(t, sec.RoleCashier)

	recorder := fixture.get(t, sess)

	require.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, "/login", recorder.Header().Get("Location"))
	assert.False(t, fixture.reached)

	flash, err := fixture.store.PopFlash(context.Background(), sess.ID)
	require.NoError(t, err)
	require.NotNil(t, flash)
	assert.Equal(t, session.FlashError, flash.Status)
	assert.Equal(t, "You do not have permission to access that page", flash.Message)
}

/*
TestRequireRole_AllowedRolePassesThrough verifies the happy path: an admin
session reaches the handler and no flash is left behind.
*/
func TestRequireRole_AllowedRolePassesThrough(t *testing.T) {
	fixture := newGateFixture(t)
	sess := fixture.sessionFor(t, sec.RoleAdmin)

	recorder := fixture.get(t, sess)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, fixture.reached)

	flash, err := fixture.store.PopFlash(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Nil(t, flash)
}
