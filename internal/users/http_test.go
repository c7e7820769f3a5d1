// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

package users

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hfahrudin/apotek/internal/platform/constants"
	"github.com/hfahrudin/apotek/internal/session"
	"github.com/hfahrudin/apotek/internal/web/render"
	"github.com/hfahrudin/apotek/internal/workflow"
)

// resetPage wires the handler into a router the way server.go does, minus
// the role gate, and hands back everything a page-level test needs.
type resetPage struct {
	router chi.Router
	store  *fakeStore
	cookie *http.Cookie
	csrf   string
}

func newResetPage(t *testing.T) *resetPage {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	sessionStore := session.NewMemoryStore()
	sessions := session.NewManager(sessionStore, "apotek_session", false)
	runner := workflow.NewRunner(sessions)

	renderer, err := render.New(logger)
	require.NoError(t, err)

	store := newFakeStore(seedAdmin(), seedCashier())
	handler := NewHandler(NewService(store, logger), sessions, runner, renderer)

	router := chi.NewRouter()
	router.Use(sessions.Middleware())
	router.Route("/users", func(r chi.Router) { handler.Register(r) })

	sess := &session.Session{ID: "reset-page-session"}
	require.NoError(t, sessionStore.Save(ctx, sess))

	token, err := session.IssueToken(ctx, sessionStore, sess)
	require.NoError(t, err)

	return &resetPage{
		router: router,
		store:  store,
		cookie: &http.Cookie{Name: "apotek_session", Value: sess.ID},
		csrf:   token,
	}
}

func (page *resetPage) submit(t *testing.T, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	request.AddCookie(page.cookie)

	recorder := httptest.NewRecorder()
	page.router.ServeHTTP(recorder, request)
	return recorder
}

/*
TestResetPassword_TooShortIsRerenderedWithoutWriting verifies the reset
flow's stricter length floor end to end: a 7-character password with a
matching confirmation re-renders the form with the length error and prior
context, and no credential write reaches the store.
*/
func TestResetPassword_TooShortIsRerenderedWithoutWriting(t *testing.T) {
	page := newResetPage(t)

	form := url.Values{}
	form.Set(constants.CsrfFormField, page.csrf)
	form.Set("password", "letmein")
	form.Set("password_confirm", "letmein")

	recorder := page.submit(t, "/users/2/reset-password", form)

	require.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Must be at least 8 characters")
	assert.Contains(t, recorder.Body.String(), "Andi Kasir", "re-render keeps the target user's context")
	assert.Equal(t, 0, page.store.writes, "a rejected reset must not touch the store")
}

/*
TestResetPassword_LongEnoughCommitsAndRedirects is the counterpart: eight
characters with a matching confirmation persists exactly one credential
write and resolves to the post-redirect-get redirect.
*/
func TestResetPassword_LongEnoughCommitsAndRedirects(t *testing.T) {
	page := newResetPage(t)

	form := url.Values{}
	form.Set(constants.CsrfFormField, page.csrf)
	form.Set("password", "letmein8")
	form.Set("password_confirm", "letmein8")

	recorder := page.submit(t, "/users/2/reset-password", form)

	require.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, "/users", recorder.Header().Get("Location"))
	assert.Equal(t, 1, page.store.writes)
}
