// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

package session

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hfahrudin/apotek/internal/platform/constants"
	"github.com/hfahrudin/apotek/internal/platform/ctxkey"
	"github.com/hfahrudin/apotek/internal/platform/ctxutil"
	"github.com/hfahrudin/apotek/internal/platform/sec"
)

// Manager owns the session cookie and the session lifecycle.
//
// # Cookie Policy
//
// The cookie carries only the opaque session ID. HttpOnly blocks script
// access; SameSite=Lax plus the CSRF guard covers cross-site submissions;
// Secure is enabled outside development.
type Manager struct {
	store      Store
	cookieName string
	secure     bool
}

// NewManager constructs a session [Manager].
func NewManager(store Store, cookieName string, secure bool) *Manager {
	return &Manager{store: store, cookieName: cookieName, secure: secure}
}

// Store exposes the underlying store for the CSRF guard and flash helpers.
func (manager *Manager) Store() Store {
	return manager.store
}

// # Request Lifecycle

// Middleware loads the request's session, creating one at first contact,
// and injects it into the request context.
func (manager *Manager) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()

			sess, err := manager.load(ctx, request)
			if err != nil {
				ctxutil.GetLogger(ctx).ErrorContext(ctx, "session_load_failed", slog.Any("error", err))
				http.Error(writer, "service unavailable", http.StatusServiceUnavailable)
				return
			}

			// First contact: mint a fresh anonymous session.
			if sess == nil {
				sess, err = manager.create(ctx)
				if err != nil {
					ctxutil.GetLogger(ctx).ErrorContext(ctx, "session_create_failed", slog.Any("error", err))
					http.Error(writer, "service unavailable", http.StatusServiceUnavailable)
					return
				}
				manager.setCookie(writer, sess.ID)
			}

			ctx = context.WithValue(ctx, ctxkey.KeySession, sess)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// FromContext returns the session injected by [Manager.Middleware], or nil
// when the middleware did not run.
func FromContext(ctx context.Context) *Session {
	sess, ok := ctx.Value(ctxkey.KeySession).(*Session)
	if !ok {
		return nil
	}
	return sess
}

// # Login / Logout Transitions

/*
Renew rotates the session ID while keeping the bound principal.

Description: Called at login, after credentials verify, so a session ID
handed out pre-authentication can never be replayed as an authenticated one
(session fixation defense). The old ID and its one-shot values are removed.

Parameters:
  - ctx: context.Context
  - writer: http.ResponseWriter
  - sess: *Session

Returns:
  - error: ID generation or storage failures
*/
func (manager *Manager) Renew(ctx context.Context, writer http.ResponseWriter, sess *Session) error {
	oldID := sess.ID

	newID, err := sec.GenerateSecureToken(constants.SessionIDLength)
	if err != nil {
		return fmt.Errorf("session_renew_id_failed: %w", err)
	}

	sess.ID = newID
	if err := manager.store.Save(ctx, sess); err != nil {
		return err
	}

	if oldID != "" {
		_ = manager.store.Delete(ctx, oldID)
	}

	manager.setCookie(writer, newID)
	return nil
}

// Save persists the current session document.
func (manager *Manager) Save(ctx context.Context, sess *Session) error {
	return manager.store.Save(ctx, sess)
}

/*
Destroy ends the session at logout.

Description: Removes the session document and its one-shot values from the
store and expires the browser cookie.

Parameters:
  - ctx: context.Context
  - writer: http.ResponseWriter
  - sess: *Session

Returns:
  - error: Deletion failures
*/
func (manager *Manager) Destroy(ctx context.Context, writer http.ResponseWriter, sess *Session) error {
	if err := manager.store.Delete(ctx, sess.ID); err != nil {
		return err
	}

	// Expire the cookie immediately.
	http.SetCookie(writer, &http.Cookie{
		Name:     manager.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   manager.secure,
		SameSite: http.SameSiteLaxMode,
	})

	*sess = Session{}
	return nil
}

// # Flash Helpers

// PutFlash records the one-shot outcome message for the page after the
// redirect.
func (manager *Manager) PutFlash(ctx context.Context, sess *Session, status FlashStatus, message string) {
	if err := manager.store.SetFlash(ctx, sess.ID, Flash{Message: message, Status: status}); err != nil {
		ctxutil.GetLogger(ctx).ErrorContext(ctx, "flash_set_failed", slog.Any("error", err))
	}
}

// TakeFlash removes and returns the pending flash, or nil when none is set.
func (manager *Manager) TakeFlash(ctx context.Context, sess *Session) *Flash {
	flash, err := manager.store.PopFlash(ctx, sess.ID)
	if err != nil {
		ctxutil.GetLogger(ctx).ErrorContext(ctx, "flash_pop_failed", slog.Any("error", err))
		return nil
	}
	return flash
}

// # Internals

func (manager *Manager) load(ctx context.Context, request *http.Request) (*Session, error) {
	cookie, err := request.Cookie(manager.cookieName)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}
	return manager.store.Load(ctx, cookie.Value)
}

func (manager *Manager) create(ctx context.Context) (*Session, error) {
	id, err := sec.GenerateSecureToken(constants.SessionIDLength)
	if err != nil {
		return nil, fmt.Errorf("session_create_id_failed: %w", err)
	}

	sess := &Session{ID: id}
	if err := manager.store.Save(ctx, sess); err != nil {
		return nil, err
	}

	return sess, nil
}

func (manager *Manager) setCookie(writer http.ResponseWriter, id string) {
	http.SetCookie(writer, &http.Cookie{
		Name:     manager.cookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   manager.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
