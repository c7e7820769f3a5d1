// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

package middleware

import (
	"log/slog"
	"net/http"

	"github.com/hfahrudin/apotek/internal/platform/apperr"
	"github.com/hfahrudin/apotek/internal/platform/constants"
	"github.com/hfahrudin/apotek/internal/platform/ctxutil"
	"github.com/hfahrudin/apotek/internal/platform/metrics"
	"github.com/hfahrudin/apotek/internal/platform/sec"
	"github.com/hfahrudin/apotek/internal/session"
)

// RequireRole is the Authorization Gate: it blocks the request unless the
// session carries a principal whose role is in the allowed set.
//
// # Flow
//
//  1. Resolve the principal from the request session.
//  2. Anonymous → redirect to the login page and halt.
//  3. Role outside the allowed set → audit-log the denial, count it, flash
//     an error, redirect to the login page, and halt.
//
// Must be mounted AFTER the session middleware, and always BEFORE any
// mutation or sensitive read.
func RequireRole(manager *session.Manager, allowed ...sec.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()
			sess := session.FromContext(ctx)

			var principal *session.Principal
			if sess != nil {
				principal = sess.Principal()
			}

			// ── 1. Authentication Check ───────────────────────────────────────
			if principal == nil {
				denial := apperr.AuthenticationRequired()
				if sess != nil {
					manager.PutFlash(ctx, sess, session.FlashInfo, denial.Message)
				}
				http.Redirect(writer, request, constants.LoginPath, http.StatusSeeOther)
				return
			}

			// ── 2. Authorization Check ────────────────────────────────────────
			if !principal.Role.In(allowed...) {
				denial := apperr.AuthorizationDenied("You do not have permission to access that page")

				// Audit trail: who tried to reach what with which role.
				ctxutil.GetLogger(ctx).WarnContext(ctx, "authorization_denied",
					slog.String("code", denial.Code),
					slog.Int("user_id", principal.ID),
					slog.String("role", string(principal.Role)),
					slog.String("target", request.URL.Path),
				)
				metrics.AuthzDenialsTotal.Inc()

				if sess != nil {
					manager.PutFlash(ctx, sess, session.FlashError, denial.Message)
				}

				http.Redirect(writer, request, constants.LoginPath, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
