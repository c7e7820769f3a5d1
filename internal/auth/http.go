// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

package auth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hfahrudin/apotek/internal/platform/apperr"
	"github.com/hfahrudin/apotek/internal/platform/ctxutil"
	"github.com/hfahrudin/apotek/internal/platform/middleware"
	"github.com/hfahrudin/apotek/internal/platform/request"
	"github.com/hfahrudin/apotek/internal/platform/sec"
	"github.com/hfahrudin/apotek/internal/platform/validate"
	"github.com/hfahrudin/apotek/internal/session"
	"github.com/hfahrudin/apotek/internal/web/render"
	"github.com/hfahrudin/apotek/internal/workflow"
)

// Handler implements the sign-in and sign-out endpoints.
type Handler struct {
	authService *Service
	sessions    *session.Manager
	runner      *workflow.Runner
	renderer    *render.Renderer
}

// NewHandler constructs a new [Handler] with its collaborators.
func NewHandler(
	service *Service,
	sessions *session.Manager,
	runner *workflow.Runner,
	renderer *render.Renderer,
) *Handler {
	return &Handler{
		authService: service,
		sessions:    sessions,
		runner:      runner,
		renderer:    renderer,
	}
}

// Register attaches the authentication routes to the given router.
//
// # Endpoints
//   - GET  /login  : Renders the sign-in form.
//   - POST /login  : Verifies credentials and establishes the session.
//   - POST /logout : Destroys the session.
func (handler *Handler) Register(router chi.Router) {
	router.Get("/login", handler.showLogin)
	// Credential guessing gets its own, much tighter bucket.
	router.With(middleware.LoginRateLimit()).Post("/login", handler.submitLogin)
	router.Post("/logout", handler.logout)
}

// LandingPath picks the post-login destination for a role.
func LandingPath(role sec.Role) string {
	switch role {
	case sec.RoleAdmin:
		return "/users"
	case sec.RolePharmacist:
		return "/drugs"
	default:
		return "/orders"
	}
}

// showLogin handles GET /login requests.
//
// An already signed-in visitor is bounced straight to their landing page
// instead of seeing a second sign-in form.
func (handler *Handler) showLogin(writer http.ResponseWriter, req *http.Request) {
	sess := session.FromContext(req.Context())
	if sess != nil && sess.IsAuthenticated() {
		http.Redirect(writer, req, LandingPath(sess.Role), http.StatusSeeOther)
		return
	}

	page := render.NewPage(req.Context(), handler.sessions, "Sign in")
	handler.renderer.HTML(writer, http.StatusOK, "login.html", page)
}

// submitLogin handles POST /login requests.
//
// The credential check runs through the mutation workflow so the login form
// gets the same one-shot CSRF guard as every other state change. On success
// the session is renewed under a fresh identifier before the identity is
// bound to it.
func (handler *Handler) submitLogin(writer http.ResponseWriter, req *http.Request) {
	sess := session.FromContext(req.Context())

	handler.runner.Run(writer, req, workflow.Mutation{
		Validate: func(req *http.Request) error {
			validator := &validate.Validator{}
			validator.Required("username", requestutil.Field(req, "username"))
			validator.Required("password", requestutil.FieldRaw(req, "password"))
			return validator.Err()
		},
		Mutate: func(ctx context.Context) (workflow.Outcome, error) {
			principal, err := handler.authService.Login(
				ctx,
				requestutil.Field(req, "username"),
				requestutil.FieldRaw(req, "password"),
			)
			if err != nil {
				return workflow.Committed, err
			}

			// New session identifier on privilege change blocks fixation.
			if err := handler.sessions.Renew(ctx, writer, sess); err != nil {
				return workflow.Committed, apperr.PersistenceFailure(err)
			}
			sess.Bind(*principal)
			if err := handler.sessions.Save(ctx, sess); err != nil {
				return workflow.Committed, apperr.PersistenceFailure(err)
			}

			return workflow.Committed, nil
		},
		SuccessMessage: "Signed in",
		SuccessPath:    "/",
		FailPath:       "/login",
		RenderInvalid: func(writer http.ResponseWriter, req *http.Request, details []apperr.FieldError) {
			page := render.NewPage(req.Context(), handler.sessions, "Sign in")
			page.Errors = details
			page.Form = req.PostForm
			handler.renderer.HTML(writer, http.StatusUnprocessableEntity, "login.html", page)
		},
	})
}

// logout handles POST /logout requests. Logout is CSRF-guarded like any
// other mutation so a hostile page cannot forcibly end a session.
func (handler *Handler) logout(writer http.ResponseWriter, req *http.Request) {
	sess := session.FromContext(req.Context())

	handler.runner.Run(writer, req, workflow.Mutation{
		Mutate: func(ctx context.Context) (workflow.Outcome, error) {
			if err := handler.sessions.Destroy(ctx, writer, sess); err != nil {
				ctxutil.GetLogger(ctx).ErrorContext(ctx, "logout_destroy_failed", slog.Any("error", err))
			}
			return workflow.Committed, nil
		},
		SuccessPath: "/login",
		FailPath:    "/login",
	})
}
