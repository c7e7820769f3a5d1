// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

package users

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/hfahrudin/apotek/internal/platform/apperr"
	"github.com/hfahrudin/apotek/internal/platform/ctxutil"
	"github.com/hfahrudin/apotek/internal/platform/request"
	"github.com/hfahrudin/apotek/internal/platform/respond"
	"github.com/hfahrudin/apotek/internal/platform/sec"
	"github.com/hfahrudin/apotek/internal/platform/validate"
	"github.com/hfahrudin/apotek/internal/session"
	"github.com/hfahrudin/apotek/internal/web/render"
	"github.com/hfahrudin/apotek/internal/workflow"
)

// Handler implements the account administration pages. Every route here is
// mounted behind the admin-only gate.
type Handler struct {
	userService *Service
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
		userService: service,
		sessions:    sessions,
		runner:      runner,
		renderer:    renderer,
	}
}

// Register attaches the account administration routes.
//
// # Endpoints
//   - GET  /                     : Account index.
//   - GET  /new                  : Blank account form.
//   - POST /                     : Create an account.
//   - GET  /{id}/edit            : Prefilled account form.
//   - POST /{id}                 : Update an account.
//   - POST /{id}/delete          : Delete an account.
//   - GET  /{id}/reset-password  : Password reset form.
//   - POST /{id}/reset-password  : Apply a password reset.
func (handler *Handler) Register(router chi.Router) {
	router.Get("/", handler.list)
	router.Get("/new", handler.showCreate)
	router.Post("/", handler.create)
	router.Get("/{id}/edit", handler.showEdit)
	router.Post("/{id}", handler.update)
	router.Post("/{id}/delete", handler.delete)
	router.Get("/{id}/reset-password", handler.showResetPassword)
	router.Post("/{id}/reset-password", handler.resetPassword)
}

// userFormData feeds the shared create/edit template.
type userFormData struct {
	Action string
	Roles  []string
	IsEdit bool
}

// list handles GET /users.
func (handler *Handler) list(writer http.ResponseWriter, req *http.Request) {
	accounts, err := handler.userService.List(req.Context())
	if err != nil {
		handler.persistenceError(writer, req, err)
		return
	}

	page := render.NewPage(req.Context(), handler.sessions, "Users")
	page.Data = struct{ Users []User }{Users: accounts}
	handler.renderer.HTML(writer, http.StatusOK, "users_list.html", page)
}

// showCreate handles GET /users/new.
func (handler *Handler) showCreate(writer http.ResponseWriter, req *http.Request) {
	page := render.NewPage(req.Context(), handler.sessions, "New user")
	page.Data = userFormData{Action: "/users", Roles: sec.RoleNames()}
	handler.renderer.HTML(writer, http.StatusOK, "user_form.html", page)
}

// accountValidator collects the shared profile rules. Password rules differ
// between create (mandatory) and edit (optional), so callers add their own.
func accountValidator(req *http.Request) *validate.Validator {
	validator := &validate.Validator{}
	validator.
		Required("full_name", requestutil.Field(req, "full_name")).
		MaxLen("full_name", requestutil.Field(req, "full_name"), 100).
		Required("username", requestutil.Field(req, "username")).
		Username("username", requestutil.Field(req, "username")).
		OneOf("role", requestutil.Field(req, "role"), sec.RoleNames()...)
	return validator
}

// create handles POST /users.
func (handler *Handler) create(writer http.ResponseWriter, req *http.Request) {
	handler.runner.Run(writer, req, workflow.Mutation{
		Validate: func(req *http.Request) error {
			validator := accountValidator(req)
			validator.
				Required("password", requestutil.FieldRaw(req, "password")).
				MinLen("password", requestutil.FieldRaw(req, "password"), validate.PasswordMinLen)
			return validator.Err()
		},
		Mutate: func(ctx context.Context) (workflow.Outcome, error) {
			role, _ := sec.ParseRole(requestutil.Field(req, "role"))
			_, err := handler.userService.Create(ctx, CreateInput{
				FullName: requestutil.Field(req, "full_name"),
				Username: requestutil.Field(req, "username"),
				Password: requestutil.FieldRaw(req, "password"),
				Role:     role,
			})
			return workflow.Committed, err
		},
		SuccessMessage: "User created",
		SuccessPath:    "/users",
		RenderInvalid:  handler.rerenderForm("New user", "/users", false),
	})
}

// showEdit handles GET /users/{id}/edit.
func (handler *Handler) showEdit(writer http.ResponseWriter, req *http.Request) {
	user, ok := handler.lookup(writer, req)
	if !ok {
		return
	}

	page := render.NewPage(req.Context(), handler.sessions, "Edit user")
	page.Data = userFormData{
		Action: fmt.Sprintf("/users/%d", user.ID),
		Roles:  sec.RoleNames(),
		IsEdit: true,
	}
	page.Form = url.Values{
		"full_name": {user.FullName},
		"username":  {user.Username},
		"role":      {string(user.Role)},
	}
	handler.renderer.HTML(writer, http.StatusOK, "user_form.html", page)
}

// update handles POST /users/{id}.
func (handler *Handler) update(writer http.ResponseWriter, req *http.Request) {
	actor := session.FromContext(req.Context())
	id := requestutil.ParamID(req, "id")
	action := fmt.Sprintf("/users/%d", id)

	handler.runner.Run(writer, req, workflow.Mutation{
		Validate: func(req *http.Request) error {
			validator := accountValidator(req)
			if password := requestutil.FieldRaw(req, "password"); password != "" {
				validator.MinLen("password", password, validate.PasswordMinLen)
			}
			return validator.Err()
		},
		Mutate: func(ctx context.Context) (workflow.Outcome, error) {
			role, _ := sec.ParseRole(requestutil.Field(req, "role"))
			found, err := handler.userService.Update(ctx, actor.UserID, id, UpdateInput{
				FullName: requestutil.Field(req, "full_name"),
				Username: requestutil.Field(req, "username"),
				Password: requestutil.FieldRaw(req, "password"),
				Role:     role,
			})
			if err != nil {
				return workflow.Committed, err
			}
			if !found {
				return workflow.Noop, nil
			}
			return workflow.Committed, nil
		},
		SuccessMessage: "User updated",
		NoopMessage:    "No such user exists anymore",
		SuccessPath:    "/users",
		RenderInvalid:  handler.rerenderForm("Edit user", action, true),
	})
}

// delete handles POST /users/{id}/delete.
func (handler *Handler) delete(writer http.ResponseWriter, req *http.Request) {
	actor := session.FromContext(req.Context())
	id := requestutil.ParamID(req, "id")

	handler.runner.Run(writer, req, workflow.Mutation{
		Mutate: func(ctx context.Context) (workflow.Outcome, error) {
			found, err := handler.userService.Delete(ctx, actor.UserID, id)
			if err != nil {
				return workflow.Committed, err
			}
			if !found {
				return workflow.Noop, nil
			}
			return workflow.Committed, nil
		},
		SuccessMessage: "User deleted",
		NoopMessage:    "No such user exists anymore",
		SuccessPath:    "/users",
	})
}

// showResetPassword handles GET /users/{id}/reset-password.
func (handler *Handler) showResetPassword(writer http.ResponseWriter, req *http.Request) {
	user, ok := handler.lookup(writer, req)
	if !ok {
		return
	}

	page := render.NewPage(req.Context(), handler.sessions, "Reset password")
	page.Data = struct{ User *User }{User: user}
	handler.renderer.HTML(writer, http.StatusOK, "user_reset.html", page)
}

// resetPassword handles POST /users/{id}/reset-password.
//
// The reset flow demands a longer password than the create flow and an
// explicit confirmation field.
func (handler *Handler) resetPassword(writer http.ResponseWriter, req *http.Request) {
	id := requestutil.ParamID(req, "id")
	action := fmt.Sprintf("/users/%d/reset-password", id)

	handler.runner.Run(writer, req, workflow.Mutation{
		Validate: func(req *http.Request) error {
			password := requestutil.FieldRaw(req, "password")
			validator := &validate.Validator{}
			validator.
				Required("password", password).
				MinLen("password", password, validate.ResetPasswordMinLen).
				Confirmed("password_confirm", password, requestutil.FieldRaw(req, "password_confirm"))
			return validator.Err()
		},
		Mutate: func(ctx context.Context) (workflow.Outcome, error) {
			found, err := handler.userService.ResetPassword(ctx, id, requestutil.FieldRaw(req, "password"))
			if err != nil {
				return workflow.Committed, err
			}
			if !found {
				return workflow.Noop, nil
			}
			return workflow.Committed, nil
		},
		SuccessMessage: "Password reset",
		NoopMessage:    "No such user exists anymore",
		SuccessPath:    "/users",
		RenderInvalid: func(writer http.ResponseWriter, req *http.Request, details []apperr.FieldError) {
			user, err := handler.userService.Get(req.Context(), id)
			if err != nil {
				handler.missing(writer, req)
				return
			}
			page := render.NewPage(req.Context(), handler.sessions, "Reset password")
			page.Data = struct{ User *User }{User: user}
			page.Errors = details
			handler.renderer.HTML(writer, http.StatusUnprocessableEntity, "user_reset.html", page)
		},
		FailPath: action,
	})
}

// rerenderForm builds the invalid-form re-render shared by create and edit.
func (handler *Handler) rerenderForm(title, action string, isEdit bool) func(http.ResponseWriter, *http.Request, []apperr.FieldError) {
	return func(writer http.ResponseWriter, req *http.Request, details []apperr.FieldError) {
		page := render.NewPage(req.Context(), handler.sessions, title)
		page.Data = userFormData{Action: action, Roles: sec.RoleNames(), IsEdit: isEdit}
		page.Errors = details
		page.Form = req.PostForm
		handler.renderer.HTML(writer, http.StatusUnprocessableEntity, "user_form.html", page)
	}
}

// lookup resolves the {id} route parameter into an account, flashing an
// informational notice when the target is gone.
func (handler *Handler) lookup(writer http.ResponseWriter, req *http.Request) (*User, bool) {
	id := requestutil.ParamID(req, "id")

	user, err := handler.userService.Get(req.Context(), id)
	if err != nil {
		if apperr.IsCode(err, apperr.CodeNotFound) {
			handler.missing(writer, req)
		} else {
			handler.persistenceError(writer, req, err)
		}
		return nil, false
	}

	return user, true
}

func (handler *Handler) missing(writer http.ResponseWriter, req *http.Request) {
	sess := session.FromContext(req.Context())
	respond.FlashRedirect(writer, req, handler.sessions, sess,
		session.FlashInfo, "No such user exists anymore", "/users")
}

func (handler *Handler) persistenceError(writer http.ResponseWriter, req *http.Request, err error) {
	ctxutil.GetLogger(req.Context()).ErrorContext(req.Context(), "user_page_failed", slog.Any("error", err))
	sess := session.FromContext(req.Context())
	respond.FlashRedirect(writer, req, handler.sessions, sess,
		session.FlashError, "An unexpected error occurred", "/")
}
