// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

package users

import (
	"context"
	"log/slog"

	"github.com/hfahrudin/apotek/internal/platform/apperr"
	"github.com/hfahrudin/apotek/internal/platform/sec"
)

// # Service Layer

// Service orchestrates account administration.
//
// It owns the self-protection rules and the pre-check that keeps username
// collisions inside the accumulated validation response instead of
// surfacing as raw constraint failures.
type Service struct {
	store  Store
	logger *slog.Logger
}

// NewService constructs a new [Service] with its store dependency.
func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// List returns every account for the administration index.
func (service *Service) List(ctx context.Context) ([]User, error) {
	return service.store.List(ctx)
}

// Get returns a single account for the edit and reset-password forms.
func (service *Service) Get(ctx context.Context, id int) (*User, error) {
	return service.store.FindByID(ctx, id)
}

// usernameAvailable turns a taken username into an accumulated field error
// so it renders next to the input like any other validation failure.
func (service *Service) usernameAvailable(ctx context.Context, username string, excludeID int) error {
	taken, err := service.store.UsernameTaken(ctx, username, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return apperr.ValidationFailed(apperr.FieldError{
			Field:   "username",
			Message: "This username is already taken",
		})
	}
	return nil
}

// CreateInput carries the already-validated fields for a new account.
type CreateInput struct {
	FullName string
	Username string
	Password string
	Role     sec.Role
}

/*
Create provisions a new account.

Description: Availability of the username is checked first with an exact,
case-sensitive match; the unique index on the column remains as the backstop
for concurrent submissions.

Parameters:
  - ctx: context.Context
  - input: CreateInput

Returns:
  - *User: The stored account with its assigned identifier
  - error: Validation, uniqueness, or persistence failures
*/
func (service *Service) Create(ctx context.Context, input CreateInput) (*User, error) {
	if err := service.usernameAvailable(ctx, input.Username, 0); err != nil {
		return nil, err
	}

	hash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.PersistenceFailure(err)
	}

	user := &User{
		FullName: input.FullName,
		Username: input.Username,
		Role:     input.Role,
	}
	if err := service.store.Create(ctx, user, hash); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "user_created",
		slog.Int("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)

	return user, nil
}

// UpdateInput carries the editable fields of an account. Password is
// optional; empty keeps the current credential.
type UpdateInput struct {
	FullName string
	Username string
	Password string
	Role     sec.Role
}

/*
Update rewrites an account's profile, optionally rotating its password.

Description: When the actor edits their own account, a role change is
refused outright; nothing is written. A target that disappeared between
render and submit reports found=false rather than an error.

Parameters:
  - ctx: context.Context
  - actorID: int, the signed-in administrator performing the edit
  - id: int, the account being edited
  - input: UpdateInput

Returns:
  - bool: Whether a row was actually updated
  - error: Self-demotion, validation, uniqueness, or persistence failures
*/
func (service *Service) Update(ctx context.Context, actorID, id int, input UpdateInput) (bool, error) {
	current, err := service.store.FindByID(ctx, id)
	if err != nil {
		if apperr.IsCode(err, apperr.CodeNotFound) {
			return false, nil
		}
		return false, err
	}

	if actorID == id && input.Role != current.Role {
		service.logger.WarnContext(ctx, "self_demotion_blocked",
			slog.Int("user_id", actorID),
			slog.String("requested_role", string(input.Role)),
		)
		return false, apperr.SelfActionBlocked("You cannot change your own role")
	}

	if input.Username != current.Username {
		if err := service.usernameAvailable(ctx, input.Username, id); err != nil {
			return false, err
		}
	}

	hash := ""
	if input.Password != "" {
		hash, err = sec.HashPassword(input.Password)
		if err != nil {
			return false, apperr.PersistenceFailure(err)
		}
	}

	current.FullName = input.FullName
	current.Username = input.Username
	current.Role = input.Role

	affected, err := service.store.Update(ctx, current, hash)
	if err != nil {
		return false, err
	}

	service.logger.InfoContext(ctx, "user_updated",
		slog.Int("user_id", id),
		slog.Bool("password_rotated", hash != ""),
	)

	return affected > 0, nil
}

/*
ResetPassword replaces an account's credential with a freshly hashed one.

Parameters:
  - ctx: context.Context
  - id: int
  - password: string, already validated against the reset-flow minimum

Returns:
  - bool: Whether a row was actually updated
  - error: Hashing or persistence failures
*/
func (service *Service) ResetPassword(ctx context.Context, id int, password string) (bool, error) {
	hash, err := sec.HashPassword(password)
	if err != nil {
		return false, apperr.PersistenceFailure(err)
	}

	affected, err := service.store.UpdatePassword(ctx, id, hash)
	if err != nil {
		return false, err
	}

	if affected > 0 {
		service.logger.InfoContext(ctx, "password_reset", slog.Int("user_id", id))
	}

	return affected > 0, nil
}

/*
Delete removes an account.

Description: The actor's own account is off limits; the delete is refused
before any write. A target already gone reports found=false.

Parameters:
  - ctx: context.Context
  - actorID: int, the signed-in administrator
  - id: int, the account to remove

Returns:
  - bool: Whether a row was actually deleted
  - error: Self-deletion or persistence failures
*/
func (service *Service) Delete(ctx context.Context, actorID, id int) (bool, error) {
	if actorID == id {
		service.logger.WarnContext(ctx, "self_deletion_blocked", slog.Int("user_id", actorID))
		return false, apperr.SelfActionBlocked("You cannot delete your own account")
	}

	affected, err := service.store.Delete(ctx, id)
	if err != nil {
		return false, err
	}

	if affected > 0 {
		service.logger.InfoContext(ctx, "user_deleted", slog.Int("user_id", id))
	}

	return affected > 0, nil
}
