// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

package auth

import (
	"context"
	"log/slog"

	"github.com/hfahrudin/apotek/internal/platform/apperr"
	"github.com/hfahrudin/apotek/internal/platform/sec"
	"github.com/hfahrudin/apotek/internal/session"
)

// # Service Layer

// Service orchestrates credential verification.
type Service struct {
	accounts AccountStore
	logger   *slog.Logger
}

// NewService constructs a new [Service] with its store dependency.
func NewService(accounts AccountStore, logger *slog.Logger) *Service {
	return &Service{accounts: accounts, logger: logger}
}

// invalidCredentials builds the single permitted failure response for a
// rejected login. Unknown username and wrong password produce the exact same
// value so the form never reveals which half was wrong.
func invalidCredentials() error {
	return apperr.ValidationFailed(apperr.FieldError{
		Field:   "credentials",
		Message: "Invalid username or password",
	})
}

/*
Login verifies a username/password pair against the stored bcrypt digest.

Description: The username is matched case-sensitively. Both the
unknown-username and wrong-password paths collapse into one generic
rejection.

Parameters:
  - ctx: context.Context
  - username: string
  - password: string

Returns:
  - *session.Principal: The authenticated identity, ready to bind to a session
  - error: The generic credential rejection, or persistence failures
*/
func (service *Service) Login(ctx context.Context, username, password string) (*session.Principal, error) {
	account, err := service.accounts.FindByUsername(ctx, username)
	if err != nil {
		if apperr.IsCode(err, apperr.CodeNotFound) {
			service.logger.InfoContext(ctx, "login_rejected",
				slog.String("username", username),
				slog.String("reason", "unknown_username"),
			)
			return nil, invalidCredentials()
		}
		return nil, err
	}

	if !sec.CheckPasswordHash(password, account.PasswordHash) {
		service.logger.InfoContext(ctx, "login_rejected",
			slog.String("username", username),
			slog.String("reason", "password_mismatch"),
		)
		return nil, invalidCredentials()
	}

	service.logger.InfoContext(ctx, "login_succeeded",
		slog.Int("user_id", account.ID),
		slog.String("role", string(account.Role)),
	)

	return &session.Principal{
		ID:       account.ID,
		Username: account.Username,
		FullName: account.FullName,
		Role:     account.Role,
	}, nil
}
