// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

/*
Package apperr defines the centralized error taxonomy for Apotek.

It provides a rich error type that bridges the gap between low-level
storage/session errors and the flash-message redirects every page resolves to.

Architecture:

  - AppError: A struct containing machine-readable ErrorCode and user-friendly messages.
  - Taxonomy: A closed set of constructors (authentication, authorization, CSRF,
    validation, not-found, constraint, persistence, self-action) for every
    failure class the pages can surface.
  - Mapping: The workflow layer maps each code onto a flash status and redirect.

Every error that leaves a service should be wrapped as an [AppError] to ensure
the user only ever sees a safe, actionable message.
*/
package apperr

import "errors"

// # Error Codes

// Machine-readable identifiers for every failure class in the system.
const (
	CodeAuthRequired        = "AUTH_REQUIRED"
	CodeForbidden           = "FORBIDDEN"
	CodeCsrfRejected        = "CSRF_REJECTED"
	CodeValidationFailed    = "VALIDATION_FAILED"
	CodeNotFound            = "NOT_FOUND"
	CodeConstraintViolation = "CONSTRAINT_VIOLATION"
	CodePersistenceFailure  = "PERSISTENCE_FAILURE"
	CodeSelfActionBlocked   = "SELF_ACTION_BLOCKED"
)

// AppError is the canonical error type for the Apotek application.
//
// It carries a machine-readable code, a client-safe message, and an optional
// slice of field-level validation errors.
//
// # Security
//
// The Cause field is for server-side logging only and is never rendered to
// users to avoid leaking internal detail (e.g., SQL constraint names).
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "CSRF_REJECTED").
	Code string
	// Message is a human-readable description safe to show the user.
	Message string
	// Cause is the underlying error, used for server-side logging only.
	Cause error
	// Details holds per-field validation errors for VALIDATION_FAILED.
	Details []FieldError
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the form field name that failed validation.
	Field string
	// Message is the human-readable description of the failure.
	Message string
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Authentication & Authorization

// AuthenticationRequired creates the error raised for anonymous access to a
// protected page. The authorization gate resolves it to a login redirect
// with an informational flash.
func AuthenticationRequired() *AppError {
	return &AppError{
		Code:    CodeAuthRequired,
		Message: "Please sign in to continue",
	}
}

// AuthorizationDenied creates the error raised when an authenticated
// principal's role is outside the allowed set for a page. The authorization
// gate flashes its message and audit-logs its code.
func AuthorizationDenied(msg string) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: msg,
	}
}

// CsrfRejected creates the error raised when a submitted CSRF token is
// missing, already consumed, or does not match the session's pending token.
//
// The message is deliberately generic: it must not reveal which of the
// three cases occurred.
func CsrfRejected() *AppError {
	return &AppError{
		Code:    CodeCsrfRejected,
		Message: "The form has expired. Please try again.",
	}
}

// SelfActionBlocked creates the error raised when a principal attempts to
// delete or demote its own account.
func SelfActionBlocked(msg string) *AppError {
	return &AppError{
		Code:    CodeSelfActionBlocked,
		Message: msg,
	}
}

// # Input & Lookup Failures

// ValidationFailed creates the error carrying the full accumulated list of
// field failures, never just the first one.
func ValidationFailed(details ...FieldError) *AppError {
	return &AppError{
		Code:    CodeValidationFailed,
		Message: "Please correct the errors below",
		Details: details,
	}
}

// NotFound creates the error raised when the mutation target id does not
// exist. The workflow resolves it to an info flash, not a crash.
func NotFound(resource string) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: resource + " not found",
	}
}

// # Persistence Failures

// ConstraintViolation creates the error raised when the store rejects a
// mutation due to a relational constraint (e.g. deleting a drug that sale
// items still reference). The message explains the dependency in user terms;
// the raw database error travels only in Cause.
func ConstraintViolation(msg string, cause error) *AppError {
	return &AppError{
		Code:    CodeConstraintViolation,
		Message: msg,
		Cause:   cause,
	}
}

// PersistenceFailure creates the error wrapping an unexpected store error.
// The cause is stored for logging but is never shown to the user.
func PersistenceFailure(cause error) *AppError {
	return &AppError{
		Code:    CodePersistenceFailure,
		Message: "Something went wrong. Please try again.",
		Cause:   cause,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// IsCode reports whether err carries the given taxonomy code.
func IsCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}
