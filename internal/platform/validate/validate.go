// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// This package is used exclusively in the service layer, never in handlers or
// storage. Errors are accumulated, not fail-fast, so the user sees every
// problem with a form in one round-trip.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/hfahrudin/apotek/internal/platform/apperr"
)

var (
	// usernameRegex matches the accepted username charset: letters, digits, underscore.
	usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
)

// Minimum lengths actually enforced by the system.
const (
	// UsernameMinLen is the minimum username length.
	UsernameMinLen = 3

	// PasswordMinLen applies to create/edit flows where a password is supplied.
	PasswordMinLen = 6

	// ResetPasswordMinLen applies to the dedicated reset-password flow.
	ResetPasswordMinLen = 8
)

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "This field is required")
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("Maximum %d characters", max))
	}
	return v
}

// MinLen fails if the Unicode character count is below min.
func (v *Validator) MinLen(field, value string, min int) *Validator {
	if utf8.RuneCountInString(value) < min {
		v.add(field, fmt.Sprintf("Must be at least %d characters", min))
	}
	return v
}

// Username fails unless the value is at least [UsernameMinLen] characters of
// the accepted charset (letters, digits, underscore).
func (v *Validator) Username(field, value string) *Validator {
	if utf8.RuneCountInString(value) < UsernameMinLen {
		v.add(field, fmt.Sprintf("Must be at least %d characters", UsernameMinLen))
	}
	if value != "" && !usernameRegex.MatchString(value) {
		v.add(field, "Only letters, digits, and underscores are allowed")
	}
	return v
}

// Confirmed fails unless the confirmation value exactly equals the original.
func (v *Validator) Confirmed(field, value, confirmation string) *Validator {
	if value != confirmation {
		v.add(field, "Confirmation does not match")
	}
	return v
}

// PositiveInt fails unless the value is strictly greater than zero.
//
// Identifier fields coerce to 0 on missing/malformed input, so this rule also
// rejects every "missing target" case.
func (v *Validator) PositiveInt(field string, value int) *Validator {
	if value <= 0 {
		v.add(field, "Must be a positive number")
	}
	return v
}

// OneOf fails if the value is not in the allowed set of strings.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.add(field, fmt.Sprintf("Must be one of: %s", strings.Join(allowed, ", ")))
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
// # Example
//
//	v.Custom("quantity", qty < 1, "Must order at least one unit")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns a [apperr.AppError] (VALIDATION_FAILED) if any rules failed,
// or nil if all rules passed.
//
// This is the only output method; call it at the end of the chain.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationFailed(v.errs...)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// Errors returns the accumulated field errors in rule order.
func (v *Validator) Errors() []apperr.FieldError {
	return v.errs
}

// add appends a [apperr.FieldError] to the internal slice.
func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}
