// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hfahrudin/apotek/internal/platform/apperr"
	"github.com/hfahrudin/apotek/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "name", "Paracetamol", false},
		{"empty_string", "name", "", true},
		{"whitespace_only", "name", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, apperr.CodeValidationFailed, ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Username checks the username length and charset rules.
*/
func TestValidator_Username(t *testing.T) {
	tests := []struct {
		name     string
		username string
		isValid  bool
	}{
		{"valid_simple", "budi", true},
		{"valid_mixed", "Budi_99", true},
		{"min_length_exact", "abc", true},
		{"too_short", "ab", false},
		{"illegal_dash", "budi-s", false},
		{"illegal_space", "budi s", false},
		{"illegal_unicode", "büdi", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Username("username", tt.username)

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_Username_TooShort asserts the exact message shown for a
two-character username on the edit form.
*/
func TestValidator_Username_TooShort(t *testing.T) {
	v := &validate.Validator{}
	v.Username("username", "ab")

	require.True(t, v.HasErrors())
	assert.Equal(t, "Must be at least 3 characters", v.Errors()[0].Message)
}

/*
TestValidator_Confirmed tests exact-match password confirmation.
*/
func TestValidator_Confirmed(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		confirmation string
		isValid      bool
	}{
		{"matching", "secret123", "secret123", true},
		{"mismatch", "secret123", "secret124", false},
		{"case_differs", "Secret123", "secret123", false},
		{"empty_confirmation", "secret123", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Confirmed("password", tt.value, tt.confirmation)

			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_PositiveInt verifies that zero is rejected: coerced
identifiers use 0 as "missing", never as a valid target.
*/
func TestValidator_PositiveInt(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		isValid bool
	}{
		{"positive", 7, true},
		{"zero_is_missing", 0, false},
		{"negative", -4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.PositiveInt("id", tt.value)

			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Accumulates verifies that every failed rule is reported
together rather than fail-fast.
*/
func TestValidator_Accumulates(t *testing.T) {
	v := &validate.Validator{}
	err := v.
		Username("username", "a!").
		MinLen("password", "pw", validate.PasswordMinLen).
		Confirmed("password", "pw", "different").
		PositiveInt("id", 0).
		Err()

	require.NotNil(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// username contributes two failures (length + charset)
	assert.Len(t, ae.Details, 5)
}

/*
TestValidator_Chain tests the fluent API on a fully valid input set.
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("full_name", "Budi Santoso").
		Username("username", "budi_s").
		OneOf("role", "cashier", "admin", "pharmacist", "cashier", "customer").
		MinLen("password", "secret123", validate.PasswordMinLen).
		Confirmed("password", "secret123", "secret123").
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}
