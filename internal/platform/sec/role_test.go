// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hfahrudin/apotek/internal/platform/sec"
)

/*
TestParseRole verifies the closed-set membership check.
*/
func TestParseRole(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		valid bool
	}{
		{"admin", "admin", true},
		{"pharmacist", "pharmacist", true},
		{"cashier", "cashier", true},
		{"customer", "customer", true},
		{"unknown", "superuser", false},
		{"empty", "", false},
		{"case_sensitive", "Admin", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, ok := sec.ParseRole(tt.raw)
			assert.Equal(t, tt.valid, ok)
			if tt.valid {
				assert.Equal(t, sec.Role(tt.raw), role)
			}
		})
	}
}

/*
TestRoleIn verifies explicit allowed-set membership, in particular that
Customer never passes a staff-only set.
*/
func TestRoleIn(t *testing.T) {
	assert.True(t, sec.RoleAdmin.In(sec.Staff()...))
	assert.True(t, sec.RoleCashier.In(sec.Staff()...))
	assert.False(t, sec.RoleCustomer.In(sec.Staff()...))

	assert.True(t, sec.RoleCustomer.In(sec.RoleCustomer, sec.RoleCashier))
	assert.False(t, sec.RolePharmacist.In(sec.RoleAdmin))
}
