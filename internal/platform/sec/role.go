// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

package sec

// # User Roles

// Role represents the authorization level granted to an account.
//
// The set is closed: every principal carries exactly one of the four values
// below, and pages declare an explicit allowed set per operation rather than
// a hierarchy.
type Role string

const (
	// Unrestricted system access, including user management
	RoleAdmin Role = "admin"

	// Manages the drug inventory and views orders
	RolePharmacist Role = "pharmacist"

	// Places orders at the counter and views order details
	RoleCashier Role = "cashier"

	// Self-service account; never permitted on staff-only pages
	RoleCustomer Role = "customer"
)

// # Role Sets

// ParseRole maps a raw string to a [Role]. The boolean reports whether the
// value is a member of the closed set.
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleAdmin, RolePharmacist, RoleCashier, RoleCustomer:
		return Role(raw), true
	default:
		return "", false
	}
}

// In reports whether the role is a member of the given allowed set.
func (r Role) In(allowed ...Role) bool {
	for _, candidate := range allowed {
		if r == candidate {
			return true
		}
	}
	return false
}

// IsStaff reports whether the role belongs to pharmacy personnel.
func (r Role) IsStaff() bool {
	return r.In(RoleAdmin, RolePharmacist, RoleCashier)
}

// Staff returns the allowed set shared by all personnel-facing pages.
func Staff() []Role {
	return []Role{RoleAdmin, RolePharmacist, RoleCashier}
}

// RoleNames returns the raw string values accepted by role form fields.
func RoleNames() []string {
	return []string{
		string(RoleAdmin),
		string(RolePharmacist),
		string(RoleCashier),
		string(RoleCustomer),
	}
}
