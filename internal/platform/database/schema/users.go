// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

// Package schema centralizes table and column names so queries never carry
// hand-typed identifiers.
package schema

// UsersTable represents the 'users' table
type UsersTable struct {
	Table        string
	ID           string
	FullName     string
	Username     string
	PasswordHash string
	Role         string
	CreatedAt    string
	UpdatedAt    string
}

// Users is the schema definition for users
var Users = UsersTable{
	Table:        "users",
	ID:           "id",
	FullName:     "full_name",
	Username:     "username",
	PasswordHash: "password_hash",
	Role:         "role",
	CreatedAt:    "created_at",
	UpdatedAt:    "updated_at",
}
