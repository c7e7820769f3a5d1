// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

package schema

// DrugsTable represents the 'drugs' table
type DrugsTable struct {
	Table     string
	ID        string
	Name      string
	Category  string
	Unit      string
	Price     string
	Stock     string
	CreatedAt string
	UpdatedAt string
}

// Drugs is the schema definition for drugs
var Drugs = DrugsTable{
	Table:     "drugs",
	ID:        "id",
	Name:      "name",
	Category:  "category",
	Unit:      "unit",
	Price:     "price",
	Stock:     "stock",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}
