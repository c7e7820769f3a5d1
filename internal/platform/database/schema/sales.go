// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

package schema

// SalesTable represents the 'sales' table
type SalesTable struct {
	Table        string
	ID           string
	UserID       string
	CustomerName string
	Total        string
	CreatedAt    string
}

// Sales is the schema definition for sales
var Sales = SalesTable{
	Table:        "sales",
	ID:           "id",
	UserID:       "user_id",
	CustomerName: "customer_name",
	Total:        "total",
	CreatedAt:    "created_at",
}
