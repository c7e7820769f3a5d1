// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

package schema

// SaleItemsTable represents the 'sale_items' table
type SaleItemsTable struct {
	Table     string
	ID        string
	SaleID    string
	DrugID    string
	Quantity  string
	UnitPrice string
	Subtotal  string
}

// SaleItems is the schema definition for sale_items
var SaleItems = SaleItemsTable{
	Table:     "sale_items",
	ID:        "id",
	SaleID:    "sale_id",
	DrugID:    "drug_id",
	Quantity:  "quantity",
	UnitPrice: "unit_price",
	Subtotal:  "subtotal",
}
