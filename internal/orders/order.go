// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

// Package orders records sales.
//
// # Scope
//
// Placing an order reserves stock, prices every line from the current
// catalogue, and writes the sale and its lines in one transaction. A single
// line without enough stock rolls the entire order back.
package orders

import "time"

// Order is one recorded sale. PlacedBy is the full name of the account that
// submitted it, joined in at read time.
type Order struct {
	ID           int
	UserID       int
	CustomerName string
	Total        int
	CreatedAt    time.Time
	PlacedBy     string
}

// Line is one sale line. UnitPrice is the catalogue price captured at the
// moment of sale, so later price edits never rewrite history.
type Line struct {
	ID        int
	OrderID   int
	DrugID    int
	DrugName  string
	Quantity  int
	UnitPrice int
	Subtotal  int
}

// LineRequest is what the order form submits: a drug and a quantity. Prices
// are never accepted from the client.
type LineRequest struct {
	DrugID   int
	Quantity int
}
