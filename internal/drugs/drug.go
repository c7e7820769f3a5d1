// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

// Package drugs manages the pharmacy inventory catalogue.
//
// # Scope
//
// Listing with pagination, creation, edits, and deletion. A drug referenced
// by a recorded sale can never be deleted; the relational constraint is
// surfaced as a safe, explanatory message instead of a raw database error.
package drugs

import "time"

// Drug is one inventory line. Price is stored in whole rupiah.
type Drug struct {
	ID        int
	Name      string
	Category  string
	Unit      string
	Price     int
	Stock     int
	CreatedAt time.Time
	UpdatedAt time.Time
}
