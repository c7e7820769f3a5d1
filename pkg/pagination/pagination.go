// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

// Package pagination provides shared types and helpers for list pages.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query
// parameters and how the resulting metadata is handed to templates.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 20
	// MaxLimit is the upper bound for items per page to prevent system abuse.
	MaxLimit = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// Params holds the parsed page and limit from a request's query string.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the SQL OFFSET value derived from [Page] and [Limit].
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta is the navigation state a list template renders.
type Meta struct {
	Page       int
	Limit      int
	Total      int
	TotalPages int
}

// HasPrev reports whether an earlier page exists.
func (m Meta) HasPrev() bool { return m.Page > 1 }

// HasNext reports whether a later page exists.
func (m Meta) HasNext() bool { return m.Page < m.TotalPages }

// PrevPage returns the previous page number, clamped at the first page.
func (m Meta) PrevPage() int {
	if m.Page <= 1 {
		return 1
	}
	return m.Page - 1
}

// NextPage returns the next page number, clamped at the last page.
func (m Meta) NextPage() int {
	if m.Page >= m.TotalPages {
		return m.TotalPages
	}
	return m.Page + 1
}

// NewMeta constructs pagination metadata for a list page.
//
// It automatically calculates the TotalPages based on the total count and limit.
func NewMeta(page, limit, total int) Meta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// FromRequest parses "page" and "limit" query parameters from an HTTP request.
//
// # Clamping
//
// Invalid, negative, or excessive values are automatically clamped to
// [DefaultPage], [DefaultLimit], or [MaxLimit].
func FromRequest(r *http.Request) Params {
	page := parseIntParam(r, "page", DefaultPage)
	limit := parseIntParam(r, "limit", DefaultLimit)

	if page < 1 {
		page = DefaultPage
	}

	if limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}

	return Params{Page: page, Limit: limit}
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}

	return n
}
