// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

/*
Package session implements the server-side browser session: the store of
record for the authenticated principal, the one-shot CSRF token, and the
one-shot flash message delivered across redirects.

Architecture:

  - Session: An explicit value passed through the request context, never
    ambient global state.
  - Store: Abstracted interface with Redis (production) and in-memory (tests
    and development) implementations.
  - Manager: Cookie handling and session lifecycle (create, renew, destroy).

Lifecycle: a session is created at first contact, renewed (new ID) at login,
mutated by flash-setting redirects, and destroyed at logout or expiry.
*/
package session

import (
	"github.com/hfahrudin/apotek/internal/platform/sec"
)

// # Flash Messages

// FlashStatus classifies the outcome a flash message reports.
type FlashStatus string

const (
	// FlashSuccess marks a committed mutation.
	FlashSuccess FlashStatus = "success"

	// FlashError marks a rejected or failed mutation.
	FlashError FlashStatus = "error"

	// FlashInfo marks a no-op outcome ("nothing changed", "target not found"),
	// distinct from both success and error.
	FlashInfo FlashStatus = "info"
)

// Flash is a one-shot message+status delivered across a redirect and cleared
// after its first read.
type Flash struct {
	Message string      `json:"message"`
	Status  FlashStatus `json:"status"`
}

// # Principal

// Principal is the authenticated actor associated with a session.
type Principal struct {
	ID       int
	Username string
	FullName string
	Role     sec.Role
}

// # Session

// Session is the per-browser session document.
//
// The CSRF token and flash message are deliberately NOT fields here: they are
// one-shot values held under sibling store keys so that consuming them is a
// single atomic store operation, never a read-modify-write of this document.
type Session struct {
	// ID is the opaque identifier carried by the browser cookie.
	ID string `json:"-"`

	UserID   int      `json:"user_id,omitempty"`
	Username string   `json:"username,omitempty"`
	FullName string   `json:"full_name,omitempty"`
	Role     sec.Role `json:"role,omitempty"`
}

// IsAuthenticated reports whether a principal is bound to the session.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.UserID != 0
}

// Principal resolves the authenticated principal out of the session, or nil
// for anonymous sessions. It never touches the database; post-login, the
// session is the source of truth for identity.
func (s *Session) Principal() *Principal {
	if !s.IsAuthenticated() {
		return nil
	}
	return &Principal{
		ID:       s.UserID,
		Username: s.Username,
		FullName: s.FullName,
		Role:     s.Role,
	}
}

// Bind attaches a principal to the session at login.
func (s *Session) Bind(p Principal) {
	s.UserID = p.ID
	s.Username = p.Username
	s.FullName = p.FullName
	s.Role = p.Role
}
