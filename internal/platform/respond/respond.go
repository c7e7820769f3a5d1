// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

// Package respond provides HTTP response helpers used by all page handlers.
//
// # Architecture
//
// This package centralizes the outcome side of the post-redirect-get
// pattern: every state-changing POST terminates here, in a redirect that
// optionally carries a one-shot flash. Refreshing the landing page can then
// never re-submit the mutation.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/hfahrudin/apotek/internal/session"
)

// Redirect issues the 303 See Other that terminates a POST, forcing the
// browser to re-request the target with GET.
func Redirect(writer http.ResponseWriter, request *http.Request, location string) {
	http.Redirect(writer, request, location, http.StatusSeeOther)
}

// FlashRedirect records a one-shot flash on the session and then redirects.
//
// The flash is cleared by its first read on the landing page.
func FlashRedirect(
	writer http.ResponseWriter,
	request *http.Request,
	manager *session.Manager,
	sess *session.Session,
	status session.FlashStatus,
	message string,
	location string,
) {
	manager.PutFlash(request.Context(), sess, status, message)
	Redirect(writer, request, location)
}

// JSON writes a JSON response with the given status code.
//
// Only the health and readiness probes use this; every user-facing page is
// rendered HTML or a redirect.
func JSON(writer http.ResponseWriter, statusCode int, payload interface{}) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}
