// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and the
form-field coercion rules shared by every page, ensuring consistent error
handling and type safety.
*/
package requestutil

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hfahrudin/apotek/pkg/convert"
)

/*
ParamID retrieves a named URL parameter coerced to an integer identifier.

Description: Missing or malformed values coerce to 0, which the whole system
treats as "missing target"; 0 is never a valid identifier.
*/
func ParamID(request *http.Request, name string) int {
	return convert.ToInt(chi.URLParam(request, name))
}

/*
Field retrieves a trimmed form field from a parsed POST body.
*/
func Field(request *http.Request, name string) string {
	return strings.TrimSpace(request.PostFormValue(name))
}

/*
FieldRaw retrieves a form field without trimming.

Passwords go through this accessor: surrounding whitespace is significant
and must survive to the hash.
*/
func FieldRaw(request *http.Request, name string) string {
	return request.PostFormValue(name)
}
