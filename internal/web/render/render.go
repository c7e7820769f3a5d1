// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

/*
Package render is the presentation collaborator: it receives {principal,
form errors, flash, entity data} from the page handlers and produces HTML.

The core never formats HTML itself beyond choosing which flash
status/message to hand over; everything visual lives in the embedded
templates.
*/
package render

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/hfahrudin/apotek/internal/platform/apperr"
	"github.com/hfahrudin/apotek/internal/platform/ctxutil"
	"github.com/hfahrudin/apotek/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// pages lists every content template paired with the shared layout.
var pages = []string{
	"login.html",
	"drugs_list.html",
	"drug_form.html",
	"users_list.html",
	"user_form.html",
	"user_reset.html",
	"orders_list.html",
	"order_form.html",
	"order_detail.html",
}

// Page is the full payload a template receives.
type Page struct {
	Title     string
	Principal *session.Principal
	Flash     *session.Flash
	Csrf      string
	Errors    []apperr.FieldError
	Form      url.Values
	Data      any
}

// FieldValue returns the previously submitted value for a field so invalid
// forms re-render with prior input preserved.
func (p Page) FieldValue(name string) string {
	if p.Form == nil {
		return ""
	}
	return p.Form.Get(name)
}

// NewPage assembles the cross-cutting page state: the signed-in principal,
// the one-shot flash, and a fresh CSRF token for whichever form the page
// renders. Issuing the token here means every rendered page invalidates any
// earlier pending token for the session.
func NewPage(ctx context.Context, sessions *session.Manager, title string) Page {
	page := Page{Title: title}

	sess := session.FromContext(ctx)
	if sess == nil {
		return page
	}

	page.Principal = sess.Principal()
	page.Flash = sessions.TakeFlash(ctx, sess)

	token, err := session.IssueToken(ctx, sessions.Store(), sess)
	if err != nil {
		ctxutil.GetLogger(ctx).ErrorContext(ctx, "csrf_issue_failed", slog.Any("error", err))
		return page
	}
	page.Csrf = token

	return page
}

// FieldError returns the accumulated message for one field, empty when the
// field passed validation.
func (p Page) FieldError(name string) string {
	for _, detail := range p.Errors {
		if detail.Field == name {
			return detail.Message
		}
	}
	return ""
}

// Renderer holds the parsed template set.
type Renderer struct {
	templates map[string]*template.Template
	logger    *slog.Logger
}

// New parses the embedded templates once at startup.
func New(logger *slog.Logger) (*Renderer, error) {
	templates := make(map[string]*template.Template, len(pages))

	for _, page := range pages {
		parsed, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("render: failed to parse %s: %w", page, err)
		}
		templates[page] = parsed
	}

	return &Renderer{templates: templates, logger: logger}, nil
}

// HTML renders the named page template into the response.
//
// The page is buffered so a template failure mid-render produces a clean
// 500 instead of a half-written document.
func (renderer *Renderer) HTML(writer http.ResponseWriter, status int, name string, page Page) {
	parsed, found := renderer.templates[name]
	if !found {
		renderer.logger.Error("render_unknown_template", slog.String("template", name))
		http.Error(writer, "An unexpected error occurred", http.StatusInternalServerError)
		return
	}

	buffer := &bytes.Buffer{}
	if err := parsed.ExecuteTemplate(buffer, "layout", page); err != nil {
		renderer.logger.Error("render_failed",
			slog.String("template", name),
			slog.Any("error", err),
		)
		http.Error(writer, "An unexpected error occurred", http.StatusInternalServerError)
		return
	}

	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	writer.WriteHeader(status)
	_, _ = buffer.WriteTo(writer)
}
