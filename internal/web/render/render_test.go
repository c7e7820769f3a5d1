// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

package render

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hfahrudin/apotek/internal/platform/sec"
	"github.com/hfahrudin/apotek/internal/session"
	"github.com/hfahrudin/apotek/pkg/pagination"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// Row shapes mirroring what the page handlers put into Page.Data. The
// templates resolve fields by name, so these stay in sync with the real
// entities through the field names alone.
type drugRow struct {
	ID       int
	Name     string
	Category string
	Unit     string
	Price    int
	Stock    int
}

type userRow struct {
	ID       int
	FullName string
	Username string
	Role     sec.Role
}

type orderRow struct {
	ID           int
	CustomerName string
	PlacedBy     string
	Total        int
	CreatedAt    time.Time
}

type lineRow struct {
	DrugName  string
	Quantity  int
	UnitPrice int
	Subtotal  int
}

/*
TestNew_ParsesEveryPage verifies the embedded template set parses. A parse
error here is startup-fatal in main, so this is the first line of defense
against a malformed template reaching a deploy.
*/
func TestNew_ParsesEveryPage(t *testing.T) {
	_, err := New(testLogger())
	require.NoError(t, err)
}

/*
TestHTML_RendersEveryPage executes each page template against the shared
layout with a representative payload, with a signed-in principal and a
pending flash so the navigation and flash branches run too. An execution
failure surfaces as a 500 from the buffered renderer, so asserting the
passed-through status catches unbalanced blocks and renamed fields alike.
*/
func TestHTML_RendersEveryPage(t *testing.T) {
	renderer, err := New(testLogger())
	require.NoError(t, err)

	catalogue := []drugRow{
		{ID: 1, Name: "Paracetamol", Category: "Analgesic", Unit: "strip", Price: 12000, Stock: 30},
		{ID: 2, Name: "Amoxicillin", Category: "Antibiotic", Unit: "box", Price: 45000, Stock: 8},
	}
	placed := orderRow{
		ID:           7,
		CustomerName: "Budi",
		PlacedBy:     "Citra Lestari",
		Total:        69000,
		CreatedAt:    time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}

	payloads := map[string]any{
		"login.html": nil,
		"drugs_list.html": struct {
			Drugs []drugRow
			Meta  pagination.Meta
		}{Drugs: catalogue, Meta: pagination.NewMeta(2, 20, 45)},
		"drug_form.html": struct{ Action string }{Action: "/drugs"},
		"users_list.html": struct{ Users []userRow }{Users: []userRow{
			{ID: 1, FullName: "Citra Lestari", Username: "citra", Role: sec.RoleAdmin},
		}},
		"user_form.html": struct {
			Action string
			Roles  []string
			IsEdit bool
		}{Action: "/users", Roles: sec.RoleNames(), IsEdit: true},
		"user_reset.html": struct{ User userRow }{User: userRow{ID: 1, FullName: "Citra Lestari"}},
		"orders_list.html": struct{ Orders []orderRow }{Orders: []orderRow{placed}},
		"order_form.html":  struct{ Drugs []drugRow }{Drugs: catalogue},
		"order_detail.html": struct {
			Order orderRow
			Items []lineRow
		}{Order: placed, Items: []lineRow{
			{DrugName: "Paracetamol", Quantity: 2, UnitPrice: 12000, Subtotal: 24000},
			{DrugName: "Amoxicillin", Quantity: 1, UnitPrice: 45000, Subtotal: 45000},
		}},
	}

	for _, name := range pages {
		t.Run(name, func(t *testing.T) {
			payload, found := payloads[name]
			require.True(t, found, "every page needs a representative payload in this test")

			page := Page{
				Title: "Apotek",
				Principal: &session.Principal{
					ID: 1, Username: "citra", FullName: "Citra Lestari", Role: sec.RoleAdmin,
				},
				Flash: &session.Flash{Message: "Saved", Status: session.FlashSuccess},
				Csrf:  "test-token",
				Form:  url.Values{},
				Data:  payload,
			}

			recorder := httptest.NewRecorder()
			renderer.HTML(recorder, http.StatusOK, name, page)

			require.Equal(t, http.StatusOK, recorder.Code, "template must execute cleanly")
			assert.Contains(t, recorder.Body.String(), "</html>")
			assert.Contains(t, recorder.Body.String(), "test-token")
		})
	}
}
