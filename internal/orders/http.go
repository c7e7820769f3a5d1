// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

package orders

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hfahrudin/apotek/internal/drugs"
	"github.com/hfahrudin/apotek/internal/platform/apperr"
	"github.com/hfahrudin/apotek/internal/platform/ctxutil"
	"github.com/hfahrudin/apotek/internal/platform/request"
	"github.com/hfahrudin/apotek/internal/platform/respond"
	"github.com/hfahrudin/apotek/internal/platform/sec"
	"github.com/hfahrudin/apotek/internal/platform/validate"
	"github.com/hfahrudin/apotek/internal/session"
	"github.com/hfahrudin/apotek/internal/web/render"
	"github.com/hfahrudin/apotek/internal/workflow"
)

// qtyFieldPrefix names the per-drug quantity inputs on the order form.
const qtyFieldPrefix = "qty_"

// Handler implements the order pages. Mounted behind a gate that admits all
// staff plus customers; row-level scoping happens in the service.
type Handler struct {
	orderService *Service
	drugService  *drugs.Service
	sessions     *session.Manager
	runner       *workflow.Runner
	renderer     *render.Renderer
}

// NewHandler constructs a new [Handler] with its collaborators.
func NewHandler(
	service *Service,
	drugService *drugs.Service,
	sessions *session.Manager,
	runner *workflow.Runner,
	renderer *render.Renderer,
) *Handler {
	return &Handler{
		orderService: service,
		drugService:  drugService,
		sessions:     sessions,
		runner:       runner,
		renderer:     renderer,
	}
}

// Register attaches the order routes.
//
// # Endpoints
//   - GET  /      : Order index, scoped by role.
//   - GET  /new   : Order form with the full catalogue.
//   - POST /      : Place an order.
//   - GET  /{id}  : Order detail with its lines.
func (handler *Handler) Register(router chi.Router) {
	router.Get("/", handler.list)
	router.Get("/new", handler.showCreate)
	router.Post("/", handler.place)
	router.Get("/{id}", handler.detail)
}

// list handles GET /orders.
func (handler *Handler) list(writer http.ResponseWriter, req *http.Request) {
	sess := session.FromContext(req.Context())

	sales, err := handler.orderService.List(req.Context(), sess.Principal())
	if err != nil {
		handler.persistenceError(writer, req, err)
		return
	}

	page := render.NewPage(req.Context(), handler.sessions, "Orders")
	page.Data = struct{ Orders []Order }{Orders: sales}
	handler.renderer.HTML(writer, http.StatusOK, "orders_list.html", page)
}

// showCreate handles GET /orders/new.
func (handler *Handler) showCreate(writer http.ResponseWriter, req *http.Request) {
	page, ok := handler.buildFormPage(writer, req)
	if !ok {
		return
	}

	sess := session.FromContext(req.Context())
	if sess.Role == sec.RoleCustomer {
		page.Form.Set("customer_name", sess.FullName)
	}

	handler.renderer.HTML(writer, http.StatusOK, "order_form.html", page)
}

// place handles POST /orders.
func (handler *Handler) place(writer http.ResponseWriter, req *http.Request) {
	sess := session.FromContext(req.Context())

	handler.runner.Run(writer, req, workflow.Mutation{
		Validate: func(req *http.Request) error {
			validator := &validate.Validator{}
			validator.
				Required("customer_name", requestutil.Field(req, "customer_name")).
				MaxLen("customer_name", requestutil.Field(req, "customer_name"), 100)

			requests, lineErrors := parseLines(req)
			for _, detail := range lineErrors {
				validator.Custom(detail.Field, true, detail.Message)
			}
			if len(lineErrors) == 0 && len(requests) == 0 {
				validator.Custom("items", true, "Select at least one drug")
			}

			return validator.Err()
		},
		Mutate: func(ctx context.Context) (workflow.Outcome, error) {
			requests, _ := parseLines(req)
			_, err := handler.orderService.Place(
				ctx,
				sess.Principal(),
				requestutil.Field(req, "customer_name"),
				requests,
			)
			return workflow.Committed, err
		},
		SuccessMessage: "Order recorded",
		SuccessPath:    "/orders",
		FailPath:       "/orders/new",
		RenderInvalid: func(writer http.ResponseWriter, req *http.Request, details []apperr.FieldError) {
			page, ok := handler.buildFormPage(writer, req)
			if !ok {
				return
			}
			page.Errors = details
			for field, values := range req.PostForm {
				if len(values) > 0 {
					page.Form.Set(field, values[0])
				}
			}
			handler.renderer.HTML(writer, http.StatusUnprocessableEntity, "order_form.html", page)
		},
	})
}

// detail handles GET /orders/{id}.
func (handler *Handler) detail(writer http.ResponseWriter, req *http.Request) {
	sess := session.FromContext(req.Context())
	id := requestutil.ParamID(req, "id")

	order, lines, err := handler.orderService.Get(req.Context(), sess.Principal(), id)
	if err != nil {
		if apperr.IsCode(err, apperr.CodeNotFound) {
			respond.FlashRedirect(writer, req, handler.sessions, sess,
				session.FlashInfo, "No such order exists", "/orders")
		} else {
			handler.persistenceError(writer, req, err)
		}
		return
	}

	page := render.NewPage(req.Context(), handler.sessions, "Order detail")
	page.Data = struct {
		Order *Order
		Items []Line
	}{Order: order, Items: lines}
	handler.renderer.HTML(writer, http.StatusOK, "order_detail.html", page)
}

// parseLines extracts the per-drug quantity inputs. Empty and zero
// quantities mean "not ordered"; malformed or negative ones are reported
// against the items field.
func parseLines(req *http.Request) ([]LineRequest, []apperr.FieldError) {
	requests := []LineRequest{}
	details := []apperr.FieldError{}

	fields := make([]string, 0, len(req.PostForm))
	for field := range req.PostForm {
		if strings.HasPrefix(field, qtyFieldPrefix) {
			fields = append(fields, field)
		}
	}
	sort.Strings(fields)

	for _, field := range fields {
		raw := strings.TrimSpace(req.PostForm.Get(field))
		if raw == "" || raw == "0" {
			continue
		}

		drugID, err := strconv.Atoi(strings.TrimPrefix(field, qtyFieldPrefix))
		if err != nil || drugID <= 0 {
			continue
		}

		quantity, err := strconv.Atoi(raw)
		if err != nil || quantity < 0 {
			details = append(details, apperr.FieldError{
				Field:   "items",
				Message: "Quantities must be whole, positive numbers",
			})
			continue
		}
		if quantity == 0 {
			continue
		}

		requests = append(requests, LineRequest{DrugID: drugID, Quantity: quantity})
	}

	return requests, details
}

// buildFormPage loads the catalogue the order form lays out.
func (handler *Handler) buildFormPage(writer http.ResponseWriter, req *http.Request) (render.Page, bool) {
	catalogue, err := handler.drugService.ListAll(req.Context())
	if err != nil {
		handler.persistenceError(writer, req, err)
		return render.Page{}, false
	}

	page := render.NewPage(req.Context(), handler.sessions, "New order")
	page.Data = struct{ Drugs []drugs.Drug }{Drugs: catalogue}
	page.Form = url.Values{}
	return page, true
}

func (handler *Handler) persistenceError(writer http.ResponseWriter, req *http.Request, err error) {
	ctxutil.GetLogger(req.Context()).ErrorContext(req.Context(), "order_page_failed", slog.Any("error", err))
	sess := session.FromContext(req.Context())
	respond.FlashRedirect(writer, req, handler.sessions, sess,
		session.FlashError, "An unexpected error occurred", "/")
}
