// Copyright (c) 2026 Apotek. All rights reserved.
// Author: h.fahrudin.dev@gmail.com

package drugs

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hfahrudin/apotek/internal/platform/apperr"
	"github.com/hfahrudin/apotek/internal/platform/ctxutil"
	"github.com/hfahrudin/apotek/internal/platform/request"
	"github.com/hfahrudin/apotek/internal/platform/respond"
	"github.com/hfahrudin/apotek/internal/platform/validate"
	"github.com/hfahrudin/apotek/internal/session"
	"github.com/hfahrudin/apotek/internal/web/render"
	"github.com/hfahrudin/apotek/internal/workflow"
	"github.com/hfahrudin/apotek/pkg/convert"
	"github.com/hfahrudin/apotek/pkg/pagination"
)

// Handler implements the inventory pages. Mounted behind the staff gate for
// admins and pharmacists.
type Handler struct {
	drugService *Service
	sessions    *session.Manager
	runner      *workflow.Runner
	renderer    *render.Renderer
}

// NewHandler constructs a new [Handler] with its collaborators.
func NewHandler(
	service *Service,
	sessions *session.Manager,
	runner *workflow.Runner,
	renderer *render.Renderer,
) *Handler {
	return &Handler{
		drugService: service,
		sessions:    sessions,
		runner:      runner,
		renderer:    renderer,
	}
}

// Register attaches the inventory routes.
//
// # Endpoints
//   - GET  /             : Paginated catalogue.
//   - GET  /new          : Blank drug form.
//   - POST /             : Create a drug.
//   - GET  /{id}/edit    : Prefilled drug form.
//   - POST /{id}         : Update a drug.
//   - POST /{id}/delete  : Delete a drug.
func (handler *Handler) Register(router chi.Router) {
	router.Get("/", handler.list)
	router.Get("/new", handler.showCreate)
	router.Post("/", handler.create)
	router.Get("/{id}/edit", handler.showEdit)
	router.Post("/{id}", handler.update)
	router.Post("/{id}/delete", handler.delete)
}

// drugFormData feeds the shared create/edit template.
type drugFormData struct {
	Action string
}

// list handles GET /drugs.
func (handler *Handler) list(writer http.ResponseWriter, req *http.Request) {
	params := pagination.FromRequest(req)

	catalogue, meta, err := handler.drugService.List(req.Context(), params)
	if err != nil {
		handler.persistenceError(writer, req, err)
		return
	}

	page := render.NewPage(req.Context(), handler.sessions, "Drugs")
	page.Data = struct {
		Drugs []Drug
		Meta  pagination.Meta
	}{Drugs: catalogue, Meta: meta}
	handler.renderer.HTML(writer, http.StatusOK, "drugs_list.html", page)
}

// showCreate handles GET /drugs/new.
func (handler *Handler) showCreate(writer http.ResponseWriter, req *http.Request) {
	page := render.NewPage(req.Context(), handler.sessions, "New drug")
	page.Data = drugFormData{Action: "/drugs"}
	handler.renderer.HTML(writer, http.StatusOK, "drug_form.html", page)
}

// validateDrug collects every field rule in one pass.
func validateDrug(req *http.Request) error {
	validator := &validate.Validator{}
	validator.
		Required("name", requestutil.Field(req, "name")).
		MaxLen("name", requestutil.Field(req, "name"), 100).
		Required("category", requestutil.Field(req, "category")).
		Required("unit", requestutil.Field(req, "unit")).
		Custom("price", !isNonNegativeInt(requestutil.Field(req, "price")), "Must be zero or a positive number").
		Custom("stock", !isNonNegativeInt(requestutil.Field(req, "stock")), "Must be zero or a positive number")
	return validator.Err()
}

// isNonNegativeInt reports whether the raw form value parses cleanly to an
// int >= 0. Unlike convert.ToInt, malformed text is rejected here so
// "abc" does not silently become a price of zero.
func isNonNegativeInt(raw string) bool {
	value, err := strconv.Atoi(raw)
	return err == nil && value >= 0
}

// formInput reads the validated fields out of the form.
func formInput(req *http.Request) Input {
	return Input{
		Name:     requestutil.Field(req, "name"),
		Category: requestutil.Field(req, "category"),
		Unit:     requestutil.Field(req, "unit"),
		Price:    convert.ToInt(requestutil.Field(req, "price")),
		Stock:    convert.ToInt(requestutil.Field(req, "stock")),
	}
}

// create handles POST /drugs.
func (handler *Handler) create(writer http.ResponseWriter, req *http.Request) {
	handler.runner.Run(writer, req, workflow.Mutation{
		Validate: validateDrug,
		Mutate: func(ctx context.Context) (workflow.Outcome, error) {
			_, err := handler.drugService.Create(ctx, formInput(req))
			return workflow.Committed, err
		},
		SuccessMessage: "Drug added",
		SuccessPath:    "/drugs",
		RenderInvalid:  handler.rerenderForm("New drug", "/drugs"),
	})
}

// showEdit handles GET /drugs/{id}/edit.
func (handler *Handler) showEdit(writer http.ResponseWriter, req *http.Request) {
	id := requestutil.ParamID(req, "id")

	drug, err := handler.drugService.Get(req.Context(), id)
	if err != nil {
		if apperr.IsCode(err, apperr.CodeNotFound) {
			handler.missing(writer, req)
		} else {
			handler.persistenceError(writer, req, err)
		}
		return
	}

	page := render.NewPage(req.Context(), handler.sessions, "Edit drug")
	page.Data = drugFormData{Action: fmt.Sprintf("/drugs/%d", drug.ID)}
	page.Form = url.Values{
		"name":     {drug.Name},
		"category": {drug.Category},
		"unit":     {drug.Unit},
		"price":    {strconv.Itoa(drug.Price)},
		"stock":    {strconv.Itoa(drug.Stock)},
	}
	handler.renderer.HTML(writer, http.StatusOK, "drug_form.html", page)
}

// update handles POST /drugs/{id}.
func (handler *Handler) update(writer http.ResponseWriter, req *http.Request) {
	id := requestutil.ParamID(req, "id")

	handler.runner.Run(writer, req, workflow.Mutation{
		Validate: validateDrug,
		Mutate: func(ctx context.Context) (workflow.Outcome, error) {
			found, err := handler.drugService.Update(ctx, id, formInput(req))
			if err != nil {
				return workflow.Committed, err
			}
			if !found {
				return workflow.Noop, nil
			}
			return workflow.Committed, nil
		},
		SuccessMessage: "Drug updated",
		NoopMessage:    "No such drug exists anymore",
		SuccessPath:    "/drugs",
		RenderInvalid:  handler.rerenderForm("Edit drug", fmt.Sprintf("/drugs/%d", id)),
	})
}

// delete handles POST /drugs/{id}/delete.
func (handler *Handler) delete(writer http.ResponseWriter, req *http.Request) {
	id := requestutil.ParamID(req, "id")

	handler.runner.Run(writer, req, workflow.Mutation{
		Mutate: func(ctx context.Context) (workflow.Outcome, error) {
			found, err := handler.drugService.Delete(ctx, id)
			if err != nil {
				return workflow.Committed, err
			}
			if !found {
				return workflow.Noop, nil
			}
			return workflow.Committed, nil
		},
		SuccessMessage: "Drug deleted",
		NoopMessage:    "No such drug exists anymore",
		SuccessPath:    "/drugs",
	})
}

// rerenderForm builds the invalid-form re-render shared by create and edit.
func (handler *Handler) rerenderForm(title, action string) func(http.ResponseWriter, *http.Request, []apperr.FieldError) {
	return func(writer http.ResponseWriter, req *http.Request, details []apperr.FieldError) {
		page := render.NewPage(req.Context(), handler.sessions, title)
		page.Data = drugFormData{Action: action}
		page.Errors = details
		page.Form = req.PostForm
		handler.renderer.HTML(writer, http.StatusUnprocessableEntity, "drug_form.html", page)
	}
}

func (handler *Handler) missing(writer http.ResponseWriter, req *http.Request) {
	sess := session.FromContext(req.Context())
	respond.FlashRedirect(writer, req, handler.sessions, sess,
		session.FlashInfo, "No such drug exists anymore", "/drugs")
}

func (handler *Handler) persistenceError(writer http.ResponseWriter, req *http.Request, err error) {
	ctxutil.GetLogger(req.Context()).ErrorContext(req.Context(), "drug_page_failed", slog.Any("error", err))
	sess := session.FromContext(req.Context())
	respond.FlashRedirect(writer, req, handler.sessions, sess,
		session.FlashError, "An unexpected error occurred", "/")
}
