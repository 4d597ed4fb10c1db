package controllers

import (
	"net/http"

	"github.com/dev-arham/ecommerce-server/api/responses"
	"github.com/dev-arham/ecommerce-server/api/validators"
	"github.com/dev-arham/ecommerce-server/internal/categories"
	"github.com/dev-arham/ecommerce-server/pkg/logger"
)

type categoryPayload struct {
	Name  string  `json:"name" validate:"required,max=120"`
	Image *string `json:"image"`
}

// CategoryList returns a paginated category listing.
func CategoryList(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		params, sort, search := listInputs(r, "created_at", "name", "created_at")

		rows, meta, err := svc.List(ctx, categories.ListQuery{Params: params, Sort: sort, Search: search})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteList(w, "Categories retrieved successfully.", rows, meta)
	}
}

// CategoryGet returns one category by id.
func CategoryGet(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		category, err := svc.Get(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Category retrieved successfully.", category)
	}
}

// CategoryCreate creates a category.
func CategoryCreate(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var payload categoryPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		category, err := svc.Create(ctx, categories.CreateInput{Name: payload.Name, Image: payload.Image})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, "Category created successfully.", category)
	}
}

// CategoryUpdate updates a category.
func CategoryUpdate(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload categoryPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		category, err := svc.Update(ctx, id, categories.UpdateInput{Name: payload.Name, Image: payload.Image})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Category updated successfully.", category)
	}
}

// CategoryDelete removes a category unless products still reference it.
func CategoryDelete(svc categories.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Delete(ctx, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Category deleted successfully.", nil)
	}
}
