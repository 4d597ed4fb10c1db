package controllers

import (
	"net/http"

	"github.com/dev-arham/ecommerce-server/api/responses"
	"github.com/dev-arham/ecommerce-server/api/validators"
	"github.com/dev-arham/ecommerce-server/internal/brands"
	"github.com/dev-arham/ecommerce-server/pkg/logger"
)

type brandPayload struct {
	Name  string  `json:"name" validate:"required,max=120"`
	Image *string `json:"image"`
}

// BrandList returns a paginated brand listing.
func BrandList(svc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		params, sort, search := listInputs(r, "created_at", "name", "created_at")

		rows, meta, err := svc.List(ctx, brands.ListQuery{Params: params, Sort: sort, Search: search})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteList(w, "Brands retrieved successfully.", rows, meta)
	}
}

// BrandGet returns one brand by id.
func BrandGet(svc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		brand, err := svc.Get(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Brand retrieved successfully.", brand)
	}
}

// BrandCreate creates a brand.
func BrandCreate(svc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var payload brandPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		brand, err := svc.Create(ctx, brands.CreateInput{Name: payload.Name, Image: payload.Image})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, "Brand created successfully.", brand)
	}
}

// BrandUpdate updates a brand.
func BrandUpdate(svc brands.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload brandPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		brand, err := svc.Update(ctx, id, brands.UpdateInput{Name: payload.Name, Image: payload.Image})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Brand updated successfully.", brand)
	}
}

// BrandDelete removes a brand unless products still reference it.
func BrandDelete(svc brands.Service, logg *logger.Logger) http.HandlerFunc {
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
		responses.WriteSuccess(w, "Brand deleted successfully.", nil)
	}
}
