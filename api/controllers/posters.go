package controllers

import (
	"net/http"

	"github.com/dev-arham/ecommerce-server/api/responses"
	"github.com/dev-arham/ecommerce-server/api/validators"
	"github.com/dev-arham/ecommerce-server/internal/posters"
	"github.com/dev-arham/ecommerce-server/pkg/logger"
)

type posterPayload struct {
	Name     string `json:"name" validate:"required,max=120"`
	ImageURL string `json:"imageUrl" validate:"required"`
}

type posterUpdatePayload struct {
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

// PosterList returns a paginated poster listing.
func PosterList(svc posters.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		params, sort, search := listInputs(r, "created_at", "name", "created_at")

		rows, meta, err := svc.List(ctx, posters.ListQuery{Params: params, Sort: sort, Search: search})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteList(w, "Posters retrieved successfully.", rows, meta)
	}
}

// PosterGet returns one poster by id.
func PosterGet(svc posters.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		poster, err := svc.Get(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Poster retrieved successfully.", poster)
	}
}

// PosterCreate creates a poster.
func PosterCreate(svc posters.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var payload posterPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		poster, err := svc.Create(ctx, posters.CreateInput{Name: payload.Name, ImageURL: payload.ImageURL})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, "Poster created successfully.", poster)
	}
}

// PosterUpdate updates a poster.
func PosterUpdate(svc posters.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload posterUpdatePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		poster, err := svc.Update(ctx, id, posters.UpdateInput{Name: payload.Name, ImageURL: payload.ImageURL})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Poster updated successfully.", poster)
	}
}

// PosterDelete removes a poster.
func PosterDelete(svc posters.Service, logg *logger.Logger) http.HandlerFunc {
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
		responses.WriteSuccess(w, "Poster deleted successfully.", nil)
	}
}
