package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dev-arham/ecommerce-server/api/responses"
	"github.com/dev-arham/ecommerce-server/internal/media"
	"github.com/dev-arham/ecommerce-server/pkg/enums"
	pkgerrors "github.com/dev-arham/ecommerce-server/pkg/errors"
	"github.com/dev-arham/ecommerce-server/pkg/logger"
)

// mediaKindFromQuery reads the mediaType query parameter, defaulting to general.
func mediaKindFromQuery(r *http.Request) (enums.MediaKind, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("mediaType"))
	if raw == "" {
		return enums.MediaKindGeneral, nil
	}
	return enums.ParseMediaKind(raw)
}

// MediaUpload accepts a multipart image upload for the requested media type.
func MediaUpload(svc media.Service, maxUploadMB int, logg *logger.Logger) http.HandlerFunc {
	maxBytes := int64(maxUploadMB) * 1024 * 1024
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		kind, err := mediaKindFromQuery(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid media type"))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxBytes+1024)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "file is required"))
			return
		}
		defer file.Close()

		stored, err := svc.Save(ctx, media.SaveInput{
			Kind:     kind,
			Filename: header.Filename,
			Size:     header.Size,
			Content:  file,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, "Image uploaded successfully.", stored)
	}
}

// MediaList reports stored files of the requested media type with sizes.
func MediaList(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		kind, err := mediaKindFromQuery(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid media type"))
			return
		}

		files, err := svc.List(ctx, kind)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Media files fetched successfully.", files)
	}
}

// MediaDelete removes an uploaded file.
func MediaDelete(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		kind, err := mediaKindFromQuery(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid media type"))
			return
		}

		if err := svc.Remove(ctx, kind, chi.URLParam(r, "filename")); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Image deleted successfully.", nil)
	}
}
