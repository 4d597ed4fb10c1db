package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dev-arham/ecommerce-server/api/responses"
	"github.com/dev-arham/ecommerce-server/api/validators"
	"github.com/dev-arham/ecommerce-server/internal/products"
	"github.com/dev-arham/ecommerce-server/pkg/logger"
	"github.com/dev-arham/ecommerce-server/pkg/types"
)

type productCreatePayload struct {
	Name        string           `json:"name" validate:"required,max=200"`
	Description string           `json:"description" validate:"required"`
	Quantity    int              `json:"quantity"`
	Price       decimal.Decimal  `json:"price"`
	OfferPrice  *decimal.Decimal `json:"offerPrice"`
	CategoryIDs []uuid.UUID      `json:"categoryIDs"`
	BrandID     *uuid.UUID       `json:"brandID"`
	Images      []types.Image    `json:"images"`
}

type productUpdatePayload struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Quantity    *int             `json:"quantity"`
	Price       *decimal.Decimal `json:"price"`
	OfferPrice  *decimal.Decimal `json:"offerPrice"`
	ClearOffer  bool             `json:"clearOffer"`
	CategoryIDs []uuid.UUID      `json:"categoryIDs"`
	BrandID     *uuid.UUID       `json:"brandID"`
	ClearBrand  bool             `json:"clearBrand"`
	Images      []types.Image    `json:"images"`
}

// ProductList returns a paginated product listing with optional category and
// brand filters.
func ProductList(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		params, sort, search := listInputs(r, "created_at", "name", "price", "quantity", "created_at")

		categoryID, err := parseOptionalUUID(r.URL.Query().Get("categoryID"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		brandID, err := parseOptionalUUID(r.URL.Query().Get("brandID"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		rows, meta, err := svc.List(ctx, products.ListQuery{
			Params:     params,
			Sort:       sort,
			Search:     search,
			CategoryID: categoryID,
			BrandID:    brandID,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteList(w, "Products retrieved successfully.", rows, meta)
	}
}

// ProductGet returns one product by id.
func ProductGet(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, err := svc.Get(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Product retrieved successfully.", product)
	}
}

// ProductCreate creates a product.
func ProductCreate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var payload productCreatePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, err := svc.Create(ctx, products.CreateInput{
			Name:        payload.Name,
			Description: payload.Description,
			Quantity:    payload.Quantity,
			Price:       payload.Price,
			OfferPrice:  payload.OfferPrice,
			CategoryIDs: payload.CategoryIDs,
			BrandID:     payload.BrandID,
			Images:      payload.Images,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, "Product created successfully.", product)
	}
}

// ProductUpdate applies a partial product update.
func ProductUpdate(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var payload productUpdatePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, err := svc.Update(ctx, id, products.UpdateInput{
			Name:        payload.Name,
			Description: payload.Description,
			Quantity:    payload.Quantity,
			Price:       payload.Price,
			OfferPrice:  payload.OfferPrice,
			ClearOffer:  payload.ClearOffer,
			CategoryIDs: payload.CategoryIDs,
			BrandID:     payload.BrandID,
			ClearBrand:  payload.ClearBrand,
			Images:      payload.Images,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, "Product updated successfully.", product)
	}
}

// ProductDelete removes a product.
func ProductDelete(svc products.Service, logg *logger.Logger) http.HandlerFunc {
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
		responses.WriteSuccess(w, "Product deleted successfully.", nil)
	}
}
