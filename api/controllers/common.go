package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dev-arham/ecommerce-server/api/validators"
	"github.com/dev-arham/ecommerce-server/pkg/pagination"
	pkgerrors "github.com/dev-arham/ecommerce-server/pkg/errors"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
	maxSearchLen    = 100
)

func listInputs(r *http.Request, defaultSort string, allowedSort ...string) (pagination.Params, pagination.Sort, string) {
	query := r.URL.Query()
	params := pagination.ParseParams(query, defaultPageSize, maxPageSize)
	sort := pagination.ParseSort(query, defaultSort, allowedSort...)
	search := validators.SanitizeString(query.Get("search"), maxSearchLen)
	return params, sort, search
}

func parseOptionalUUID(raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid id")
	}
	return &id, nil
}
