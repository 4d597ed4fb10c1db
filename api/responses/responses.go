package responses

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	pkgerrors "github.com/dev-arham/ecommerce-server/pkg/errors"
	"github.com/dev-arham/ecommerce-server/pkg/logger"
	"github.com/dev-arham/ecommerce-server/pkg/pagination"
	"github.com/dev-arham/ecommerce-server/pkg/types"
)

// WriteSuccess writes the uniform success envelope with a 200 status.
func WriteSuccess(w http.ResponseWriter, message string, data any) {
	WriteSuccessStatus(w, http.StatusOK, message, data)
}

// WriteSuccessStatus writes the uniform success envelope with a custom status.
func WriteSuccessStatus(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, types.Envelope{Success: true, Message: message, Data: data})
}

// WriteRejected writes a non-success envelope with a 200 status. Used for
// business outcomes that answer the request rather than fail it.
func WriteRejected(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, types.Envelope{Success: false, Message: message})
}

// WriteList writes a success envelope carrying list data plus pagination metadata.
func WriteList(w http.ResponseWriter, message string, data any, meta pagination.Envelope) {
	writeJSON(w, http.StatusOK, types.Envelope{
		Success:    true,
		Message:    message,
		Data:       data,
		Pagination: &meta,
	})
}

// WriteError translates an error into the uniform failure envelope. Tagged
// errors keep their public message; anything untagged is reported as internal.
func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}

	meta := pkgerrors.MetadataFor(typed.Code())

	msg := meta.PublicMessage
	switch typed.Code() {
	case pkgerrors.CodeValidation,
		pkgerrors.CodeUnauthorized,
		pkgerrors.CodeForbidden,
		pkgerrors.CodeNotFound,
		pkgerrors.CodeConflict,
		pkgerrors.CodeReference,
		pkgerrors.CodeRateLimit:
		if m := typed.Message(); m != "" {
			msg = m
		}
	}

	payload := types.Envelope{Success: false, Message: msg}

	if meta.DetailsAllowed {
		if details := typed.Details(); details != nil {
			payload.Data = details
		}
	}

	if logg != nil {
		dump := pkgerrors.Dump(err)
		ctx = logg.WithFields(ctx, map[string]any{
			"error":         dump.TopMessage,
			"error_code":    dump.Code,
			"error_chain":   dump.Chain,
			"pg_code":       dump.PGCode,
			"pg_detail":     dump.PGDetail,
			"pg_message":    dump.PGMessage,
			"pg_table":      dump.PGTable,
			"pg_column":     dump.PGColumn,
			"pg_constraint": dump.PGConstraint,
		})
		logg.Error(ctx, "request.error", err)
	}

	writeJSON(w, meta.HTTPStatus, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf(`{"level":"error","msg":"failed to encode response","err":"%v"}`, err)
	}
}
