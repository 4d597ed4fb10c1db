package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/dev-arham/ecommerce-server/pkg/errors"
	"github.com/dev-arham/ecommerce-server/pkg/pagination"
	"github.com/dev-arham/ecommerce-server/pkg/types"
)

func TestWriteSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSuccess(w, "ok", map[string]string{"hello": "world"})

	if got := w.Code; got != http.StatusOK {
		t.Fatalf("expected status 200 but got %d", got)
	}

	var body types.Envelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	if !body.Success {
		t.Fatal("expected success=true")
	}
	if body.Message != "ok" {
		t.Fatalf("unexpected message %q", body.Message)
	}
	if body.Data.(map[string]any)["hello"] != "world" {
		t.Fatalf("unexpected payload %v", body.Data)
	}
	if body.Pagination != nil {
		t.Fatal("pagination should be omitted for plain success")
	}
}

func TestWriteListIncludesPagination(t *testing.T) {
	w := httptest.NewRecorder()
	WriteList(w, "items retrieved", []string{"a", "b"}, pagination.NewEnvelope(1, 2, 10))

	var body types.Envelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	if body.Pagination == nil {
		t.Fatal("expected pagination metadata")
	}
	if body.Pagination.TotalItems != 2 || body.Pagination.CurrentPage != 1 {
		t.Fatalf("unexpected pagination %+v", body.Pagination)
	}
}

func TestWriteErrorMapsTypedError(t *testing.T) {
	w := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeValidation, "bad input").
		WithDetails(map[string]string{"field": "demo"})
	WriteError(context.Background(), nil, w, err)

	if got := w.Code; got != http.StatusBadRequest {
		t.Fatalf("expected status 400 but got %d", got)
	}

	var body types.Envelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	if body.Success {
		t.Fatal("expected success=false")
	}
	if body.Message != "bad input" {
		t.Fatalf("unexpected message %q", body.Message)
	}
	if body.Data == nil {
		t.Fatal("expected details in public payload")
	}
}

func TestWriteErrorDefaultsToInternalForUntrustedErrors(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(context.Background(), nil, w, errors.New("boom"))

	if got := w.Code; got != http.StatusInternalServerError {
		t.Fatalf("expected status 500 but got %d", got)
	}

	var body types.Envelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	if body.Message != "internal server error" {
		t.Fatalf("internal message leaked: %q", body.Message)
	}
	if body.Data != nil {
		t.Fatal("details should be omitted for internal errors")
	}
}
