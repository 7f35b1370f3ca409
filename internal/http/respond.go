package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/rally-stats/internal/page"
	"github.com/mauv0809/rally-stats/internal/service"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

// writeError maps service errors onto status codes. Unexpected errors are logged and hidden from the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation_failed", Fields: verr.Fields})
	case errors.Is(err, service.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not_found", Message: err.Error()})
	default:
		log.FromContext(r.Context()).Error("Request failed", "error", err, "method", r.Method, "path", r.URL.Path)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal_error"})
	}
}

// decodeBody reads a single JSON object. Malformed bodies and unknown fields are validation errors.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return service.Invalid(typeErr.Field, fmt.Sprintf("must be a valid %s", typeErr.Type))
		}
		if errors.Is(err, io.EOF) {
			return service.Invalid("body", "must not be empty")
		}
		return service.Invalid("body", "malformed JSON: "+err.Error())
	}
	if dec.More() {
		return service.Invalid("body", "must contain a single JSON object")
	}
	return nil
}

// queryParams reads typed query parameters and collects every malformed one.
type queryParams struct {
	values url.Values
	fields []service.FieldError
}

func newQueryParams(r *http.Request) *queryParams {
	return &queryParams{values: r.URL.Query()}
}

func (q *queryParams) str(name string) string {
	return q.values.Get(name)
}

func (q *queryParams) intPtr(name string) *int {
	raw := q.values.Get(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		q.fields = append(q.fields, service.FieldError{Field: name, Message: "must be an integer"})
		return nil
	}
	return &n
}

func (q *queryParams) int(name string) int {
	if n := q.intPtr(name); n != nil {
		return *n
	}
	return 0
}

func (q *queryParams) page() page.Request {
	return page.Request{Page: q.int("page"), Limit: q.int("limit")}
}

func (q *queryParams) err() error {
	if len(q.fields) == 0 {
		return nil
	}
	return &service.ValidationError{Fields: q.fields}
}
