package web

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/evcraddock/estate-office/internal/db"
	"github.com/evcraddock/estate-office/internal/validate"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	resp := map[string]string{"error": msg}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// apiMessage writes {"message": msg} with status 200.
func apiMessage(w http.ResponseWriter, msg string) {
	apiJSON(w, map[string]string{"message": msg}, http.StatusOK)
}

// createdResponse is the body returned after a successful create.
type createdResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// writeError maps err onto a response: validation failures are 400,
// missing rows are 404 with notFound, anything else is logged and
// answered with a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case validate.IsValidation(err):
		apiError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, db.ErrNotFound):
		apiError(w, notFound, http.StatusNotFound)
	default:
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		apiError(w, "Internal server error", http.StatusInternalServerError)
	}
}

// pathID parses the positive integer path value name. On failure it
// writes a 400 naming label and returns false.
func pathID(w http.ResponseWriter, r *http.Request, name, label string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		apiError(w, "Invalid "+label+" ID format", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// decodeBody reads a JSON object into dst. Unknown keys, including
// nested relation objects, are ignored.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			apiError(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return false
		}
		apiError(w, "Invalid JSON body", http.StatusBadRequest)
		return false
	}
	return true
}

// validator is implemented by every create and update DTO.
type validator interface {
	Validate() error
}

// nonNil turns a nil slice into an empty one so lists encode as [].
func nonNil[T any](items []*T) []*T {
	if items == nil {
		return []*T{}
	}
	return items
}

// lower returns the entity name in lowercase for ID messages.
func lower(entity string) string {
	return strings.ToLower(entity)
}

// handleList serves a list query.
func handleList[T any](list func(context.Context) ([]*T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := list(r.Context())
		if err != nil {
			writeError(w, r, err, "")
			return
		}
		apiJSON(w, nonNil(items), http.StatusOK)
	}
}

// handleListBy serves a list query filtered by the string path value name.
func handleListBy[T any](name string, list func(context.Context, string) ([]*T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		value := r.PathValue(name)
		if value == "" {
			apiError(w, "Missing "+name+" parameter", http.StatusBadRequest)
			return
		}
		items, err := list(r.Context(), value)
		if err != nil {
			writeError(w, r, err, "")
			return
		}
		apiJSON(w, nonNil(items), http.StatusOK)
	}
}

// handleListByID serves a list query filtered by the id path value name,
// reported as label in format errors.
func handleListByID[T any](name, label string, list func(context.Context, int64) ([]*T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, name, label)
		if !ok {
			return
		}
		items, err := list(r.Context(), id)
		if err != nil {
			writeError(w, r, err, "")
			return
		}
		apiJSON(w, nonNil(items), http.StatusOK)
	}
}

// handleGet serves a single entity by {id}.
func handleGet[T any](entity string, get func(context.Context, int64) (*T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id", lower(entity))
		if !ok {
			return
		}
		item, err := get(r.Context(), id)
		if err != nil {
			writeError(w, r, err, entity+" not found")
			return
		}
		apiJSON(w, item, http.StatusOK)
	}
}

// handleCreate decodes and validates an input DTO, then inserts it.
func handleCreate[T any, P interface {
	*T
	validator
}](entity string, create func(context.Context, P) (int64, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in := P(new(T))
		if !decodeBody(w, r, in) {
			return
		}
		if err := in.Validate(); err != nil {
			writeError(w, r, err, "")
			return
		}
		id, err := create(r.Context(), in)
		if err != nil {
			writeError(w, r, err, "")
			return
		}
		apiJSON(w, createdResponse{ID: id, Message: entity + " created successfully"}, http.StatusCreated)
	}
}

// handleUpdate decodes and validates a patch DTO, then applies it to {id}.
func handleUpdate[T any, P interface {
	*T
	validator
}](entity string, update func(context.Context, int64, P) (bool, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id", lower(entity))
		if !ok {
			return
		}
		p := P(new(T))
		if !decodeBody(w, r, p) {
			return
		}
		if err := p.Validate(); err != nil {
			writeError(w, r, err, "")
			return
		}
		changed, err := update(r.Context(), id, p)
		if err != nil {
			writeError(w, r, err, "")
			return
		}
		if !changed {
			apiError(w, entity+" not found or no changes made", http.StatusNotFound)
			return
		}
		apiMessage(w, entity+" updated successfully")
	}
}

// handleDelete removes {id}.
func handleDelete(entity string, remove func(context.Context, int64) (bool, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id", lower(entity))
		if !ok {
			return
		}
		deleted, err := remove(r.Context(), id)
		if err != nil {
			writeError(w, r, err, "")
			return
		}
		if !deleted {
			apiError(w, entity+" not found", http.StatusNotFound)
			return
		}
		apiMessage(w, entity+" deleted successfully")
	}
}
