// Package handlers translates HTTP requests into store and service calls and
// serializes the results as JSON.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/diewo77/go-shopchat/internal/httpx"
	"github.com/diewo77/go-shopchat/internal/services"
	"github.com/diewo77/go-shopchat/internal/store"
)

// pathID parses the {id} path segment.
func pathID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// writeError maps the gateway/service error taxonomy onto HTTP statuses.
// Every failure is scoped to the single request; nothing here is fatal.
func writeError(w http.ResponseWriter, err error) {
	var ve *store.ValidationError
	switch {
	case errors.As(err, &ve):
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", ve.Violations)
	case errors.Is(err, store.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, store.ErrConstraintViolation):
		httpx.JSONError(w, http.StatusConflict, "constraint_violation", err.Error())
	case errors.Is(err, store.ErrForeignKeyViolation):
		httpx.JSONError(w, http.StatusConflict, "foreign_key_violation", err.Error())
	case errors.Is(err, services.ErrInvalidRange):
		httpx.JSONError(w, http.StatusBadRequest, "invalid_range", err.Error())
	case errors.Is(err, services.ErrInvalidArgument):
		httpx.JSONError(w, http.StatusBadRequest, "invalid_argument", err.Error())
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
	}
}
