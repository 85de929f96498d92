package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avolkov3/simpledb/internal/common"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

// serviceError translates a service-layer error into an HTTP response.
// Sentinel errors map to their status; anything unrecognized becomes an
// opaque 500 and is logged with detail server-side only.
func (h *Handlers) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		writeError(w, http.StatusBadRequest, "invalid request")
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeError(w, http.StatusUnauthorized, "Could not validate credentials")
	case errors.Is(err, common.ErrorNotValidated):
		writeError(w, http.StatusForbidden, "Inactive user")
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, "Username not found")
	case errors.Is(err, common.ErrorAlreadyExists):
		writeError(w, http.StatusConflict, "username is already in use")
	case errors.Is(err, common.ErrorDelivery):
		writeError(w, http.StatusBadGateway, "email delivery failed")
	default:
		h.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
