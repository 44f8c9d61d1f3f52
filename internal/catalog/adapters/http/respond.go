package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dejobratic/vestuario/internal/catalog/ports"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

const internalErrorMessage = "Erro interno do servidor."

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ports.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ports.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, ports.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ports.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as an error document. Store failure details are logged, never sent.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	message := ports.ClientMessage(err)

	if status == http.StatusInternalServerError {
		if !errors.Is(err, ports.ErrStore) {
			message = internalErrorMessage
		}
		h.logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}

	writeError(w, status, message)
}

func (h *Handler) ok(w http.ResponseWriter, r *http.Request, payload any, err error) {
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, payload)
}
