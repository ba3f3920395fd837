package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"storefront/internal/middleware"
	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code, code and message.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, logger zerolog.Logger) {
	requestID := middleware.RequestIDFromContext(r.Context())

	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Str("error", message).
		Str("code", code).
		Int("status", status).
		Str("request_id", requestID).
		Msg("handler error")

	writeJSON(w, status, model.ErrorResponse{
		Error:     code,
		Message:   message,
		RequestID: requestID,
	})
}

// errorStatus maps a service error to an HTTP status and error code.
// Internal details are never exposed for store failures.
func errorStatus(err error) (int, string, string) {
	var domainErr *model.DomainError
	switch {
	case errors.Is(err, model.ErrProductNotFound):
		return http.StatusNotFound, model.ErrCodeProductNotFound, "product not found"
	case errors.Is(err, model.ErrInvalidInput) && errors.As(err, &domainErr):
		return http.StatusBadRequest, model.ErrCodeInvalidInput, domainErr.Message
	default:
		return http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error"
	}
}

// parseCategoryFilter converts the cat query parameter into a category ID.
// Anything that is not a 32-bit integer degrades to service.NoCategoryFilter.
func parseCategoryFilter(raw string, logger zerolog.Logger) int {
	if raw == "" {
		return service.NoCategoryFilter
	}

	id, err := parseInt32(raw)
	if err != nil {
		logger.Warn().Err(err).Str("cat", raw).Msg("bad input for category filter, listing all products")
		return service.NoCategoryFilter
	}

	return id
}

// pathID extracts the integer ID that follows prefix in path.
// ok is false when the remainder is empty; err is set when it is not a 32-bit integer.
func pathID(path, prefix string) (id int, ok bool, err error) {
	raw := strings.Trim(strings.TrimPrefix(path, prefix), "/")
	if raw == "" {
		return 0, false, nil
	}

	id, err = parseInt32(raw)
	if err != nil {
		return 0, true, err
	}

	return id, true, nil
}

// parseInt32 parses a decimal ID. IDs are INTEGER columns, so wider values are rejected.
func parseInt32(raw string) (int, error) {
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}
