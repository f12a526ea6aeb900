package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/tradebook/internal/adapter/http/dto"
	"github.com/iho/tradebook/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// decodeAndValidate reads a JSON body into req and checks its validate tags.
// It writes the 400 response itself and reports whether the handler may go on.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return false
	}
	if err := dto.Validate(req); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(dto.ErrorResponse{
			Error:   "validation failed",
			Message: err.Error(),
			Fields:  dto.ValidationDetails(err),
		})
		return false
	}
	return true
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrTradeNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAccountNotEligible):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrNameRequired),
		errors.Is(err, domain.ErrNameTooLong),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrGroupRequired),
		errors.Is(err, domain.ErrInvalidMasterKind),
		errors.Is(err, domain.ErrInvalidTradeType),
		errors.Is(err, domain.ErrMissingAccount),
		errors.Is(err, domain.ErrNoLineItems),
		errors.Is(err, domain.ErrInvalidLineItem),
		errors.Is(err, domain.ErrInvalidFundType),
		errors.Is(err, domain.ErrSameAccount),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidDateRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

// parseInt64Query parses a required positive id from the query string.
func parseInt64Query(r *http.Request, key string) (int64, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return 0, fmt.Errorf("missing %s", key)
	}
	return parseID(key, val)
}

// parseIDParam parses a positive id from the URL path.
func parseIDParam(r *http.Request, key string) (int64, error) {
	return parseID(key, chi.URLParam(r, key))
}

func parseID(key, val string) (int64, error) {
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, val)
	}
	return id, nil
}

// parseDateRange reads the from and to query parameters.
func parseDateRange(r *http.Request) (domain.DateRange, error) {
	q := r.URL.Query()
	from, err := time.Parse(dto.DateLayout, q.Get("from"))
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("invalid from date: %w", err)
	}
	to, err := time.Parse(dto.DateLayout, q.Get("to"))
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("invalid to date: %w", err)
	}
	return domain.DateRange{From: from, To: to}, nil
}
