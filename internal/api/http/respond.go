package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"society-console-backend/internal/engine"
	"society-console-backend/internal/logger"
	"society-console-backend/internal/repository"
	"society-console-backend/internal/storage"
	"society-console-backend/internal/validation"
	"society-console-backend/internal/verification"
)

type errorResponse struct {
	Error   string                  `json:"error"`
	Fields  []validation.FieldError `json:"fields,omitempty"`
	Missing []string                `json:"missing,omitempty"`
}

type paginationResponse struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

type listResponse[T any] struct {
	Items      []T                `json:"items"`
	Pagination paginationResponse `json:"pagination"`
}

func newListResponse[T any](p engine.Page[T]) listResponse[T] {
	items := p.Items
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{
		Items: items,
		Pagination: paginationResponse{
			Page:       p.Page,
			PageSize:   p.PageSize,
			TotalItems: p.Total,
			TotalPages: p.TotalPages,
		},
	}
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errorResponse{Error: msg})
}

// writeServiceError maps service errors onto status codes. Anything not
// recognised is logged and reported as a 500 without detail.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verrs   validation.Errors
		refusal *verification.RefusalError
	)
	switch {
	case errors.As(err, &verrs):
		respondJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "validation failed", Fields: verrs})
	case errors.As(err, &refusal):
		respondJSON(w, http.StatusConflict, errorResponse{Error: verification.ErrActivationRefused.Error(), Missing: refusal.Missing})
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, storage.ErrNotFound), errors.Is(err, verification.ErrItemNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, verification.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		logger.ErrorContext(r.Context(), "Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

func parseInt(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	if v, err := strconv.Atoi(value); err == nil {
		return v
	}
	return fallback
}
