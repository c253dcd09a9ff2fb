package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"society-console-backend/internal/engine"
	"society-console-backend/internal/export"
	"society-console-backend/internal/service"
	"society-console-backend/internal/validation"
)

type AmenityHandler struct {
	service    service.AmenityService
	pagination Pagination
}

func NewAmenityHandler(svc service.AmenityService, p Pagination) *AmenityHandler {
	return &AmenityHandler{service: svc, pagination: p}
}

func (h *AmenityHandler) List(w http.ResponseWriter, r *http.Request) {
	view, err := h.pagination.amenityView(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	page, err := h.service.List(r.Context(), view)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newListResponse(page))
}

func (h *AmenityHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (h *AmenityHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, a)
}

func (h *AmenityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var form validation.AmenityForm
	if err := decodeJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	a, err := h.service.Create(r.Context(), form)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, a)
}

func (h *AmenityHandler) Update(w http.ResponseWriter, r *http.Request) {
	var form validation.AmenityForm
	if err := decodeJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	a, err := h.service.Update(r.Context(), mux.Vars(r)["id"], form)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, a)
}

func (h *AmenityHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	a, err := h.service.Deactivate(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, a)
}

func (h *AmenityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AmenityHandler) Bulk(w http.ResponseWriter, r *http.Request) {
	var req bulkRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	action, err := engine.ParseBulkAction(req.Action)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := h.service.Bulk(r.Context(), action, req.IDs)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (h *AmenityHandler) Export(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format, err := export.ParseFormat(q.Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	view, err := h.pagination.amenityView(q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	amenities, err := h.service.Filtered(r.Context(), view)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeExport(w, r, format, "amenities", export.AmenityTable(amenities))
}

func RegisterAmenityRoutes(router *mux.Router, h *AmenityHandler) {
	router.HandleFunc("/amenities", h.List).Methods(http.MethodGet)
	router.HandleFunc("/amenities", h.Create).Methods(http.MethodPost)
	router.HandleFunc("/amenities/stats", h.Stats).Methods(http.MethodGet)
	router.HandleFunc("/amenities/export", h.Export).Methods(http.MethodGet)
	router.HandleFunc("/amenities/bulk", h.Bulk).Methods(http.MethodPost)
	router.HandleFunc("/amenities/{id}", h.Get).Methods(http.MethodGet)
	router.HandleFunc("/amenities/{id}", h.Update).Methods(http.MethodPut)
	router.HandleFunc("/amenities/{id}", h.Delete).Methods(http.MethodDelete)
	router.HandleFunc("/amenities/{id}/deactivate", h.Deactivate).Methods(http.MethodPost)
}
