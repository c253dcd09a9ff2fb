package http

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"society-console-backend/internal/domain"
	"society-console-backend/internal/service"
)

type VerificationHandler struct {
	service service.VerificationService
}

func NewVerificationHandler(svc service.VerificationService) *VerificationHandler {
	return &VerificationHandler{service: svc}
}

type itemUpdateRequest struct {
	Status string `json:"status"`
	Actor  string `json:"actor"`
	Reason string `json:"reason"`
}

type activateRequest struct {
	Actor string `json:"actor"`
}

func (h *VerificationHandler) Get(w http.ResponseWriter, r *http.Request) {
	sv, err := h.service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, sv)
}

func (h *VerificationHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (h *VerificationHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req itemUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Actor) == "" {
		writeError(w, http.StatusBadRequest, "actor is required")
		return
	}
	vars := mux.Vars(r)
	status := domain.VerificationStatus(strings.ToUpper(req.Status))
	sv, err := h.service.UpdateItem(r.Context(), vars["id"], vars["itemId"], status, req.Actor, req.Reason)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, sv)
}

// Activate answers 409 with the missing required items when refused.
func (h *VerificationHandler) Activate(w http.ResponseWriter, r *http.Request) {
	var req activateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Actor) == "" {
		writeError(w, http.StatusBadRequest, "actor is required")
		return
	}
	sv, err := h.service.Activate(r.Context(), mux.Vars(r)["id"], req.Actor)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, sv)
}

func RegisterVerificationRoutes(router *mux.Router, h *VerificationHandler) {
	router.HandleFunc("/societies/{id}/verification", h.Get).Methods(http.MethodGet)
	router.HandleFunc("/societies/{id}/verification/stats", h.Stats).Methods(http.MethodGet)
	router.HandleFunc("/societies/{id}/verification/items/{itemId}", h.UpdateItem).Methods(http.MethodPut)
	router.HandleFunc("/societies/{id}/verification/activate", h.Activate).Methods(http.MethodPost)
}
