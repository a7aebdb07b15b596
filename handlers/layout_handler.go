package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/tournament-engine/services"
)

type LayoutHandler struct {
	layoutService services.LayoutService
}

func NewLayoutHandler(ls services.LayoutService) *LayoutHandler {
	return &LayoutHandler{layoutService: ls}
}

// ComputeLayout handles POST /layouts.
func (h *LayoutHandler) ComputeLayout(w http.ResponseWriter, r *http.Request) {
	var input services.LayoutInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	layout, err := h.layoutService.ComputeLayout(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, layout, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// PublishLayout handles PUT /layouts/{tournamentKey}.
func (h *LayoutHandler) PublishLayout(w http.ResponseWriter, r *http.Request) {
	var input services.LayoutInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	published, err := h.layoutService.PublishLayout(r.Context(), chi.URLParam(r, "tournamentKey"), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	headers := make(http.Header)
	headers.Set("Location", published.Latest.Location)
	if err := writeJSON(w, http.StatusOK, published, headers); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetPublishedLayout handles GET /layouts/{tournamentKey}.
func (h *LayoutHandler) GetPublishedLayout(w http.ResponseWriter, r *http.Request) {
	layout, err := h.layoutService.GetPublishedLayout(r.Context(), chi.URLParam(r, "tournamentKey"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, layout, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
