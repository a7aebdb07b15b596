package handlers

import (
	"net/http"

	"github.com/Dosada05/tournament-engine/models"
	"github.com/Dosada05/tournament-engine/services"
)

type RatingHandler struct {
	ratingService services.RatingService
}

func NewRatingHandler(rs services.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: rs}
}

// ApplyResult handles POST /ratings.
func (h *RatingHandler) ApplyResult(w http.ResponseWriter, r *http.Request) {
	var input services.MatchOutcome
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	update, err := h.ratingService.ApplyResult(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, update, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type streaksRequest struct {
	Histories map[models.CompetitorID][]models.RatingRecord `json:"histories"`
}

// Streaks handles POST /ratings/streaks.
func (h *RatingHandler) Streaks(w http.ResponseWriter, r *http.Request) {
	var input streaksRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	views, err := h.ratingService.Streaks(r.Context(), input.Histories)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"streaks": views}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
