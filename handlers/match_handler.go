package handlers

import (
	"net/http"

	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/services"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(ms services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: ms}
}

func (h *MatchHandler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentPrincipal(w, r)
	if !ok {
		return
	}
	var input services.CreateMatchInput
	if !decodeAndValidate(w, r, &input) {
		return
	}

	match, err := h.matchService.CreateMatch(r.Context(), principal, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, jsonResponse{"match": match})
}

func (h *MatchHandler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentPrincipal(w, r)
	if !ok {
		return
	}
	matchID, ok := urlParam(w, r, "matchID")
	if !ok {
		return
	}
	var input services.UpdateMatchInput
	if !decodeAndValidate(w, r, &input) {
		return
	}

	match, err := h.matchService.UpdateMatch(r.Context(), principal, matchID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"match": match})
}

func (h *MatchHandler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentPrincipal(w, r)
	if !ok {
		return
	}
	matchID, ok := urlParam(w, r, "matchID")
	if !ok {
		return
	}
	if err := h.matchService.DeleteMatch(r.Context(), principal, matchID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MatchHandler) GetMatch(w http.ResponseWriter, r *http.Request) {
	matchID, ok := urlParam(w, r, "matchID")
	if !ok {
		return
	}
	match, err := h.matchService.GetMatch(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"match": match})
}

func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := h.matchService.ListMatches(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"matches": matches})
}
