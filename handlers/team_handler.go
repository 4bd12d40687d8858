package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/services"
)

type TeamHandler struct {
	teamService services.TeamService
}

func NewTeamHandler(ts services.TeamService) *TeamHandler {
	return &TeamHandler{teamService: ts}
}

func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentPrincipal(w, r)
	if !ok {
		return
	}
	var input services.CreateTeamInput
	if !decodeAndValidate(w, r, &input) {
		return
	}

	team, err := h.teamService.CreateTeam(r.Context(), principal, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, jsonResponse{"team": team})
}

func (h *TeamHandler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentPrincipal(w, r)
	if !ok {
		return
	}
	teamID, ok := urlParam(w, r, "teamID")
	if !ok {
		return
	}
	var input services.UpdateTeamInput
	if !decodeAndValidate(w, r, &input) {
		return
	}

	team, err := h.teamService.UpdateTeam(r.Context(), principal, teamID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"team": team})
}

func (h *TeamHandler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentPrincipal(w, r)
	if !ok {
		return
	}
	teamID, ok := urlParam(w, r, "teamID")
	if !ok {
		return
	}
	if err := h.teamService.DeleteTeam(r.Context(), principal, teamID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TeamHandler) DeleteAllTeams(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentPrincipal(w, r)
	if !ok {
		return
	}
	deleted, err := h.teamService.DeleteAllTeams(r.Context(), principal)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"deleted": deleted})
}

func (h *TeamHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	teamID, ok := urlParam(w, r, "teamID")
	if !ok {
		return
	}
	team, err := h.teamService.GetTeam(r.Context(), teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"team": team})
}

func (h *TeamHandler) GetTeamByName(w http.ResponseWriter, r *http.Request) {
	name, ok := urlParam(w, r, "name")
	if !ok {
		return
	}
	team, err := h.teamService.GetTeamByName(r.Context(), name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"team": team})
}

func (h *TeamHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teamService.ListTeams(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"teams": teams})
}

// UploadTeamLogo принимает multipart-форму с файлом в поле "logo".
func (h *TeamHandler) UploadTeamLogo(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentPrincipal(w, r)
	if !ok {
		return
	}
	teamID, ok := urlParam(w, r, "teamID")
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to parse multipart form: %w", err))
		return
	}

	file, header, err := r.FormFile("logo")
	if err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to get logo file from form: %w", err))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		badRequestResponse(w, r, errors.New("content-type header is required for logo"))
		return
	}

	team, err := h.teamService.UploadTeamLogo(r.Context(), principal, teamID, file, contentType)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"team": team})
}
