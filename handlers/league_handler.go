package handlers

import (
	"net/http"

	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/services"
)

type LeagueHandler struct {
	leagueService services.LeagueService
	teamService   services.TeamService
	matchService  services.MatchService
}

func NewLeagueHandler(ls services.LeagueService, ts services.TeamService, ms services.MatchService) *LeagueHandler {
	return &LeagueHandler{
		leagueService: ls,
		teamService:   ts,
		matchService:  ms,
	}
}

// CreateLeague godoc
// @Summary Create a league and generate its schedule
// @Tags leagues
// @Accept json
// @Produce json
// @Param input body services.CreateLeagueInput true "League"
// @Param includeEliminator query bool false "Add the eliminator match (default false)"
// @Param includeKnockouts query bool false "Add semi-finals and final (default true)"
// @Success 201 {object} services.CreateLeagueResult
// @Security BearerAuth
// @Router /api/leagues [post]
func (h *LeagueHandler) CreateLeague(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentPrincipal(w, r)
	if !ok {
		return
	}

	includeEliminator, err := queryBool(r, "includeEliminator", false)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	includeKnockouts, err := queryBool(r, "includeKnockouts", true)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.CreateLeagueInput
	if !decodeAndValidate(w, r, &input) {
		return
	}

	result, err := h.leagueService.CreateLeague(r.Context(), principal, input, services.ScheduleOptions{
		IncludeEliminator: includeEliminator,
		IncludeKnockouts:  includeKnockouts,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, result)
}

func (h *LeagueHandler) UpdateLeague(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentPrincipal(w, r)
	if !ok {
		return
	}
	leagueID, ok := urlParam(w, r, "leagueID")
	if !ok {
		return
	}

	var input services.UpdateLeagueInput
	if !decodeAndValidate(w, r, &input) {
		return
	}

	league, err := h.leagueService.UpdateLeague(r.Context(), principal, leagueID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"league": league})
}

func (h *LeagueHandler) DeleteLeague(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentPrincipal(w, r)
	if !ok {
		return
	}
	leagueID, ok := urlParam(w, r, "leagueID")
	if !ok {
		return
	}
	if err := h.leagueService.DeleteLeague(r.Context(), principal, leagueID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *LeagueHandler) DeleteAllLeagues(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentPrincipal(w, r)
	if !ok {
		return
	}
	deleted, err := h.leagueService.DeleteAllLeagues(r.Context(), principal)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"deleted": deleted})
}

func (h *LeagueHandler) GetLeague(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := urlParam(w, r, "leagueID")
	if !ok {
		return
	}
	league, err := h.leagueService.GetLeague(r.Context(), leagueID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"league": league})
}

func (h *LeagueHandler) GetLeagueByName(w http.ResponseWriter, r *http.Request) {
	name, ok := urlParam(w, r, "name")
	if !ok {
		return
	}
	league, err := h.leagueService.GetLeagueByName(r.Context(), name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"league": league})
}

func (h *LeagueHandler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	leagues, err := h.leagueService.ListLeagues(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"leagues": leagues})
}

func (h *LeagueHandler) ListMyLeagues(w http.ResponseWriter, r *http.Request) {
	principal, ok := currentPrincipal(w, r)
	if !ok {
		return
	}
	leagues, err := h.leagueService.ListMyLeagues(r.Context(), principal)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"leagues": leagues})
}

// GetLeagueDetails возвращает лигу вместе с командами и расписанием.
func (h *LeagueHandler) GetLeagueDetails(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := urlParam(w, r, "leagueID")
	if !ok {
		return
	}
	details, err := h.leagueService.GetLeagueDetails(r.Context(), leagueID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, details)
}

func (h *LeagueHandler) ListLeagueMatches(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := urlParam(w, r, "leagueID")
	if !ok {
		return
	}
	matches, err := h.matchService.ListMatchesByLeague(r.Context(), leagueID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"matches": matches})
}

func (h *LeagueHandler) ListLeagueTeams(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := urlParam(w, r, "leagueID")
	if !ok {
		return
	}
	teams, err := h.teamService.ListTeamsByLeague(r.Context(), leagueID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"teams": teams})
}
