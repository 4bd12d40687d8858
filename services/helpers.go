package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/brackets"
	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/models"
	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/repositories"
	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/storage"
)

// handleRepositoryError переводит ошибки репозиториев в ошибки сервисного слоя.
func handleRepositoryError(err error, action string) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, repositories.ErrAdminNotFound):
		return ErrAdminNotFound
	case errors.Is(err, repositories.ErrLeagueNotFound):
		return ErrLeagueNotFound
	case errors.Is(err, repositories.ErrTeamNotFound):
		return ErrTeamNotFound
	case errors.Is(err, repositories.ErrMatchNotFound):
		return ErrMatchNotFound
	case errors.Is(err, repositories.ErrAdminEmailConflict):
		return ErrAuthEmailTaken
	case errors.Is(err, repositories.ErrLeagueNameConflict):
		return ErrLeagueNameConflict
	case errors.Is(err, repositories.ErrTeamNameConflict):
		return ErrTeamNameConflict
	case errors.Is(err, repositories.ErrMatchNumberConflict):
		return ErrMatchNumberConflict
	case errors.Is(err, repositories.ErrTeamLeagueInvalid),
		errors.Is(err, repositories.ErrMatchLeagueInvalid):
		return ErrLeagueNotFound
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

func requireOwner(principal models.Principal, league *models.League) error {
	if principal.AdminID == "" || league.AdminID != principal.AdminID {
		return ErrForbiddenOperation
	}
	return nil
}

func sameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func populateTeamLogoURL(team *models.Team, uploader storage.FileUploader) {
	if team != nil && team.LogoKey != nil && *team.LogoKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*team.LogoKey)
		if url != "" {
			team.LogoURL = &url
		}
	}
}

func broadcastLeagueEvent(hub Broadcaster, leagueID, event string, payload interface{}) {
	if hub == nil {
		return
	}
	hub.BroadcastToRoom(brackets.LeagueRoom(leagueID), brackets.WebSocketMessage{
		Type:    event,
		Payload: payload,
		RoomID:  leagueID,
	})
}
