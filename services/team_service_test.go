package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/models"
	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/repositories"
	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func squadOf(n int) []PlayerInput {
	squad := make([]PlayerInput, n)
	for i := range squad {
		squad[i] = PlayerInput{Name: fmt.Sprintf("Player %d", i+1), Role: "Batter"}
	}
	return squad
}

func validTeamInput() CreateTeamInput {
	return CreateTeamInput{
		LeagueID:    "league-1",
		Name:        "Lions",
		Coach:       "Coach Kumar",
		Squad:       squadOf(MinSquadSize),
		Captain:     "Player 1",
		ViceCaptain: "player 2",
	}
}

func ownedLeague() *models.League {
	return &models.League{ID: "league-1", AdminID: owner.AdminID, Teams: []models.TeamRef{{ID: "team-1", Name: "Lions"}}}
}

func TestTeamService_CreateTeam(t *testing.T) {
	ctx := context.Background()
	leagues := &mockLeagueRepo{}
	teams := &mockTeamRepo{}
	svc := NewTeamService(teams, leagues, nil, discardLogger())

	leagues.On("GetByID", ctx, "league-1").Return(ownedLeague(), nil).Once()
	teams.On("GetByName", ctx, mock.Anything, "Lions").Return(nil, repositories.ErrTeamNotFound).Once()
	teams.On("Create", ctx, mock.Anything, mock.AnythingOfType("*models.Team")).Return(nil).Once()

	team, err := svc.CreateTeam(ctx, owner, validTeamInput())
	require.NoError(t, err)

	require.Len(t, team.Squad, MinSquadSize)
	ids := make(map[string]bool)
	for _, p := range team.Squad {
		_, parseErr := uuid.Parse(p.ID)
		assert.NoError(t, parseErr)
		ids[p.ID] = true
	}
	assert.Len(t, ids, MinSquadSize)
	assert.Equal(t, team.Squad[0].ID, team.Captain.ID)
	assert.Equal(t, team.Squad[1].ID, team.ViceCaptain.ID)
	assert.Equal(t, "league-1", team.LeagueID)
	teams.AssertExpectations(t)
}

func TestTeamService_CreateTeamValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*CreateTeamInput)
		want   error
	}{
		{"squad too small", func(in *CreateTeamInput) { in.Squad = squadOf(MinSquadSize - 1) }, ErrSquadTooSmall},
		{"coach in squad", func(in *CreateTeamInput) { in.Coach = " player 15 " }, ErrCoachInSquad},
		{"captain missing", func(in *CreateTeamInput) { in.ViceCaptain = "" }, ErrCaptainRequired},
		{"captain outside squad", func(in *CreateTeamInput) { in.Captain = "Somebody Else" }, ErrCaptainNotInSquad},
		{"captain is vice-captain", func(in *CreateTeamInput) { in.ViceCaptain = "PLAYER 1" }, ErrCaptainIsViceCaptain},
		{"duplicate player", func(in *CreateTeamInput) { in.Squad[3].Name = "Player 1" }, ErrValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			leagues := &mockLeagueRepo{}
			teams := &mockTeamRepo{}
			svc := NewTeamService(teams, leagues, nil, discardLogger())
			leagues.On("GetByID", ctx, "league-1").Return(ownedLeague(), nil).Once()

			input := validTeamInput()
			tt.mutate(&input)

			_, err := svc.CreateTeam(ctx, owner, input)
			assert.ErrorIs(t, err, tt.want)
			teams.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestTeamService_CreateTeamConflictsAndOwnership(t *testing.T) {
	ctx := context.Background()

	t.Run("name in use", func(t *testing.T) {
		leagues := &mockLeagueRepo{}
		teams := &mockTeamRepo{}
		svc := NewTeamService(teams, leagues, nil, discardLogger())
		leagues.On("GetByID", ctx, "league-1").Return(ownedLeague(), nil).Once()
		teams.On("GetByName", ctx, mock.Anything, "Lions").Return(&models.Team{ID: "other"}, nil).Once()

		_, err := svc.CreateTeam(ctx, owner, validTeamInput())
		assert.ErrorIs(t, err, ErrTeamNameConflict)
	})

	t.Run("foreign league", func(t *testing.T) {
		leagues := &mockLeagueRepo{}
		svc := NewTeamService(&mockTeamRepo{}, leagues, nil, discardLogger())
		leagues.On("GetByID", ctx, "league-1").Return(&models.League{ID: "league-1", AdminID: "someone"}, nil).Once()

		_, err := svc.CreateTeam(ctx, owner, validTeamInput())
		assert.ErrorIs(t, err, ErrForbiddenOperation)
	})

	t.Run("missing league", func(t *testing.T) {
		leagues := &mockLeagueRepo{}
		svc := NewTeamService(&mockTeamRepo{}, leagues, nil, discardLogger())
		leagues.On("GetByID", ctx, "league-1").Return(nil, repositories.ErrLeagueNotFound).Once()

		_, err := svc.CreateTeam(ctx, owner, validTeamInput())
		assert.ErrorIs(t, err, ErrLeagueNotFound)
	})
}

func storedTeam() *models.Team {
	squad := buildSquad(squadOf(MinSquadSize))
	captain, vice := squad[0], squad[1]
	return &models.Team{
		ID:          "team-1",
		LeagueID:    "league-1",
		Name:        "Lions",
		Coach:       "Coach Kumar",
		Squad:       squad,
		Captain:     &captain,
		ViceCaptain: &vice,
	}
}

func TestTeamService_UpdateTeamRenamesLeagueReference(t *testing.T) {
	ctx := context.Background()
	leagues := &mockLeagueRepo{}
	teams := &mockTeamRepo{}
	svc := NewTeamService(teams, leagues, nil, discardLogger())

	teams.On("GetByID", ctx, "team-1").Return(storedTeam(), nil).Once()
	leagues.On("GetByID", ctx, "league-1").Return(ownedLeague(), nil).Once()
	teams.On("GetByName", ctx, mock.Anything, "Royal Lions").Return(nil, repositories.ErrTeamNotFound).Once()
	teams.On("Update", ctx, mock.MatchedBy(func(tm *models.Team) bool { return tm.Name == "Royal Lions" })).Return(nil).Once()
	leagues.On("Update", ctx, mock.Anything, mock.MatchedBy(func(l *models.League) bool {
		return l.Teams[0].Name == "Royal Lions" && l.Teams[0].ID == "team-1"
	})).Return(nil).Once()

	name := "Royal Lions"
	team, err := svc.UpdateTeam(ctx, owner, "team-1", UpdateTeamInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Player 1", team.Captain.Name)
	teams.AssertExpectations(t)
	leagues.AssertExpectations(t)
}

func TestTeamService_UpdateTeamKeepsValidation(t *testing.T) {
	ctx := context.Background()
	leagues := &mockLeagueRepo{}
	teams := &mockTeamRepo{}
	svc := NewTeamService(teams, leagues, nil, discardLogger())

	teams.On("GetByID", ctx, "team-1").Return(storedTeam(), nil).Once()
	leagues.On("GetByID", ctx, "league-1").Return(ownedLeague(), nil).Once()

	coach := "Player 3"
	_, err := svc.UpdateTeam(ctx, owner, "team-1", UpdateTeamInput{Coach: &coach})
	assert.ErrorIs(t, err, ErrCoachInSquad)
	teams.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestTeamService_UploadTeamLogo(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects non-image", func(t *testing.T) {
		svc := NewTeamService(&mockTeamRepo{}, &mockLeagueRepo{}, &mockUploader{}, discardLogger())
		_, err := svc.UploadTeamLogo(ctx, owner, "team-1", strings.NewReader("%PDF"), "application/pdf")
		assert.ErrorIs(t, err, ErrUnsupportedMediaType)
	})

	t.Run("storage not configured", func(t *testing.T) {
		svc := NewTeamService(&mockTeamRepo{}, &mockLeagueRepo{}, nil, discardLogger())
		_, err := svc.UploadTeamLogo(ctx, owner, "team-1", strings.NewReader("png"), "image/png")
		assert.ErrorIs(t, err, ErrStorageUnavailable)
	})

	t.Run("replaces previous logo", func(t *testing.T) {
		leagues := &mockLeagueRepo{}
		teams := &mockTeamRepo{}
		uploader := &mockUploader{}
		svc := NewTeamService(teams, leagues, uploader, discardLogger())

		team := storedTeam()
		oldKey := "teams/team-1/logo-old"
		team.LogoKey = &oldKey

		teams.On("GetByID", ctx, "team-1").Return(team, nil).Once()
		leagues.On("GetByID", ctx, "league-1").Return(ownedLeague(), nil).Once()
		uploader.On("Upload", ctx, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "teams/team-1/logo-") && key != oldKey
		}), "image/png", mock.Anything).Return(&storage.UploadResult{}, nil).Once()
		teams.On("Update", ctx, mock.AnythingOfType("*models.Team")).Return(nil).Once()
		uploader.On("Delete", ctx, oldKey).Return(nil).Once()

		updated, err := svc.UploadTeamLogo(ctx, owner, "team-1", strings.NewReader("png"), "image/png")
		require.NoError(t, err)
		require.NotNil(t, updated.LogoURL)
		assert.True(t, strings.HasPrefix(*updated.LogoURL, "https://cdn.example.com/teams/team-1/logo-"))
		uploader.AssertExpectations(t)
	})
}

func TestTeamService_DeleteAllTeamsAcrossLeagues(t *testing.T) {
	ctx := context.Background()
	leagues := &mockLeagueRepo{}
	teams := &mockTeamRepo{}
	svc := NewTeamService(teams, leagues, nil, discardLogger())

	leagues.On("ListByAdmin", ctx, "admin-1").Return([]models.League{{ID: "l1"}, {ID: "l2"}}, nil).Once()
	teams.On("DeleteByLeague", ctx, mock.Anything, "l1").Return(int64(4), nil).Once()
	teams.On("DeleteByLeague", ctx, mock.Anything, "l2").Return(int64(6), nil).Once()

	n, err := svc.DeleteAllTeams(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(10), n)
}
