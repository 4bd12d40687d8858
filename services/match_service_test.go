package services

import (
	"context"
	"testing"
	"time"

	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/brackets"
	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/models"
	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func matchLeague() *models.League {
	return &models.League{
		ID:      "league-1",
		AdminID: owner.AdminID,
		Teams: []models.TeamRef{
			{ID: "t1", Name: "Lions"},
			{ID: "t2", Name: "Tigers"},
		},
	}
}

var kickoff = time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)

func TestMatchService_CreateMatchDefaults(t *testing.T) {
	ctx := context.Background()
	leagues := &mockLeagueRepo{}
	matches := &mockMatchRepo{}
	hub := &recordingHub{}
	svc := NewMatchService(matches, leagues, hub, discardLogger())

	leagues.On("GetByID", ctx, "league-1").Return(matchLeague(), nil).Once()
	matches.On("ListByLeague", ctx, "league-1").Return([]models.Match{{MatchNo: 1}, {MatchNo: 7}, {MatchNo: 3}}, nil).Once()
	matches.On("Create", ctx, mock.Anything, mock.AnythingOfType("*models.Match")).Return(nil).Once()

	match, err := svc.CreateMatch(ctx, owner, CreateMatchInput{
		LeagueID:      "league-1",
		Team1:         "lions",
		Team2:         "Tigers",
		ScheduledDate: kickoff,
	})
	require.NoError(t, err)
	assert.Equal(t, 8, match.MatchNo)
	assert.Equal(t, models.MatchStatusScheduled, match.Status)
	assert.Equal(t, brackets.MatchTypeLeague, match.MatchType)
	assert.Equal(t, []string{"league_league-1"}, hub.rooms)
}

func TestMatchService_CreateMatchValidation(t *testing.T) {
	ctx := context.Background()
	badStatus := models.MatchStatus("Abandoned")

	tests := []struct {
		name  string
		input CreateMatchInput
		want  error
	}{
		{"same teams", CreateMatchInput{Team1: "Lions", Team2: " lions ", ScheduledDate: kickoff}, ErrSameTeams},
		{"team outside league", CreateMatchInput{Team1: "Lions", Team2: "Eagles", ScheduledDate: kickoff}, ErrTeamNotInLeague},
		{"placeholder in league match", CreateMatchInput{Team1: "Winner1", Team2: "Lions", ScheduledDate: kickoff}, ErrTeamNotInLeague},
		{"unknown status", CreateMatchInput{Team1: "Lions", Team2: "Tigers", Status: badStatus, ScheduledDate: kickoff}, ErrInvalidMatchStatus},
		{"unknown type", CreateMatchInput{Team1: "Lions", Team2: "Tigers", MatchType: "QUARTER", ScheduledDate: kickoff}, ErrInvalidMatchType},
		{"missing date", CreateMatchInput{Team1: "Lions", Team2: "Tigers"}, ErrValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			leagues := &mockLeagueRepo{}
			matches := &mockMatchRepo{}
			svc := NewMatchService(matches, leagues, nil, discardLogger())
			leagues.On("GetByID", ctx, "league-1").Return(matchLeague(), nil).Once()

			tt.input.LeagueID = "league-1"
			_, err := svc.CreateMatch(ctx, owner, tt.input)
			assert.ErrorIs(t, err, tt.want)
			matches.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestMatchService_CreateKnockoutWithPlaceholders(t *testing.T) {
	ctx := context.Background()
	leagues := &mockLeagueRepo{}
	matches := &mockMatchRepo{}
	svc := NewMatchService(matches, leagues, nil, discardLogger())

	leagues.On("GetByID", ctx, "league-1").Return(matchLeague(), nil).Once()
	matches.On("Create", ctx, mock.Anything, mock.AnythingOfType("*models.Match")).Return(nil).Once()

	no := 12
	match, err := svc.CreateMatch(ctx, owner, CreateMatchInput{
		LeagueID:      "league-1",
		Team1:         brackets.PlaceholderWinnerSemi1,
		Team2:         brackets.PlaceholderWinnerSemi2,
		MatchType:     brackets.MatchTypeFinal,
		MatchNo:       &no,
		ScheduledDate: kickoff,
	})
	require.NoError(t, err)
	assert.Equal(t, 12, match.MatchNo)
	matches.AssertNotCalled(t, "ListByLeague", mock.Anything, mock.Anything)
}

func TestMatchService_UpdateMatch(t *testing.T) {
	ctx := context.Background()

	t.Run("marks completed", func(t *testing.T) {
		leagues := &mockLeagueRepo{}
		matches := &mockMatchRepo{}
		hub := &recordingHub{}
		svc := NewMatchService(matches, leagues, hub, discardLogger())

		stored := &models.Match{ID: "m1", LeagueID: "league-1", Team1: "Lions", Team2: "Tigers",
			Status: models.MatchStatusScheduled, MatchType: brackets.MatchTypeLeague, MatchNo: 1, ScheduledDate: kickoff}
		matches.On("GetByID", ctx, "m1").Return(stored, nil).Once()
		leagues.On("GetByID", ctx, "league-1").Return(matchLeague(), nil).Once()
		matches.On("Update", ctx, mock.MatchedBy(func(m *models.Match) bool {
			return m.Status == models.MatchStatusCompleted
		})).Return(nil).Once()

		status := models.MatchStatusCompleted
		updated, err := svc.UpdateMatch(ctx, owner, "m1", UpdateMatchInput{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, models.MatchStatusCompleted, updated.Status)
		require.Len(t, hub.messages, 1)
		msg, ok := hub.messages[0].(brackets.WebSocketMessage)
		require.True(t, ok)
		assert.Equal(t, EventMatchUpdated, msg.Type)
	})

	t.Run("number already used", func(t *testing.T) {
		leagues := &mockLeagueRepo{}
		matches := &mockMatchRepo{}
		svc := NewMatchService(matches, leagues, nil, discardLogger())

		stored := &models.Match{ID: "m1", LeagueID: "league-1", Team1: "Lions", Team2: "Tigers",
			Status: models.MatchStatusScheduled, MatchType: brackets.MatchTypeLeague, MatchNo: 1, ScheduledDate: kickoff}
		matches.On("GetByID", ctx, "m1").Return(stored, nil).Once()
		leagues.On("GetByID", ctx, "league-1").Return(matchLeague(), nil).Once()
		matches.On("Update", ctx, mock.Anything).Return(repositories.ErrMatchNumberConflict).Once()

		no := 2
		_, err := svc.UpdateMatch(ctx, owner, "m1", UpdateMatchInput{MatchNo: &no})
		assert.ErrorIs(t, err, ErrMatchNumberConflict)
	})

	t.Run("foreign league", func(t *testing.T) {
		leagues := &mockLeagueRepo{}
		matches := &mockMatchRepo{}
		svc := NewMatchService(matches, leagues, nil, discardLogger())

		matches.On("GetByID", ctx, "m1").Return(&models.Match{ID: "m1", LeagueID: "league-1"}, nil).Once()
		leagues.On("GetByID", ctx, "league-1").Return(&models.League{ID: "league-1", AdminID: "other"}, nil).Once()

		_, err := svc.UpdateMatch(ctx, owner, "m1", UpdateMatchInput{})
		assert.ErrorIs(t, err, ErrForbiddenOperation)
	})
}

func TestMatchService_DeleteMatch(t *testing.T) {
	ctx := context.Background()
	leagues := &mockLeagueRepo{}
	matches := &mockMatchRepo{}
	hub := &recordingHub{}
	svc := NewMatchService(matches, leagues, hub, discardLogger())

	matches.On("GetByID", ctx, "m1").Return(&models.Match{ID: "m1", LeagueID: "league-1"}, nil).Once()
	leagues.On("GetByID", ctx, "league-1").Return(matchLeague(), nil).Once()
	matches.On("Delete", ctx, "m1").Return(nil).Once()

	require.NoError(t, svc.DeleteMatch(ctx, owner, "m1"))
	assert.Equal(t, []string{"league_league-1"}, hub.rooms)
	matches.AssertExpectations(t)
}

func TestMatchService_ListMatchesByUnknownLeague(t *testing.T) {
	ctx := context.Background()
	leagues := &mockLeagueRepo{}
	svc := NewMatchService(&mockMatchRepo{}, leagues, nil, discardLogger())

	leagues.On("GetByID", ctx, "missing").Return(nil, repositories.ErrLeagueNotFound).Once()

	_, err := svc.ListMatchesByLeague(ctx, "missing")
	assert.ErrorIs(t, err, ErrLeagueNotFound)
}
