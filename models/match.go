package models

import (
	"time"

	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/brackets"
)

type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = brackets.StatusScheduled
	MatchStatusOngoing   MatchStatus = "Ongoing"
	MatchStatusCompleted MatchStatus = "Completed"
)

func (s MatchStatus) Valid() bool {
	switch s {
	case MatchStatusScheduled, MatchStatusOngoing, MatchStatusCompleted:
		return true
	}
	return false
}

type Match struct {
	ID            string             `json:"id" db:"id"`
	LeagueID      string             `json:"league_id" db:"league_id"`
	Team1         string             `json:"team1" db:"team1"`
	Team2         string             `json:"team2" db:"team2"`
	Venue         string             `json:"venue,omitempty" db:"venue"`
	Status        MatchStatus        `json:"status" db:"status"`
	MatchType     brackets.MatchType `json:"match_type" db:"match_type"`
	MatchNo       int                `json:"match_no" db:"match_no"`
	ScheduledDate time.Time          `json:"scheduled_date" db:"scheduled_date"`
	MatchOvers    *int               `json:"match_overs,omitempty" db:"match_overs"`
	CreatedAt     time.Time          `json:"created_at" db:"created_at"`
}

// MatchFromFixture converts a generated fixture into a storable match for leagueID.
func MatchFromFixture(leagueID string, f brackets.Fixture) Match {
	return Match{
		LeagueID:      leagueID,
		Team1:         f.Team1,
		Team2:         f.Team2,
		Venue:         f.Venue,
		Status:        MatchStatus(f.Status),
		MatchType:     f.MatchType,
		MatchNo:       f.MatchNo,
		ScheduledDate: f.ScheduledDate,
	}
}
