package models

import (
	"time"

	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/brackets"
)

// TeamRef references a team by its durable id and display name.
type TeamRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type League struct {
	ID          string          `json:"id" db:"id"`
	AdminID     string          `json:"admin_id" db:"admin_id"`
	Name        string          `json:"name" db:"name"`
	Format      brackets.Format `json:"league_format" db:"league_format"`
	NoOfTeams   int             `json:"no_of_teams" db:"no_of_teams"`
	NoOfMatches int             `json:"no_of_matches" db:"no_of_matches"`
	NoOfOvers   int             `json:"no_of_overs" db:"no_of_overs"`
	Teams       []TeamRef       `json:"teams" db:"teams"` // JSONB
	StartDate   time.Time       `json:"start_date" db:"start_date"`
	EndDate     time.Time       `json:"end_date" db:"end_date"`
	Venue       string          `json:"venue" db:"venue"`
	Umpires     []string        `json:"umpires" db:"umpires"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}

// TeamNames returns the league's team names in registration order.
func (l *League) TeamNames() []string {
	names := make([]string, len(l.Teams))
	for i, t := range l.Teams {
		names[i] = t.Name
	}
	return names
}

// LeagueDetails bundles a league with its teams and schedule.
type LeagueDetails struct {
	League  *League `json:"league"`
	Teams   []Team  `json:"teams"`
	Matches []Match `json:"matches"`
}
