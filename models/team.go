package models

import "time"

type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

type Team struct {
	ID          string    `json:"id" db:"id"`
	LeagueID    string    `json:"league_id" db:"league_id"`
	Name        string    `json:"name" db:"name"`
	Coach       string    `json:"coach" db:"coach"`
	Squad       []Player  `json:"squad" db:"squad"` // JSONB
	Captain     *Player   `json:"captain,omitempty" db:"captain"`
	ViceCaptain *Player   `json:"vice_captain,omitempty" db:"vice_captain"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo_url,omitempty" db:"-"`
}
