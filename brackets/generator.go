package brackets

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidFormat     = errors.New("invalid league format: choose SINGLE_ROUND_ROBIN, DOUBLE_ROUND_ROBIN or GROUP")
	ErrInsufficientTeams = errors.New("at least two teams are required to generate fixtures")
	ErrDuplicateTeam     = errors.New("team names must be non-empty and unique")
	ErrInvalidDateRange  = errors.New("league end date must not be before start date")
)

// Format selects how the league stage is paired.
type Format string

const (
	FormatSingleRoundRobin Format = "SINGLE_ROUND_ROBIN"
	FormatDoubleRoundRobin Format = "DOUBLE_ROUND_ROBIN"
	FormatGroup            Format = "GROUP"
)

func (f Format) Valid() bool {
	switch f {
	case FormatSingleRoundRobin, FormatDoubleRoundRobin, FormatGroup:
		return true
	}
	return false
}

type MatchType string

const (
	MatchTypeLeague     MatchType = "LEAGUE"
	MatchTypeEliminator MatchType = "ELIMINATOR"
	MatchTypeSemiFinal1 MatchType = "SEMI_FINAL_1"
	MatchTypeSemiFinal2 MatchType = "SEMI_FINAL_2"
	MatchTypeFinal      MatchType = "FINAL"
)

func (t MatchType) Valid() bool {
	switch t {
	case MatchTypeLeague, MatchTypeEliminator, MatchTypeSemiFinal1, MatchTypeSemiFinal2, MatchTypeFinal:
		return true
	}
	return false
}

// KnockoutSlot tags a fixture with its position in the knockout bracket.
// League-stage fixtures carry SlotNone.
type KnockoutSlot int

const (
	SlotNone KnockoutSlot = iota
	SlotEliminator
	SlotSemiFinal1
	SlotSemiFinal2
	SlotFinal
)

func (s KnockoutSlot) MatchType() MatchType {
	switch s {
	case SlotEliminator:
		return MatchTypeEliminator
	case SlotSemiFinal1:
		return MatchTypeSemiFinal1
	case SlotSemiFinal2:
		return MatchTypeSemiFinal2
	case SlotFinal:
		return MatchTypeFinal
	default:
		return MatchTypeLeague
	}
}

const StatusScheduled = "Scheduled"

// Fixture is one generated match. MatchNo and ScheduledDate are filled in by
// AssignNumbersAndTypes and AssignDates.
type Fixture struct {
	Team1         string
	Team2         string
	Venue         string
	Status        string
	MatchType     MatchType
	MatchNo       int
	ScheduledDate time.Time
	Slot          KnockoutSlot
}

// BracketGenerator produces the league stage for one format.
type BracketGenerator interface {
	GenerateFixtures(teams []string) ([]Fixture, error)

	GetName() string
}

// NewGenerator returns the generator for format or ErrInvalidFormat.
func NewGenerator(format Format) (BracketGenerator, error) {
	switch format {
	case FormatSingleRoundRobin:
		return NewRoundRobinGenerator(false), nil
	case FormatDoubleRoundRobin:
		return NewRoundRobinGenerator(true), nil
	case FormatGroup:
		return NewGroupGenerator(), nil
	default:
		return nil, fmt.Errorf("%w: got %q", ErrInvalidFormat, string(format))
	}
}

// GenerateLeagueFixtures runs the league-stage generator for format.
func GenerateLeagueFixtures(teams []string, format Format) ([]Fixture, error) {
	generator, err := NewGenerator(format)
	if err != nil {
		return nil, err
	}
	return generator.GenerateFixtures(teams)
}

func validateTeams(teams []string) error {
	if len(teams) < 2 {
		return fmt.Errorf("%w (found %d)", ErrInsufficientTeams, len(teams))
	}
	seen := make(map[string]struct{}, len(teams))
	for _, name := range teams {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			return fmt.Errorf("%w: blank team name", ErrDuplicateTeam)
		}
		if _, ok := seen[key]; ok {
			return fmt.Errorf("%w: %q appears more than once", ErrDuplicateTeam, name)
		}
		seen[key] = struct{}{}
	}
	return nil
}

func newLeagueFixture(team1, team2 string) Fixture {
	return Fixture{
		Team1:     team1,
		Team2:     team2,
		Status:    StatusScheduled,
		MatchType: MatchTypeLeague,
	}
}
