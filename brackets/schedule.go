package brackets

import (
	"strings"
	"time"
)

// MatchHour is the local hour every generated fixture starts at.
const MatchHour = 10

type LeagueConfig struct {
	Teams             []string
	Format            Format
	Venue             string
	StartDate         time.Time
	EndDate           time.Time
	IncludeEliminator bool
	IncludeKnockouts  bool
}

// BuildSchedule generates the complete fixture list for a league: the league stage,
// the knockout bracket when requested, dates and match numbers. The result is in
// generation order, league fixtures first.
func BuildSchedule(cfg LeagueConfig) ([]Fixture, error) {
	if cfg.EndDate.Before(cfg.StartDate) {
		return nil, ErrInvalidDateRange
	}

	fixtures, err := GenerateLeagueFixtures(cfg.Teams, cfg.Format)
	if err != nil {
		return nil, err
	}

	if cfg.IncludeKnockouts {
		fixtures = append(fixtures, GenerateKnockout(cfg.Venue, cfg.IncludeEliminator, len(fixtures)+1)...)
	}

	AssignDates(cfg.StartDate, cfg.EndDate, fixtures)
	AssignNumbersAndTypes(fixtures, cfg.IncludeKnockouts)

	return fixtures, nil
}

// AssignDates spreads fixtures evenly from start, one every
// max(totalDays/len(fixtures), 1) days, each at MatchHour in start's location.
// Later fixtures may fall after end when there are more fixtures than days.
func AssignDates(start, end time.Time, fixtures []Fixture) {
	if len(fixtures) == 0 {
		return
	}

	loc := start.Location()
	totalDays := daysBetween(start, end) + 1
	interval := max(totalDays/len(fixtures), 1)

	for i := range fixtures {
		day := start.AddDate(0, 0, i*interval)
		fixtures[i].ScheduledDate = time.Date(day.Year(), day.Month(), day.Day(), MatchHour, 0, 0, 0, loc)
	}
}

// daysBetween counts whole days between the wall-clock readings of start and end in
// start's location, truncated toward zero.
func daysBetween(start, end time.Time) int {
	loc := start.Location()
	end = end.In(loc)

	s := time.Date(start.Year(), start.Month(), start.Day(), start.Hour(), start.Minute(), start.Second(), start.Nanosecond(), time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), end.Hour(), end.Minute(), end.Second(), end.Nanosecond(), time.UTC)

	return int(e.Sub(s) / (24 * time.Hour))
}

// AssignNumbersAndTypes numbers league fixtures 1..n in list order, then, when
// includeKnockouts is set, numbers the remaining fixtures after them and settles
// their knockout type.
func AssignNumbersAndTypes(fixtures []Fixture, includeKnockouts bool) {
	matchNo := 1

	for i := range fixtures {
		f := &fixtures[i]
		if isLeagueStage(f) {
			f.MatchNo = matchNo
			f.MatchType = MatchTypeLeague
			matchNo++
		}
	}

	if !includeKnockouts {
		return
	}

	knockoutIndex := 1
	for i := range fixtures {
		f := &fixtures[i]
		if f.MatchType == MatchTypeLeague {
			continue
		}
		f.MatchNo = matchNo
		matchNo++
		f.MatchType = classifyKnockout(f, &knockoutIndex)
	}
}

func isLeagueStage(f *Fixture) bool {
	return f.Slot == SlotNone && (f.MatchType == "" || f.MatchType == MatchTypeLeague)
}

// classifyKnockout returns the fixture's slot type when it is tagged, otherwise the
// type implied by its placeholder names. knockoutIndex counts Winner-vs-Winner
// fixtures: the first two are semi-finals, anything after is the final.
func classifyKnockout(f *Fixture, knockoutIndex *int) MatchType {
	inferred := f.MatchType

	switch {
	case strings.HasPrefix(f.Team1, "Loser") || strings.HasPrefix(f.Team2, "Loser"):
		inferred = MatchTypeEliminator
	case strings.HasPrefix(f.Team1, "Winner") && strings.HasPrefix(f.Team2, "Winner"):
		switch *knockoutIndex {
		case 1:
			inferred = MatchTypeSemiFinal1
		case 2:
			inferred = MatchTypeSemiFinal2
		default:
			inferred = MatchTypeFinal
		}
		*knockoutIndex++
	}

	if f.Slot != SlotNone {
		return f.Slot.MatchType()
	}
	return inferred
}
