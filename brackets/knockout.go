package brackets

// Placeholder names stand in for teams that are only known once earlier rounds finish.
// They are resolved by whoever records results, never by the scheduler.
const (
	PlaceholderLoser3      = "Loser3"
	PlaceholderLoser4      = "Loser4"
	PlaceholderWinner1     = "Winner1"
	PlaceholderWinner2     = "Winner2"
	PlaceholderWinner3     = "Winner3"
	PlaceholderWinner4     = "Winner4"
	PlaceholderWinnerSemi1 = "WinnerSemi1"
	PlaceholderWinnerSemi2 = "WinnerSemi2"
)

// IsPlaceholder reports whether name is one of the knockout placeholder names.
func IsPlaceholder(name string) bool {
	switch name {
	case PlaceholderLoser3, PlaceholderLoser4,
		PlaceholderWinner1, PlaceholderWinner2, PlaceholderWinner3, PlaceholderWinner4,
		PlaceholderWinnerSemi1, PlaceholderWinnerSemi2:
		return true
	}
	return false
}

type knockoutTemplate struct {
	slot  KnockoutSlot
	team1 string
	team2 string
}

var knockoutBracket = []knockoutTemplate{
	{slot: SlotEliminator, team1: PlaceholderLoser3, team2: PlaceholderLoser4},
	{slot: SlotSemiFinal1, team1: PlaceholderWinner1, team2: PlaceholderWinner4},
	{slot: SlotSemiFinal2, team1: PlaceholderWinner2, team2: PlaceholderWinner3},
	{slot: SlotFinal, team1: PlaceholderWinnerSemi1, team2: PlaceholderWinnerSemi2},
}

// GenerateKnockout appends the fixed four-qualifier bracket: an optional eliminator,
// two semi-finals and the final. Match numbers start at startingMatchNo and are
// provisional until AssignNumbersAndTypes runs.
func GenerateKnockout(venue string, includeEliminator bool, startingMatchNo int) []Fixture {
	fixtures := make([]Fixture, 0, len(knockoutBracket))
	matchNo := startingMatchNo

	for _, t := range knockoutBracket {
		if t.slot == SlotEliminator && !includeEliminator {
			continue
		}
		fixtures = append(fixtures, Fixture{
			Team1:     t.team1,
			Team2:     t.team2,
			Venue:     venue,
			Status:    StatusScheduled,
			MatchType: t.slot.MatchType(),
			MatchNo:   matchNo,
			Slot:      t.slot,
		})
		matchNo++
	}
	return fixtures
}
