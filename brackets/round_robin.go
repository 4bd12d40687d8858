package brackets

// byeSlot marks the padding position added when a round has an odd number of teams.
// Pairings against it are dropped, so the name "BYE" never reaches callers.
const byeSlot = -1

type RoundRobinGenerator struct {
	doubleRound bool
}

func NewRoundRobinGenerator(doubleRound bool) BracketGenerator {
	return &RoundRobinGenerator{doubleRound: doubleRound}
}

func (g *RoundRobinGenerator) GetName() string {
	if g.doubleRound {
		return "DoubleRoundRobin"
	}
	return "SingleRoundRobin"
}

// GenerateFixtures creates the league stage for a round-robin league.
// For a single round-robin every team meets every other team once; for a double
// round-robin the reverse fixture follows each pairing immediately.
func (g *RoundRobinGenerator) GenerateFixtures(teams []string) ([]Fixture, error) {
	if err := validateTeams(teams); err != nil {
		return nil, err
	}
	return roundRobin(teams, g.doubleRound), nil
}

type GroupGenerator struct{}

func NewGroupGenerator() BracketGenerator {
	return &GroupGenerator{}
}

func (g *GroupGenerator) GetName() string {
	return "Group"
}

// GenerateFixtures splits teams by index parity (even positions form group A, odd
// positions group B) and plays a single round-robin inside each group. Teams from
// different groups never meet in the league stage.
func (g *GroupGenerator) GenerateFixtures(teams []string) ([]Fixture, error) {
	if err := validateTeams(teams); err != nil {
		return nil, err
	}

	groupA, groupB := splitByParity(teams)

	fixtures := roundRobin(groupA, false)
	fixtures = append(fixtures, roundRobin(groupB, false)...)
	return fixtures, nil
}

func splitByParity(teams []string) (groupA, groupB []string) {
	groupA = make([]string, 0, (len(teams)+1)/2)
	groupB = make([]string, 0, len(teams)/2)
	for i, name := range teams {
		if i%2 == 0 {
			groupA = append(groupA, name)
		} else {
			groupB = append(groupB, name)
		}
	}
	return groupA, groupB
}

func roundRobin(teams []string, doubleRound bool) []Fixture {
	pairs := circlePairings(len(teams))

	size := len(pairs)
	if doubleRound {
		size *= 2
	}
	fixtures := make([]Fixture, 0, size)

	for _, p := range pairs {
		fixtures = append(fixtures, newLeagueFixture(teams[p[0]], teams[p[1]]))
		if doubleRound {
			fixtures = append(fixtures, newLeagueFixture(teams[p[1]], teams[p[0]]))
		}
	}
	return fixtures
}

// circlePairings returns index pairs for n teams using the circle method: slot 0
// stays fixed while the remaining slots rotate one step per round. Each pair is
// ordered so the smaller input index comes first.
func circlePairings(n int) [][2]int {
	if n < 2 {
		return nil
	}

	slots := make([]int, n, n+1)
	for i := range slots {
		slots[i] = i
	}
	if len(slots)%2 == 1 {
		slots = append(slots, byeSlot)
	}

	size := len(slots)
	rounds := size - 1
	half := size / 2

	pairs := make([][2]int, 0, n*(n-1)/2)
	for r := 0; r < rounds; r++ {
		for i := 0; i < half; i++ {
			home, away := slots[i], slots[size-1-i]
			if home == byeSlot || away == byeSlot {
				continue
			}
			if home > away {
				home, away = away, home
			}
			pairs = append(pairs, [2]int{home, away})
		}

		last := slots[size-1]
		copy(slots[2:], slots[1:size-1])
		slots[1] = last
	}
	return pairs
}
