package brackets

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func teamNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("T%d", i+1)
	}
	return names
}

func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "|" + b
}

func TestRoundRobinFixtureCounts(t *testing.T) {
	for n := 2; n <= 11; n++ {
		t.Run(fmt.Sprintf("%d teams", n), func(t *testing.T) {
			single, err := GenerateLeagueFixtures(teamNames(n), FormatSingleRoundRobin)
			require.NoError(t, err)
			assert.Len(t, single, n*(n-1)/2)

			double, err := GenerateLeagueFixtures(teamNames(n), FormatDoubleRoundRobin)
			require.NoError(t, err)
			assert.Len(t, double, n*(n-1))
		})
	}
}

func TestSingleRoundRobinCoversEveryPairOnce(t *testing.T) {
	for _, n := range []int{2, 3, 4, 5, 6, 7, 8} {
		teams := teamNames(n)
		index := make(map[string]int, n)
		for i, name := range teams {
			index[name] = i
		}

		fixtures, err := GenerateLeagueFixtures(teams, FormatSingleRoundRobin)
		require.NoError(t, err)

		seen := make(map[string]int)
		for _, f := range fixtures {
			assert.NotEqual(t, "BYE", f.Team1)
			assert.NotEqual(t, "BYE", f.Team2)
			assert.False(t, strings.EqualFold(f.Team1, f.Team2), "self fixture %s v %s", f.Team1, f.Team2)
			assert.Less(t, index[f.Team1], index[f.Team2], "earlier team should be team1")
			assert.Equal(t, StatusScheduled, f.Status)
			assert.Equal(t, MatchTypeLeague, f.MatchType)
			seen[pairKey(f.Team1, f.Team2)]++
		}

		assert.Len(t, seen, n*(n-1)/2)
		for pair, count := range seen {
			assert.Equal(t, 1, count, "pair %s", pair)
		}
	}
}

func TestDoubleRoundRobinMirrorsEachFixture(t *testing.T) {
	teams := teamNames(5)

	fixtures, err := GenerateLeagueFixtures(teams, FormatDoubleRoundRobin)
	require.NoError(t, err)
	require.Len(t, fixtures, 20)

	ordered := make(map[string]int)
	for i := 0; i < len(fixtures); i += 2 {
		first, second := fixtures[i], fixtures[i+1]
		assert.Equal(t, first.Team1, second.Team2)
		assert.Equal(t, first.Team2, second.Team1)
		ordered[first.Team1+">"+first.Team2]++
		ordered[second.Team1+">"+second.Team2]++
	}

	for i := 0; i < len(teams); i++ {
		for j := i + 1; j < len(teams); j++ {
			assert.Equal(t, 1, ordered[teams[i]+">"+teams[j]])
			assert.Equal(t, 1, ordered[teams[j]+">"+teams[i]])
		}
	}
}

func TestGroupFormatKeepsGroupsApart(t *testing.T) {
	teams := teamNames(6)
	groupA := map[string]bool{"T1": true, "T3": true, "T5": true}

	fixtures, err := GenerateLeagueFixtures(teams, FormatGroup)
	require.NoError(t, err)
	require.Len(t, fixtures, 6)

	for i, f := range fixtures {
		assert.Equal(t, groupA[f.Team1], groupA[f.Team2], "cross-group fixture %s v %s", f.Team1, f.Team2)
		if i < 3 {
			assert.True(t, groupA[f.Team1], "group A fixtures come first")
		} else {
			assert.False(t, groupA[f.Team1], "group B fixtures come second")
		}
	}
}

func TestGroupFormatUnevenSplit(t *testing.T) {
	fixtures, err := GenerateLeagueFixtures(teamNames(5), FormatGroup)
	require.NoError(t, err)
	// group A: T1 T3 T5 (3 fixtures), group B: T2 T4 (1 fixture)
	require.Len(t, fixtures, 4)
	assert.Equal(t, Fixture{Team1: "T2", Team2: "T4", Status: StatusScheduled, MatchType: MatchTypeLeague}, fixtures[3])

	fixtures, err = GenerateLeagueFixtures(teamNames(2), FormatGroup)
	require.NoError(t, err)
	assert.Empty(t, fixtures)
}

func TestGenerateLeagueFixturesIsDeterministic(t *testing.T) {
	teams := []string{"Lions", "Tigers", "Eagles", "Sharks", "Wolves", "Bears", "Hawks"}
	for _, format := range []Format{FormatSingleRoundRobin, FormatDoubleRoundRobin, FormatGroup} {
		first, err := GenerateLeagueFixtures(teams, format)
		require.NoError(t, err)
		second, err := GenerateLeagueFixtures(teams, format)
		require.NoError(t, err)
		assert.Equal(t, first, second, "format %s", format)
	}
}

func TestGenerateLeagueFixturesRejectsBadInput(t *testing.T) {
	tests := []struct {
		name      string
		teams     []string
		format    Format
		targetErr error
	}{
		{name: "unknown format", teams: teamNames(4), format: "KNOCKOUT_ONLY", targetErr: ErrInvalidFormat},
		{name: "empty format", teams: teamNames(4), format: "", targetErr: ErrInvalidFormat},
		{name: "one team", teams: teamNames(1), format: FormatSingleRoundRobin, targetErr: ErrInsufficientTeams},
		{name: "no teams", teams: nil, format: FormatGroup, targetErr: ErrInsufficientTeams},
		{name: "duplicate ignoring case", teams: []string{"Lions", "lions", "Tigers"}, format: FormatSingleRoundRobin, targetErr: ErrDuplicateTeam},
		{name: "blank name", teams: []string{"Lions", "  "}, format: FormatDoubleRoundRobin, targetErr: ErrDuplicateTeam},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fixtures, err := GenerateLeagueFixtures(tc.teams, tc.format)
			require.ErrorIs(t, err, tc.targetErr)
			assert.Nil(t, fixtures)
		})
	}
}

func TestCirclePairingsHandlesByeSlot(t *testing.T) {
	pairs := circlePairings(3)
	assert.Equal(t, [][2]int{{1, 2}, {0, 2}, {0, 1}}, pairs)

	assert.Nil(t, circlePairings(1))
	assert.Nil(t, circlePairings(0))
}

func TestNewGeneratorNames(t *testing.T) {
	g, err := NewGenerator(FormatDoubleRoundRobin)
	require.NoError(t, err)
	assert.Equal(t, "DoubleRoundRobin", g.GetName())

	g, err = NewGenerator(FormatGroup)
	require.NoError(t, err)
	assert.Equal(t, "Group", g.GetName())

	assert.True(t, FormatSingleRoundRobin.Valid())
	assert.False(t, Format("single_round_robin").Valid())
}
