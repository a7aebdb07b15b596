package brackets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/tournament-engine/models"
)

func findMatch(t *testing.T, matches []models.KnockoutMatch, id string) models.KnockoutMatch {
	t.Helper()
	for _, m := range matches {
		if m.ID == id {
			return m
		}
	}
	t.Fatalf("match %s not found", id)
	return models.KnockoutMatch{}
}

// fiveEntrants is a single-elimination bracket for a..e in seed order:
// a, b and c get byes, d plays e.
func fiveEntrants(t *testing.T) []models.KnockoutMatch {
	t.Helper()
	s := NewSingleEliminationGenerator().GenerateBracket(GenerateParams{
		Competitors: ids("a", "b", "c", "d", "e"),
		Source:      NoShuffle,
	})
	require.Equal(t, 3, s.KnockoutLevels)
	require.Len(t, s.Knockout, 7)
	return s.Knockout
}

func TestSingleElimination_ResolvesByes(t *testing.T) {
	ko := fiveEntrants(t)

	assert.Equal(t, models.CompetitorPtr("a"), findMatch(t, ko, "K0M0").Winner)
	assert.Nil(t, findMatch(t, ko, "K0M1").Winner)

	qf := findMatch(t, ko, "K1M0")
	assert.Equal(t, models.Concrete("a"), qf.Player1)
	assert.Equal(t, models.WinnerOf("K0M1"), qf.Player2)

	other := findMatch(t, ko, "K1M1")
	assert.Equal(t, models.Concrete("b"), other.Player1)
	assert.Equal(t, models.Concrete("c"), other.Player2)
	assert.True(t, other.Ready())
}

func TestAdvance_FillsNextMatch(t *testing.T) {
	ko := fiveEntrants(t)

	after, err := Advance(ko, models.KnockoutResult{MatchID: "K0M1", Winner: "e"})
	require.NoError(t, err)

	assert.Equal(t, models.Concrete("e"), findMatch(t, after, "K1M0").Player2)
	assert.Nil(t, findMatch(t, ko, "K0M1").Winner, "input must not change")
	assert.Equal(t, models.WinnerOf("K0M1"), findMatch(t, ko, "K1M0").Player2)

	after, err = Advance(after, models.KnockoutResult{MatchID: "K1M1", Winner: "c"})
	require.NoError(t, err)
	after, err = Advance(after, models.KnockoutResult{MatchID: "K1M0", Winner: "a"})
	require.NoError(t, err)

	final := findMatch(t, after, "K2M0")
	assert.Equal(t, models.Concrete("a"), final.Player1)
	assert.Equal(t, models.Concrete("c"), final.Player2)

	after, err = Advance(after, models.KnockoutResult{MatchID: "K2M0", Winner: "c"})
	require.NoError(t, err)
	loser, ok := findMatch(t, after, "K2M0").Loser()
	require.True(t, ok)
	assert.Equal(t, models.CompetitorID("a"), loser)
}

func TestAdvance_Errors(t *testing.T) {
	ko := fiveEntrants(t)
	decided, err := Advance(ko, models.KnockoutResult{MatchID: "K0M1", Winner: "d"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		matches []models.KnockoutMatch
		result  models.KnockoutResult
		wantErr error
	}{
		{"unknown match", ko, models.KnockoutResult{MatchID: "K9M9", Winner: "a"}, ErrMatchNotFound},
		{"bye match", ko, models.KnockoutResult{MatchID: "K0M0", Winner: "a"}, ErrByeMatch},
		{"feeder undecided", ko, models.KnockoutResult{MatchID: "K2M0", Winner: "a"}, ErrMatchNotReady},
		{"winner not playing", ko, models.KnockoutResult{MatchID: "K1M1", Winner: "a"}, ErrNotParticipant},
		{"different winner", decided, models.KnockoutResult{MatchID: "K0M1", Winner: "e"}, ErrMatchAlreadyDecided},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Advance(tt.matches, tt.result)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAdvance_SameWinnerTwice(t *testing.T) {
	ko := fiveEntrants(t)
	once, err := Advance(ko, models.KnockoutResult{MatchID: "K0M1", Winner: "d"})
	require.NoError(t, err)
	twice, err := Advance(once, models.KnockoutResult{MatchID: "K0M1", Winner: "d"})
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestAdvance_LoserSlot(t *testing.T) {
	ko := []models.KnockoutMatch{
		{ID: "SF1", Player1: models.Concrete("a"), Player2: models.Concrete("b")},
		{ID: "SF2", Player1: models.Concrete("c"), Player2: models.Concrete("d")},
		{ID: "BRONZE", Level: 1, Player1: models.LoserOf("SF1"), Player2: models.LoserOf("SF2")},
		{ID: "FINAL", Level: 1, SlotIndex: 1, Player1: models.WinnerOf("SF1"), Player2: models.WinnerOf("SF2")},
	}

	after, err := Advance(ko, models.KnockoutResult{MatchID: "SF1", Winner: "b"})
	require.NoError(t, err)
	assert.Equal(t, models.Concrete("a"), findMatch(t, after, "BRONZE").Player1)
	assert.Equal(t, models.Concrete("b"), findMatch(t, after, "FINAL").Player1)
}

func TestSeedKnockout(t *testing.T) {
	s := NewMultiStageGenerator(models.MultiStageSettings{KeepRosterOrder: true}).
		GenerateBracket(GenerateParams{Competitors: ids("a", "b", "c", "d", "e", "f", "g", "h")})

	standings := map[models.GroupKey][]models.GroupStanding{
		"A": {{Group: "A", Competitor: "c", Rank: 1}, {Group: "A", Competitor: "a", Rank: 2}},
		"B": {{Group: "B", Competitor: "f", Rank: 1}},
	}
	seeded := SeedKnockout(s.Knockout, standings)

	semi1, semi2 := findMatch(t, seeded, "K0M0"), findMatch(t, seeded, "K0M1")
	assert.Equal(t, models.Concrete("c"), semi1.Player1)
	assert.Equal(t, models.GroupRank("B", 2), semi1.Player2, "missing rank stays a placeholder")
	assert.Equal(t, models.Concrete("f"), semi2.Player1)
	assert.Equal(t, models.Concrete("a"), semi2.Player2)
	assert.Equal(t, models.GroupRank("A", 1), s.Knockout[0].Player1, "input must not change")
}

func TestSeedKnockout_ResolvesByes(t *testing.T) {
	ko := BuildKnockout([]models.Slot{
		models.GroupRank("A", 1),
		models.GroupRank("B", 1),
		models.GroupRank("A", 2),
	}, 3)
	standings := map[models.GroupKey][]models.GroupStanding{
		"A": {{Competitor: "x", Rank: 1}, {Competitor: "y", Rank: 2}},
		"B": {{Competitor: "z", Rank: 1}},
	}
	seeded := SeedKnockout(ko, standings)

	assert.Equal(t, models.CompetitorPtr("x"), findMatch(t, seeded, "K0M0").Winner)
	assert.Equal(t, models.Concrete("x"), findMatch(t, seeded, "K1M0").Player1)
}
