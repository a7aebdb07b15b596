package brackets

import (
	"fmt"
	"math/bits"

	"github.com/Dosada05/tournament-engine/models"
)

type SingleEliminationGenerator struct{}

func NewSingleEliminationGenerator() *SingleEliminationGenerator {
	return &SingleEliminationGenerator{}
}

func (g *SingleEliminationGenerator) GetName() models.BracketType {
	return models.BracketSingleElimination
}

// GenerateBracket seeds the shuffled roster straight into a knockout bracket.
// Competitors drawn against a bye are advanced immediately.
func (g *SingleEliminationGenerator) GenerateBracket(params GenerateParams) *Schedule {
	roster := shuffled(params.Competitors, params.Source)
	knockout := ResolveByes(BuildKnockout(SeedsFromRoster(roster), 0))
	levels := KnockoutLevels(knockout)
	return &Schedule{
		Matches:        []models.ScheduledMatch{},
		Knockout:       knockout,
		KnockoutLevels: levels,
		NumRounds:      levels,
	}
}

func SeedsFromRoster(roster []models.CompetitorID) []models.Slot {
	seeds := make([]models.Slot, len(roster))
	for i, id := range roster {
		seeds[i] = models.Concrete(id)
	}
	return seeds
}

// BuildKnockout lays seeds into a balanced single-elimination bracket.
//
// The bracket is padded with byes up to the next power of two. Seeds are placed
// in standard order (1 vs N, 2 vs N-1, ...) so byes always face the top seeds
// and two byes never meet. Every match above level 0 takes the winners of the
// two matches below it. Rounds start at firstRound and grow by one per level.
func BuildKnockout(seeds []models.Slot, firstRound int) []models.KnockoutMatch {
	n := len(seeds)
	if n < 2 {
		return []models.KnockoutMatch{}
	}

	size := nextPowerOfTwo(n)
	numLevels := bits.Len(uint(size)) - 1

	entrants := make([]models.Slot, size)
	for pos, seed := range seedingOrder(size) {
		if seed < n {
			entrants[pos] = seeds[seed]
		} else {
			entrants[pos] = models.ByeSlot()
		}
	}

	matches := make([]models.KnockoutMatch, 0, size-1)
	prevIDs := make([]string, 0, size/2)
	for slot := 0; slot < size/2; slot++ {
		id := knockoutMatchID(0, slot)
		matches = append(matches, models.KnockoutMatch{
			ID:        id,
			Level:     0,
			SlotIndex: slot,
			Round:     firstRound,
			Stage:     models.StageKnockout,
			Player1:   entrants[2*slot],
			Player2:   entrants[2*slot+1],
		})
		prevIDs = append(prevIDs, id)
	}

	for level := 1; level < numLevels; level++ {
		ids := make([]string, 0, len(prevIDs)/2)
		for slot := 0; slot < len(prevIDs)/2; slot++ {
			id := knockoutMatchID(level, slot)
			matches = append(matches, models.KnockoutMatch{
				ID:        id,
				Level:     level,
				SlotIndex: slot,
				Round:     firstRound + level,
				Stage:     models.StageKnockout,
				Player1:   models.WinnerOf(prevIDs[2*slot]),
				Player2:   models.WinnerOf(prevIDs[2*slot+1]),
			})
			ids = append(ids, id)
		}
		prevIDs = ids
	}

	return matches
}

// KnockoutLevels counts the distinct levels of a bracket.
func KnockoutLevels(matches []models.KnockoutMatch) int {
	levels := 0
	for _, m := range matches {
		if m.Level+1 > levels {
			levels = m.Level + 1
		}
	}
	return levels
}

func knockoutMatchID(level, slot int) string {
	return fmt.Sprintf("K%dM%d", level, slot)
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// seedingOrder returns, for each bracket position, the 0-based seed placed there.
// For size 8 that is 1v8, 4v5, 2v7, 3v6.
func seedingOrder(size int) []int {
	order := []int{0}
	for len(order) < size {
		next := make([]int, 0, 2*len(order))
		last := 2*len(order) - 1
		for _, seed := range order {
			next = append(next, seed, last-seed)
		}
		order = next
	}
	return order
}
