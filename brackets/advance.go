package brackets

import (
	"fmt"
	"slices"

	"github.com/Dosada05/tournament-engine/models"
)

// Advance records the winner of a knockout match and fills every slot that
// waits on its outcome. The input slice is left untouched.
func Advance(matches []models.KnockoutMatch, result models.KnockoutResult) ([]models.KnockoutMatch, error) {
	idx := slices.IndexFunc(matches, func(m models.KnockoutMatch) bool { return m.ID == result.MatchID })
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, result.MatchID)
	}

	m := matches[idx]
	if m.IsBye() {
		return nil, fmt.Errorf("%w: %s", ErrByeMatch, m.ID)
	}
	if !m.Ready() {
		return nil, fmt.Errorf("%w: %s (%s vs %s)", ErrMatchNotReady, m.ID, m.Player1.Label(), m.Player2.Label())
	}
	if m.Player1.Competitor != result.Winner && m.Player2.Competitor != result.Winner {
		return nil, fmt.Errorf("%w: %s in %s", ErrNotParticipant, result.Winner, m.ID)
	}
	if m.Winner != nil {
		if *m.Winner == result.Winner {
			return slices.Clone(matches), nil
		}
		return nil, fmt.Errorf("%w: %s already won %s", ErrMatchAlreadyDecided, *m.Winner, m.ID)
	}

	out := slices.Clone(matches)
	out[idx].Winner = models.CompetitorPtr(result.Winner)
	loser, _ := out[idx].Loser()
	fillOutcome(out, m.ID, models.Concrete(result.Winner), models.Concrete(loser))

	return ResolveByes(out), nil
}

// ResolveByes decides every match where a known competitor faces a bye and
// pushes that competitor on to the next match. Loser slots fed by a bye become byes.
func ResolveByes(matches []models.KnockoutMatch) []models.KnockoutMatch {
	out := slices.Clone(matches)
	for changed := true; changed; {
		changed = false
		for i := range out {
			m := out[i]
			if m.Winner != nil || !m.IsBye() {
				continue
			}
			through := m.Player1
			if through.IsBye() {
				through = m.Player2
			}
			if !through.IsResolved() {
				continue
			}
			out[i].Winner = models.CompetitorPtr(through.Competitor)
			fillOutcome(out, m.ID, through, models.ByeSlot())
			changed = true
		}
	}
	return out
}

// SeedKnockout replaces group-rank placeholders with the competitors that
// finished there. Ranks without a standing stay placeholders.
func SeedKnockout(matches []models.KnockoutMatch, standings map[models.GroupKey][]models.GroupStanding) []models.KnockoutMatch {
	out := slices.Clone(matches)
	seed := func(s models.Slot) models.Slot {
		if s.Kind != models.SlotGroupRank {
			return s
		}
		for _, row := range standings[s.Group] {
			if row.Rank == s.Rank {
				return models.Concrete(row.Competitor)
			}
		}
		return s
	}
	for i := range out {
		out[i].Player1 = seed(out[i].Player1)
		out[i].Player2 = seed(out[i].Player2)
	}
	return ResolveByes(out)
}

func fillOutcome(matches []models.KnockoutMatch, sourceID string, winner, loser models.Slot) {
	fill := func(s models.Slot) models.Slot {
		if s.Kind != models.SlotMatchOutcome || s.SourceMatchID != sourceID {
			return s
		}
		if s.Outcome == models.OutcomeLoser {
			return loser
		}
		return winner
	}
	for i := range matches {
		matches[i].Player1 = fill(matches[i].Player1)
		matches[i].Player2 = fill(matches[i].Player2)
	}
}
