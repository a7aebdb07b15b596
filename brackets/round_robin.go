package brackets

import (
	"github.com/Dosada05/tournament-engine/models"
)

type RoundRobinGenerator struct {
	settings models.RoundRobinSettings
}

func NewRoundRobinGenerator(settings models.RoundRobinSettings) *RoundRobinGenerator {
	return &RoundRobinGenerator{settings: settings.Normalized()}
}

func (s *RoundRobinGenerator) GetName() models.BracketType {
	return models.BracketRoundRobin
}

func (s *RoundRobinGenerator) GenerateBracket(params GenerateParams) *Schedule {
	matches, numRounds := s.Generate(params.Competitors, params.Source)
	return &Schedule{
		Matches:     matches,
		GroupRounds: numRounds,
		NumRounds:   numRounds,
	}
}

// Generate creates matches for a round-robin tournament using the circle method.
// For a single round-robin, each participant plays every other participant once.
// For a double round-robin, the second leg repeats the first with sides swapped.
//
// Rounds are 0-based. With an odd roster every round holds exactly one bye
// (Player2 == nil). Duplicate competitors are the caller's responsibility.
func (s *RoundRobinGenerator) Generate(competitors []models.CompetitorID, src Shuffler) ([]models.ScheduledMatch, int) {
	roster := shuffled(competitors, src)
	matches, numRounds := circleRounds(roster)

	if s.settings.NumberOfRounds == 2 && numRounds > 0 {
		matches = appendSecondLeg(matches, numRounds)
		numRounds *= 2
	}
	return matches, numRounds
}

// circleRounds pairs the roster in its given order. Slot 0 stays fixed while the
// others rotate one position per round; an odd roster gets a virtual bye slot.
func circleRounds(roster []models.CompetitorID) ([]models.ScheduledMatch, int) {
	n := len(roster)
	switch n {
	case 0:
		return []models.ScheduledMatch{}, 0
	case 1:
		// Nobody to play against.
		return []models.ScheduledMatch{{Round: 0, Player1: roster[0]}}, 0
	}

	slots := make([]*models.CompetitorID, 0, n+1)
	for i := range roster {
		slots = append(slots, &roster[i])
	}
	if n%2 == 1 {
		slots = append(slots, nil)
	}

	m := len(slots)
	numRounds := m - 1
	matches := make([]models.ScheduledMatch, 0, numRounds*m/2)

	for round := 0; round < numRounds; round++ {
		if round > 0 {
			last := slots[m-1]
			copy(slots[2:], slots[1:m-1])
			slots[1] = last
		}

		for i := 0; i < m/2; i++ {
			a, b := slots[i], slots[m-1-i]
			switch {
			case a == nil:
				matches = append(matches, models.ScheduledMatch{Round: round, Player1: *b})
			case b == nil:
				matches = append(matches, models.ScheduledMatch{Round: round, Player1: *a})
			default:
				matches = append(matches, models.ScheduledMatch{
					Round:   round,
					Player1: *a,
					Player2: models.CompetitorPtr(*b),
				})
			}
		}
	}

	return matches, numRounds
}

func appendSecondLeg(firstLeg []models.ScheduledMatch, legRounds int) []models.ScheduledMatch {
	out := make([]models.ScheduledMatch, 0, 2*len(firstLeg))
	out = append(out, firstLeg...)
	for _, m := range firstLeg {
		second := m
		second.Round = m.Round + legRounds
		if !m.IsBye() {
			second.Player1 = *m.Player2
			second.Player2 = models.CompetitorPtr(m.Player1)
		}
		out = append(out, second)
	}
	return out
}
