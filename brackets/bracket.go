package brackets

import (
	"math/rand/v2"

	"github.com/Dosada05/tournament-engine/models"
)

// Shuffler permutes a sequence in place. *rand.Rand from both math/rand and
// math/rand/v2 satisfy it. Sources are not safe for concurrent use, so every
// Generate call should get its own.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

type noShuffle struct{}

func (noShuffle) Shuffle(int, func(i, j int)) {}

// NoShuffle keeps the roster in the order it was given.
var NoShuffle Shuffler = noShuffle{}

// NewSeededSource returns a deterministic source: the same seed always yields the same schedule.
func NewSeededSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewRandomSource returns a freshly seeded source together with its seed,
// so callers can log or echo the seed and replay the schedule later.
func NewRandomSource() (*rand.Rand, uint64) {
	seed := rand.Uint64()
	return NewSeededSource(seed), seed
}

// Schedule is the full output of a scheduler.
type Schedule struct {
	Groups         []models.Group          `json:"groups,omitempty"`
	Matches        []models.ScheduledMatch `json:"matches"`
	Knockout       []models.KnockoutMatch  `json:"knockout,omitempty"`
	GroupRounds    int                     `json:"group_rounds"`
	KnockoutLevels int                     `json:"knockout_levels"`
	NumRounds      int                     `json:"num_rounds"`
}

// shuffled returns a permuted copy of competitors; the input is never modified.
// A nil source falls back to a fresh random one.
func shuffled(competitors []models.CompetitorID, src Shuffler) []models.CompetitorID {
	roster := make([]models.CompetitorID, len(competitors))
	copy(roster, competitors)
	if src == nil {
		src, _ = NewRandomSource()
	}
	src.Shuffle(len(roster), func(i, j int) {
		roster[i], roster[j] = roster[j], roster[i]
	})
	return roster
}
