package brackets

import (
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/Dosada05/tournament-engine/models"
)

// fakeRoster returns n distinct competitor ids drawn from a seeded faker.
func fakeRoster(t *testing.T, n int, seed uint64) []models.CompetitorID {
	t.Helper()
	f := gofakeit.New(seed)
	roster := make([]models.CompetitorID, n)
	for i := range roster {
		roster[i] = models.CompetitorID(fmt.Sprintf("%s-%d", f.Username(), i))
	}
	return roster
}

func ids(names ...string) []models.CompetitorID {
	out := make([]models.CompetitorID, len(names))
	for i, n := range names {
		out[i] = models.CompetitorID(n)
	}
	return out
}

type pair struct{ a, b models.CompetitorID }

func pairOf(m models.ScheduledMatch) pair {
	a, b := m.Player1, *m.Player2
	if b < a {
		a, b = b, a
	}
	return pair{a, b}
}
