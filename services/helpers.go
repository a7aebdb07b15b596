package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/Dosada05/tournament-engine/metrics"
	"github.com/Dosada05/tournament-engine/models"
)

// validateRoster rejects blank and repeated competitor ids. The engine itself
// assumes both never happen.
func validateRoster(competitors []models.CompetitorID) error {
	seen := make(map[models.CompetitorID]int, len(competitors))
	for i, id := range competitors {
		if strings.TrimSpace(string(id)) == "" {
			return fmt.Errorf("%w: competitor at position %d is blank", ErrValidationFailed, i)
		}
		if first, dup := seen[id]; dup {
			return fmt.Errorf("%w: %q at positions %d and %d", ErrDuplicateCompetitor, id, first, i)
		}
		seen[id] = i
	}
	return nil
}

// champion is the winner of the top-level match, once it is decided.
func champion(knockout []models.KnockoutMatch) *models.CompetitorID {
	var final *models.KnockoutMatch
	for i := range knockout {
		if final == nil || knockout[i].Level > final.Level {
			final = &knockout[i]
		}
	}
	if final == nil {
		return nil
	}
	return final.Winner
}

func orNoop(rec metrics.Recorder) metrics.Recorder {
	if rec == nil {
		return (*metrics.Metrics)(nil)
	}
	return rec
}

func observe(rec metrics.Recorder, operation string, started time.Time, err *error) {
	rec.ObserveOperation(operation, started, *err)
}
