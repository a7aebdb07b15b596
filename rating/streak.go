package rating

import (
	"sort"

	"github.com/Dosada05/tournament-engine/models"
)

// FindStreak returns the longest run of consecutive steps in which the rating
// did not go down. Steps are counted, not records: 1000, 1100, 1200 is a
// streak of 2. Records are ordered by time first; equal times keep input order.
func FindStreak(records []models.RatingRecord) int {
	return longestRun(byTime(records), func(prev, cur float64) bool { return cur >= prev })
}

// FindLosingStreak returns the longest run of consecutive steps in which the rating dropped.
func FindLosingStreak(records []models.RatingRecord) int {
	return longestRun(byTime(records), func(prev, cur float64) bool { return cur < prev })
}

// Latest returns the most recent rating, or nil for an empty history.
func Latest(records []models.RatingRecord) *float64 {
	if len(records) == 0 {
		return nil
	}
	sorted := byTime(records)
	r := sorted[len(sorted)-1].Rating
	return &r
}

func byTime(records []models.RatingRecord) []models.RatingRecord {
	sorted := make([]models.RatingRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})
	return sorted
}

func longestRun(sorted []models.RatingRecord, step func(prev, cur float64) bool) int {
	best, run := 0, 0
	for i := 1; i < len(sorted); i++ {
		if step(sorted[i-1].Rating, sorted[i].Rating) {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 0
		}
	}
	return best
}
