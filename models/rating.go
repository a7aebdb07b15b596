package models

import "time"

// RatingRecord is an immutable rating snapshot of one competitor.
type RatingRecord struct {
	Competitor CompetitorID `json:"competitor"`
	Rating     float64      `json:"rating"`
	Time       time.Time    `json:"time"`
}
