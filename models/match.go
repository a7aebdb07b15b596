package models

// CompetitorID is an opaque competitor reference. The engine only compares it for equality.
type CompetitorID string

// GroupKey labels one group of a multi-stage tournament ("A", "B", ...).
type GroupKey string

type Stage string

const (
	StageGroup    Stage = "group"
	StageKnockout Stage = "knockout"
)

// ScheduledMatch is one pairing of a round-robin schedule. A nil Player2 is a bye.
type ScheduledMatch struct {
	Round   int           `json:"round"`
	Player1 CompetitorID  `json:"player1"`
	Player2 *CompetitorID `json:"player2,omitempty"`
	Group   GroupKey      `json:"group,omitempty"`
	Stage   Stage         `json:"stage,omitempty"`
}

func (m ScheduledMatch) IsBye() bool {
	return m.Player2 == nil
}

// Involves reports whether id plays in this match.
func (m ScheduledMatch) Involves(id CompetitorID) bool {
	return m.Player1 == id || (m.Player2 != nil && *m.Player2 == id)
}

// KnockoutMatch is one node of a single-elimination bracket.
// Level 0 is the entry round; the final has the highest level.
type KnockoutMatch struct {
	ID        string        `json:"id"`
	Level     int           `json:"level"`
	SlotIndex int           `json:"slot_index"`
	Round     int           `json:"round"`
	Stage     Stage         `json:"stage"`
	Player1   Slot          `json:"player1"`
	Player2   Slot          `json:"player2"`
	Winner    *CompetitorID `json:"winner,omitempty"`
}

// IsBye reports whether exactly one side of the match is a bye.
func (m KnockoutMatch) IsBye() bool {
	return m.Player1.IsBye() != m.Player2.IsBye()
}

// Ready reports whether both competitors are known.
func (m KnockoutMatch) Ready() bool {
	return m.Player1.IsResolved() && m.Player2.IsResolved()
}

// Loser returns the competitor who did not win, if the match has been decided.
func (m KnockoutMatch) Loser() (CompetitorID, bool) {
	if m.Winner == nil || !m.Ready() {
		return "", false
	}
	if m.Player1.Competitor == *m.Winner {
		return m.Player2.Competitor, true
	}
	return m.Player1.Competitor, true
}

// KnockoutResult records the winner of a knockout match.
type KnockoutResult struct {
	MatchID string       `json:"match_id"`
	Winner  CompetitorID `json:"winner"`
}

func CompetitorPtr(id CompetitorID) *CompetitorID {
	return &id
}
