package models

import "fmt"

type SlotKind string

const (
	SlotCompetitor   SlotKind = "competitor"
	SlotGroupRank    SlotKind = "group_rank"
	SlotMatchOutcome SlotKind = "match_outcome"
	SlotBye          SlotKind = "bye"
)

type Outcome string

const (
	OutcomeWinner Outcome = "winner"
	OutcomeLoser  Outcome = "loser"
)

// Slot is one side of a knockout match: either a concrete competitor or a
// placeholder that is resolved once the feeding group or match is decided.
type Slot struct {
	Kind          SlotKind     `json:"kind"`
	Competitor    CompetitorID `json:"competitor,omitempty"`
	Group         GroupKey     `json:"group,omitempty"`
	Rank          int          `json:"rank,omitempty"`
	SourceMatchID string       `json:"source_match_id,omitempty"`
	Outcome       Outcome      `json:"outcome,omitempty"`
}

func Concrete(id CompetitorID) Slot {
	return Slot{Kind: SlotCompetitor, Competitor: id}
}

// GroupRank is the placeholder "rank-th place of group g" (rank is 1-based).
func GroupRank(g GroupKey, rank int) Slot {
	return Slot{Kind: SlotGroupRank, Group: g, Rank: rank}
}

func WinnerOf(matchID string) Slot {
	return Slot{Kind: SlotMatchOutcome, SourceMatchID: matchID, Outcome: OutcomeWinner}
}

func LoserOf(matchID string) Slot {
	return Slot{Kind: SlotMatchOutcome, SourceMatchID: matchID, Outcome: OutcomeLoser}
}

func ByeSlot() Slot {
	return Slot{Kind: SlotBye}
}

func (s Slot) IsResolved() bool {
	return s.Kind == SlotCompetitor
}

func (s Slot) IsBye() bool {
	return s.Kind == SlotBye
}

// Label is a human readable form used by layouts and logs.
func (s Slot) Label() string {
	switch s.Kind {
	case SlotCompetitor:
		return string(s.Competitor)
	case SlotGroupRank:
		return fmt.Sprintf("group %s rank %d", s.Group, s.Rank)
	case SlotMatchOutcome:
		return fmt.Sprintf("%s of %s", s.Outcome, s.SourceMatchID)
	case SlotBye:
		return "BYE"
	default:
		return "TBD"
	}
}
