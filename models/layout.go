package models

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LayoutNode is a positioned knockout match.
type LayoutNode struct {
	ID        string  `json:"id"`
	Level     int     `json:"level"`
	SlotIndex int     `json:"slot_index"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Player1ID string  `json:"player1_id"`
	Player2ID string  `json:"player2_id"`
}

// Edge connects a match to the match its winner advances to.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}
