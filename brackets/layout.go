package brackets

import (
	"fmt"
	"math"
	"sort"

	"github.com/Dosada05/tournament-engine/models"
)

// Layout is a knockout bracket positioned for drawing.
type Layout struct {
	Nodes []models.LayoutNode `json:"nodes"`
	Edges []models.Edge       `json:"edges"`
}

// GroupByLevel buckets knockout matches by level, each bucket sorted by slot index.
func GroupByLevel(matches []models.KnockoutMatch) map[int][]models.KnockoutMatch {
	byLevel := make(map[int][]models.KnockoutMatch)
	for _, m := range matches {
		byLevel[m.Level] = append(byLevel[m.Level], m)
	}
	for level := range byLevel {
		sortBySlot(byLevel[level])
	}
	return byLevel
}

// ComputePositions places one column per level inside the box spanned by the
// two corners, earliest level leftmost.
//
// The lowest level is spread evenly down its column. Every later match sits
// at the mean height of the two matches feeding it, which gives the usual
// converging bracket. Each match gets an edge to the match its winner plays
// next; the last column has none. The lowest level is expected to hold a power
// of two matches.
func ComputePositions(topLeft, bottomRight models.Point, byLevel map[int][]models.KnockoutMatch) Layout {
	layout := Layout{Nodes: []models.LayoutNode{}, Edges: []models.Edge{}}

	levels := make([]int, 0, len(byLevel))
	for level, ms := range byLevel {
		if len(ms) > 0 {
			levels = append(levels, level)
		}
	}
	if len(levels) == 0 {
		return layout
	}
	sort.Ints(levels)

	left, right := math.Min(topLeft.X, bottomRight.X), math.Max(topLeft.X, bottomRight.X)
	top, bottom := math.Min(topLeft.Y, bottomRight.Y), math.Max(topLeft.Y, bottomRight.Y)
	width, height := right-left, bottom-top
	colWidth := width / float64(len(levels))

	columns := make([][]models.LayoutNode, len(levels))
	for col, level := range levels {
		matches := append([]models.KnockoutMatch(nil), byLevel[level]...)
		sortBySlot(matches)

		x := left + (float64(col)+0.5)*colWidth
		nodes := make([]models.LayoutNode, len(matches))
		for i, m := range matches {
			nodes[i] = models.LayoutNode{
				ID:        nodeID(m),
				Level:     m.Level,
				SlotIndex: m.SlotIndex,
				X:         x,
				Player1ID: slotLabel(m.Player1),
				Player2ID: slotLabel(m.Player2),
			}
			if col == 0 {
				nodes[i].Y = top + (float64(i)+0.5)*height/float64(len(matches))
			} else {
				nodes[i].Y = feederMean(columns[col-1], m.SlotIndex, (top+bottom)/2)
			}
		}
		columns[col] = nodes
	}

	for col, nodes := range columns {
		layout.Nodes = append(layout.Nodes, nodes...)
		if col == len(columns)-1 {
			continue
		}
		next := columns[col+1]
		for _, n := range nodes {
			if to, ok := findSlot(next, n.SlotIndex/2); ok {
				layout.Edges = append(layout.Edges, models.Edge{From: n.ID, To: to.ID})
			}
		}
	}
	return layout
}

func feederMean(prev []models.LayoutNode, slot int, fallback float64) float64 {
	var sum float64
	var count int
	for _, feeder := range []int{2 * slot, 2*slot + 1} {
		if n, ok := findSlot(prev, feeder); ok {
			sum += n.Y
			count++
		}
	}
	if count == 0 {
		return fallback
	}
	return sum / float64(count)
}

func findSlot(nodes []models.LayoutNode, slot int) (models.LayoutNode, bool) {
	i := sort.Search(len(nodes), func(i int) bool { return nodes[i].SlotIndex >= slot })
	if i < len(nodes) && nodes[i].SlotIndex == slot {
		return nodes[i], true
	}
	return models.LayoutNode{}, false
}

func sortBySlot(matches []models.KnockoutMatch) {
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].SlotIndex < matches[j].SlotIndex })
}

func nodeID(m models.KnockoutMatch) string {
	if m.ID != "" {
		return m.ID
	}
	return fmt.Sprintf("L%dS%d", m.Level, m.SlotIndex)
}

func slotLabel(s models.Slot) string {
	if s.Kind == "" {
		return ""
	}
	return s.Label()
}
