package brackets

import (
	"math"
	"sort"

	"github.com/Dosada05/tournament-engine/models"
)

// MultiStageGenerator splits the roster into round-robin groups whose top
// finishers enter a knockout bracket.
type MultiStageGenerator struct {
	settings models.MultiStageSettings
}

func NewMultiStageGenerator(settings models.MultiStageSettings) *MultiStageGenerator {
	return &MultiStageGenerator{settings: settings.Normalized()}
}

func (g *MultiStageGenerator) GetName() models.BracketType {
	return models.BracketMultiStage
}

// GenerateBracket produces the group stage followed by the knockout skeleton.
//
// Group matches are ordered by round, then group, then pairing order; group
// round r of every group is global round r. Knockout matches follow ordered
// by level and slot, their rounds continuing after the last group round.
// Knockout entrants are group-rank placeholders since no group has been
// played yet. A roster smaller than the minimum group size forms a single
// group with no knockout stage.
func (g *MultiStageGenerator) GenerateBracket(params GenerateParams) *Schedule {
	roster := params.Competitors
	if g.settings.KeepRosterOrder {
		roster = shuffled(roster, NoShuffle)
	} else {
		roster = shuffled(roster, params.Source)
	}

	groups := PartitionGroups(roster, g.settings)
	schedule := &Schedule{
		Groups:   groups,
		Matches:  []models.ScheduledMatch{},
		Knockout: []models.KnockoutMatch{},
	}

	for i := range groups {
		matches, rounds := circleRounds(groups[i].Members)
		groups[i].Rounds = rounds
		for _, m := range matches {
			m.Group = groups[i].Key
			m.Stage = models.StageGroup
			schedule.Matches = append(schedule.Matches, m)
		}
		if rounds > schedule.GroupRounds {
			schedule.GroupRounds = rounds
		}
	}
	// Groups were appended in key order and each group in pairing order,
	// so a stable sort by round yields round, group, pairing.
	sort.SliceStable(schedule.Matches, func(i, j int) bool {
		return schedule.Matches[i].Round < schedule.Matches[j].Round
	})

	if len(roster) >= g.settings.MinGroupSize {
		seeds := QualifierSeeds(groups, g.settings.QualifiersPerGroup)
		schedule.Knockout = BuildKnockout(seeds, schedule.GroupRounds)
		schedule.KnockoutLevels = KnockoutLevels(schedule.Knockout)
	}

	schedule.NumRounds = schedule.GroupRounds + schedule.KnockoutLevels
	return schedule
}

// GroupCount is the number of groups a roster of n competitors is split into.
//
// Among the counts that keep every group within [MinGroupSize, MaxGroupSize]
// it picks the one whose average size is closest to TargetGroupSize, preferring
// a smaller remainder and then fewer groups on ties.
func GroupCount(n int, settings models.MultiStageSettings) int {
	settings = settings.Normalized()
	if n <= 0 {
		return 0
	}
	if n < settings.MinGroupSize {
		return 1
	}

	lo := (n + settings.MaxGroupSize - 1) / settings.MaxGroupSize
	hi := n / settings.MinGroupSize
	if lo > hi {
		return lo
	}

	const eps = 1e-9
	best := lo
	bestDist := math.Inf(1)
	bestLeftover := n
	for g := lo; g <= hi; g++ {
		dist := math.Abs(float64(n)/float64(g) - float64(settings.TargetGroupSize))
		leftover := n % g
		if dist < bestDist-eps || (math.Abs(dist-bestDist) <= eps && leftover < bestLeftover) {
			best, bestDist, bestLeftover = g, dist, leftover
		}
	}
	return best
}

// PartitionGroups deals the roster into GroupCount contiguous blocks.
// The first n mod g groups get one extra member.
func PartitionGroups(roster []models.CompetitorID, settings models.MultiStageSettings) []models.Group {
	n := len(roster)
	count := GroupCount(n, settings)
	groups := make([]models.Group, 0, count)
	if count == 0 {
		return groups
	}

	base, extra := n/count, n%count
	start := 0
	for i := 0; i < count; i++ {
		size := base
		if i < extra {
			size++
		}
		members := make([]models.CompetitorID, size)
		copy(members, roster[start:start+size])
		groups = append(groups, models.Group{Key: GroupLabel(i), Members: members})
		start += size
	}
	return groups
}

// QualifierSeeds lists knockout entrants rank-major: A1, B1, C1, A2, B2, ...
func QualifierSeeds(groups []models.Group, perGroup int) []models.Slot {
	seeds := make([]models.Slot, 0, len(groups)*perGroup)
	for rank := 1; rank <= perGroup; rank++ {
		for _, g := range groups {
			if rank <= len(g.Members) {
				seeds = append(seeds, models.GroupRank(g.Key, rank))
			}
		}
	}
	return seeds
}

// GroupLabel maps 0, 1, ..., 25, 26 to A, B, ..., Z, AA.
func GroupLabel(i int) models.GroupKey {
	label := ""
	for i >= 0 {
		label = string(rune('A'+i%26)) + label
		i = i/26 - 1
	}
	return models.GroupKey(label)
}
