package brackets

import (
	"sort"

	"github.com/Dosada05/tournament-engine/models"
)

// ComputeStandings builds the table of one group from its recorded results.
//
// Rows are ordered by points, score difference and score for (all descending),
// then by competitor id. Results involving anyone outside the group are ignored.
func ComputeStandings(group models.Group, results []models.GroupResult, points models.PointsTable) []models.GroupStanding {
	rows := make(map[models.CompetitorID]*models.GroupStanding, len(group.Members))
	for _, id := range group.Members {
		rows[id] = &models.GroupStanding{Group: group.Key, Competitor: id}
	}

	for _, r := range results {
		p1, ok1 := rows[r.Player1]
		p2, ok2 := rows[r.Player2]
		if !ok1 || !ok2 || r.Player1 == r.Player2 {
			continue
		}
		record(p1, r.Score1, r.Score2, points)
		record(p2, r.Score2, r.Score1, points)
	}

	table := make([]models.GroupStanding, 0, len(rows))
	for _, id := range group.Members {
		table = append(table, *rows[id])
	}
	sort.SliceStable(table, func(i, j int) bool {
		a, b := table[i], table[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.ScoreDifference != b.ScoreDifference {
			return a.ScoreDifference > b.ScoreDifference
		}
		if a.ScoreFor != b.ScoreFor {
			return a.ScoreFor > b.ScoreFor
		}
		return a.Competitor < b.Competitor
	})
	for i := range table {
		table[i].Rank = i + 1
	}
	return table
}

func record(row *models.GroupStanding, scored, conceded int, points models.PointsTable) {
	row.GamesPlayed++
	row.ScoreFor += scored
	row.ScoreAgainst += conceded
	row.ScoreDifference = row.ScoreFor - row.ScoreAgainst
	switch {
	case scored > conceded:
		row.Wins++
		row.Points += points.Win
	case scored < conceded:
		row.Losses++
		row.Points += points.Loss
	default:
		row.Draws++
		row.Points += points.Draw
	}
}
