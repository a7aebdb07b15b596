package models

// Group is one group of a multi-stage tournament.
type Group struct {
	Key     GroupKey       `json:"key"`
	Members []CompetitorID `json:"members"`
	Rounds  int            `json:"rounds"`
}

// GroupResult is the final score of a group-stage match. Equal scores are a draw.
type GroupResult struct {
	Player1 CompetitorID `json:"player1"`
	Player2 CompetitorID `json:"player2"`
	Score1  int          `json:"score1"`
	Score2  int          `json:"score2"`
}

// GroupStanding is a competitor's row in a group table.
type GroupStanding struct {
	Group           GroupKey     `json:"group"`
	Competitor      CompetitorID `json:"competitor"`
	Points          int          `json:"points"`
	GamesPlayed     int          `json:"games_played"`
	Wins            int          `json:"wins"`
	Draws           int          `json:"draws"`
	Losses          int          `json:"losses"`
	ScoreFor        int          `json:"score_for"`
	ScoreAgainst    int          `json:"score_against"`
	ScoreDifference int          `json:"score_difference"`
	Rank            int          `json:"rank"`
}

// PointsTable is how many standing points each result is worth.
type PointsTable struct {
	Win  int `json:"points_for_win" yaml:"points_for_win"`
	Draw int `json:"points_for_draw" yaml:"points_for_draw"`
	Loss int `json:"points_for_loss" yaml:"points_for_loss"`
}

var DefaultPointsTable = PointsTable{Win: 3, Draw: 1, Loss: 0}
