package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/tournament-engine/metrics"
	"github.com/Dosada05/tournament-engine/models"
	"github.com/Dosada05/tournament-engine/rating"
)

const streakWorkers = 8

type RatingService interface {
	ApplyResult(ctx context.Context, outcome MatchOutcome) (*RatingUpdate, error)
	Streaks(ctx context.Context, histories map[models.CompetitorID][]models.RatingRecord) ([]StreakView, error)
}

// MatchOutcome is a decided match plus both players' rating histories.
// A nil Player2 is a bye.
type MatchOutcome struct {
	Player1    models.CompetitorID   `json:"player1"`
	Player2    *models.CompetitorID  `json:"player2"`
	History1   []models.RatingRecord `json:"history1,omitempty"`
	History2   []models.RatingRecord `json:"history2,omitempty"`
	Player1Won bool                  `json:"player1_won"`
	PlayedAt   time.Time             `json:"played_at,omitempty"`
}

// RatingUpdate holds the records the caller should append to each history.
type RatingUpdate struct {
	Player1 models.RatingRecord `json:"player1"`
	Player2 models.RatingRecord `json:"player2"`
	Delta1  float64             `json:"delta1"`
	Delta2  float64             `json:"delta2"`
}

type StreakView struct {
	Competitor    models.CompetitorID `json:"competitor"`
	WinningStreak int                 `json:"winning_streak"`
	LosingStreak  int                 `json:"losing_streak"`
	Current       *float64            `json:"current,omitempty"`
}

type ratingService struct {
	engine  *rating.Engine
	logger  *slog.Logger
	metrics metrics.Recorder
	now     func() time.Time
}

func NewRatingService(engine *rating.Engine, logger *slog.Logger, rec metrics.Recorder) RatingService {
	return &ratingService{
		engine:  engine,
		logger:  logger,
		metrics: orNoop(rec),
		now:     time.Now,
	}
}

func (s *ratingService) ApplyResult(ctx context.Context, outcome MatchOutcome) (update *RatingUpdate, err error) {
	defer observe(s.metrics, "apply_result", time.Now(), &err)

	if outcome.Player2 == nil {
		return nil, fmt.Errorf("%w: %s had no opponent", ErrByeMatch, outcome.Player1)
	}
	if outcome.Player1 == "" || *outcome.Player2 == "" {
		return nil, fmt.Errorf("%w: both players are required", ErrValidationFailed)
	}
	if outcome.Player1 == *outcome.Player2 {
		return nil, fmt.Errorf("%w: %q cannot play against itself", ErrValidationFailed, outcome.Player1)
	}

	at := outcome.PlayedAt
	if at.IsZero() {
		at = s.now().UTC()
	}

	rec1, rec2 := s.engine.Rate(outcome.Player1, *outcome.Player2, outcome.History1, outcome.History2, outcome.Player1Won, at)
	baseline := s.engine.Config().Baseline
	update = &RatingUpdate{
		Player1: rec1,
		Player2: rec2,
		Delta1:  rec1.Rating - ratingOr(rating.Latest(outcome.History1), baseline),
		Delta2:  rec2.Rating - ratingOr(rating.Latest(outcome.History2), baseline),
	}

	s.metrics.RatingsApplied(2)
	s.logger.InfoContext(ctx, "ratings updated",
		slog.String("player1", string(rec1.Competitor)),
		slog.Float64("player1_rating", rec1.Rating),
		slog.String("player2", string(rec2.Competitor)),
		slog.Float64("player2_rating", rec2.Rating),
	)
	return update, nil
}

// Streaks reports winning and losing streaks per competitor, sorted by competitor id.
func (s *ratingService) Streaks(ctx context.Context, histories map[models.CompetitorID][]models.RatingRecord) (views []StreakView, err error) {
	defer observe(s.metrics, "streaks", time.Now(), &err)

	ids := make([]models.CompetitorID, 0, len(histories))
	for id := range histories {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	views = make([]StreakView, len(ids))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(streakWorkers)
	for i, id := range ids {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			h := histories[id]
			views[i] = StreakView{
				Competitor:    id,
				WinningStreak: rating.FindStreak(h),
				LosingStreak:  rating.FindLosingStreak(h),
				Current:       rating.Latest(h),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return views, nil
}

func ratingOr(r *float64, def float64) float64 {
	if r == nil || math.IsNaN(*r) || math.IsInf(*r, 0) {
		return def
	}
	return *r
}
