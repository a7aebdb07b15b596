package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/tournament-engine/brackets"
	"github.com/Dosada05/tournament-engine/config"
	"github.com/Dosada05/tournament-engine/metrics"
	"github.com/Dosada05/tournament-engine/models"
)

type ScheduleService interface {
	GenerateSchedule(ctx context.Context, input GenerateScheduleInput) (*ScheduleView, error)
	SeedKnockout(ctx context.Context, input SeedKnockoutInput) (*KnockoutView, error)
	AdvanceKnockout(ctx context.Context, input AdvanceInput) (*KnockoutView, error)
}

type GenerateScheduleInput struct {
	Format      models.BracketType    `json:"format"`
	Settings    json.RawMessage       `json:"settings,omitempty"`
	Competitors []models.CompetitorID `json:"competitors"`
	Seed        *uint64               `json:"seed,omitempty"`
}

// ScheduleView echoes the seed so the same schedule can be generated again.
type ScheduleView struct {
	Format   models.BracketType `json:"format"`
	Seed     uint64             `json:"seed"`
	Schedule *brackets.Schedule `json:"schedule"`
}

type SeedKnockoutInput struct {
	Knockout []models.KnockoutMatch `json:"knockout"`
	Groups   []models.Group         `json:"groups"`
	Results  []models.GroupResult   `json:"results"`
}

type AdvanceInput struct {
	Knockout []models.KnockoutMatch `json:"knockout"`
	Result   models.KnockoutResult  `json:"result"`
}

type KnockoutView struct {
	Knockout  []models.KnockoutMatch                    `json:"knockout"`
	Standings map[models.GroupKey][]models.GroupStanding `json:"standings,omitempty"`
	Champion  *models.CompetitorID                      `json:"champion,omitempty"`
}

type scheduleService struct {
	engine  config.EngineConfig
	logger  *slog.Logger
	metrics metrics.Recorder
}

func NewScheduleService(engine config.EngineConfig, logger *slog.Logger, rec metrics.Recorder) ScheduleService {
	return &scheduleService{
		engine:  engine,
		logger:  logger,
		metrics: orNoop(rec),
	}
}

func (s *scheduleService) GenerateSchedule(ctx context.Context, input GenerateScheduleInput) (view *ScheduleView, err error) {
	defer observe(s.metrics, "generate_schedule", time.Now(), &err)

	if err := validateRoster(input.Competitors); err != nil {
		return nil, err
	}

	generator, err := s.generatorFor(input.Format, input.Settings)
	if err != nil {
		return nil, err
	}

	var src brackets.Shuffler
	var seed uint64
	if input.Seed != nil {
		seed = *input.Seed
		src = brackets.NewSeededSource(seed)
	} else {
		src, seed = brackets.NewRandomSource()
	}

	schedule := generator.GenerateBracket(brackets.GenerateParams{
		Competitors: input.Competitors,
		Source:      src,
	})

	s.metrics.SchedulesGenerated(string(generator.GetName()), len(schedule.Matches)+len(schedule.Knockout))
	s.logger.InfoContext(ctx, "schedule generated",
		slog.String("format", string(generator.GetName())),
		slog.Int("competitors", len(input.Competitors)),
		slog.Int("matches", len(schedule.Matches)),
		slog.Int("knockout_matches", len(schedule.Knockout)),
		slog.Int("rounds", schedule.NumRounds),
		slog.Uint64("seed", seed),
	)

	return &ScheduleView{Format: generator.GetName(), Seed: seed, Schedule: schedule}, nil
}

func (s *scheduleService) generatorFor(bracketType models.BracketType, settings json.RawMessage) (brackets.BracketGenerator, error) {
	format := models.Format{BracketType: bracketType, SettingsJSON: settings}

	switch bracketType {
	case models.BracketRoundRobin:
		rr, err := format.GetRoundRobinSettings(s.engine.RoundRobin)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormatSettings, err)
		}
		return brackets.NewRoundRobinGenerator(rr), nil
	case models.BracketMultiStage:
		ms, err := format.GetMultiStageSettings(s.engine.MultiStage)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormatSettings, err)
		}
		return brackets.NewMultiStageGenerator(ms), nil
	case models.BracketSingleElimination:
		return brackets.NewSingleEliminationGenerator(), nil
	default:
		return nil, fmt.Errorf("%w: %q. Supported types are %q, %q, %q", ErrUnsupportedFormat, bracketType,
			models.BracketRoundRobin, models.BracketMultiStage, models.BracketSingleElimination)
	}
}

// SeedKnockout computes every group table and places the qualifiers into the bracket.
func (s *scheduleService) SeedKnockout(ctx context.Context, input SeedKnockoutInput) (view *KnockoutView, err error) {
	defer observe(s.metrics, "seed_knockout", time.Now(), &err)

	if len(input.Knockout) == 0 {
		return nil, fmt.Errorf("%w: knockout is empty", ErrValidationFailed)
	}
	if len(input.Groups) == 0 {
		return nil, fmt.Errorf("%w: no groups given", ErrValidationFailed)
	}

	tables := make([][]models.GroupStanding, len(input.Groups))
	g, gCtx := errgroup.WithContext(ctx)
	for i, group := range input.Groups {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			if err := validateRoster(group.Members); err != nil {
				return fmt.Errorf("group %s: %w", group.Key, err)
			}
			tables[i] = brackets.ComputeStandings(group, input.Results, s.engine.Points)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	standings := make(map[models.GroupKey][]models.GroupStanding, len(tables))
	for i, table := range tables {
		standings[input.Groups[i].Key] = table
	}

	knockout := brackets.SeedKnockout(input.Knockout, standings)
	s.logger.InfoContext(ctx, "knockout seeded", slog.Int("groups", len(input.Groups)), slog.Int("results", len(input.Results)))

	return &KnockoutView{Knockout: knockout, Standings: standings, Champion: champion(knockout)}, nil
}

func (s *scheduleService) AdvanceKnockout(ctx context.Context, input AdvanceInput) (view *KnockoutView, err error) {
	defer observe(s.metrics, "advance_knockout", time.Now(), &err)

	knockout, err := brackets.Advance(input.Knockout, input.Result)
	if err != nil {
		if !errors.Is(err, brackets.ErrMatchNotFound) {
			s.logger.WarnContext(ctx, "knockout result rejected",
				slog.String("match_id", input.Result.MatchID),
				slog.String("winner", string(input.Result.Winner)),
				slog.Any("error", err))
		}
		return nil, err
	}

	winner := champion(knockout)
	if winner != nil {
		s.logger.InfoContext(ctx, "knockout decided", slog.String("champion", string(*winner)))
	}
	return &KnockoutView{Knockout: knockout, Champion: winner}, nil
}
