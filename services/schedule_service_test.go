package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/tournament-engine/config"
	"github.com/Dosada05/tournament-engine/metrics"
	"github.com/Dosada05/tournament-engine/models"
)

func roster(names ...string) []models.CompetitorID {
	out := make([]models.CompetitorID, len(names))
	for i, n := range names {
		out[i] = models.CompetitorID(n)
	}
	return out
}

func seed(v uint64) *uint64 { return &v }

func newScheduleService(rec metrics.Recorder) ScheduleService {
	return NewScheduleService(config.DefaultEngineConfig(), discardLogger(), rec)
}

func TestScheduleService_GenerateSchedule(t *testing.T) {
	tests := []struct {
		name        string
		input       GenerateScheduleInput
		wantErr     error
		wantMatches int
		wantRounds  int
	}{
		{
			name:        "round robin",
			input:       GenerateScheduleInput{Format: models.BracketRoundRobin, Competitors: roster("a", "b", "c", "d"), Seed: seed(1)},
			wantMatches: 6,
			wantRounds:  3,
		},
		{
			name: "double round robin from settings",
			input: GenerateScheduleInput{
				Format:      models.BracketRoundRobin,
				Settings:    json.RawMessage(`{"number_of_rounds": 2}`),
				Competitors: roster("a", "b", "c", "d"),
				Seed:        seed(1),
			},
			wantMatches: 12,
			wantRounds:  6,
		},
		{
			name:        "multi stage",
			input:       GenerateScheduleInput{Format: models.BracketMultiStage, Competitors: roster("a", "b", "c", "d", "e", "f", "g", "h"), Seed: seed(5)},
			wantMatches: 15,
			wantRounds:  5,
		},
		{
			name:        "single elimination",
			input:       GenerateScheduleInput{Format: models.BracketSingleElimination, Competitors: roster("a", "b", "c", "d"), Seed: seed(5)},
			wantMatches: 3,
			wantRounds:  2,
		},
		{
			name:    "duplicate competitor",
			input:   GenerateScheduleInput{Format: models.BracketRoundRobin, Competitors: roster("a", "b", "a")},
			wantErr: ErrDuplicateCompetitor,
		},
		{
			name:    "blank competitor",
			input:   GenerateScheduleInput{Format: models.BracketRoundRobin, Competitors: roster("a", " ")},
			wantErr: ErrValidationFailed,
		},
		{
			name:    "unknown format",
			input:   GenerateScheduleInput{Format: "Swiss", Competitors: roster("a", "b")},
			wantErr: ErrUnsupportedFormat,
		},
		{
			name: "malformed settings",
			input: GenerateScheduleInput{
				Format:      models.BracketMultiStage,
				Settings:    json.RawMessage(`{"min_group_size": "three"}`),
				Competitors: roster("a", "b", "c"),
			},
			wantErr: ErrInvalidFormatSettings,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := newScheduleService(nil).GenerateSchedule(context.Background(), tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, view)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input.Format, view.Format)
			assert.Equal(t, *tt.input.Seed, view.Seed)
			assert.Equal(t, tt.wantMatches, len(view.Schedule.Matches)+len(view.Schedule.Knockout))
			assert.Equal(t, tt.wantRounds, view.Schedule.NumRounds)
		})
	}
}

func TestScheduleService_SeedReplaysSchedule(t *testing.T) {
	svc := newScheduleService(nil)
	in := GenerateScheduleInput{Format: models.BracketRoundRobin, Competitors: roster("a", "b", "c", "d", "e", "f")}

	first, err := svc.GenerateSchedule(context.Background(), in)
	require.NoError(t, err)

	in.Seed = seed(first.Seed)
	replay, err := svc.GenerateSchedule(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, first.Schedule, replay.Schedule)
}

func TestScheduleService_RecordsMetrics(t *testing.T) {
	m := metrics.New()
	svc := newScheduleService(m)

	_, err := svc.GenerateSchedule(context.Background(), GenerateScheduleInput{Format: models.BracketRoundRobin, Competitors: roster("a", "b")})
	require.NoError(t, err)
	_, err = svc.GenerateSchedule(context.Background(), GenerateScheduleInput{Format: "Swiss"})
	require.Error(t, err)

	count, err := testutil.GatherAndCount(m.Registry(), "tournament_engine_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "one ok and one error series")
}

func TestScheduleService_SeedAndAdvance(t *testing.T) {
	ctx := context.Background()
	svc := newScheduleService(nil)

	view, err := svc.GenerateSchedule(ctx, GenerateScheduleInput{
		Format:      models.BracketMultiStage,
		Settings:    json.RawMessage(`{"keep_roster_order": true}`),
		Competitors: roster("a", "b", "c", "d", "e", "f", "g", "h"),
	})
	require.NoError(t, err)
	require.Len(t, view.Schedule.Groups, 2)

	// a and e win their groups, b and f finish second.
	results := []models.GroupResult{
		{Player1: "a", Player2: "b", Score1: 2, Score2: 1},
		{Player1: "a", Player2: "c", Score1: 2, Score2: 0},
		{Player1: "b", Player2: "c", Score1: 1, Score2: 0},
		{Player1: "e", Player2: "f", Score1: 3, Score2: 0},
		{Player1: "f", Player2: "g", Score1: 1, Score2: 0},
		{Player1: "e", Player2: "h", Score1: 1, Score2: 0},
	}
	seeded, err := svc.SeedKnockout(ctx, SeedKnockoutInput{
		Knockout: view.Schedule.Knockout,
		Groups:   view.Schedule.Groups,
		Results:  results,
	})
	require.NoError(t, err)
	require.Len(t, seeded.Standings, 2)
	assert.Equal(t, models.CompetitorID("a"), seeded.Standings["A"][0].Competitor)
	assert.Equal(t, models.Concrete("a"), seeded.Knockout[0].Player1)
	assert.Equal(t, models.Concrete("f"), seeded.Knockout[0].Player2)
	assert.Equal(t, models.Concrete("e"), seeded.Knockout[1].Player1)
	assert.Equal(t, models.Concrete("b"), seeded.Knockout[1].Player2)
	assert.Nil(t, seeded.Champion)

	ko := seeded.Knockout
	for _, r := range []models.KnockoutResult{
		{MatchID: "K0M0", Winner: "a"},
		{MatchID: "K0M1", Winner: "b"},
		{MatchID: "K1M0", Winner: "b"},
	} {
		adv, err := svc.AdvanceKnockout(ctx, AdvanceInput{Knockout: ko, Result: r})
		require.NoError(t, err, r.MatchID)
		ko = adv.Knockout
		if r.MatchID == "K1M0" {
			require.NotNil(t, adv.Champion)
			assert.Equal(t, models.CompetitorID("b"), *adv.Champion)
		}
	}
}

func TestScheduleService_SeedKnockoutValidation(t *testing.T) {
	svc := newScheduleService(nil)

	_, err := svc.SeedKnockout(context.Background(), SeedKnockoutInput{})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.SeedKnockout(context.Background(), SeedKnockoutInput{
		Knockout: []models.KnockoutMatch{{ID: "K0M0"}},
		Groups:   []models.Group{{Key: "A", Members: roster("a", "a")}},
	})
	assert.ErrorIs(t, err, ErrDuplicateCompetitor)
}
