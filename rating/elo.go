package rating

import (
	"math"
	"time"

	"github.com/Dosada05/tournament-engine/models"
)

const (
	DefaultKFactor  = 32.0
	DefaultBaseline = 1200.0
	DefaultScale    = 400.0
)

// Config tunes the Elo update. Zero or negative values fall back to the defaults.
type Config struct {
	KFactor  float64 `json:"k_factor" yaml:"k_factor"`
	Baseline float64 `json:"baseline" yaml:"baseline"`
	Scale    float64 `json:"scale" yaml:"scale"`
}

func DefaultConfig() Config {
	return Config{KFactor: DefaultKFactor, Baseline: DefaultBaseline, Scale: DefaultScale}
}

func (c Config) Normalized() Config {
	if !positive(c.KFactor) {
		c.KFactor = DefaultKFactor
	}
	if !positive(c.Baseline) {
		c.Baseline = DefaultBaseline
	}
	if !positive(c.Scale) {
		c.Scale = DefaultScale
	}
	return c
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Engine computes rating changes. It holds no mutable state and is safe for concurrent use.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg.Normalized()}
}

func (e *Engine) Config() Config {
	return e.cfg
}

// ComputeNewRatings applies one decided match. A nil, NaN or infinite rating
// counts as the baseline.
func (e *Engine) ComputeNewRatings(p1, p2 *float64, p1Won bool) (float64, float64) {
	r1, r2 := e.orBaseline(p1), e.orBaseline(p2)

	expected1 := e.Expected(r1, r2)
	expected2 := 1 - expected1

	actual1 := 0.0
	if p1Won {
		actual1 = 1
	}
	actual2 := 1 - actual1

	return r1 + e.cfg.KFactor*(actual1-expected1), r2 + e.cfg.KFactor*(actual2-expected2)
}

// Expected is the probability that a player rated r1 beats one rated r2.
func (e *Engine) Expected(r1, r2 float64) float64 {
	return 1 / (1 + math.Pow(10, (r2-r1)/e.cfg.Scale))
}

// Rate updates both competitors from their histories and returns the records
// to append. Neither history is modified.
func (e *Engine) Rate(p1, p2 models.CompetitorID, h1, h2 []models.RatingRecord, p1Won bool, at time.Time) (models.RatingRecord, models.RatingRecord) {
	n1, n2 := e.ComputeNewRatings(Latest(h1), Latest(h2), p1Won)
	return models.RatingRecord{Competitor: p1, Rating: n1, Time: at},
		models.RatingRecord{Competitor: p2, Rating: n2, Time: at}
}

func (e *Engine) orBaseline(r *float64) float64 {
	if r == nil || math.IsNaN(*r) || math.IsInf(*r, 0) {
		return e.cfg.Baseline
	}
	return *r
}

var defaultEngine = NewEngine(DefaultConfig())

// ComputeNewRatings uses K=32, baseline 1200 and scale 400.
func ComputeNewRatings(p1, p2 *float64, p1Won bool) (float64, float64) {
	return defaultEngine.ComputeNewRatings(p1, p2, p1Won)
}
