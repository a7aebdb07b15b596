package models

import "encoding/json"

// BracketType names a tournament format the engine can schedule.
type BracketType string

const (
	BracketRoundRobin        BracketType = "RoundRobin"
	BracketMultiStage        BracketType = "MultiStage"
	BracketSingleElimination BracketType = "SingleElimination"
)

func (b BracketType) Valid() bool {
	switch b {
	case BracketRoundRobin, BracketMultiStage, BracketSingleElimination:
		return true
	}
	return false
}

// RoundRobinSettings defines specific settings for a RoundRobin tournament format.
type RoundRobinSettings struct {
	NumberOfRounds int `json:"number_of_rounds" yaml:"number_of_rounds"` // 1 for single round-robin, 2 for double
}

// Normalized returns a copy with out-of-range values replaced by defaults.
func (s RoundRobinSettings) Normalized() RoundRobinSettings {
	if s.NumberOfRounds < 1 || s.NumberOfRounds > 2 {
		s.NumberOfRounds = 1
	}
	return s
}

// MultiStageSettings controls group partitioning and knockout qualification.
type MultiStageSettings struct {
	MinGroupSize       int  `json:"min_group_size" yaml:"min_group_size"`
	MaxGroupSize       int  `json:"max_group_size" yaml:"max_group_size"`
	TargetGroupSize    int  `json:"target_group_size" yaml:"target_group_size"`
	QualifiersPerGroup int  `json:"qualifiers_per_group" yaml:"qualifiers_per_group"`
	KeepRosterOrder    bool `json:"keep_roster_order" yaml:"keep_roster_order"`
}

const (
	DefaultMinGroupSize       = 3
	DefaultMaxGroupSize       = 5
	DefaultTargetGroupSize    = 4
	DefaultQualifiersPerGroup = 2
)

// Normalized fills zero or inconsistent fields with the defaults.
func (s MultiStageSettings) Normalized() MultiStageSettings {
	if s.MinGroupSize < 2 {
		s.MinGroupSize = DefaultMinGroupSize
	}
	if s.MaxGroupSize < s.MinGroupSize {
		s.MaxGroupSize = max(DefaultMaxGroupSize, s.MinGroupSize)
	}
	if s.TargetGroupSize < s.MinGroupSize || s.TargetGroupSize > s.MaxGroupSize {
		s.TargetGroupSize = min(max(DefaultTargetGroupSize, s.MinGroupSize), s.MaxGroupSize)
	}
	if s.QualifiersPerGroup < 1 {
		s.QualifiersPerGroup = DefaultQualifiersPerGroup
	}
	return s
}

// Format pairs a bracket type with its raw settings, as stored by the caller.
type Format struct {
	BracketType  BracketType     `json:"bracket_type"`
	SettingsJSON json.RawMessage `json:"settings,omitempty"`
}

// GetRoundRobinSettings overlays the stored settings on top of base.
func (f *Format) GetRoundRobinSettings(base RoundRobinSettings) (RoundRobinSettings, error) {
	settings := base
	if f.BracketType != BracketRoundRobin || len(f.SettingsJSON) == 0 {
		return settings.Normalized(), nil
	}
	if err := json.Unmarshal(f.SettingsJSON, &settings); err != nil {
		return RoundRobinSettings{}, err
	}
	return settings.Normalized(), nil
}

// GetMultiStageSettings overlays the stored settings on top of base.
func (f *Format) GetMultiStageSettings(base MultiStageSettings) (MultiStageSettings, error) {
	settings := base
	if f.BracketType != BracketMultiStage || len(f.SettingsJSON) == 0 {
		return settings.Normalized(), nil
	}
	if err := json.Unmarshal(f.SettingsJSON, &settings); err != nil {
		return MultiStageSettings{}, err
	}
	return settings.Normalized(), nil
}
