package brackets

import "github.com/Dosada05/tournament-engine/models"

type GenerateParams struct {
	Competitors []models.CompetitorID
	Source      Shuffler
}

// BracketGenerator is implemented by every tournament format.
type BracketGenerator interface {
	GenerateBracket(params GenerateParams) *Schedule

	GetName() models.BracketType
}
