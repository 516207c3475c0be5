package matcher

import (
	"strings"

	"github.com/pharmakart/platform/pkg/brand"
	"github.com/pharmakart/platform/pkg/catalog"
	"github.com/pharmakart/platform/pkg/common/models"
	"github.com/pharmakart/platform/pkg/composition"
)

// Weights of the four similarity terms. They must sum to 1.0 so the final
// score stays within [0,1].
type Weights struct {
	Name     float64
	Generic  float64
	Strength float64
	Form     float64
}

var DefaultWeights = Weights{
	Name:     0.40,
	Generic:  0.30,
	Strength: 0.20,
	Form:     0.10,
}

// aliasGenericFloor is the minimum generic-similarity input applied when the
// brand resolved through the alias table, so a correctly resolved generic
// with poor literal overlap still scores competitively.
const aliasGenericFloor = 0.8

type Scorer struct {
	weights Weights
}

func NewScorer(weights Weights) *Scorer {
	total := weights.Name + weights.Generic + weights.Strength + weights.Form
	if total <= 0 {
		weights = DefaultWeights
	}
	return &Scorer{weights: weights}
}

// Score computes the weighted confidence for one (mention, product) pair.
// Each term is computed independently and clipped to [0,1] before weighting.
func (s *Scorer) Score(mention models.MedicineMention, hyp brand.Hypothesis, product catalog.Product) float64 {
	nameTerm := clip01(similarity(mention.BrandText, product.Name))

	genericTerm := 0.0
	if product.GenericName != "" {
		genericTerm = clip01(similarity(hyp.Generic, product.GenericName))
		if hyp.AliasHit() && genericTerm < aliasGenericFloor {
			genericTerm = aliasGenericFloor
		}
	}

	strengthTerm := 0.0
	if mention.Strength != "" && product.Strength != "" {
		strengthTerm = clip01(similarity(
			composition.NormalizeStrength(mention.Strength),
			composition.NormalizeStrength(product.Strength),
		))
	}

	formTerm := 0.0
	if mention.Form != "" && product.Form != "" {
		mentionForm := strings.ToLower(strings.TrimSpace(mention.Form))
		productForm := strings.ToLower(strings.TrimSpace(product.Form))
		switch {
		case mentionForm == productForm:
			formTerm = 1.0
		case strings.Contains(productForm, mentionForm):
			formTerm = 0.5
		}
	}

	score := s.weights.Name*nameTerm +
		s.weights.Generic*genericTerm +
		s.weights.Strength*strengthTerm +
		s.weights.Form*formTerm

	return clip01(score)
}

func clip01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
