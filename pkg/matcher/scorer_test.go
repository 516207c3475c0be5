package matcher

import (
	"testing"

	"github.com/pharmakart/platform/pkg/brand"
	"github.com/pharmakart/platform/pkg/catalog"
	"github.com/pharmakart/platform/pkg/common/models"
)

func TestScorePerfectMatch(t *testing.T) {
	scorer := NewScorer(DefaultWeights)
	mention := models.MedicineMention{BrandText: "Crocin 650", Strength: "650mg", Form: "tablet"}
	hyp := brand.Hypothesis{Generic: "paracetamol", Confidence: brand.AliasConfidence, AliasKey: "paracetamol"}
	product := catalog.Product{Name: "Crocin 650", GenericName: "Paracetamol", Strength: "650mg", Form: "tablet"}

	score := scorer.Score(mention, hyp, product)
	if score < 0.99 {
		t.Fatalf("expected near-perfect score, got %v", score)
	}
}

func TestScoreStaysInUnitInterval(t *testing.T) {
	scorer := NewScorer(DefaultWeights)
	mentions := []models.MedicineMention{
		{BrandText: "Dolo 650", Strength: "650mg", Form: "tablet"},
		{BrandText: "zzzz"},
		{BrandText: "Augmentin 625 Duo", Strength: "625 mg"},
	}
	products := []catalog.Product{
		{Name: "Dolo 650", GenericName: "Paracetamol", Strength: "650mg", Form: "tablet"},
		{Name: "Omez 20", GenericName: "Omeprazole", Strength: "20mg", Form: "capsule"},
		{},
	}
	for _, mention := range mentions {
		for _, product := range products {
			score := scorer.Score(mention, brand.Hypothesis{Generic: "paracetamol"}, product)
			if score < 0 || score > 1 {
				t.Fatalf("score out of range for %q vs %q: %v", mention.BrandText, product.Name, score)
			}
		}
	}
}

func TestScoreAliasGenericFloor(t *testing.T) {
	scorer := NewScorer(DefaultWeights)
	mention := models.MedicineMention{BrandText: "Calpol 500"}
	product := catalog.Product{Name: "Calpol 500", GenericName: "Acetaminophen"}

	aliased := brand.Hypothesis{Generic: "paracetamol", AliasKey: "paracetamol"}
	literal := brand.Hypothesis{Generic: "paracetamol"}

	withFloor := scorer.Score(mention, aliased, product)
	withoutFloor := scorer.Score(mention, literal, product)
	if withFloor <= withoutFloor {
		t.Fatalf("alias floor should raise the score: %v <= %v", withFloor, withoutFloor)
	}
}

func TestScoreFormTiers(t *testing.T) {
	scorer := NewScorer(DefaultWeights)
	hyp := brand.Hypothesis{Generic: "paracetamol"}
	product := catalog.Product{Name: "Calpol 500", GenericName: "Paracetamol", Form: "tablets"}

	exact := scorer.Score(models.MedicineMention{BrandText: "Calpol 500", Form: "tablets"}, hyp, product)
	partial := scorer.Score(models.MedicineMention{BrandText: "Calpol 500", Form: "tablet"}, hyp, product)
	none := scorer.Score(models.MedicineMention{BrandText: "Calpol 500", Form: "syrup"}, hyp, product)

	if exact <= partial {
		t.Fatalf("exact form should outscore partial: %v <= %v", exact, partial)
	}
	if partial <= none {
		t.Fatalf("partial form should outscore mismatch: %v <= %v", partial, none)
	}
}

func TestScoreMissingStrengthContributesNothing(t *testing.T) {
	scorer := NewScorer(DefaultWeights)
	hyp := brand.Hypothesis{Generic: "paracetamol"}
	product := catalog.Product{Name: "Dolo 650", GenericName: "Paracetamol", Strength: "650mg"}

	with := scorer.Score(models.MedicineMention{BrandText: "Dolo 650", Strength: "650 mg"}, hyp, product)
	without := scorer.Score(models.MedicineMention{BrandText: "Dolo 650"}, hyp, product)
	if with <= without {
		t.Fatalf("matching strength should raise the score: %v <= %v", with, without)
	}
}

func TestNewScorerRejectsZeroWeights(t *testing.T) {
	scorer := NewScorer(Weights{})
	if scorer.weights != DefaultWeights {
		t.Fatalf("expected default weights, got %+v", scorer.weights)
	}
}

func TestSimilarityBounds(t *testing.T) {
	cases := [][2]string{
		{"dolo", "dolo"},
		{"dolo", "dol0"},
		{"", "dolo"},
		{"paracetamol", "acetaminophen"},
	}
	for _, c := range cases {
		got := similarity(c[0], c[1])
		if got < 0 || got > 1 {
			t.Fatalf("similarity(%q, %q) out of range: %v", c[0], c[1], got)
		}
	}
	if similarity("Dolo 650", "dolo 650") != 1.0 {
		t.Fatal("similarity must be case-insensitive")
	}
}
