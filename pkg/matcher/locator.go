package matcher

import (
	"context"

	"github.com/pharmakart/platform/pkg/brand"
	"github.com/pharmakart/platform/pkg/catalog"
	"github.com/pharmakart/platform/pkg/common/models"
	"github.com/pharmakart/platform/pkg/composition"
)

// Locator queries the catalog through an ordered list of strategies. The
// first strategy returning a non-empty set wins; later tiers are fallback
// only and are never merged in. An empty result across all tiers is a normal
// outcome, not an error.
type Locator struct {
	catalog    CatalogReader
	strategies []strategy
	cap        int
}

type strategy struct {
	matchType MatchType
	locate    func(ctx context.Context, mention models.MedicineMention, hyp brand.Hypothesis) ([]catalog.Product, error)
}

func NewLocator(reader CatalogReader, cap int) *Locator {
	if cap <= 0 {
		cap = 10
	}
	l := &Locator{catalog: reader, cap: cap}
	l.strategies = []strategy{
		{MatchExact, l.locateExact},
		{MatchComposition, l.locateComposition},
		{MatchPartial, l.locatePartial},
		{MatchGeneric, l.locateGeneric},
		{MatchPattern, l.locatePattern},
	}
	return l
}

// Locate runs the strategies in order and returns the first non-empty
// candidate set together with the tier that produced it.
func (l *Locator) Locate(ctx context.Context, mention models.MedicineMention, hyp brand.Hypothesis) ([]catalog.Product, MatchType, error) {
	for _, s := range l.strategies {
		products, err := s.locate(ctx, mention, hyp)
		if err != nil {
			return nil, s.matchType, err
		}
		if len(products) > 0 {
			if len(products) > l.cap {
				products = products[:l.cap]
			}
			return products, s.matchType, nil
		}
	}
	return nil, "", nil
}

func (l *Locator) locateExact(ctx context.Context, mention models.MedicineMention, _ brand.Hypothesis) ([]catalog.Product, error) {
	return l.catalog.FindExact(ctx, mention.BrandText, l.cap)
}

func (l *Locator) locateComposition(ctx context.Context, _ models.MedicineMention, hyp brand.Hypothesis) ([]catalog.Product, error) {
	if hyp.Composition == "" {
		return nil, nil
	}
	normalized := composition.Normalize(hyp.Composition)
	return l.catalog.FindByComposition(ctx, normalized.Key(), normalized.IngredientKey(), l.cap)
}

func (l *Locator) locatePartial(ctx context.Context, mention models.MedicineMention, _ brand.Hypothesis) ([]catalog.Product, error) {
	return l.catalog.FindContains(ctx, mention.BrandText, l.cap)
}

func (l *Locator) locateGeneric(ctx context.Context, _ models.MedicineMention, hyp brand.Hypothesis) ([]catalog.Product, error) {
	if hyp.Generic == "" {
		return nil, nil
	}
	return l.catalog.FindByGeneric(ctx, hyp.Generic, "", l.cap)
}

func (l *Locator) locatePattern(ctx context.Context, _ models.MedicineMention, hyp brand.Hypothesis) ([]catalog.Product, error) {
	if !hyp.AliasHit() {
		return nil, nil
	}
	return l.catalog.FindByGeneric(ctx, hyp.Generic, hyp.AliasKey, l.cap)
}
