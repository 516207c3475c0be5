package matcher

import (
	"context"

	"github.com/pharmakart/platform/pkg/catalog"
)

// MatchType is the strategy tier that produced a candidate.
type MatchType string

const (
	MatchExact       MatchType = "exact"
	MatchComposition MatchType = "composition"
	MatchPartial     MatchType = "partial"
	MatchGeneric     MatchType = "generic"
	MatchPattern     MatchType = "pattern"
)

// Candidate is one scored suggestion for a mention. It lives only for the
// duration of the match request that produced it; nothing here is persisted.
type Candidate struct {
	Product    catalog.Product
	Type       MatchType
	Confidence float64
}

// CatalogReader is the read-only view of the product catalog the engine
// consumes. Implementations must be safe for concurrent reads.
type CatalogReader interface {
	FindExact(ctx context.Context, text string, limit int) ([]catalog.Product, error)
	FindByComposition(ctx context.Context, normalizedKey, ingredientKey string, limit int) ([]catalog.Product, error)
	FindContains(ctx context.Context, text string, limit int) ([]catalog.Product, error)
	FindByGeneric(ctx context.Context, generic, aliasKey string, limit int) ([]catalog.Product, error)
	ListActive(ctx context.Context, limit int) ([]catalog.Product, error)
}
