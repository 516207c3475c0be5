package matcher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/pharmakart/platform/pkg/brand"
	"github.com/pharmakart/platform/pkg/catalog"
	"github.com/pharmakart/platform/pkg/common/models"
)

// fakeCatalog is an in-memory CatalogReader with one canned result set per
// strategy. FindByGeneric distinguishes the generic and pattern tiers by the
// alias key argument.
type fakeCatalog struct {
	mu sync.Mutex

	exact         []catalog.Product
	byComposition []catalog.Product
	contains      []catalog.Product
	byGeneric     []catalog.Product
	byPattern     []catalog.Product
	active        []catalog.Product

	err   error
	calls []string
}

func (f *fakeCatalog) record(name string) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
}

func truncate(products []catalog.Product, limit int) []catalog.Product {
	if limit > 0 && len(products) > limit {
		return products[:limit]
	}
	return products
}

func (f *fakeCatalog) FindExact(_ context.Context, _ string, limit int) ([]catalog.Product, error) {
	f.record("exact")
	return truncate(f.exact, limit), f.err
}

func (f *fakeCatalog) FindByComposition(_ context.Context, _, _ string, limit int) ([]catalog.Product, error) {
	f.record("composition")
	return truncate(f.byComposition, limit), f.err
}

func (f *fakeCatalog) FindContains(_ context.Context, _ string, limit int) ([]catalog.Product, error) {
	f.record("contains")
	return truncate(f.contains, limit), f.err
}

func (f *fakeCatalog) FindByGeneric(_ context.Context, _, aliasKey string, limit int) ([]catalog.Product, error) {
	if aliasKey != "" {
		f.record("pattern")
		return truncate(f.byPattern, limit), f.err
	}
	f.record("generic")
	return truncate(f.byGeneric, limit), f.err
}

func (f *fakeCatalog) ListActive(_ context.Context, limit int) ([]catalog.Product, error) {
	f.record("active")
	return truncate(f.active, limit), f.err
}

func product(id, name string) catalog.Product {
	return catalog.Product{ID: id, Name: name, Active: true}
}

func TestLocateFirstStrategyWins(t *testing.T) {
	fake := &fakeCatalog{
		exact:    []catalog.Product{product("p1", "Dolo 650")},
		contains: []catalog.Product{product("p2", "Dolo 650 MR")},
	}
	locator := NewLocator(fake, 10)

	mention := models.MedicineMention{BrandText: "Dolo 650"}
	hyp := brand.Hypothesis{Generic: "paracetamol", Composition: "paracetamol", AliasKey: "paracetamol"}

	products, matchType, err := locator.Locate(context.Background(), mention, hyp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if matchType != MatchExact {
		t.Fatalf("expected exact tier, got %q", matchType)
	}
	if len(products) != 1 || products[0].ID != "p1" {
		t.Fatalf("unexpected products: %+v", products)
	}
	if len(fake.calls) != 1 || fake.calls[0] != "exact" {
		t.Fatalf("later tiers must not run after a hit: %v", fake.calls)
	}
}

func TestLocateFallsThroughInOrder(t *testing.T) {
	fake := &fakeCatalog{
		contains: []catalog.Product{product("p3", "Dolo 650 MR")},
	}
	locator := NewLocator(fake, 10)

	mention := models.MedicineMention{BrandText: "Dolo 650"}
	hyp := brand.Hypothesis{Generic: "paracetamol", Composition: "paracetamol", AliasKey: "paracetamol"}

	products, matchType, err := locator.Locate(context.Background(), mention, hyp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if matchType != MatchPartial {
		t.Fatalf("expected partial tier, got %q", matchType)
	}
	if len(products) != 1 || products[0].ID != "p3" {
		t.Fatalf("unexpected products: %+v", products)
	}

	want := []string{"exact", "composition", "contains"}
	if len(fake.calls) != len(want) {
		t.Fatalf("unexpected call sequence: %v", fake.calls)
	}
	for i, call := range want {
		if fake.calls[i] != call {
			t.Fatalf("unexpected call sequence: %v", fake.calls)
		}
	}
}

func TestLocateSkipsCompositionWithoutHypothesis(t *testing.T) {
	fake := &fakeCatalog{
		byGeneric: []catalog.Product{product("p4", "Paracetamol 500")},
	}
	locator := NewLocator(fake, 10)

	mention := models.MedicineMention{BrandText: "some brand"}
	hyp := brand.Hypothesis{Generic: "some brand"}

	_, matchType, err := locator.Locate(context.Background(), mention, hyp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if matchType != MatchGeneric {
		t.Fatalf("expected generic tier, got %q", matchType)
	}
	for _, call := range fake.calls {
		if call == "composition" {
			t.Fatal("composition tier must be skipped without a composition hypothesis")
		}
	}
}

func TestLocatePatternRequiresAliasHit(t *testing.T) {
	fake := &fakeCatalog{
		byPattern: []catalog.Product{product("p5", "Amoxicillin 500")},
	}
	locator := NewLocator(fake, 10)

	mention := models.MedicineMention{BrandText: "mystery"}

	products, matchType, err := locator.Locate(context.Background(), mention, brand.Hypothesis{Generic: "mystery"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 0 || matchType != "" {
		t.Fatalf("expected empty result without alias hit, got %+v (%q)", products, matchType)
	}

	fake.calls = nil
	hyp := brand.Hypothesis{Generic: "amoxicillin", AliasKey: "amoxicillin"}
	products, matchType, err = locator.Locate(context.Background(), mention, hyp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if matchType != MatchPattern || len(products) != 1 {
		t.Fatalf("expected pattern tier hit, got %+v (%q)", products, matchType)
	}
}

func TestLocateCapsCandidates(t *testing.T) {
	var many []catalog.Product
	for i := 0; i < 25; i++ {
		many = append(many, product(fmt.Sprintf("p%d", i), "Paracetamol"))
	}
	locator := NewLocator(&fakeCatalog{exact: many}, 10)

	products, _, err := locator.Locate(context.Background(), models.MedicineMention{BrandText: "Paracetamol"}, brand.Hypothesis{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 10 {
		t.Fatalf("expected cap of 10, got %d", len(products))
	}
}

func TestLocatePropagatesCatalogError(t *testing.T) {
	wantErr := errors.New("connection refused")
	locator := NewLocator(&fakeCatalog{err: wantErr}, 10)

	_, _, err := locator.Locate(context.Background(), models.MedicineMention{BrandText: "Dolo 650"}, brand.Hypothesis{})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected catalog error, got %v", err)
	}
}
