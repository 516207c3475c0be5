package brand

import "testing"

func TestResolveKnownAlias(t *testing.T) {
	resolver := NewResolver(DefaultTable())

	hyp := resolver.Resolve("Dolo 650")
	if hyp.Generic != "paracetamol" {
		t.Fatalf("expected paracetamol, got %q", hyp.Generic)
	}
	if hyp.Composition != "paracetamol" {
		t.Fatalf("expected paracetamol composition, got %q", hyp.Composition)
	}
	if hyp.Confidence != AliasConfidence {
		t.Fatalf("expected alias confidence %v, got %v", AliasConfidence, hyp.Confidence)
	}
	if !hyp.AliasHit() {
		t.Fatal("expected alias hit")
	}
}

func TestResolveStripsDoseAndFormTokens(t *testing.T) {
	resolver := NewResolver(DefaultTable())

	hyp := resolver.Resolve("Crocin Advance Tablets 500mg")
	if hyp.Generic != "paracetamol" {
		t.Fatalf("expected paracetamol, got %q", hyp.Generic)
	}
}

func TestResolveCombinationBrand(t *testing.T) {
	resolver := NewResolver(DefaultTable())

	hyp := resolver.Resolve("Augmentin 625 Duo")
	if hyp.Generic != "amoxicillin + clavulanic acid" {
		t.Fatalf("expected combination generic, got %q", hyp.Generic)
	}
}

func TestResolveTableOrderPriority(t *testing.T) {
	resolver := NewResolver(DefaultTable())

	// "moxclav" contains the base alias "mox"; the base generic is
	// registered first and wins the ambiguous substring.
	hyp := resolver.Resolve("Moxclav 625")
	if hyp.Generic != "amoxicillin" {
		t.Fatalf("expected base generic to win, got %q", hyp.Generic)
	}
}

func TestResolveUnknownBrand(t *testing.T) {
	resolver := NewResolver(DefaultTable())

	hyp := resolver.Resolve("Unknown Xyz 50mg")
	if hyp.Generic != "unknown xyz" {
		t.Fatalf("expected literal fallback, got %q", hyp.Generic)
	}
	if hyp.Confidence != UnknownConfidence {
		t.Fatalf("expected unknown confidence %v, got %v", UnknownConfidence, hyp.Confidence)
	}
	if hyp.AliasHit() {
		t.Fatal("unknown brand must not report an alias hit")
	}
}

func TestResolveEmptyText(t *testing.T) {
	resolver := NewResolver(DefaultTable())

	hyp := resolver.Resolve("   ")
	if hyp.Generic != "" || hyp.AliasHit() {
		t.Fatalf("expected empty hypothesis, got %+v", hyp)
	}
}
