package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.MatcherResultCap != 5 {
		t.Fatalf("unexpected result cap: %d", cfg.MatcherResultCap)
	}
	if cfg.MatcherLocateCap != 10 {
		t.Fatalf("unexpected locate cap: %d", cfg.MatcherLocateCap)
	}
	if cfg.MatcherMinConfidence != 0.3 {
		t.Fatalf("unexpected minimum confidence: %v", cfg.MatcherMinConfidence)
	}
	if cfg.MatcherFallbackFloor != 0.6 {
		t.Fatalf("unexpected fallback floor: %v", cfg.MatcherFallbackFloor)
	}

	total := cfg.MatcherNameWeight + cfg.MatcherGenericWeight + cfg.MatcherDoseWeight + cfg.MatcherFormWeight
	if total < 0.999 || total > 1.001 {
		t.Fatalf("matcher weights must sum to 1.0, got %v", total)
	}

	if cfg.ExtractionInputTopic != "prescription.extracted" {
		t.Fatalf("unexpected input topic: %q", cfg.ExtractionInputTopic)
	}
	if cfg.MatchOutputTopic != "medicine.matched" {
		t.Fatalf("unexpected output topic: %q", cfg.MatchOutputTopic)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("MATCHER_RESULT_CAP", "3")
	t.Setenv("MATCHER_NAME_WEIGHT", "0.5")
	t.Setenv("MATCH_CACHE_TTL", "30s")

	cfg := Load()
	if cfg.ServerPort != "9090" {
		t.Fatalf("unexpected server port: %q", cfg.ServerPort)
	}
	if cfg.MatcherResultCap != 3 {
		t.Fatalf("unexpected result cap: %d", cfg.MatcherResultCap)
	}
	if cfg.MatcherNameWeight != 0.5 {
		t.Fatalf("unexpected name weight: %v", cfg.MatcherNameWeight)
	}
	if cfg.MatchCacheTTL != 30*time.Second {
		t.Fatalf("unexpected cache TTL: %v", cfg.MatchCacheTTL)
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("MATCHER_RESULT_CAP", "not-a-number")
	t.Setenv("MATCHER_NAME_WEIGHT", "lots")

	cfg := Load()
	if cfg.MatcherResultCap != 5 {
		t.Fatalf("malformed int should fall back to default, got %d", cfg.MatcherResultCap)
	}
	if cfg.MatcherNameWeight != 0.40 {
		t.Fatalf("malformed float should fall back to default, got %v", cfg.MatcherNameWeight)
	}
}
