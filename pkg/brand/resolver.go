package brand

import (
	"regexp"
	"strings"
)

// Confidence assigned to a hypothesis depending on how it was produced.
// An alias-table hit is a strong signal; an unknown brand degrades to a
// literal-text search with a low fixed confidence, never an error.
const (
	AliasConfidence   = 0.9
	UnknownConfidence = 0.2
)

// Hypothesis is the resolver's best guess for the generic behind a brand
// string. AliasKey is the generic key of the table entry that matched, empty
// when the brand was unknown and Generic is just the cleaned input text.
type Hypothesis struct {
	Generic     string  `json:"generic"`
	Composition string  `json:"composition,omitempty"`
	Confidence  float64 `json:"confidence"`
	AliasKey    string  `json:"alias_key,omitempty"`
}

// AliasHit reports whether the hypothesis came from the alias table.
func (h Hypothesis) AliasHit() bool {
	return h.AliasKey != ""
}

type Resolver struct {
	table AliasTable
}

func NewResolver(table AliasTable) *Resolver {
	return &Resolver{table: table}
}

var (
	doseTokenRe = regexp.MustCompile(`\b\d+(?:[.,]\d+)?\s*(?:mg|mcg|µg|ug|g|gm|ml|l|iu|%)?\b`)
	formTokenRe = regexp.MustCompile(`\b(?:tablets?|tabs?|capsules?|caps?|syrup|suspension|injection|inj|cream|gel|ointment|drops?|spray|sachet|lotion)\b`)
	spaceRe     = regexp.MustCompile(`\s+`)
)

// Resolve maps a brand/product string to a generic hypothesis. Strength and
// dosage-form tokens are stripped before the alias lookup; entries are tried
// in table order and the first hit wins.
func (r *Resolver) Resolve(brandText string) Hypothesis {
	cleaned := cleanBrandText(brandText)

	for _, entry := range r.table.Entries {
		if matchesEntry(cleaned, entry) {
			return Hypothesis{
				Generic:     entry.Generic,
				Composition: entry.Composition,
				Confidence:  AliasConfidence,
				AliasKey:    entry.Generic,
			}
		}
	}

	return Hypothesis{
		Generic:    cleaned,
		Confidence: UnknownConfidence,
	}
}

func matchesEntry(cleaned string, entry AliasEntry) bool {
	if cleaned == "" {
		return false
	}
	if strings.Contains(cleaned, strings.ToLower(entry.Generic)) {
		return true
	}
	for _, alias := range entry.Aliases {
		if strings.Contains(cleaned, strings.ToLower(alias)) {
			return true
		}
	}
	return false
}

func cleanBrandText(text string) string {
	cleaned := strings.ToLower(strings.TrimSpace(text))
	cleaned = doseTokenRe.ReplaceAllString(cleaned, " ")
	cleaned = formTokenRe.ReplaceAllString(cleaned, " ")
	cleaned = spaceRe.ReplaceAllString(cleaned, " ")
	return strings.Trim(cleaned, " -,.")
}
