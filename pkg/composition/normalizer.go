package composition

import (
	"regexp"
	"sort"
	"strings"
)

// Ingredient is one (active ingredient, strength, unit) triple of a
// pharmaceutical composition. Strength and Unit are empty when the source
// text carried no dose for the ingredient.
type Ingredient struct {
	Name     string `json:"name"`
	Strength string `json:"strength,omitempty"`
	Unit     string `json:"unit,omitempty"`
}

// Normalized is the canonical, comparable form of a free-text composition.
// Ingredients are sorted alphabetically by name so that source order never
// affects comparison. Two compositions are equal only when their Key() values
// are equal; fuzzy equivalence is the scorer's job, not this package's.
type Normalized struct {
	Raw         string       `json:"raw"`
	Ingredients []Ingredient `json:"ingredients"`
}

var (
	spaceRe     = regexp.MustCompile(`\s+`)
	connectorRe = regexp.MustCompile(`\s*\+\s*|\s+and\s+|\s*&\s*`)
	strengthRe  = regexp.MustCompile(`\b(\d+(?:[.,]\d+)?)\s*([a-zµ%][a-z.%/µ]*)?`)
)

// unitSynonyms maps every recognised spelling of a unit to its canonical
// token. Unrecognised units pass through unchanged.
var unitSynonyms = map[string]string{
	"mg": "mg", "mgs": "mg", "milligram": "mg", "milligrams": "mg", "milligramme": "mg",
	"mcg": "mcg", "µg": "mcg", "ug": "mcg", "microgram": "mcg", "micrograms": "mcg",
	"g": "g", "gm": "g", "gms": "g", "gram": "g", "grams": "g",
	"ml": "ml", "mls": "ml", "milliliter": "ml", "milliliters": "ml", "millilitre": "ml", "millilitres": "ml",
	"l": "l", "liter": "l", "litre": "l",
	"iu": "iu", "i.u.": "iu", "i.u": "iu",
	"%": "%", "percent": "%", "pct": "%",
}

// Normalize canonicalizes a free-text composition string. It never fails:
// text that does not parse becomes a single name-only ingredient, so
// downstream comparison degrades to plain fuzzy string matching.
func Normalize(raw string) Normalized {
	cleaned := strings.ToLower(strings.TrimSpace(raw))
	cleaned = spaceRe.ReplaceAllString(cleaned, " ")

	normalized := Normalized{Raw: raw}
	if cleaned == "" {
		return normalized
	}

	for _, part := range connectorRe.Split(cleaned, -1) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		normalized.Ingredients = append(normalized.Ingredients, parseIngredient(part))
	}

	sort.SliceStable(normalized.Ingredients, func(i, j int) bool {
		return normalized.Ingredients[i].Name < normalized.Ingredients[j].Name
	})

	return normalized
}

// Key renders the canonical comparable form, e.g.
// "amoxicillin 500 mg + clavulanic acid 125 mg".
func (n Normalized) Key() string {
	parts := make([]string, 0, len(n.Ingredients))
	for _, ing := range n.Ingredients {
		fields := make([]string, 0, 3)
		if ing.Name != "" {
			fields = append(fields, ing.Name)
		}
		if ing.Strength != "" {
			fields = append(fields, ing.Strength)
		}
		if ing.Unit != "" {
			fields = append(fields, ing.Unit)
		}
		if len(fields) == 0 {
			continue
		}
		parts = append(parts, strings.Join(fields, " "))
	}
	return strings.Join(parts, " + ")
}

// IngredientKey renders only the sorted ingredient names, used to relate
// compositions of the same drug at different strengths.
func (n Normalized) IngredientKey() string {
	names := make([]string, 0, len(n.Ingredients))
	for _, ing := range n.Ingredients {
		if ing.Name != "" {
			names = append(names, ing.Name)
		}
	}
	return strings.Join(names, " + ")
}

// NormalizeStrength canonicalizes a bare dose string such as "650mg" to
// "650 mg" so strength comparisons are insensitive to spacing and unit
// spelling. Text without a dose is returned lower-cased and trimmed.
func NormalizeStrength(s string) string {
	cleaned := strings.ToLower(strings.TrimSpace(s))
	cleaned = spaceRe.ReplaceAllString(cleaned, " ")
	if cleaned == "" {
		return ""
	}
	ing := parseIngredient(cleaned)
	if ing.Strength == "" {
		return cleaned
	}
	if ing.Unit == "" {
		return ing.Strength
	}
	return ing.Strength + " " + ing.Unit
}

func parseIngredient(part string) Ingredient {
	loc := strengthRe.FindStringSubmatchIndex(part)
	if loc == nil {
		return Ingredient{Name: part}
	}

	strength := strings.ReplaceAll(part[loc[2]:loc[3]], ",", ".")
	unit := ""
	rest := part[loc[3]:]
	if loc[4] >= 0 {
		unit = canonicalUnit(part[loc[4]:loc[5]])
		rest = part[loc[5]:]
	}

	name := strings.TrimSpace(part[:loc[2]] + " " + rest)
	name = spaceRe.ReplaceAllString(name, " ")
	name = strings.Trim(name, " -,./")

	return Ingredient{Name: name, Strength: strength, Unit: unit}
}

func canonicalUnit(unit string) string {
	if canonical, ok := unitSynonyms[unit]; ok {
		return canonical
	}
	return unit
}
