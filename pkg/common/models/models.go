package models

import (
	"time"
)

// Event Bus models
type Event struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"` // extract, match
	Source    string                 `json:"source"`
	Data      map[string]interface{} `json:"data"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]string      `json:"metadata,omitempty"`
}

// MedicineMention is one prescribed-item observation produced by the upstream
// text/vision extraction service. Frequency, duration and instructions are
// carried through unchanged and never matched upon.
type MedicineMention struct {
	RawText      string `json:"raw_text,omitempty"`
	BrandText    string `json:"brand_text"`
	Strength     string `json:"strength,omitempty"` // e.g. "650mg"
	Form         string `json:"form,omitempty"`     // e.g. tablet, capsule, syrup
	Frequency    string `json:"frequency,omitempty"`
	Duration     string `json:"duration,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

type MatchRequest struct {
	PrescriptionID string            `json:"prescription_id,omitempty"`
	Mentions       []MedicineMention `json:"mentions"`
}

// MatchCandidate is the presentation shape of one ranked suggestion.
// Confidence is rounded to two decimals at this boundary only.
type MatchCandidate struct {
	ProductID            string  `json:"product_id"`
	Name                 string  `json:"name"`
	GenericName          string  `json:"generic_name,omitempty"`
	Manufacturer         string  `json:"manufacturer,omitempty"`
	Strength             string  `json:"strength,omitempty"`
	Form                 string  `json:"form,omitempty"`
	UnitPrice            float64 `json:"unit_price"`
	StockQuantity        int     `json:"stock_quantity"`
	PrescriptionRequired bool    `json:"prescription_required"`
	MatchType            string  `json:"match_type"` // exact, composition, partial, generic, pattern
	Confidence           float64 `json:"confidence"`
}

type MentionMatches struct {
	Mention    MedicineMention  `json:"mention"`
	Candidates []MatchCandidate `json:"candidates"`
}

type MatchResponse struct {
	PrescriptionID string           `json:"prescription_id,omitempty"`
	Results        []MentionMatches `json:"results"`
}
