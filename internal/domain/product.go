package domain

// ProductComponents holds the structured fields parsed out of a raw,
// OCR-derived product name. Absent fields are nil/empty, never an error.
type ProductComponents struct {
	BaseProduct string   `json:"base_product"`
	Brand       string   `json:"brand,omitempty"`
	Type        string   `json:"type,omitempty"`
	Size        *float64 `json:"size,omitempty"`
	Unit        string   `json:"unit,omitempty"`
	FatContent  *float64 `json:"fat_content,omitempty"`
	Attributes  []string `json:"attributes"`
}

// HasSize reports whether a size/unit pair was extracted. Size and Unit are
// either both present or both absent.
func (c ProductComponents) HasSize() bool {
	return c.Size != nil && c.Unit != ""
}

// MatchCandidate is a catalog entry evaluated as a potential match for a
// parsed product. Field names follow the catalog's REST payload.
type MatchCandidate struct {
	ID             string   `json:"id"`
	NormalizedName string   `json:"normalized_name"`
	Brand          string   `json:"brand,omitempty"`
	Size           *float64 `json:"size,omitempty"`
	Unit           string   `json:"unit,omitempty"`
	Keywords       []string `json:"keywords"`
}

// MatchResult is the chosen candidate plus its composite score in [0,1].
type MatchResult struct {
	Candidate MatchCandidate `json:"candidate"`
	Score     float64        `json:"score"`
}

// NormalizedProduct is the output of the full normalization pipeline:
// canonical display name, search keywords, and a completeness-based
// confidence score in [0,1].
type NormalizedProduct struct {
	NormalizedName string            `json:"normalized_name"`
	Keywords       []string          `json:"keywords"`
	Confidence     float64           `json:"confidence"`
	Components     ProductComponents `json:"components"`
}

// ProductResolution is the result of resolving a raw receipt line against
// the catalog. Match is nil when no candidate cleared the acceptance
// threshold; NeedsReview flags such results for manual confirmation.
type ProductResolution struct {
	Normalized  NormalizedProduct `json:"normalized"`
	Match       *MatchResult      `json:"match,omitempty"`
	NeedsReview bool              `json:"needs_review"`
	Source      string            `json:"source"` // "live" or "cache"
}
