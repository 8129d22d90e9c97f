package usecase

import (
	"strings"

	"github.com/kasichka/backend/internal/domain"
)

// Confidence weights: how much each successfully extracted field contributes
// to the overall completeness score. A recognized base product dominates; a
// fallback guess barely registers.
const (
	confidenceKnownBase   = 0.40
	confidenceFallback    = 0.10
	confidenceBrand       = 0.20
	confidenceSizeUnit    = 0.20
	confidenceFat         = 0.10
	confidenceDescriptors = 0.10
)

// minAttributeLen filters out leftover fragments too short to carry meaning
const minAttributeLen = 3

// Normalizer parses noisy OCR product names into structured components and
// renders canonical names and search keywords. Every method is a pure,
// stateless transform over the injected lookup tables, so a single instance
// is safe for concurrent use.
type Normalizer struct {
	tables *Tables
}

// NewNormalizer creates a normalizer. Passing nil uses the default
// production tables.
func NewNormalizer(tables *Tables) *Normalizer {
	if tables == nil {
		tables = DefaultTables()
	}
	return &Normalizer{tables: tables}
}

// Parse extracts structured components from a raw product name. It never
// fails: fields that cannot be recognized stay nil/empty, and BaseProduct
// falls back to the first content token when no known product word appears.
func (n *Normalizer) Parse(raw string) domain.ProductComponents {
	c := domain.ProductComponents{Attributes: []string{}}

	tokens := tokenize(raw)
	folded := make([]string, len(tokens))
	for i, t := range tokens {
		folded[i] = foldToken(t)
	}
	consumed := make([]bool, len(tokens))

	// Pass 1: numeric tokens. A trailing % always means fat content and
	// never size; a number only counts as size when a known unit follows
	// or is fused onto it.
	for i := 0; i < len(tokens); i++ {
		f := folded[i]

		if m := percentPattern.FindStringSubmatch(f); m != nil {
			if c.FatContent == nil {
				if v, err := parseDecimal(m[1]); err == nil {
					c.FatContent = &v
				}
			}
			consumed[i] = true
			continue
		}

		// percent split across two tokens: "3,6 %"
		if numberPattern.MatchString(f) && i+1 < len(tokens) && folded[i+1] == "%" {
			if c.FatContent == nil {
				if v, err := parseDecimal(f); err == nil {
					c.FatContent = &v
				}
			}
			consumed[i], consumed[i+1] = true, true
			i++
			continue
		}

		if m := fusedSizePattern.FindStringSubmatch(f); m != nil {
			if unit, ok := n.tables.Units[m[2]]; ok {
				if !c.HasSize() {
					if v, err := parseDecimal(m[1]); err == nil {
						c.Size = &v
						c.Unit = unit
					}
				}
				consumed[i] = true
				continue
			}
		}

		if numberPattern.MatchString(f) && i+1 < len(tokens) {
			if unit, ok := n.tables.Units[folded[i+1]]; ok {
				if !c.HasSize() {
					if v, err := parseDecimal(f); err == nil {
						c.Size = &v
						c.Unit = unit
					}
				}
				consumed[i], consumed[i+1] = true, true
				i++
				continue
			}
		}
	}

	// Pass 2: word tokens, in input order. First base-product hit wins,
	// at most one brand and one type; everything else of sufficient
	// length becomes an attribute.
	for i, f := range folded {
		if consumed[i] || f == "" {
			continue
		}
		if numberPattern.MatchString(f) {
			// bare number with no unit: not a size, dropped
			continue
		}
		if base, ok := n.tables.BaseProducts[f]; ok {
			if c.BaseProduct == "" {
				c.BaseProduct = base
			}
			continue
		}
		if n.tables.StopWords[f] {
			continue
		}
		if brand, ok := n.tables.Brands[f]; ok {
			if c.Brand == "" {
				c.Brand = brand
			}
			continue
		}
		if typ, ok := n.tables.Types[f]; ok {
			if c.Type == "" {
				c.Type = typ
			}
			continue
		}
		if len([]rune(f)) < minAttributeLen {
			continue
		}
		attr := f
		if canon, ok := n.tables.Attributes[f]; ok {
			attr = canon
		}
		appendUnique(&c.Attributes, attr)
	}

	if c.BaseProduct == "" {
		c.BaseProduct = n.fallbackBase(&c, folded)
	}

	return c
}

// fallbackBase produces a best-effort base product when no table entry
// matched: the first attribute token if any, otherwise the first purely
// alphabetic token of the input.
func (n *Normalizer) fallbackBase(c *domain.ProductComponents, folded []string) string {
	if len(c.Attributes) > 0 {
		base := c.Attributes[0]
		c.Attributes = c.Attributes[1:]
		return base
	}
	for _, f := range folded {
		if isAlphabetic(f) {
			return f
		}
	}
	return ""
}

// NormalizeName renders components into the canonical display string in
// fixed field order: base, type, brand, fat content, size. Missing fields
// are omitted. The output is deterministic and is used upstream for
// equality-style deduplication.
func (n *Normalizer) NormalizeName(c domain.ProductComponents) string {
	parts := make([]string, 0, 5)
	if c.BaseProduct != "" {
		parts = append(parts, c.BaseProduct)
	}
	if c.Type != "" {
		parts = append(parts, c.Type)
	}
	if c.Brand != "" {
		parts = append(parts, c.Brand)
	}
	if c.FatContent != nil {
		parts = append(parts, formatDecimal(*c.FatContent)+"%")
	}
	if c.HasSize() {
		parts = append(parts, formatDecimal(*c.Size)+c.Unit)
	}
	return strings.Join(parts, " ")
}

// Keywords generates the lowercase search token set for a parsed product:
// the base product and its synonyms, the brand (spaced and squashed
// variants), and the size+unit concatenation. Duplicates are removed;
// order is not significant to callers.
func (n *Normalizer) Keywords(c domain.ProductComponents) []string {
	out := []string{}
	if c.BaseProduct != "" {
		appendUnique(&out, strings.ToLower(c.BaseProduct))
		for _, syn := range n.tables.Synonyms[c.BaseProduct] {
			appendUnique(&out, strings.ToLower(syn))
		}
	}
	if c.Brand != "" {
		b := strings.ToLower(c.Brand)
		appendUnique(&out, b)
		squashed := strings.NewReplacer(" ", "", "-", "").Replace(b)
		appendUnique(&out, squashed)
	}
	if c.HasSize() {
		appendUnique(&out, formatDecimal(*c.Size)+c.Unit)
	}
	return out
}

// Normalize runs the full pipeline: parse, render the canonical name,
// generate keywords, and score extraction completeness. Confidence is a
// weighted count of recognized fields, not a probability.
func (n *Normalizer) Normalize(raw string) domain.NormalizedProduct {
	c := n.Parse(raw)

	conf := 0.0
	if c.BaseProduct != "" {
		if n.tables.Canonical[c.BaseProduct] {
			conf += confidenceKnownBase
		} else {
			conf += confidenceFallback
		}
	}
	if c.Brand != "" {
		conf += confidenceBrand
	}
	if c.HasSize() {
		conf += confidenceSizeUnit
	}
	if c.FatContent != nil {
		conf += confidenceFat
	}
	if c.Type != "" || len(c.Attributes) > 0 {
		conf += confidenceDescriptors
	}
	if conf > 1 {
		conf = 1
	}

	return domain.NormalizedProduct{
		NormalizedName: n.NormalizeName(c),
		Keywords:       n.Keywords(c),
		Confidence:     conf,
		Components:     c,
	}
}
