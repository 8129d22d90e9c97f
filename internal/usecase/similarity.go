package usecase

import "sort"

// Token weights for similarity scoring. Base-product tokens carry the most
// signal; brands and numeric facts (sizes, percentages) discriminate between
// variants of the same product; everything else is generic.
const (
	weightBase    = 3.0
	weightBrand   = 2.0
	weightNumeric = 2.0
	weightDefault = 1.0

	fuzzyMinTokenLen   = 4
	fuzzyEditDistance  = 1
	fuzzyWeightPenalty = 0.8
)

// CalculateSimilarity scores how likely two raw product names refer to the
// same product, in [0,1]. Scoring is symmetric and script-invariant: both
// names are reduced to canonical token sets first, so a Cyrillic receipt
// line and its Latin transliteration compare as near-equal. Unparseable
// input degrades to plain token overlap rather than failing.
func (n *Normalizer) CalculateSimilarity(a, b string) float64 {
	fa, fb := foldToken(a), foldToken(b)
	if fa != "" && fa == fb {
		return 1
	}

	ta := n.canonicalTokens(a)
	tb := n.canonicalTokens(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	matched := 0.0
	total := 0.0

	// exact canonical matches first; each shared token counts once toward
	// the total at the heavier of its two weights
	for tok, wa := range ta {
		if wb, ok := tb[tok]; ok {
			w := maxWeight(wa, wb)
			matched += w
			total += w
		}
	}

	// then fuzzy-pair the leftovers, in deterministic order; a paired
	// typo also counts once toward the total
	restA := leftoverTokens(ta, tb)
	restB := leftoverTokens(tb, ta)
	sort.Strings(restA)
	sort.Strings(restB)
	usedA := make(map[string]bool)
	usedB := make(map[string]bool)
	for _, x := range restA {
		for _, y := range restB {
			if usedA[x] || usedB[y] {
				continue
			}
			if fuzzyTokenMatch(x, y) {
				w := maxWeight(ta[x], tb[y])
				matched += w * fuzzyWeightPenalty
				total += w
				usedA[x], usedB[y] = true, true
				break
			}
		}
	}

	// unmatched leftovers dilute the score
	for _, x := range restA {
		if !usedA[x] {
			total += ta[x]
		}
	}
	for _, y := range restB {
		if !usedB[y] {
			total += tb[y]
		}
	}

	if total == 0 {
		return 0
	}
	return matched / total
}

// canonicalTokens reduces a raw name to a weighted canonical token set.
// Known base products, brands and attributes collapse to their canonical
// spelling; sizes and percentages normalize decimal commas so "3,6%" and
// "3.6%" agree; stop words vanish.
func (n *Normalizer) canonicalTokens(raw string) map[string]float64 {
	out := make(map[string]float64)
	tokens := tokenize(raw)
	for i := 0; i < len(tokens); i++ {
		f := foldToken(tokens[i])
		if f == "" || n.tables.StopWords[f] {
			continue
		}

		if m := percentPattern.FindStringSubmatch(f); m != nil {
			if v, err := parseDecimal(m[1]); err == nil {
				addToken(out, formatDecimal(v)+"%", weightNumeric)
			}
			continue
		}
		if m := fusedSizePattern.FindStringSubmatch(f); m != nil {
			if unit, ok := n.tables.Units[m[2]]; ok {
				if v, err := parseDecimal(m[1]); err == nil {
					addToken(out, formatDecimal(v)+unit, weightNumeric)
					continue
				}
			}
		}
		if numberPattern.MatchString(f) && i+1 < len(tokens) {
			next := foldToken(tokens[i+1])
			if next == "%" {
				if v, err := parseDecimal(f); err == nil {
					addToken(out, formatDecimal(v)+"%", weightNumeric)
				}
				i++
				continue
			}
			if unit, ok := n.tables.Units[next]; ok {
				if v, err := parseDecimal(f); err == nil {
					addToken(out, formatDecimal(v)+unit, weightNumeric)
				}
				i++
				continue
			}
		}
		if numberPattern.MatchString(f) {
			if v, err := parseDecimal(f); err == nil {
				addToken(out, formatDecimal(v), weightNumeric)
			}
			continue
		}

		if base, ok := n.tables.BaseProducts[f]; ok {
			addToken(out, foldToken(base), weightBase)
			continue
		}
		if brand, ok := n.tables.Brands[f]; ok {
			addToken(out, foldToken(brand), weightBrand)
			continue
		}
		if typ, ok := n.tables.Types[f]; ok {
			addToken(out, foldToken(typ), weightDefault)
			continue
		}
		if attr, ok := n.tables.Attributes[f]; ok {
			addToken(out, foldToken(attr), weightDefault)
			continue
		}
		addToken(out, f, weightDefault)
	}
	return out
}

func addToken(set map[string]float64, tok string, weight float64) {
	if weight > set[tok] {
		set[tok] = weight
	}
}

func maxWeight(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func leftoverTokens(set, other map[string]float64) []string {
	out := make([]string, 0, len(set))
	for tok := range set {
		if _, ok := other[tok]; !ok {
			out = append(out, tok)
		}
	}
	return out
}

// fuzzyTokenMatch reports whether two tokens are close enough to count as
// the same word despite an OCR typo. Short tokens are excluded: a single
// edit on a 3-letter word is usually a different word.
func fuzzyTokenMatch(a, b string) bool {
	ra, rb := []rune(a), []rune(b)
	if len(ra) < fuzzyMinTokenLen || len(rb) < fuzzyMinTokenLen {
		return false
	}
	diff := len(ra) - len(rb)
	if diff < -fuzzyEditDistance || diff > fuzzyEditDistance {
		return false
	}
	return levenshtein(ra, rb) <= fuzzyEditDistance
}

// levenshtein computes edit distance with the two-row dynamic program.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
