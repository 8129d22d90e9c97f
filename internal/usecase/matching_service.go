package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/kasichka/backend/internal/domain"
)

// Composite match score weights. Name similarity dominates; exact brand and
// size agreement act as bonuses; keyword overlap catches candidates whose
// stored name diverges from the receipt wording.
const (
	matchSimilarityWeight = 0.50
	matchBrandBonus       = 0.20
	matchSizeBonus        = 0.15
	matchKeywordWeight    = 0.15

	defaultMinMatchScore = 0.55

	// tieEpsilon treats scores within float noise of each other as equal
	// so deterministic tie-breaking can kick in.
	tieEpsilon = 1e-9
)

// MatchConfig tunes candidate matching.
type MatchConfig struct {
	// MinScoreThreshold is the lowest composite score that still counts
	// as a match. Zero means use the default.
	MinScoreThreshold  float64
	EnableDebugLogging bool
}

// MatchingService scores normalized products against catalog candidates and
// picks the best acceptable one. Matching itself is pure; the service only
// carries configuration and the normalizer used for similarity scoring.
type MatchingService struct {
	normalizer *Normalizer
	config     MatchConfig
}

// NewMatchingService creates a matching service. A nil normalizer gets the
// default tables; an unset threshold gets the default cutoff.
func NewMatchingService(normalizer *Normalizer, config MatchConfig) *MatchingService {
	if normalizer == nil {
		normalizer = NewNormalizer(nil)
	}
	if config.MinScoreThreshold <= 0 {
		config.MinScoreThreshold = defaultMinMatchScore
	}
	return &MatchingService{normalizer: normalizer, config: config}
}

// MatchProduct scores every candidate against the normalized product and
// returns the best one at or above the threshold, or nil when no candidate
// qualifies. Ties break toward exact brand agreement, then exact size
// agreement, then earlier position in the candidate list.
func (s *MatchingService) MatchProduct(product domain.NormalizedProduct, candidates []domain.MatchCandidate) *domain.MatchResult {
	if len(candidates) == 0 {
		return nil
	}

	var best *domain.MatchResult
	var bestBrand, bestSize bool

	for i := range candidates {
		cand := candidates[i]
		score := s.scoreCandidate(product, cand)
		brandExact := brandMatches(product.Components, cand)
		sizeExact := s.sizeMatches(product.Components, cand)

		s.debugf("candidate %q score=%.3f brand=%v size=%v", cand.NormalizedName, score, brandExact, sizeExact)

		if score < s.config.MinScoreThreshold {
			continue
		}
		if best == nil || score > best.Score+tieEpsilon {
			best = &domain.MatchResult{Candidate: cand, Score: score}
			bestBrand, bestSize = brandExact, sizeExact
			continue
		}
		if score > best.Score-tieEpsilon {
			// tied: prefer brand agreement, then size agreement
			if (brandExact && !bestBrand) || (brandExact == bestBrand && sizeExact && !bestSize) {
				best = &domain.MatchResult{Candidate: cand, Score: score}
				bestBrand, bestSize = brandExact, sizeExact
			}
		}
	}

	return best
}

// FindBestMatch is the context-aware entry point used by the service layer.
// It returns ErrNoMatch when no candidate clears the threshold.
func (s *MatchingService) FindBestMatch(ctx context.Context, product domain.NormalizedProduct, candidates []domain.MatchCandidate) (*domain.MatchResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	result := s.MatchProduct(product, candidates)
	if result == nil {
		return nil, fmt.Errorf("%w: no candidate scored above %.2f", domain.ErrNoMatch, s.config.MinScoreThreshold)
	}
	return result, nil
}

func (s *MatchingService) scoreCandidate(product domain.NormalizedProduct, cand domain.MatchCandidate) float64 {
	score := matchSimilarityWeight * s.normalizer.CalculateSimilarity(product.NormalizedName, cand.NormalizedName)

	if brandMatches(product.Components, cand) {
		score += matchBrandBonus
	}
	if s.sizeMatches(product.Components, cand) {
		score += matchSizeBonus
	}
	score += matchKeywordWeight * keywordOverlap(product.Keywords, cand.Keywords)

	if score > 1 {
		score = 1
	}
	return score
}

// brandMatches requires both sides to name a brand and agree on it after
// folding. A missing brand on either side is not a match.
func brandMatches(c domain.ProductComponents, cand domain.MatchCandidate) bool {
	if c.Brand == "" || cand.Brand == "" {
		return false
	}
	return foldToken(c.Brand) == foldToken(cand.Brand)
}

// sizeMatches requires exact value and unit agreement. Candidate units are
// canonicalized first so a catalog entry stored as "l" still matches "л".
func (s *MatchingService) sizeMatches(c domain.ProductComponents, cand domain.MatchCandidate) bool {
	if !c.HasSize() || cand.Size == nil || cand.Unit == "" {
		return false
	}
	unit := strings.ToLower(cand.Unit)
	if canon, ok := s.normalizer.tables.Units[foldToken(unit)]; ok {
		unit = canon
	}
	return *c.Size == *cand.Size && c.Unit == unit
}

// keywordOverlap is the fraction of the product's keywords present in the
// candidate's keyword list, fold-insensitive.
func keywordOverlap(mine, theirs []string) float64 {
	if len(mine) == 0 || len(theirs) == 0 {
		return 0
	}
	set := make(map[string]bool, len(theirs))
	for _, k := range theirs {
		set[foldToken(k)] = true
	}
	hits := 0
	for _, k := range mine {
		if set[foldToken(k)] {
			hits++
		}
	}
	return float64(hits) / float64(len(mine))
}

func (s *MatchingService) debugf(format string, args ...interface{}) {
	if s.config.EnableDebugLogging {
		log.Printf("[MATCH] "+format, args...)
	}
}
