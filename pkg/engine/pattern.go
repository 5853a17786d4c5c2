package engine

import (
	"math"
	"time"
)

// RuleMatch is one lexical rule hit reported by a rule provider.
type RuleMatch struct {
	Name     string
	Category Category
	Weight   float64
}

// RuleMatcher is implemented by the compiled rule registry (pkg/rules).
// Matching must be deterministic: same text, same matches, same order.
type RuleMatcher interface {
	Match(text string) []RuleMatch
}

// decayFactor scales repeated hits within the same category. The first hit
// counts fully, the second at half weight, the third at a quarter, so
// repeating a banned term cannot inflate the score.
const decayFactor = 0.5

// PatternDetector evaluates the lexical rule set against normalized text.
// Stateless; the registry it wraps is immutable after startup.
type PatternDetector struct {
	matcher RuleMatcher
}

// NewPatternDetector wraps a compiled rule provider.
func NewPatternDetector(m RuleMatcher) *PatternDetector {
	return &PatternDetector{matcher: m}
}

// Detect runs every rule and produces a Pattern signal. Per-category weight
// is the decayed sum of that category's rule hits, capped at 1.0; the
// reading's score is the maximum category weight. Deterministic, no failure
// mode: malformed rules were rejected at startup.
func (d *PatternDetector) Detect(text string) SignalReading {
	start := time.Now()
	reading := NewSignalReading(SignalSourcePattern)

	hitsPerCategory := make(map[Category]int)
	namesPerCategory := make(map[Category][]string)

	for _, m := range d.matcher.Match(text) {
		n := hitsPerCategory[m.Category]
		contribution := m.Weight * math.Pow(decayFactor, float64(n))
		reading.MatchedCategories[m.Category] = math.Min(1.0, reading.MatchedCategories[m.Category]+contribution)
		hitsPerCategory[m.Category] = n + 1
		namesPerCategory[m.Category] = append(namesPerCategory[m.Category], m.Name)
	}

	for cat := range reading.MatchedCategories {
		reading.SetDetail("rules_"+string(cat), namesPerCategory[cat])
	}

	// Drop zero-weight entries so MatchedCategories means "activated"
	for cat, w := range reading.MatchedCategories {
		if w <= 0 {
			delete(reading.MatchedCategories, cat)
		}
	}

	if top, w := reading.TopCategory(); w > 0 {
		reading.Score = w
		reading.SetDetail("dominant_category", string(top))
	}

	reading.LatencyMs = float64(time.Since(start).Microseconds()) / 1000.0
	return reading
}
