package engine

import (
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/soteria-labs/soteria/pkg/lexicon"
)

// Sentiment scoring constants. The normalization follows the standard
// social-text lexicon approach: the raw valence sum is squashed through
// x / sqrt(x^2 + alpha) so a handful of strong tokens saturates toward +-1
// without ever leaving the range.
const (
	negationFlip       = -0.74 // Flipped valence keeps most of its magnitude
	negationWindow     = 3     // Tokens to look back for a negation
	capsEmphasisScale  = 1.15  // ALL-CAPS valence token emphasis
	exclamationBoost   = 0.06  // Per trailing '!', capped
	maxExclamations    = 3
	normalizationAlpha = 15.0
)

// SentimentScorer computes signed polarity from the lexicon. A strongly
// negative score is an input to fusion, not itself a toxicity verdict.
type SentimentScorer struct {
	lex *lexicon.Lexicon
}

// NewSentimentScorer wraps a loaded lexicon.
func NewSentimentScorer(lex *lexicon.Lexicon) *SentimentScorer {
	return &SentimentScorer{lex: lex}
}

// Detect scores normalized text and produces a Sentiment signal whose Score
// is signed (-1.0..1.0), never remapped to severity.
func (s *SentimentScorer) Detect(text string) SignalReading {
	start := time.Now()
	reading := NewSignalReading(SignalSourceSentiment)

	rawTokens := strings.Fields(text)
	sum := 0.0
	hits := 0

	for i, rawToken := range rawTokens {
		token := stripTokenPunct(rawToken)
		if token == "" {
			continue
		}
		lower := strings.ToLower(token)

		valence, ok := s.lex.Valence(lower)
		if !ok {
			continue
		}
		hits++

		// Capitalization emphasis: an all-caps valence token shouts
		if isAllCaps(token) {
			valence *= capsEmphasisScale
		}

		// Look back for intensifiers and negations. The nearest modifier
		// wins per kind; "not very good" both flips and scales.
		for j := i - 1; j >= 0 && j >= i-negationWindow; j-- {
			prev := strings.ToLower(stripTokenPunct(rawTokens[j]))
			if prev == "" {
				continue
			}
			if mult, ok := s.lex.Intensifier(prev); ok {
				valence *= mult
			}
			if s.lex.IsNegation(prev) {
				valence *= negationFlip
				break
			}
		}

		// Punctuation emphasis: trailing exclamations amplify this token
		if n := trailingExclamations(rawToken); n > 0 {
			if n > maxExclamations {
				n = maxExclamations
			}
			valence += float64(n) * exclamationBoost * sign(valence)
		}

		sum += valence
	}

	score := 0.0
	if hits > 0 {
		score = sum / math.Sqrt(sum*sum+normalizationAlpha)
	}
	reading.Score = clamp(score, -1.0, 1.0)
	reading.SetDetail("valence_tokens", hits)
	reading.LatencyMs = float64(time.Since(start).Microseconds()) / 1000.0
	return reading
}

func stripTokenPunct(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
}

func isAllCaps(s string) bool {
	letters := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			letters++
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return letters >= 2
}

func trailingExclamations(s string) int {
	n := 0
	for i := len(s) - 1; i >= 0 && s[i] == '!'; i-- {
		n++
	}
	return n
}

func sign(f float64) float64 {
	if f < 0 {
		return -1
	}
	return 1
}

func clamp(f, lo, hi float64) float64 {
	if f < lo {
		return lo
	}
	if f > hi {
		return hi
	}
	return f
}
