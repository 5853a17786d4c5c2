package engine

// SignalSource identifies which detector produced a reading
type SignalSource string

const (
	SignalSourcePattern    SignalSource = "pattern"    // Rule-based lexical matcher
	SignalSourceSentiment  SignalSource = "sentiment"  // Lexicon polarity scorer
	SignalSourceClassifier SignalSource = "classifier" // ML toxicity classifier (ONNX)
)

// SignalReading is one detector's independent assessment of a text.
// This is the universal format every detection layer produces; the fusion
// step consumes a set of these and nothing else.
type SignalReading struct {
	// Source identifies which detector produced this reading
	Source SignalSource `json:"source"`

	// Score is the detector's severity contribution. Pattern and Classifier
	// report 0.0-1.0; Sentiment reports signed polarity -1.0..1.0.
	Score float64 `json:"score"`

	// MatchedCategories lists the harm categories this detector activated,
	// with their per-category weight (0.0-1.0). Empty for Sentiment.
	MatchedCategories map[Category]float64 `json:"matched_categories,omitempty"`

	// Detail is an opaque diagnostic payload: matched rule names for the
	// Pattern detector, per-class probabilities for the Classifier, token
	// hits for the Sentiment scorer.
	Detail map[string]any `json:"detail,omitempty"`

	// LatencyMs is the time this detector took, for the audit trail.
	LatencyMs float64 `json:"latency_ms"`
}

// NewSignalReading creates a reading with an empty category map.
func NewSignalReading(source SignalSource) SignalReading {
	return SignalReading{
		Source:            source,
		MatchedCategories: make(map[Category]float64),
	}
}

// TopCategory returns the highest-weighted category and its weight.
// Ties break by the stable Categories order so results stay deterministic.
func (r *SignalReading) TopCategory() (Category, float64) {
	best := CategorySafe
	bestWeight := 0.0
	for _, cat := range Categories {
		if w, ok := r.MatchedCategories[cat]; ok && w > bestWeight {
			best = cat
			bestWeight = w
		}
	}
	return best, bestWeight
}

// HasMatches reports whether any category activated.
func (r *SignalReading) HasMatches() bool {
	for _, w := range r.MatchedCategories {
		if w > 0 {
			return true
		}
	}
	return false
}

// SetDetail records a diagnostic key-value pair.
func (r *SignalReading) SetDetail(key string, value any) {
	if r.Detail == nil {
		r.Detail = make(map[string]any)
	}
	r.Detail[key] = value
}
