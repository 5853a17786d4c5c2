package engine

import "time"

// Category is the type of harm assigned to a verdict.
// Exactly one category is assigned per result; Safe is the absence of harm.
type Category string

const (
	CategorySafe           Category = "safe"
	CategoryHateSpeech     Category = "hate_speech"
	CategoryHarassment     Category = "harassment"
	CategorySelfHarm       Category = "self_harm"
	CategoryMisinformation Category = "misinformation"
	CategorySpam           Category = "spam"
	CategoryOther          Category = "other"
)

// Categories lists every harm category (Safe excluded) in a stable order.
// Used by the rule registry, the fusion step, and the analytics breakdown.
var Categories = []Category{
	CategoryHateSpeech,
	CategoryHarassment,
	CategorySelfHarm,
	CategoryMisinformation,
	CategorySpam,
	CategoryOther,
}

// Severity is the ordinal harm tier derived from the fused toxicity score.
type Severity string

const (
	SeverityNone   Severity = "none"
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Rank returns the ordinal position of a severity (None=0 .. High=3).
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	default:
		return 0
	}
}

// AtLeast reports whether s is at or above the given tier.
func (s Severity) AtLeast(other Severity) bool {
	return s.Rank() >= other.Rank()
}

// AnalysisRequest is the engine's sole input.
type AnalysisRequest struct {
	// Text is the content to analyze (1..10000 code points after trimming).
	Text string `json:"text"`

	// Context is an optional free-form hint about where the text came from
	// (e.g. "comment", "bio"). It is echoed into stored records only.
	Context string `json:"context,omitempty"`

	// UserSensitivity shifts the toxic threshold. Positive values make the
	// user MORE sensitive (lower effective threshold). Clamped by policy so
	// personalization can never disable moderation entirely.
	UserSensitivity float64 `json:"user_sensitivity,omitempty"`
}

// SupportResource is one crisis/support contact attached to a verdict.
type SupportResource struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Contact     string `json:"contact"`
	URL         string `json:"url"`
}

// AnalysisResult is the engine's sole output. All fields are set before the
// result is returned; the struct is never mutated afterwards.
type AnalysisResult struct {
	Text string `json:"text"`

	ToxicityScore float64  `json:"toxicity_score"` // 0.0-1.0
	IsToxic       bool     `json:"is_toxic"`
	Category      Category `json:"category"`
	Severity      Severity `json:"severity"`

	SentimentScore float64 `json:"sentiment_score"` // -1.0..1.0
	Confidence     float64 `json:"confidence"`      // agreement across signals

	Explanation      string            `json:"explanation"`
	Suggestions      []string          `json:"suggestions"`
	SupportResources []SupportResource `json:"support_resources"`

	AnalysisTimestamp time.Time `json:"analysis_timestamp"`
	ProcessingTimeMs  float64   `json:"processing_time_ms"`

	// Signals carries the per-detector readings that fed the verdict, for
	// auditability. Omitted from cached/stored copies when not needed.
	Signals []SignalReading `json:"signals,omitempty"`
}
