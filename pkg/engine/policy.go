package engine

import "fmt"

// Policy consolidates every threshold the engine uses. Severity breakpoints
// and the toxic threshold live here and nowhere else; no other component
// recomputes them. The struct is versioned so stored results can be traced
// back to the policy that produced them.
type Policy struct {
	Version string `yaml:"version"`

	// ToxicThreshold is the default is_toxic cut (score >= threshold).
	ToxicThreshold float64 `yaml:"toxic_threshold"`

	// SensitivityBound caps |user_sensitivity| so personalization can shift
	// the threshold but never disable moderation.
	SensitivityBound float64 `yaml:"sensitivity_bound"`

	// Severity breakpoints: score < Low -> None, < Medium -> Low,
	// < High -> Medium, otherwise High. Lower bounds are inclusive.
	LowBreak    float64 `yaml:"low_break"`
	MediumBreak float64 `yaml:"medium_break"`
	HighBreak   float64 `yaml:"high_break"`

	// Fusion weights when the classifier signal is present. On classifier
	// absence the full weight moves to the pattern score.
	ClassifierWeight float64 `yaml:"classifier_weight"`
	PatternWeight    float64 `yaml:"pattern_weight"`

	// ActivationThreshold is the minimum combined category weight needed to
	// assign a non-Safe category.
	ActivationThreshold float64 `yaml:"activation_threshold"`

	// NegativeSentimentCutoff marks "strongly negative"; at or below it a
	// matched harm category gains confidence.
	NegativeSentimentCutoff float64 `yaml:"negative_sentiment_cutoff"`

	// HelpSeverity is the minimum severity at which support resources are
	// attached for help-eligible categories.
	HelpSeverity Severity `yaml:"help_severity"`
}

// DefaultPolicy returns the v1 policy. The numeric defaults are exposed
// here rather than scattered as constants so deployments can tune them.
func DefaultPolicy() Policy {
	return Policy{
		Version:                 "v1",
		ToxicThreshold:          0.5,
		SensitivityBound:        0.15,
		LowBreak:                0.3,
		MediumBreak:             0.5,
		HighBreak:               0.7,
		ClassifierWeight:        0.6,
		PatternWeight:           0.4,
		ActivationThreshold:     0.25,
		NegativeSentimentCutoff: -0.5,
		HelpSeverity:            SeverityMedium,
	}
}

// Validate rejects a policy that cannot produce coherent verdicts.
// Called once at startup; failure is a fatal configuration error.
func (p Policy) Validate() error {
	if p.ToxicThreshold <= 0 || p.ToxicThreshold >= 1 {
		return fmt.Errorf("toxic_threshold %.2f out of range (0, 1)", p.ToxicThreshold)
	}
	if p.SensitivityBound < 0 || p.SensitivityBound >= p.ToxicThreshold {
		return fmt.Errorf("sensitivity_bound %.2f must be in [0, toxic_threshold)", p.SensitivityBound)
	}
	if !(0 < p.LowBreak && p.LowBreak < p.MediumBreak && p.MediumBreak < p.HighBreak && p.HighBreak <= 1) {
		return fmt.Errorf("severity breakpoints %.2f/%.2f/%.2f must be strictly increasing in (0, 1]",
			p.LowBreak, p.MediumBreak, p.HighBreak)
	}
	if p.ClassifierWeight <= 0 || p.PatternWeight <= 0 {
		return fmt.Errorf("fusion weights must be positive")
	}
	if p.ActivationThreshold <= 0 || p.ActivationThreshold >= 1 {
		return fmt.Errorf("activation_threshold %.2f out of range (0, 1)", p.ActivationThreshold)
	}
	if p.NegativeSentimentCutoff >= 0 || p.NegativeSentimentCutoff < -1 {
		return fmt.Errorf("negative_sentiment_cutoff %.2f must be in [-1, 0)", p.NegativeSentimentCutoff)
	}
	switch p.HelpSeverity {
	case SeverityNone, SeverityLow, SeverityMedium, SeverityHigh:
	default:
		return fmt.Errorf("unknown help_severity %q", p.HelpSeverity)
	}
	return nil
}

// EffectiveThreshold applies a user's sensitivity shift. Positive values
// mean MORE sensitive (lower threshold). The shift is clamped to the bound.
func (p Policy) EffectiveThreshold(sensitivity float64) float64 {
	return p.ToxicThreshold - clamp(sensitivity, -p.SensitivityBound, p.SensitivityBound)
}

// SeverityFor maps a fused toxicity score onto the severity tier.
func (p Policy) SeverityFor(score float64) Severity {
	switch {
	case score >= p.HighBreak:
		return SeverityHigh
	case score >= p.MediumBreak:
		return SeverityMedium
	case score >= p.LowBreak:
		return SeverityLow
	default:
		return SeverityNone
	}
}
