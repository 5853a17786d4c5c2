package engine

import (
	"math"
	"testing"
)

func TestDefaultPolicyValidates(t *testing.T) {
	if err := DefaultPolicy().Validate(); err != nil {
		t.Fatalf("default policy must validate: %v", err)
	}
}

func TestPolicyValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Policy)
	}{
		{"zero toxic threshold", func(p *Policy) { p.ToxicThreshold = 0 }},
		{"threshold above one", func(p *Policy) { p.ToxicThreshold = 1.2 }},
		{"sensitivity bound too large", func(p *Policy) { p.SensitivityBound = 0.6 }},
		{"non-increasing breakpoints", func(p *Policy) { p.MediumBreak = 0.2 }},
		{"high break above one", func(p *Policy) { p.HighBreak = 1.1 }},
		{"zero classifier weight", func(p *Policy) { p.ClassifierWeight = 0 }},
		{"negative pattern weight", func(p *Policy) { p.PatternWeight = -0.4 }},
		{"activation out of range", func(p *Policy) { p.ActivationThreshold = 1.0 }},
		{"positive sentiment cutoff", func(p *Policy) { p.NegativeSentimentCutoff = 0.5 }},
		{"unknown help severity", func(p *Policy) { p.HelpSeverity = "extreme" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultPolicy()
			tc.mutate(&p)
			if err := p.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestEffectiveThresholdClamping(t *testing.T) {
	p := DefaultPolicy()
	cases := []struct {
		sensitivity float64
		want        float64
	}{
		{0, 0.5},
		{0.1, 0.4},
		{-0.1, 0.6},
		{0.5, 0.35},  // clamped at the bound
		{-2.0, 0.65}, // clamped at the bound
	}
	for _, tc := range cases {
		if got := p.EffectiveThreshold(tc.sensitivity); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("EffectiveThreshold(%f) = %f, want %f", tc.sensitivity, got, tc.want)
		}
	}
}

func TestSeverityBreakpoints(t *testing.T) {
	p := DefaultPolicy()
	cases := []struct {
		score float64
		want  Severity
	}{
		{0.0, SeverityNone},
		{0.29, SeverityNone},
		{0.3, SeverityLow}, // lower bounds are inclusive
		{0.49, SeverityLow},
		{0.5, SeverityMedium},
		{0.69, SeverityMedium},
		{0.7, SeverityHigh},
		{1.0, SeverityHigh},
	}
	for _, tc := range cases {
		if got := p.SeverityFor(tc.score); got != tc.want {
			t.Errorf("SeverityFor(%f) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestSeverityOrdering(t *testing.T) {
	order := []Severity{SeverityNone, SeverityLow, SeverityMedium, SeverityHigh}
	for i := 1; i < len(order); i++ {
		if order[i].Rank() <= order[i-1].Rank() {
			t.Errorf("%s should outrank %s", order[i], order[i-1])
		}
		if !order[i].AtLeast(order[i-1]) {
			t.Errorf("%s should be at least %s", order[i], order[i-1])
		}
	}
}
