package engine

import (
	"testing"

	"github.com/soteria-labs/soteria/pkg/lexicon"
)

func newTestScorer(t *testing.T) *SentimentScorer {
	t.Helper()
	lex, err := lexicon.Build(nil)
	if err != nil {
		t.Fatalf("lexicon build failed: %v", err)
	}
	return NewSentimentScorer(lex)
}

func TestSentimentPolarity(t *testing.T) {
	s := newTestScorer(t)

	cases := []struct {
		name string
		text string
		sign int // -1, 0, +1
	}{
		{"positive", "I love sunny days", +1},
		{"negative", "I hate this horrible place", -1},
		{"neutral unknown words", "the quarterly report arrived", 0},
		{"negated positive flips", "this is not good", -1},
		{"negated negative flips", "this is not bad at all", +1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := s.Detect(tc.text).Score
			switch {
			case tc.sign > 0 && got <= 0:
				t.Errorf("expected positive score for %q, got %f", tc.text, got)
			case tc.sign < 0 && got >= 0:
				t.Errorf("expected negative score for %q, got %f", tc.text, got)
			case tc.sign == 0 && got != 0:
				t.Errorf("expected zero score for %q, got %f", tc.text, got)
			}
		})
	}
}

func TestSentimentScoreStaysInRange(t *testing.T) {
	s := newTestScorer(t)
	texts := []string{
		"love love love wonderful amazing great happy",
		"hate hate hate horrible awful terrible disgusting",
		"KILL HATE DESTROY worthless trash garbage!!!",
	}
	for _, text := range texts {
		score := s.Detect(text).Score
		if score < -1.0 || score > 1.0 {
			t.Errorf("score out of range for %q: %f", text, score)
		}
	}
}

func TestSentimentIntensifierAmplifies(t *testing.T) {
	s := newTestScorer(t)
	plain := s.Detect("this is good").Score
	boosted := s.Detect("this is very good").Score
	if boosted <= plain {
		t.Errorf("intensifier should amplify: plain=%f boosted=%f", plain, boosted)
	}
}

func TestSentimentDampenerReduces(t *testing.T) {
	s := newTestScorer(t)
	plain := s.Detect("this is good").Score
	damped := s.Detect("this is slightly good").Score
	if damped >= plain {
		t.Errorf("dampener should reduce: plain=%f damped=%f", plain, damped)
	}
}

func TestSentimentCapsEmphasis(t *testing.T) {
	s := newTestScorer(t)
	plain := s.Detect("i hate this").Score
	shouted := s.Detect("i HATE this").Score
	if shouted >= plain {
		t.Errorf("all-caps should strengthen negative: plain=%f caps=%f", plain, shouted)
	}
}

func TestSentimentExclamationBoost(t *testing.T) {
	s := newTestScorer(t)
	plain := s.Detect("this is great").Score
	excited := s.Detect("this is great!!!").Score
	if excited <= plain {
		t.Errorf("exclamations should boost: plain=%f excited=%f", plain, excited)
	}
}

func TestSentimentNegationWindow(t *testing.T) {
	s := newTestScorer(t)
	// Negation four tokens back is outside the window
	inWindow := s.Detect("not a good idea").Score
	outOfWindow := s.Detect("not that it was a good idea").Score
	if inWindow >= 0 {
		t.Errorf("negation within window should flip: %f", inWindow)
	}
	if outOfWindow <= 0 {
		t.Errorf("negation outside window should not flip: %f", outOfWindow)
	}
}

func TestSentimentDeterministic(t *testing.T) {
	s := newTestScorer(t)
	text := "I really hate this terrible, awful day!"
	first := s.Detect(text).Score
	for i := 0; i < 10; i++ {
		if got := s.Detect(text).Score; got != first {
			t.Fatalf("score varies across runs: %f vs %f", got, first)
		}
	}
}
