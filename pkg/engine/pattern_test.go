package engine

import (
	"math"
	"testing"
)

// stubMatcher returns a fixed match list regardless of text.
type stubMatcher struct {
	matches []RuleMatch
}

func (s stubMatcher) Match(string) []RuleMatch { return s.matches }

func TestPatternDetectorNoMatches(t *testing.T) {
	d := NewPatternDetector(stubMatcher{})
	reading := d.Detect("anything")

	if reading.Source != SignalSourcePattern {
		t.Errorf("wrong source: %s", reading.Source)
	}
	if reading.Score != 0 {
		t.Errorf("expected score 0, got %f", reading.Score)
	}
	if reading.HasMatches() {
		t.Error("expected no matches")
	}
}

func TestPatternDetectorSingleMatch(t *testing.T) {
	d := NewPatternDetector(stubMatcher{matches: []RuleMatch{
		{Name: "a", Category: CategoryHarassment, Weight: 0.6},
	}})
	reading := d.Detect("x")

	if reading.Score != 0.6 {
		t.Errorf("expected score 0.6, got %f", reading.Score)
	}
	if w := reading.MatchedCategories[CategoryHarassment]; w != 0.6 {
		t.Errorf("expected category weight 0.6, got %f", w)
	}
}

func TestPatternDetectorDiminishingReturns(t *testing.T) {
	// 0.6 + 0.4*0.5 + 0.4*0.25 = 0.9
	d := NewPatternDetector(stubMatcher{matches: []RuleMatch{
		{Name: "a", Category: CategoryHarassment, Weight: 0.6},
		{Name: "b", Category: CategoryHarassment, Weight: 0.4},
		{Name: "c", Category: CategoryHarassment, Weight: 0.4},
	}})
	reading := d.Detect("x")

	if got := reading.MatchedCategories[CategoryHarassment]; math.Abs(got-0.9) > 1e-9 {
		t.Errorf("expected decayed sum 0.9, got %f", got)
	}
}

func TestPatternDetectorCategoryWeightCapped(t *testing.T) {
	d := NewPatternDetector(stubMatcher{matches: []RuleMatch{
		{Name: "a", Category: CategorySelfHarm, Weight: 0.95},
		{Name: "b", Category: CategorySelfHarm, Weight: 0.95},
		{Name: "c", Category: CategorySelfHarm, Weight: 0.95},
	}})
	reading := d.Detect("x")

	if got := reading.MatchedCategories[CategorySelfHarm]; got > 1.0 {
		t.Errorf("category weight exceeded cap: %f", got)
	}
	if reading.Score > 1.0 {
		t.Errorf("score exceeded cap: %f", reading.Score)
	}
}

func TestPatternDetectorScoreIsMaxCategory(t *testing.T) {
	d := NewPatternDetector(stubMatcher{matches: []RuleMatch{
		{Name: "a", Category: CategorySpam, Weight: 0.5},
		{Name: "b", Category: CategorySelfHarm, Weight: 0.8},
	}})
	reading := d.Detect("x")

	if reading.Score != 0.8 {
		t.Errorf("expected score 0.8 (max category), got %f", reading.Score)
	}
	cat, w := reading.TopCategory()
	if cat != CategorySelfHarm || w != 0.8 {
		t.Errorf("expected top self_harm/0.8, got %s/%f", cat, w)
	}
	if got := reading.Detail["dominant_category"]; got != string(CategorySelfHarm) {
		t.Errorf("expected dominant_category self_harm, got %v", got)
	}
}

func TestPatternDetectorDeterministic(t *testing.T) {
	d := NewPatternDetector(stubMatcher{matches: []RuleMatch{
		{Name: "a", Category: CategoryHateSpeech, Weight: 0.6},
		{Name: "b", Category: CategorySpam, Weight: 0.6},
	}})
	first := d.Detect("x")
	for i := 0; i < 10; i++ {
		again := d.Detect("x")
		if again.Score != first.Score {
			t.Fatalf("score varies across runs: %f vs %f", again.Score, first.Score)
		}
		cat, _ := again.TopCategory()
		firstCat, _ := first.TopCategory()
		if cat != firstCat {
			t.Fatalf("top category varies across runs: %s vs %s", cat, firstCat)
		}
	}
}
