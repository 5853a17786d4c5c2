package engine

import (
	"strings"
	"testing"
)

func newTestExplainer() *Explainer {
	return NewExplainer(Templates{}, DefaultPolicy())
}

func TestExplainSafe(t *testing.T) {
	e := newTestExplainer()
	got := e.Explain(Verdict{Category: CategorySafe, Score: 0.1})
	if got != DefaultTemplates().SafeExplanation {
		t.Errorf("unexpected safe explanation: %q", got)
	}
}

func TestExplainIntensitySuffixes(t *testing.T) {
	e := newTestExplainer()
	def := DefaultTemplates()

	cases := []struct {
		name   string
		score  float64
		suffix string
	}{
		{"borderline", 0.45, def.BorderlineSuffix},
		{"moderate", 0.6, def.ModerateSuffix},
		{"strong", 0.85, def.StrongSuffix},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := e.Explain(Verdict{Category: CategoryHarassment, Score: tc.score})
			if !strings.HasSuffix(got, tc.suffix) {
				t.Errorf("score %f: expected suffix %q in %q", tc.score, tc.suffix, got)
			}
			if !strings.HasPrefix(got, def.Explanations[CategoryHarassment]) {
				t.Errorf("explanation lost its category base: %q", got)
			}
		})
	}
}

func TestExplainEveryCategoryHasText(t *testing.T) {
	e := newTestExplainer()
	for _, cat := range Categories {
		got := e.Explain(Verdict{Category: cat, Score: 0.8})
		if got == "" {
			t.Errorf("category %s produced an empty explanation", cat)
		}
	}
}

func TestExplainDeterministic(t *testing.T) {
	e := newTestExplainer()
	v := Verdict{Category: CategorySelfHarm, Score: 0.72}
	first := e.Explain(v)
	for i := 0; i < 5; i++ {
		if got := e.Explain(v); got != first {
			t.Fatalf("explanation varies: %q vs %q", got, first)
		}
	}
}

func TestSuggestCap(t *testing.T) {
	e := newTestExplainer()
	for _, cat := range Categories {
		got := e.Suggest(Verdict{Category: cat, Score: 0.8})
		if len(got) > maxSuggestions {
			t.Errorf("category %s: %d suggestions exceeds cap", cat, len(got))
		}
		if cat != CategorySafe && len(got) == 0 {
			t.Errorf("category %s: expected at least one suggestion", cat)
		}
	}
}

func TestSuggestSafeIsEmpty(t *testing.T) {
	e := newTestExplainer()
	if got := e.Suggest(Verdict{Category: CategorySafe}); len(got) != 0 {
		t.Errorf("safe verdict should carry no suggestions, got %v", got)
	}
}

func TestSuggestReturnsCopy(t *testing.T) {
	e := newTestExplainer()
	first := e.Suggest(Verdict{Category: CategorySpam, Score: 0.6})
	first[0] = "mutated"
	second := e.Suggest(Verdict{Category: CategorySpam, Score: 0.6})
	if second[0] == "mutated" {
		t.Error("Suggest leaked its backing slice")
	}
}

func TestTemplateOverridesPartial(t *testing.T) {
	custom := Templates{
		Explanations: map[Category]string{
			CategorySpam: "Custom spam notice.",
		},
	}
	e := NewExplainer(custom, DefaultPolicy())

	got := e.Explain(Verdict{Category: CategorySpam, Score: 0.8})
	if !strings.HasPrefix(got, "Custom spam notice.") {
		t.Errorf("override not applied: %q", got)
	}
	// Unset fields keep builtin defaults
	if e.Explain(Verdict{Category: CategorySafe}) == "" {
		t.Error("safe explanation default lost after partial override")
	}
}
