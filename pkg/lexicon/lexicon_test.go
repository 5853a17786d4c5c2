package lexicon

import "testing"

func TestBuiltinLookups(t *testing.T) {
	l := Builtin()

	if l.Size() < 50 {
		t.Errorf("expected at least 50 valence entries, got %d", l.Size())
	}

	cases := []struct {
		token    string
		positive bool
	}{
		{"love", true},
		{"great", true},
		{"hate", false},
		{"terrible", false},
		{"kill", false},
	}
	for _, tc := range cases {
		v, ok := l.Valence(tc.token)
		if !ok {
			t.Errorf("token %q missing from builtin lexicon", tc.token)
			continue
		}
		if tc.positive && v <= 0 {
			t.Errorf("token %q: expected positive valence, got %f", tc.token, v)
		}
		if !tc.positive && v >= 0 {
			t.Errorf("token %q: expected negative valence, got %f", tc.token, v)
		}
	}
}

func TestBuiltinValenceRange(t *testing.T) {
	l := Builtin()
	for token := range l.valence {
		if v := l.valence[token]; v < -1.0 || v > 1.0 {
			t.Errorf("token %q: valence %f out of range", token, v)
		}
	}
}

func TestBuiltinModifiers(t *testing.T) {
	if l := Builtin(); !l.IsNegation("not") || !l.IsNegation("never") {
		t.Error("core negations missing")
	}

	l := Builtin()
	if m, ok := l.Intensifier("very"); !ok || m <= 1.0 {
		t.Errorf("'very' should amplify, got %f (ok=%v)", m, ok)
	}
	if m, ok := l.Intensifier("slightly"); !ok || m >= 1.0 {
		t.Errorf("'slightly' should dampen, got %f (ok=%v)", m, ok)
	}
	if _, ok := l.Intensifier("banana"); ok {
		t.Error("unknown token reported as intensifier")
	}
}

func TestBuildOverlay(t *testing.T) {
	l, err := Build(&Overlay{
		Valence:      map[string]float64{"yeet": 0.3, "love": -0.9},
		Negations:    []string{"nae"},
		Intensifiers: map[string]float64{"mega": 1.5},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if v, ok := l.Valence("yeet"); !ok || v != 0.3 {
		t.Errorf("overlay token missing: %f (ok=%v)", v, ok)
	}
	// Overlay entries win over builtins
	if v, _ := l.Valence("love"); v != -0.9 {
		t.Errorf("overlay should override builtin: got %f", v)
	}
	if !l.IsNegation("nae") {
		t.Error("overlay negation missing")
	}
	if m, _ := l.Intensifier("mega"); m != 1.5 {
		t.Errorf("overlay intensifier missing: %f", m)
	}
}

func TestBuildRejectsBadOverlay(t *testing.T) {
	cases := []struct {
		name    string
		overlay Overlay
	}{
		{"valence above one", Overlay{Valence: map[string]float64{"x": 1.5}}},
		{"valence below minus one", Overlay{Valence: map[string]float64{"x": -2.0}}},
		{"zero multiplier", Overlay{Intensifiers: map[string]float64{"x": 0}}},
		{"negative multiplier", Overlay{Intensifiers: map[string]float64{"x": -1.2}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Build(&tc.overlay); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestBuiltinIsCopy(t *testing.T) {
	a := Builtin()
	a.valence["love"] = -1.0
	b := Builtin()
	if v, _ := b.Valence("love"); v == -1.0 {
		t.Error("Builtin shares state between instances")
	}
}
