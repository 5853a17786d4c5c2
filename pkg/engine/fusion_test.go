package engine

import (
	"math"
	"testing"
)

func patternReading(score float64, cats map[Category]float64) SignalReading {
	r := NewSignalReading(SignalSourcePattern)
	r.Score = score
	for k, v := range cats {
		r.MatchedCategories[k] = v
	}
	return r
}

func sentimentReading(score float64) SignalReading {
	r := NewSignalReading(SignalSourceSentiment)
	r.Score = score
	return r
}

func classifierReading(score float64, cats map[Category]float64) *SignalReading {
	r := NewSignalReading(SignalSourceClassifier)
	r.Score = score
	for k, v := range cats {
		r.MatchedCategories[k] = v
	}
	return &r
}

func TestFuseWeightedAverage(t *testing.T) {
	f := NewFuser(DefaultPolicy())

	pattern := patternReading(0.8, map[Category]float64{CategoryHateSpeech: 0.8})
	classifier := classifierReading(0.82, map[Category]float64{CategoryHateSpeech: 0.8})
	v := f.Fuse(pattern, sentimentReading(-0.2), classifier, 0)

	want := 0.6*0.82 + 0.4*0.8
	if math.Abs(v.Score-want) > 1e-9 {
		t.Errorf("expected fused score %f, got %f", want, v.Score)
	}
	if !v.Toxic {
		t.Error("expected toxic verdict")
	}
	if v.Category != CategoryHateSpeech {
		t.Errorf("expected hate_speech, got %s", v.Category)
	}
	if v.Severity != SeverityHigh {
		t.Errorf("expected high severity, got %s", v.Severity)
	}
}

func TestFuseClassifierAbsentShiftsWeight(t *testing.T) {
	f := NewFuser(DefaultPolicy())

	pattern := patternReading(0.8, map[Category]float64{CategorySelfHarm: 0.8})
	v := f.Fuse(pattern, sentimentReading(-0.6), nil, 0)

	if math.Abs(v.Score-0.8) > 1e-9 {
		t.Errorf("pattern should carry full weight: got %f", v.Score)
	}
	if !v.Toxic || v.Category != CategorySelfHarm {
		t.Errorf("expected toxic self_harm, got toxic=%v cat=%s", v.Toxic, v.Category)
	}
}

func TestFuseCleanTextIsSafe(t *testing.T) {
	f := NewFuser(DefaultPolicy())

	v := f.Fuse(patternReading(0, nil), sentimentReading(0.3), classifierReading(0.02, nil), 0)

	if v.Toxic {
		t.Error("clean text flagged toxic")
	}
	if v.Category != CategorySafe {
		t.Errorf("expected safe, got %s", v.Category)
	}
	if v.Severity != SeverityNone {
		t.Errorf("expected none severity, got %s", v.Severity)
	}
}

func TestFuseHighClassifierNoCategoryIsOther(t *testing.T) {
	f := NewFuser(DefaultPolicy())

	// Model is confident but offers no category and no pattern matched.
	// The verdict must not be Safe.
	v := f.Fuse(patternReading(0, nil), sentimentReading(-0.1), classifierReading(0.9, nil), 0)

	if !v.Toxic {
		t.Fatalf("score %f should be toxic", v.Score)
	}
	if v.Category != CategoryOther {
		t.Errorf("expected other, got %s", v.Category)
	}
}

func TestFuseUncategorizedClassifierKeepsPatternCategory(t *testing.T) {
	f := NewFuser(DefaultPolicy())

	// The model flags but returns no per-category vector. Its category
	// weight moves to the pattern side, so a concrete pattern match must
	// not be diluted into Other.
	pattern := patternReading(0.6, map[Category]float64{CategoryHarassment: 0.6})
	v := f.Fuse(pattern, sentimentReading(-0.4), classifierReading(0.7, nil), 0)

	if v.Category != CategoryHarassment {
		t.Errorf("expected harassment, got %s", v.Category)
	}
}

func TestFuseBelowActivationBelowThresholdIsSafe(t *testing.T) {
	f := NewFuser(DefaultPolicy())

	// Weak pattern evidence under the activation threshold
	pattern := patternReading(0.2, map[Category]float64{CategorySpam: 0.2})
	v := f.Fuse(pattern, sentimentReading(0), classifierReading(0.1, nil), 0)

	if v.Toxic {
		t.Error("weak evidence flagged toxic")
	}
	if v.Category != CategorySafe {
		t.Errorf("expected safe, got %s", v.Category)
	}
}

func TestFuseSensitivityShiftsVerdict(t *testing.T) {
	f := NewFuser(DefaultPolicy())
	pattern := patternReading(0.42, map[Category]float64{CategoryHarassment: 0.42})

	base := f.Fuse(pattern, sentimentReading(0), nil, 0)
	if base.Toxic {
		t.Fatalf("score %f should sit under the default threshold", base.Score)
	}

	sensitive := f.Fuse(pattern, sentimentReading(0), nil, 0.15)
	if !sensitive.Toxic {
		t.Errorf("score %f should cross the lowered threshold %f", sensitive.Score, sensitive.Threshold)
	}
	if math.Abs(sensitive.Threshold-0.35) > 1e-9 {
		t.Errorf("expected effective threshold 0.35, got %f", sensitive.Threshold)
	}
}

func TestFuseConfidence(t *testing.T) {
	f := NewFuser(DefaultPolicy())

	t.Run("agreement raises confidence", func(t *testing.T) {
		pattern := patternReading(0.8, map[Category]float64{CategoryHarassment: 0.8})
		classifier := classifierReading(0.85, map[Category]float64{CategoryHarassment: 0.85})
		agree := f.Fuse(pattern, sentimentReading(0), classifier, 0)

		lone := f.Fuse(patternReading(0, nil), sentimentReading(0), classifierReading(0.85, nil), 0)
		if agree.Confidence <= lone.Confidence {
			t.Errorf("agreement %f should beat a lone flag %f", agree.Confidence, lone.Confidence)
		}
	})

	t.Run("negative sentiment corroborates", func(t *testing.T) {
		pattern := patternReading(0.8, map[Category]float64{CategoryHarassment: 0.8})
		neutral := f.Fuse(pattern, sentimentReading(0), nil, 0)
		hostile := f.Fuse(pattern, sentimentReading(-0.7), nil, 0)
		if hostile.Confidence <= neutral.Confidence {
			t.Errorf("hostile sentiment %f should beat neutral %f", hostile.Confidence, neutral.Confidence)
		}
	})

	t.Run("single signal hits the floor", func(t *testing.T) {
		v := f.Fuse(patternReading(0, nil), sentimentReading(-0.9), nil, 0)
		if v.Confidence != confidenceFloor {
			t.Errorf("expected floor %f, got %f", confidenceFloor, v.Confidence)
		}
	})

	t.Run("bounds hold", func(t *testing.T) {
		pattern := patternReading(1.0, map[Category]float64{CategorySelfHarm: 1.0})
		classifier := classifierReading(1.0, map[Category]float64{CategorySelfHarm: 1.0})
		v := f.Fuse(pattern, sentimentReading(-1.0), classifier, 0)
		if v.Confidence < confidenceFloor || v.Confidence > confidenceCap {
			t.Errorf("confidence %f out of bounds", v.Confidence)
		}
	})
}

func TestFuseDeterministic(t *testing.T) {
	f := NewFuser(DefaultPolicy())
	pattern := patternReading(0.6, map[Category]float64{
		CategoryHateSpeech: 0.6,
		CategoryHarassment: 0.6,
	})
	classifier := classifierReading(0.7, nil)

	first := f.Fuse(pattern, sentimentReading(-0.4), classifier, 0)
	for i := 0; i < 20; i++ {
		again := f.Fuse(pattern, sentimentReading(-0.4), classifier, 0)
		if again != first {
			t.Fatalf("verdict varies across runs: %+v vs %+v", again, first)
		}
	}
	// Equal category weights must resolve by declaration order
	if first.Category != CategoryHateSpeech {
		t.Errorf("tie should resolve to hate_speech, got %s", first.Category)
	}
}
