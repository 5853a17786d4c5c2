package engine

// Confidence bounds. The floor applies when only one detector produced any
// evidence; the ceiling acknowledges the engine is never certain.
const (
	confidenceBase  = 0.5
	confidenceFloor = 0.30
	confidenceCap   = 0.95

	// Sentiment magnitudes below this are treated as neutral when judging
	// whether the scorer corroborates or contradicts the other signals.
	sentimentNeutralBand = 0.3
)

// Verdict is the fused outcome before explanation and resource mapping.
type Verdict struct {
	Score      float64
	Toxic      bool
	Threshold  float64
	Category   Category
	Severity   Severity
	Sentiment  float64
	Confidence float64
}

// Fuser combines the three detector readings into a single verdict under a
// policy. It is stateless and safe for concurrent use.
type Fuser struct {
	policy Policy
}

func NewFuser(policy Policy) *Fuser {
	return &Fuser{policy: policy}
}

// Fuse produces the verdict. classifier is nil when the signal is absent
// (model unavailable, timeout, or fault); absence redistributes its weight
// to the pattern score rather than failing the request. Identical inputs
// always produce an identical verdict.
func (f *Fuser) Fuse(pattern, sentiment SignalReading, classifier *SignalReading, sensitivity float64) Verdict {
	wc, wp := f.policy.ClassifierWeight, f.policy.PatternWeight
	if classifier == nil {
		wc, wp = 0, wc+wp
	}
	total := wc + wp

	score := clamp((wc*classifierScore(classifier)+wp*pattern.Score)/total, 0, 1)
	threshold := f.policy.EffectiveThreshold(sensitivity)
	category := f.selectCategory(pattern, classifier, wc/total, wp/total, score, threshold)
	severity := f.policy.SeverityFor(score)

	return Verdict{
		Score:      score,
		Toxic:      score >= threshold,
		Threshold:  threshold,
		Category:   category,
		Severity:   severity,
		Sentiment:  sentiment.Score,
		Confidence: f.confidence(pattern, sentiment, classifier, category),
	}
}

// selectCategory picks the highest combined category weight, walking
// Categories in declaration order so ties resolve deterministically. A
// classifier reading without a per-category vector cedes its weight to the
// pattern side, the same redistribution used for an absent signal, so
// concrete pattern matches are not diluted into the Other fallback. When no
// category reaches the activation threshold the result is Safe, unless the
// fused score itself crosses the toxic threshold, in which case the content
// is flagged as Other rather than reported safe.
func (f *Fuser) selectCategory(pattern SignalReading, classifier *SignalReading, wc, wp, score, threshold float64) Category {
	if classifier == nil || len(classifier.MatchedCategories) == 0 {
		wc, wp = 0, wc+wp
	}
	best := CategorySafe
	bestWeight := 0.0
	for _, cat := range Categories {
		if cat == CategorySafe {
			continue
		}
		combined := wp * pattern.MatchedCategories[cat]
		if wc > 0 {
			combined += wc * classifier.MatchedCategories[cat]
		}
		if combined > bestWeight {
			best, bestWeight = cat, combined
		}
	}
	if bestWeight < f.policy.ActivationThreshold {
		if score >= threshold {
			return CategoryOther
		}
		return CategorySafe
	}
	return best
}

// confidence measures signal agreement, not toxicity. Two detectors pointing
// the same way raise it, contradiction lowers it, and a strongly negative
// sentiment corroborating a matched harm category raises it further. When
// only the sentiment scorer contributed, confidence sits at the floor.
func (f *Fuser) confidence(pattern, sentiment SignalReading, classifier *SignalReading, category Category) float64 {
	matched := pattern.HasMatches()
	present := classifier != nil

	if !present && !matched {
		return confidenceFloor
	}

	conf := confidenceBase
	switch {
	case present && matched:
		if classifier.Score >= f.policy.ToxicThreshold {
			conf += 0.25 // both detectors flagged
		} else {
			conf -= 0.15 // patterns fired but the model disagrees
		}
	case present:
		if classifier.Score >= f.policy.ToxicThreshold {
			// Model flags alone; a neutral sentiment makes it a lone voice.
			if sentiment.Score > f.policy.NegativeSentimentCutoff {
				conf -= 0.15
			}
		} else {
			conf += 0.15 // model and patterns agree the text is clean
		}
	default:
		conf -= 0.05 // degraded mode, pattern evidence only
	}

	if category != CategorySafe {
		if sentiment.Score <= f.policy.NegativeSentimentCutoff {
			conf += 0.15
		} else if sentiment.Score >= sentimentNeutralBand {
			conf -= 0.10
		}
	}

	return clamp(conf, confidenceFloor, confidenceCap)
}

func classifierScore(r *SignalReading) float64 {
	if r == nil {
		return 0
	}
	return r.Score
}
