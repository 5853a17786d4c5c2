package engine

// Templates holds every human-facing string the engine emits. Deployments
// can override them through the artifact file; unset fields fall back to
// the builtin set so a partial override stays coherent.
type Templates struct {
	Explanations map[Category]string   `yaml:"explanations"`
	Suggestions  map[Category][]string `yaml:"suggestions"`

	// Intensity suffixes appended by fused score: borderline below the
	// medium breakpoint, moderate below high, strong at or above it.
	BorderlineSuffix string `yaml:"borderline_suffix"`
	ModerateSuffix   string `yaml:"moderate_suffix"`
	StrongSuffix     string `yaml:"strong_suffix"`

	SafeExplanation string   `yaml:"safe_explanation"`
	SafeSuggestions []string `yaml:"safe_suggestions"`
}

const maxSuggestions = 3

// DefaultTemplates returns the builtin strings.
func DefaultTemplates() Templates {
	return Templates{
		Explanations: map[Category]string{
			CategoryHateSpeech:     "This message contains language that attacks or demeans people based on who they are.",
			CategoryHarassment:     "This message contains threatening or demeaning language directed at a person.",
			CategorySelfHarm:       "This message contains language that encourages self-harm or tells someone they should not exist.",
			CategoryMisinformation: "This message makes health or factual claims that contradict established evidence.",
			CategorySpam:           "This message looks like unsolicited promotional or scam content.",
			CategoryOther:          "This message was flagged as potentially harmful even though it does not fit a specific category.",
		},
		Suggestions: map[Category][]string{
			CategoryHateSpeech: {
				"Remove language that targets people for their identity.",
				"Rephrase criticism so it addresses actions, not who someone is.",
				"Consider whether the message would feel acceptable directed at you.",
			},
			CategoryHarassment: {
				"Remove threats and personal attacks before posting.",
				"Step away and revisit the message when the moment has passed.",
				"Address the disagreement without demeaning the other person.",
			},
			CategorySelfHarm: {
				"Never tell someone to hurt themselves, even as a joke.",
				"If someone is struggling, point them to professional support.",
				"Reach out privately and with care instead.",
			},
			CategoryMisinformation: {
				"Check the claim against a reputable medical or scientific source.",
				"Link to evidence instead of asserting a suppressed truth.",
				"Avoid presenting speculation as settled fact.",
			},
			CategorySpam: {
				"Remove promotional links and urgency pressure from the message.",
				"Disclose commercial intent clearly.",
				"Post offers only where the community invites them.",
			},
			CategoryOther: {
				"Reconsider the overall tone of the message.",
				"Rephrase the message in a more constructive way.",
			},
		},
		BorderlineSuffix: " The signal is borderline, so this may be a false positive worth a second look.",
		ModerateSuffix:   " The signal is moderately strong.",
		StrongSuffix:     " The signal is strong and consistent across detectors.",
		SafeExplanation:  "No harmful content was detected in this message.",
		SafeSuggestions:  nil,
	}
}

// Explainer renders verdicts into fixed, deterministic text. The same
// verdict always yields the same explanation.
type Explainer struct {
	t      Templates
	policy Policy
}

// NewExplainer fills any unset template field from the builtin set.
func NewExplainer(t Templates, policy Policy) *Explainer {
	def := DefaultTemplates()
	if t.Explanations == nil {
		t.Explanations = make(map[Category]string)
	}
	for cat, text := range def.Explanations {
		if _, ok := t.Explanations[cat]; !ok {
			t.Explanations[cat] = text
		}
	}
	if t.Suggestions == nil {
		t.Suggestions = make(map[Category][]string)
	}
	for cat, list := range def.Suggestions {
		if _, ok := t.Suggestions[cat]; !ok {
			t.Suggestions[cat] = list
		}
	}
	if t.BorderlineSuffix == "" {
		t.BorderlineSuffix = def.BorderlineSuffix
	}
	if t.ModerateSuffix == "" {
		t.ModerateSuffix = def.ModerateSuffix
	}
	if t.StrongSuffix == "" {
		t.StrongSuffix = def.StrongSuffix
	}
	if t.SafeExplanation == "" {
		t.SafeExplanation = def.SafeExplanation
	}
	return &Explainer{t: t, policy: policy}
}

// Explain returns the category template with an intensity suffix keyed to
// the fused score.
func (e *Explainer) Explain(v Verdict) string {
	if v.Category == CategorySafe {
		return e.t.SafeExplanation
	}
	base, ok := e.t.Explanations[v.Category]
	if !ok {
		base = e.t.Explanations[CategoryOther]
	}
	switch {
	case v.Score >= e.policy.HighBreak:
		return base + e.t.StrongSuffix
	case v.Score >= e.policy.MediumBreak:
		return base + e.t.ModerateSuffix
	default:
		return base + e.t.BorderlineSuffix
	}
}

// Suggest returns at most three rewrite suggestions for the category.
// The returned slice is a copy; callers may keep it.
func (e *Explainer) Suggest(v Verdict) []string {
	var src []string
	if v.Category == CategorySafe {
		src = e.t.SafeSuggestions
	} else if s, ok := e.t.Suggestions[v.Category]; ok {
		src = s
	} else {
		src = e.t.Suggestions[CategoryOther]
	}
	if len(src) == 0 {
		return nil
	}
	if len(src) > maxSuggestions {
		src = src[:maxSuggestions]
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}
