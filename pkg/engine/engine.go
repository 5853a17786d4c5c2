package engine

import (
	"context"
	"log"
	"sync"
	"time"
)

// Engine is the full analysis pipeline: normalize, run the three detectors
// concurrently, fuse, explain, attach resources. Safe for concurrent use;
// all components are immutable after construction.
type Engine struct {
	pattern    *PatternDetector
	sentiment  *SentimentScorer
	classifier *ClassifierAdapter
	fuser      *Fuser
	explainer  *Explainer
	resources  *ResourceMapper
	policy     Policy
}

// Options configures optional engine components. Zero values select the
// builtin defaults.
type Options struct {
	Classifier ClassifierBackend
	Policy     *Policy
	Templates  Templates
	Resources  map[Category][]SupportResource

	InferTimeout  time.Duration
	MaxInputRunes int
}

// New assembles an engine. matcher and scorer are required; a nil classifier
// backend puts the engine in heuristic-only mode from the start.
func New(matcher RuleMatcher, scorer *SentimentScorer, opts Options) (*Engine, error) {
	policy := DefaultPolicy()
	if opts.Policy != nil {
		policy = *opts.Policy
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		pattern:    NewPatternDetector(matcher),
		sentiment:  scorer,
		classifier: NewClassifierAdapter(opts.Classifier, opts.InferTimeout, opts.MaxInputRunes),
		fuser:      NewFuser(policy),
		explainer:  NewExplainer(opts.Templates, policy),
		resources:  NewResourceMapper(opts.Resources, policy),
		policy:     policy,
	}, nil
}

// Policy returns the active policy (value copy).
func (e *Engine) Policy() Policy { return e.policy }

// ClassifierReady reports whether the ML signal is currently available.
func (e *Engine) ClassifierReady() bool { return e.classifier.Available() }

// InferenceStats reports classifier backpressure for the health endpoint.
func (e *Engine) InferenceStats() GateStats { return e.classifier.GateStats() }

// Analyze runs the full pipeline on one request. The only error conditions
// are request-level: ErrEmptyInput and ErrInputTooLong. Classifier failures
// degrade the verdict, they never fail the call.
func (e *Engine) Analyze(ctx context.Context, req AnalysisRequest) (*AnalysisResult, error) {
	start := time.Now()

	text, err := Normalize(req.Text)
	if err != nil {
		return nil, err
	}

	var (
		wg            sync.WaitGroup
		patternSig    SignalReading
		sentimentSig  SignalReading
		classifierSig SignalReading
		classifierErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		patternSig = e.pattern.Detect(text)
	}()
	go func() {
		defer wg.Done()
		sentimentSig = e.sentiment.Detect(text)
	}()

	useClassifier := e.classifier.Available()
	if useClassifier {
		wg.Add(1)
		go func() {
			defer wg.Done()
			classifierSig, classifierErr = e.classifier.Detect(ctx, text)
		}()
	}
	wg.Wait()

	var classifier *SignalReading
	if useClassifier {
		if classifierErr != nil {
			log.Printf("[WARN] classifier signal absent, degrading to heuristics: %v", classifierErr)
		} else {
			classifier = &classifierSig
		}
	}

	verdict := e.fuser.Fuse(patternSig, sentimentSig, classifier, req.UserSensitivity)

	result := &AnalysisResult{
		Text:              req.Text,
		ToxicityScore:     verdict.Score,
		IsToxic:           verdict.Toxic,
		Category:          verdict.Category,
		Severity:          verdict.Severity,
		SentimentScore:    verdict.Sentiment,
		Confidence:        verdict.Confidence,
		Explanation:       e.explainer.Explain(verdict),
		Suggestions:       e.explainer.Suggest(verdict),
		SupportResources:  e.resources.Lookup(verdict.Category, verdict.Severity),
		AnalysisTimestamp: time.Now().UTC(),
		ProcessingTimeMs:  float64(time.Since(start).Microseconds()) / 1000.0,
		Signals:           []SignalReading{patternSig, sentimentSig},
	}
	if classifier != nil {
		result.Signals = append(result.Signals, *classifier)
	}
	return result, nil
}
