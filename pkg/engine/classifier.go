package engine

import (
	"context"
	"fmt"
	"math"
	"time"
)

// Prediction is what a classifier backend returns for one text.
type Prediction struct {
	// Probability is the overall toxicity probability (0.0-1.0).
	Probability float64

	// Categories optionally carries per-category probabilities.
	Categories map[Category]float64

	// Label is the backend's raw top label, kept for diagnostics.
	Label string
}

// ClassifierBackend abstracts the learned toxicity model. The engine depends
// only on this contract, never on a concrete model library, so backends
// (ONNX via hugot, a remote service, a test fake) are swappable.
type ClassifierBackend interface {
	// Infer classifies one normalized text. Implementations must honor
	// context cancellation promptly.
	Infer(ctx context.Context, text string) (*Prediction, error)

	// Ready reports whether the backend is initialized and usable.
	Ready() bool
}

// Adapter defaults.
const (
	DefaultInferTimeout  = 2 * time.Second
	DefaultMaxInputRunes = 512 // Transformer models truncate around here anyway
)

// ClassifierAdapter is the boundary between the engine and the ML model:
// it truncates input to the model's accepted length, enforces the inference
// timeout, and sanity-checks the returned probabilities. On any fault it
// reports signal absence; it never fabricates a reading and never fails the
// request.
type ClassifierAdapter struct {
	backend  ClassifierBackend
	timeout  time.Duration
	maxRunes int
	gate     *InferenceGate
}

// NewClassifierAdapter wraps a backend. A nil backend is valid and yields a
// permanently absent signal (heuristic-only deployments).
func NewClassifierAdapter(backend ClassifierBackend, timeout time.Duration, maxRunes int) *ClassifierAdapter {
	if timeout <= 0 {
		timeout = DefaultInferTimeout
	}
	if maxRunes <= 0 {
		maxRunes = DefaultMaxInputRunes
	}
	return &ClassifierAdapter{
		backend:  backend,
		timeout:  timeout,
		maxRunes: maxRunes,
		gate:     NewInferenceGate(DefaultMaxConcurrentInfer),
	}
}

// GateStats reports inference backpressure.
func (a *ClassifierAdapter) GateStats() GateStats {
	return a.gate.Stats()
}

// Available reports whether a ready backend is attached.
func (a *ClassifierAdapter) Available() bool {
	return a != nil && a.backend != nil && a.backend.Ready()
}

// Detect runs bounded inference and produces a Classifier signal. The error
// is one of ErrClassifierTimeout / ErrClassifierFault (wrapped); callers
// treat any error as "no reading" and degrade gracefully.
func (a *ClassifierAdapter) Detect(ctx context.Context, text string) (SignalReading, error) {
	reading := NewSignalReading(SignalSourceClassifier)
	if !a.Available() {
		return reading, fmt.Errorf("%w: no backend", ErrClassifierFault)
	}

	start := time.Now()
	inferCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	// Bounded concurrency: a request that cannot get an inference slot in
	// time degrades instead of queueing behind a saturated model.
	if err := a.gate.Acquire(inferCtx); err != nil {
		return reading, fmt.Errorf("%w: inference slots saturated", ErrClassifierTimeout)
	}

	type outcome struct {
		pred *Prediction
		err  error
	}
	// Buffered so a late backend return cannot leak the goroutine
	done := make(chan outcome, 1)
	go func() {
		defer a.gate.Release()
		pred, err := a.backend.Infer(inferCtx, TruncateRunes(text, a.maxRunes))
		done <- outcome{pred, err}
	}()

	var pred *Prediction
	select {
	case <-inferCtx.Done():
		if ctx.Err() != nil {
			// Caller cancellation, not a model fault
			return reading, fmt.Errorf("%w: %v", ErrClassifierTimeout, ctx.Err())
		}
		return reading, fmt.Errorf("%w after %s", ErrClassifierTimeout, a.timeout)
	case out := <-done:
		if out.err != nil {
			return reading, fmt.Errorf("%w: %v", ErrClassifierFault, out.err)
		}
		pred = out.pred
	}

	if pred == nil || !validProbability(pred.Probability) {
		return reading, fmt.Errorf("%w: probability out of range", ErrClassifierFault)
	}

	reading.Score = pred.Probability
	for cat, p := range pred.Categories {
		// Per-category entries are advisory; drop garbage instead of
		// discarding the whole reading
		if validProbability(p) && p > 0 {
			reading.MatchedCategories[cat] = p
		}
	}
	if pred.Label != "" {
		reading.SetDetail("label", pred.Label)
	}
	reading.SetDetail("probability", pred.Probability)
	reading.LatencyMs = float64(time.Since(start).Microseconds()) / 1000.0
	return reading, nil
}

func validProbability(p float64) bool {
	return !math.IsNaN(p) && !math.IsInf(p, 0) && p >= 0.0 && p <= 1.0
}
