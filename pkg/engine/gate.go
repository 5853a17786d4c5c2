package engine

import (
	"context"
	"sync/atomic"
)

// DefaultMaxConcurrentInfer bounds simultaneous model inferences. Transformer
// inference is CPU-bound; unbounded concurrency thrashes the runtime and
// inflates every request's latency.
const DefaultMaxConcurrentInfer = 4

// InferenceGate limits concurrent classifier inferences. Requests that
// cannot get a slot before their deadline degrade to the heuristic signals
// instead of queueing unboundedly.
type InferenceGate struct {
	slots   chan struct{}
	dropped atomic.Int64
}

// NewInferenceGate creates a gate with the given slot count.
func NewInferenceGate(capacity int) *InferenceGate {
	if capacity <= 0 {
		capacity = DefaultMaxConcurrentInfer
	}
	return &InferenceGate{slots: make(chan struct{}, capacity)}
}

// Acquire blocks until a slot frees up or the context ends.
func (g *InferenceGate) Acquire(ctx context.Context) error {
	select {
	case g.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		g.dropped.Add(1)
		return ctx.Err()
	}
}

// Release returns a slot. Must follow a successful Acquire.
func (g *InferenceGate) Release() {
	select {
	case <-g.slots:
	default:
	}
}

// Stats reports gate pressure for the health endpoint.
func (g *InferenceGate) Stats() GateStats {
	return GateStats{
		Capacity: cap(g.slots),
		InUse:    len(g.slots),
		Dropped:  g.dropped.Load(),
	}
}

// GateStats is a point-in-time snapshot of inference backpressure.
type GateStats struct {
	Capacity int   `json:"capacity"`
	InUse    int   `json:"in_use"`
	Dropped  int64 `json:"dropped"`
}
