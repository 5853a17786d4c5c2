package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestInferenceGateAcquireRelease(t *testing.T) {
	g := NewInferenceGate(1)

	if err := g.Acquire(context.Background()); err != nil {
		t.Fatalf("first Acquire failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := g.Acquire(ctx); err != context.DeadlineExceeded {
		t.Errorf("expected DeadlineExceeded, got %v", err)
	}
	if g.Stats().Dropped != 1 {
		t.Errorf("expected 1 dropped, got %d", g.Stats().Dropped)
	}

	g.Release()
	if err := g.Acquire(context.Background()); err != nil {
		t.Errorf("Acquire after Release failed: %v", err)
	}
}

func TestInferenceGateConcurrentCapacity(t *testing.T) {
	g := NewInferenceGate(5)
	var peak atomic.Int32
	var inUse atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := g.Acquire(context.Background()); err != nil {
				return
			}
			n := inUse.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			inUse.Add(-1)
			g.Release()
		}()
	}
	wg.Wait()

	if got := peak.Load(); got > 5 {
		t.Errorf("concurrency exceeded capacity: %d", got)
	}
	if g.Stats().InUse != 0 {
		t.Errorf("slots leaked: %d", g.Stats().InUse)
	}
}

func TestInferenceGateDefaultCapacity(t *testing.T) {
	g := NewInferenceGate(0)
	if g.Stats().Capacity != DefaultMaxConcurrentInfer {
		t.Errorf("expected default capacity %d, got %d", DefaultMaxConcurrentInfer, g.Stats().Capacity)
	}
}
