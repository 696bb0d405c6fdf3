package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Pipeline hooks
	p := NoopPipelineHooks{}
	p.OnLoadStart(ctx, "csv", "dataset.csv")
	p.OnLoadComplete(ctx, "csv", "dataset.csv", 100, time.Second, nil)
	p.OnCompileStart(ctx, 100)
	p.OnCompileComplete(ctx, time.Second, nil)
	p.OnEmitStart(ctx)
	p.OnEmitComplete(ctx, 2048, time.Second, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "doc")
	c.OnCacheMiss(ctx, "doc")
	c.OnCacheSet(ctx, "doc", 2048)
}

type countingPipelineHooks struct {
	NoopPipelineHooks
	loads int
}

func (h *countingPipelineHooks) OnLoadStart(context.Context, string, string) { h.loads++ }

func TestHookRegistration(t *testing.T) {
	defer Reset()

	h := &countingPipelineHooks{}
	SetPipelineHooks(h)

	Pipeline().OnLoadStart(context.Background(), "csv", "dataset.csv")
	if h.loads != 1 {
		t.Errorf("loads = %d, want 1", h.loads)
	}

	// nil registration keeps the current hooks
	SetPipelineHooks(nil)
	Pipeline().OnLoadStart(context.Background(), "csv", "dataset.csv")
	if h.loads != 2 {
		t.Errorf("loads = %d, want 2", h.loads)
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() did not restore noop pipeline hooks")
	}
}
