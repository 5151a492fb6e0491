package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnLoadStart(ctx, "genbank")
	p.OnLoadComplete(ctx, "genbank", 12, time.Second, nil)
	p.OnLayoutStart(ctx, "circular", 12)
	p.OnLayoutComplete(ctx, "circular", 3, 2, time.Second, nil)
	p.OnRenderStart(ctx, []string{"svg"})
	p.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "record")
	c.OnCacheMiss(ctx, "layout")
	c.OnCacheSet(ctx, "artifact", 1024)

	NoopServerHooks{}.OnRequest(ctx, "POST", "/v1/layout", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := Server().(NoopServerHooks); !ok {
		t.Error("Server() should return NoopServerHooks by default")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}
	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}
	customServer := &testServerHooks{}
	SetServerHooks(customServer)
	if Server() != customServer {
		t.Error("SetServerHooks should set custom hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)
	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}
}

func TestPrometheus(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg)

	p.OnLayoutStart(ctx, "linear", 40)
	p.OnLayoutComplete(ctx, "linear", 3, 1, 5*time.Millisecond, nil)
	p.OnLayoutComplete(ctx, "linear", 0, 0, time.Millisecond, errors.New("out of range"))
	p.OnCacheHit(ctx, "layout")
	p.OnCacheMiss(ctx, "layout")
	p.OnCacheSet(ctx, "artifact", 2048)
	p.OnRequest(ctx, "POST", "/v1/render", 200, 10*time.Millisecond)

	if got := testutil.ToFloat64(p.stageErrors.WithLabelValues("layout")); got != 1 {
		t.Errorf("layout errors = %v, want 1", got)
	}
	if got := testutil.ToFloat64(p.cacheEvents.WithLabelValues("layout", "hit")); got != 1 {
		t.Errorf("cache hits = %v, want 1", got)
	}
	if got := testutil.ToFloat64(p.cacheBytes.WithLabelValues("artifact")); got != 2048 {
		t.Errorf("cache bytes = %v, want 2048", got)
	}
	if got := testutil.ToFloat64(p.requests.WithLabelValues("POST", "/v1/render", "200")); got != 1 {
		t.Errorf("requests = %v, want 1", got)
	}
	if n, err := testutil.GatherAndCount(reg); err != nil || n == 0 {
		t.Errorf("GatherAndCount() = %d, %v", n, err)
	}
}

func TestPrometheusRegister(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	p := NewPrometheus(nil)
	p.Register()
	if Pipeline() != PipelineHooks(p) || Cache() != CacheHooks(p) || Server() != ServerHooks(p) {
		t.Error("Register() should install p for every hook kind")
	}
}

type testPipelineHooks struct{ NoopPipelineHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testServerHooks struct{ NoopServerHooks }
