package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	g := NoopGeneratorHooks{}
	g.OnGenerateStart(ctx, "memory")
	g.OnGenerateComplete(ctx, "memory", 20, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "memory")
	c.OnCacheMiss(ctx, "loader")
	c.OnCacheSet(ctx, "loader", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/v1/decode")
	h.OnResponse(ctx, "POST", "/v1/decode", 200, time.Second)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Generator().(NoopGeneratorHooks); !ok {
		t.Error("Generator() should return NoopGeneratorHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customGenerator := &testGeneratorHooks{}
	SetGeneratorHooks(customGenerator)
	if Generator() != customGenerator {
		t.Error("SetGeneratorHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Generator().(NoopGeneratorHooks); !ok {
		t.Error("Reset() should restore NoopGeneratorHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testGeneratorHooks{}
	SetGeneratorHooks(custom)
	SetGeneratorHooks(nil)

	if Generator() != custom {
		t.Error("SetGeneratorHooks(nil) should be ignored")
	}

	Reset()
}

type testGeneratorHooks struct{ NoopGeneratorHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
