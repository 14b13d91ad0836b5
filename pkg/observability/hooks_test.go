package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	b := NoopBoardHooks{}
	b.OnStopStart(ctx, "490005432S2")
	b.OnStopComplete(ctx, "490005432S2", 3, "ok", time.Second)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "stop_name")
	c.OnCacheMiss(ctx, "stop_name")
	c.OnCacheSet(ctx, "stop_name", 13)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "api.tfl.gov.uk", "/StopPoint/490005432S2")
	h.OnResponse(ctx, "GET", "api.tfl.gov.uk", "/StopPoint/490005432S2", 200, time.Second)
	h.OnError(ctx, "GET", "api.tfl.gov.uk", "/StopPoint/490005432S2", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Board().(NoopBoardHooks); !ok {
		t.Error("Board() should return NoopBoardHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customBoard := &testBoardHooks{}
	SetBoardHooks(customBoard)
	if Board() != customBoard {
		t.Error("SetBoardHooks should set custom hooks")
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
	if _, ok := Board().(NoopBoardHooks); !ok {
		t.Error("Reset() should restore NoopBoardHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testHTTPHooks{}
	SetHTTPHooks(custom)
	SetHTTPHooks(nil)

	if HTTP() != custom {
		t.Error("SetHTTPHooks(nil) should be ignored")
	}
}

type testBoardHooks struct{ NoopBoardHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
