package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Update hooks
	u := NoopUpdateHooks{}
	u.OnUpdateStart(ctx, 4)
	u.OnUpdateComplete(ctx, 10, 3, time.Second, nil)
	u.OnMessage(ctx, "init", 1024)

	// Schedule hooks
	s := NoopScheduleHooks{}
	s.OnStart(12)
	s.OnDone(2, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "option")
	c.OnCacheMiss(ctx, "option")
	c.OnCacheSet(ctx, "option", 1024)
}

type testUpdateHooks struct {
	NoopUpdateHooks
	updates int
}

func (h *testUpdateHooks) OnUpdateStart(context.Context, int) { h.updates++ }

type testScheduleHooks struct {
	NoopScheduleHooks
	runs int
}

func (h *testScheduleHooks) OnStart(int) { h.runs++ }

type testCacheHooks struct {
	NoopCacheHooks
	hits int
}

func (h *testCacheHooks) OnCacheHit(context.Context, string) { h.hits++ }

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()
	t.Cleanup(Reset)

	// Verify defaults are noop
	if _, ok := Update().(NoopUpdateHooks); !ok {
		t.Error("Update() should return NoopUpdateHooks by default")
	}
	if _, ok := Schedule().(NoopScheduleHooks); !ok {
		t.Error("Schedule() should return NoopScheduleHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	// Set custom hooks
	customUpdate := &testUpdateHooks{}
	SetUpdateHooks(customUpdate)
	if Update() != customUpdate {
		t.Error("SetUpdateHooks should set custom hooks")
	}

	customSchedule := &testScheduleHooks{}
	SetScheduleHooks(customSchedule)
	if Schedule() != customSchedule {
		t.Error("SetScheduleHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	// Nil registrations are ignored
	SetUpdateHooks(nil)
	if Update() != customUpdate {
		t.Error("SetUpdateHooks(nil) should keep existing hooks")
	}

	// Reset restores defaults
	Reset()
	if _, ok := Update().(NoopUpdateHooks); !ok {
		t.Error("Reset() should restore NoopUpdateHooks")
	}
}

func TestHooksFlow(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	h := &testScheduleHooks{}
	SetScheduleHooks(h)
	Schedule().OnStart(3)
	Schedule().OnDone(1, nil)
	if h.runs != 1 {
		t.Errorf("runs = %d, want 1", h.runs)
	}
}
