package events

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestHooksEnabled(t *testing.T) {
	var none Hooks
	if none.Enabled() {
		t.Fatal("empty hook set must be disabled")
	}
	some := Hooks{&CaptureHook{}}
	if !some.Enabled() {
		t.Fatal("non-empty hook set must be enabled")
	}
}

func TestHooksNotifyFansOut(t *testing.T) {
	first := &CaptureHook{}
	second := &CaptureHook{}
	hooks := Hooks{first, nil, second}

	err := hooks.Notify(context.Background(), Event{Verb: "bind", Node: "root"})
	if err != nil {
		t.Fatalf("notify failed: %v", err)
	}
	if len(first.Events) != 1 || len(second.Events) != 1 {
		t.Fatalf("expected both hooks notified, got %d and %d", len(first.Events), len(second.Events))
	}
	if first.Events[0].Verb != "bind" {
		t.Fatalf("got %+v", first.Events[0])
	}
}

func TestHooksNotifyJoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	failing := &CaptureHook{Err: boom}
	healthy := &CaptureHook{}
	hooks := Hooks{failing, healthy}

	err := hooks.Notify(context.Background(), Event{Verb: "refresh"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the hook error joined, got %v", err)
	}
	// a failing hook never starves the others
	if len(healthy.Events) != 1 {
		t.Fatal("later hooks must still be notified")
	}
}

func TestHooksNotifySkipsEmptyVerb(t *testing.T) {
	hook := &CaptureHook{}
	hooks := Hooks{hook}
	if err := hooks.Notify(context.Background(), Event{Verb: "   "}); err != nil {
		t.Fatalf("notify failed: %v", err)
	}
	if len(hook.Events) != 0 {
		t.Fatalf("verb-less events must be dropped, got %+v", hook.Events)
	}
}

func TestNormalizeEvent(t *testing.T) {
	event := NormalizeEvent(Event{
		Verb:    " bind ",
		NodeID:  " id ",
		Node:    " root ",
		KeyPath: " name ",
		Status:  " ok ",
	})
	if event.Verb != "bind" || event.NodeID != "id" || event.Node != "root" || event.KeyPath != "name" || event.Status != "ok" {
		t.Fatalf("fields not trimmed: %+v", event)
	}
	if event.OccurredAt.IsZero() {
		t.Fatal("timestamp must be defaulted")
	}

	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	event = NormalizeEvent(Event{Verb: "bind", OccurredAt: at})
	if !event.OccurredAt.Equal(at) {
		t.Fatal("explicit timestamps must be kept")
	}
}

func TestHookFuncNil(t *testing.T) {
	var fn HookFunc
	if err := fn.Notify(context.Background(), Event{Verb: "bind"}); err != nil {
		t.Fatalf("nil func must be a no-op, got %v", err)
	}
}
