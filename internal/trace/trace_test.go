package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePhase, true},
		{LevelPhase, ScopeCandidate, false},
		{LevelDetail, ScopeCandidate, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	if l, err := ParseLevel("DETAIL"); err != nil || l != LevelDetail {
		t.Errorf("ParseLevel(DETAIL) = %v, %v", l, err)
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestBeginEndRing(t *testing.T) {
	ring := NewRingTracer(16, LevelDetail)

	outer := Begin(ring, ScopePhase, "resolve", 0)
	inner := Begin(ring, ScopeCandidate, "candidate:default", outer.ID())
	inner.WithExtra("path", "/bin/driver").End("ok")
	Begin(ring, ScopeNode, "ignored", outer.ID()).End("")
	outer.End("")

	events := ring.Snapshot()
	if len(events) != 4 {
		t.Fatalf("got %d events, want 4: %+v", len(events), events)
	}
	if events[1].ParentID != events[0].SpanID {
		t.Errorf("inner span not parented under outer")
	}
	if events[2].Kind != KindSpanEnd || events[2].Extra["path"] != "/bin/driver" {
		t.Errorf("unexpected end event %+v", events[2])
	}
	for i := 1; i < len(events); i++ {
		if events[i].Seq <= events[i-1].Seq {
			t.Errorf("sequence not monotonic at %d", i)
		}
	}
}

func TestRingWraps(t *testing.T) {
	ring := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		Point(ring, ScopeNode, name, "", 0)
	}
	got := ring.Snapshot()
	if len(got) != 2 || got[0].Name != "b" || got[1].Name != "c" {
		t.Fatalf("snapshot = %+v", got)
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Point(tr, ScopeNode, "skip", "use list stem", 0)

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if decoded["name"] != "skip" || decoded["detail"] != "use list stem" || decoded["scope"] != "node" {
		t.Errorf("unexpected event %v", decoded)
	}
}

func TestStreamTracerTextSortsExtra(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)
	Begin(tr, ScopePhase, "build", 0).WithExtra("b", "2").WithExtra("a", "1").End("done")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[1], "← build (done) {a=1, b=2}") {
		t.Errorf("unexpected end line %q", lines[1])
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Enabled() {
		t.Error("off tracer reports enabled")
	}
}

func TestContextPropagation(t *testing.T) {
	ring := NewRingTracer(4, LevelDebug)
	ctx := WithTracer(context.Background(), ring)
	if FromContext(ctx) != Tracer(ring) {
		t.Fatal("tracer not propagated")
	}
	if FromContext(context.Background()) != Nop {
		t.Error("missing tracer should be Nop")
	}

	sp := Begin(ring, ScopePhase, "pass", 0)
	ctx = WithSpan(ctx, sp)
	if CurrentSpan(ctx).SpanID != sp.ID() {
		t.Error("span not propagated")
	}
}
