package trace

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLevelShouldEmit(t *testing.T) {
	cases := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeDecl, false},
		{LevelDebug, ScopeDecl, true},
	}
	for _, tc := range cases {
		if got := tc.level.ShouldEmit(tc.scope); got != tc.want {
			t.Fatalf("%s.ShouldEmit(%s) = %v", tc.level, tc.scope, got)
		}
	}
}

func TestParseLevelAndMode(t *testing.T) {
	if l, err := ParseLevel("DETAIL"); err != nil || l != LevelDetail {
		t.Fatalf("ParseLevel: %v %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error")
	}
	if m, err := ParseMode("both"); err != nil || m != ModeBoth {
		t.Fatalf("ParseMode: %v %v", m, err)
	}
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Fatalf("ParseFormat: %v %v", f, err)
	}
}

func TestStreamTracerWritesSpans(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)

	root := Begin(tr, ScopePass, "expand", 0)
	file := Begin(tr, ScopeFile, "file:a.swift", root.ID())
	decl := Begin(tr, ScopeDecl, "decl:AnyFoo", file.ID())
	if decl.ID() != 0 {
		t.Fatalf("decl scope must be filtered at detail level")
	}
	decl.End("")
	file.WithExtra("fields", "1").WithExtra("accessors", "1").End("ok")
	root.End("")
	if err := tr.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "[pass] → expand") {
		t.Fatalf("unexpected begin line %q", lines[0])
	}
	if !strings.Contains(lines[2], "← file:a.swift (ok) {accessors=1, fields=1}") {
		t.Fatalf("unexpected end line %q", lines[2])
	}
}

func TestNDJSONFormat(t *testing.T) {
	ev := &Event{Time: time.Unix(0, 0).UTC(), Seq: 7, Kind: KindPoint, Scope: ScopeDriver, Name: "cache-hit", Detail: "a.swift"}
	got := string(FormatEvent(ev, FormatNDJSON))
	if !strings.HasSuffix(got, "\n") || !strings.Contains(got, `"kind":"point"`) || !strings.Contains(got, `"detail":"a.swift"`) {
		t.Fatalf("unexpected json %q", got)
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for i := range 5 {
		Point(r, ScopeDecl, "p", string(rune('a'+i)), 0)
	}
	if r.Len() != 3 {
		t.Fatalf("expected 3 events, got %d", r.Len())
	}
	snap := r.Snapshot()
	if snap[0].Detail != "c" || snap[2].Detail != "e" {
		t.Fatalf("unexpected order: %q %q", snap[0].Detail, snap[2].Detail)
	}
	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatalf("dump: %v", err)
	}
	if strings.Count(buf.String(), "\n") != 3 {
		t.Fatalf("dump lines: %q", buf.String())
	}
}

func TestMultiTracerFansOut(t *testing.T) {
	var buf bytes.Buffer
	m := NewMultiTracer(LevelPhase, NewStreamTracer(&buf, LevelPhase, FormatText), NewRingTracer(8, LevelPhase))
	Begin(m, ScopeDriver, "run", 0).End("")
	_ = m.Flush()
	if m.Ring() == nil || m.Ring().Len() != 2 {
		t.Fatalf("ring must receive both events")
	}
	if strings.Count(buf.String(), "\n") != 2 {
		t.Fatalf("stream must receive both events: %q", buf.String())
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("expected disabled tracer, got %v %v", tr, err)
	}
	if Begin(tr, ScopeDriver, "x", 0).End("") != 0 {
		t.Fatalf("nop span must have zero duration")
	}
}

func TestContextPropagation(t *testing.T) {
	r := NewRingTracer(4, LevelPhase)
	ctx := WithTracer(context.Background(), r)
	if FromContext(ctx) != r {
		t.Fatalf("tracer lost")
	}
	if FromContext(context.Background()) != Nop {
		t.Fatalf("expected Nop")
	}
	if ParentFromContext(ctx) != 0 {
		t.Fatalf("root context must have no parent")
	}

	ctx, outer := StartSpan(ctx, nil, ScopeDriver, "outer")
	if ParentFromContext(ctx) != outer.ID() {
		t.Fatalf("outer span not carried by ctx")
	}
	// ScopeDecl отфильтрован на LevelPhase: ctx остаётся прежним
	declCtx, decl := StartSpan(ctx, nil, ScopeDecl, "decl")
	if decl.ID() != 0 || ParentFromContext(declCtx) != outer.ID() {
		t.Fatalf("filtered span must keep the parent, got %d", ParentFromContext(declCtx))
	}
	_, inner := StartSpan(declCtx, nil, ScopePass, "inner")
	inner.End("")
	outer.End("")

	events := r.Snapshot()
	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %d", len(events))
	}
	if events[1].Name != "inner" || events[1].ParentID != outer.ID() {
		t.Fatalf("inner span parent = %d, want %d", events[1].ParentID, outer.ID())
	}
}

func TestHeartbeatStop(t *testing.T) {
	r := NewRingTracer(64, LevelPhase)
	h := StartHeartbeat(r, time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	h.Stop()
	h.Stop()
	n := r.Len()
	time.Sleep(5 * time.Millisecond)
	if r.Len() != n {
		t.Fatalf("heartbeat kept running after Stop")
	}
	if StartHeartbeat(Nop, time.Second) != nil {
		t.Fatalf("disabled tracer must not start heartbeat")
	}
}

func TestChildSkipsFilteredParent(t *testing.T) {
	r := NewRingTracer(8, LevelPhase)
	root := Begin(r, ScopeDriver, "run", 0)
	file := root.Child(ScopeFile, "file")
	if file.ID() != 0 {
		t.Fatalf("file span must be filtered at phase level")
	}
	pass := file.Child(ScopePass, "parse")
	pass.Fail(errors.New("boom"))
	root.End("")

	events := r.Snapshot()
	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %d", len(events))
	}
	if events[1].ParentID != root.ID() {
		t.Fatalf("pass parent = %d, want %d", events[1].ParentID, root.ID())
	}
	if events[2].Detail != "error: boom" {
		t.Fatalf("Fail detail = %q", events[2].Detail)
	}
}

type closeRecorder struct {
	bytes.Buffer
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

func TestRingModeDumpsOnClose(t *testing.T) {
	out := &closeRecorder{}
	tr, err := New(Config{Level: LevelPhase, Mode: ModeRing, Output: out, RingSize: 2})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	for _, name := range []string{"a", "b", "c"} {
		Point(tr, ScopeDriver, name, "", 0)
	}
	if out.Len() != 0 {
		t.Fatalf("ring must not write before Close: %q", out.String())
	}
	if err := tr.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !out.closed {
		t.Fatalf("sink must be closed")
	}
	got := out.String()
	if strings.Count(got, "\n") != 2 || strings.Contains(got, " a") {
		t.Fatalf("expected only the last two events, got %q", got)
	}
	if r := tr.(*RingTracer); r.Dropped() != 1 {
		t.Fatalf("dropped = %d, want 1", r.Dropped())
	}
	// второй Close ничего не пишет
	out.Reset()
	if err := tr.Close(); err != nil || out.Len() != 0 {
		t.Fatalf("second close: %v %q", err, out.String())
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]StorageMode{"stream": ModeStream, " Ring ": ModeRing, "BOTH": ModeBoth} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseMode("file"); err == nil {
		t.Errorf("expected error for unknown mode")
	}
}
