package trace

import (
	"io"
	"sync"
)

// DefaultRingSize: ёмкость кольца, если в Config не задано.
const DefaultRingSize = 4096

// RingTracer хранит последние события в памяти. Если задан sink,
// Close сбрасывает накопленное туда одним куском.
type RingTracer struct {
	mu    sync.RWMutex
	buf   []Event
	total uint64 // сколько событий принято за всё время
	level Level

	sink   io.Writer
	format Format
}

func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = DefaultRingSize
	}
	return &RingTracer{buf: make([]Event, 0, capacity), level: level}
}

// DumpOnClose makes Close write the buffered events to w.
// A w implementing io.Closer is closed afterwards.
func (t *RingTracer) DumpOnClose(w io.Writer, format Format) *RingTracer {
	t.mu.Lock()
	t.sink, t.format = w, format
	t.mu.Unlock()
	return t
}

func (t *RingTracer) Emit(ev *Event) {
	if ev.Kind != KindHeartbeat && !t.level.ShouldEmit(ev.Scope) {
		return
	}
	stored := *ev
	stored.Seq = NextSeq()

	t.mu.Lock()
	if len(t.buf) < cap(t.buf) {
		t.buf = append(t.buf, stored)
	} else {
		t.buf[t.total%uint64(cap(t.buf))] = stored
	}
	t.total++
	t.mu.Unlock()
}

// Snapshot returns the stored events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Event, 0, len(t.buf))
	if len(t.buf) < cap(t.buf) {
		return append(out, t.buf...)
	}
	start := int(t.total % uint64(cap(t.buf)))
	out = append(out, t.buf[start:]...)
	return append(out, t.buf[:start]...)
}

// Dropped reports how many events were overwritten.
func (t *RingTracer) Dropped() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.total - uint64(len(t.buf))
}

// Dump пишет содержимое буфера в w, от старых событий к новым.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.buf)
}

func (t *RingTracer) Flush() error { return nil }

func (t *RingTracer) Close() error {
	t.mu.Lock()
	sink, format := t.sink, t.format
	t.sink = nil
	t.mu.Unlock()
	if sink == nil {
		return nil
	}
	err := t.Dump(sink, format)
	if c, ok := sink.(io.Closer); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
