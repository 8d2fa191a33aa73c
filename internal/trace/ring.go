package trace

import (
	"io"
	"sync"
)

// RingTracer keeps the most recent events in memory so a failed run can
// dump what led to the failure.
type RingTracer struct {
	mu    sync.Mutex
	buf   []Event
	total uint64 // events ever stored; next slot is total % len(buf)
	level Level
}

// NewRingTracer creates a ring of capacity events (defaultRingSize when not positive).
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = defaultRingSize
	}
	return &RingTracer{buf: make([]Event, capacity), level: level}
}

// Emit stores ev unless the level filters it; heartbeats always pass.
func (t *RingTracer) Emit(ev *Event) {
	if ev.Kind != KindHeartbeat && !t.level.ShouldEmit(ev.Scope) {
		return
	}
	stored := *ev
	stored.Seq = NextSeq()

	t.mu.Lock()
	t.buf[t.total%uint64(len(t.buf))] = stored
	t.total++
	t.mu.Unlock()
}

// Snapshot returns the stored events oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()

	size := uint64(len(t.buf))
	if t.total <= size {
		return append([]Event(nil), t.buf[:t.total]...)
	}
	head := t.total % size
	return append(append(make([]Event, 0, size), t.buf[head:]...), t.buf[:head]...)
}

// Dump writes the stored events to w with times relative to the oldest.
// Chrome format needs a whole document, so the dump falls back to ndjson.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	events := t.Snapshot()
	if len(events) == 0 {
		return nil
	}
	if format == FormatChrome {
		format = FormatNDJSON
	}
	origin := events[0].Time
	for i := range events {
		if _, err := w.Write(FormatEvent(&events[i], format, origin)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error { return nil }

func (t *RingTracer) Close() error { return nil }

func (t *RingTracer) Level() Level { return t.level }

func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
