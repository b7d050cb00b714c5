package buildpipeline

import (
	"fmt"
	"sync"

	"marker/internal/trace"
)

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// TraceSink turns progress events into trace points under Parent.
type TraceSink struct {
	Tracer trace.Tracer
	Parent uint64
}

func (s TraceSink) OnEvent(evt Event) {
	name := string(evt.Stage)
	if evt.Crate != "" {
		name += ":" + evt.Crate
	}
	detail := string(evt.Status)
	if evt.Err != nil {
		detail = fmt.Sprintf("%s: %v", evt.Status, evt.Err)
	}
	trace.Point(s.Tracer, trace.ScopeCandidate, name, detail, s.Parent)
}

// MultiSink fans events out to every non-nil sink.
type MultiSink []ProgressSink

func (m MultiSink) OnEvent(evt Event) {
	for _, s := range m {
		if s != nil {
			s.OnEvent(evt)
		}
	}
}

// RecordSink keeps every event. It is safe for concurrent use.
type RecordSink struct {
	mu     sync.Mutex
	events []Event
}

func (r *RecordSink) OnEvent(evt Event) {
	r.mu.Lock()
	r.events = append(r.events, evt)
	r.mu.Unlock()
}

// Events returns a copy of the recorded events.
func (r *RecordSink) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}
