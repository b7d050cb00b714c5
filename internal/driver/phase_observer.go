package driver

import (
	"time"

	"marker/internal/observ"
)

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	// PhaseStart indicates that a pass phase has begun.
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes a timing phase boundary.
type PhaseEvent struct {
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
}

// PhaseObserver receives phase events emitted during RunPass.
type PhaseObserver func(PhaseEvent)

type phases struct {
	timer    *observ.Timer
	observer PhaseObserver
}

func (p *phases) begin(name string) int {
	if p.observer != nil {
		p.observer(PhaseEvent{Name: name, Status: PhaseStart})
	}
	return p.timer.Begin(name)
}

func (p *phases) end(idx int, note string) {
	ph, ok := p.timer.End(idx, note)
	if p.observer == nil || !ok {
		return
	}
	p.observer(PhaseEvent{Name: ph.Name, Status: PhaseEnd, Elapsed: ph.Dur})
}
