package orchestrator

import (
	"fmt"

	"booklingo/internal/apperr"
)

// Phase is the coarse state of an adaptation run.
type Phase string

const (
	PhasePending    Phase = "pending"
	PhaseProcessing Phase = "processing"
	PhaseSucceeded  Phase = "succeeded"
	PhaseFailed     Phase = "failed"
	PhaseCancelled  Phase = "cancelled"
)

// State is the position of a run. Index is the 0-based chunk the phase refers to:
// the chunk being adapted (Processing), the chunk that failed (Failed), or the
// first chunk left unadapted (Cancelled).
type State struct {
	Phase  Phase
	Index  int
	Reason string
	Kind   apperr.Kind
}

// Terminal reports whether the run has ended.
func (s State) Terminal() bool {
	switch s.Phase {
	case PhaseSucceeded, PhaseFailed, PhaseCancelled:
		return true
	}
	return false
}

func (s State) String() string {
	switch s.Phase {
	case PhaseProcessing, PhaseCancelled:
		return fmt.Sprintf("%s(%d)", s.Phase, s.Index)
	case PhaseFailed:
		return fmt.Sprintf("%s(%d, %s)", s.Phase, s.Index, s.Reason)
	default:
		return string(s.Phase)
	}
}

// machine enforces the legal transitions of a run over total chunks starting at start:
//
//	Pending       -> Processing(start), or Succeeded when start == total
//	Processing(i) -> Processing(i+1) | Failed(i) | Cancelled(i)
//	Processing(total-1) -> Succeeded
type machine struct {
	state State
	start int
	total int
}

func newMachine(start, total int) *machine {
	return &machine{state: State{Phase: PhasePending}, start: start, total: total}
}

func (m *machine) to(next State) error {
	cur := m.state
	ok := false
	switch cur.Phase {
	case PhasePending:
		switch next.Phase {
		case PhaseProcessing:
			ok = next.Index == m.start && m.start < m.total
		case PhaseSucceeded:
			ok = m.start >= m.total
		}
	case PhaseProcessing:
		switch next.Phase {
		case PhaseProcessing:
			ok = next.Index == cur.Index+1 && next.Index < m.total
		case PhaseFailed, PhaseCancelled:
			ok = next.Index == cur.Index
		case PhaseSucceeded:
			ok = cur.Index == m.total-1
		}
	}
	if !ok {
		return fmt.Errorf("illegal transition %s -> %s", cur, next)
	}
	m.state = next
	return nil
}
