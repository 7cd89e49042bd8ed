// Package session tracks the lifecycle of a single profile submission so the
// calling component can refuse a second in-flight attempt. It replaces ad hoc
// "are we submitting" flags with an explicit state machine owned by the
// caller.
package session

import (
	"errors"
	"sync"
)

// State of a submission session.
type State int

const (
	Idle State = iota
	Submitting
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrInFlight is returned by Begin while a submission is outstanding.
var ErrInFlight = errors.New("a submission is already in flight")

// Machine is a mutex-guarded idle -> submitting -> {succeeded, failed}
// tracker. A finished machine may begin again; resubmission after an outcome
// is the caller's decision.
type Machine struct {
	mu    sync.Mutex
	state State
}

func New() *Machine {
	return &Machine{state: Idle}
}

// Begin moves the machine into Submitting. It fails with ErrInFlight when a
// submission is already outstanding.
func (m *Machine) Begin() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == Submitting {
		return ErrInFlight
	}
	m.state = Submitting
	return nil
}

// Finish records the submission outcome. Calling it outside a submission is a
// no-op.
func (m *Machine) Finish(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != Submitting {
		return
	}
	if err != nil {
		m.state = Failed
		return
	}
	m.state = Succeeded
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}
