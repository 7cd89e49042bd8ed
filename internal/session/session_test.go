package session

import (
	"errors"
	"testing"
)

func TestMachineLifecycle(t *testing.T) {
	t.Parallel()

	m := New()
	if m.State() != Idle {
		t.Fatalf("expected idle, got %v", m.State())
	}

	if err := m.Begin(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.State() != Submitting {
		t.Fatalf("expected submitting, got %v", m.State())
	}

	if err := m.Begin(); !errors.Is(err, ErrInFlight) {
		t.Fatalf("expected ErrInFlight, got %v", err)
	}

	m.Finish(nil)
	if m.State() != Succeeded {
		t.Fatalf("expected succeeded, got %v", m.State())
	}

	// A finished session may be reused for a resubmission.
	if err := m.Begin(); err != nil {
		t.Fatalf("unexpected error on resubmission: %v", err)
	}
	m.Finish(errors.New("boom"))
	if m.State() != Failed {
		t.Fatalf("expected failed, got %v", m.State())
	}
}

func TestFinishOutsideSubmission(t *testing.T) {
	t.Parallel()

	m := New()
	m.Finish(nil)
	if m.State() != Idle {
		t.Fatalf("finish outside a submission must not change state, got %v", m.State())
	}
}

func TestStateString(t *testing.T) {
	t.Parallel()

	names := map[State]string{Idle: "idle", Submitting: "submitting", Succeeded: "succeeded", Failed: "failed"}
	for state, want := range names {
		if got := state.String(); got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	}
}
