// Package optimistic implements the client-side synchronization protocol:
// a local mutation is applied immediately, the server request is issued,
// and the local state is either replaced with the canonical server value
// or reverted to the exact pre-mutation value. The package is free of any
// UI or transport dependency so every transition can be tested directly.
package optimistic

import "errors"

var (
	// ErrMutationInFlight guards against repeated user actions while a
	// request is pending for the same value.
	ErrMutationInFlight = errors.New("optimistic: mutation already in flight")
	// ErrNoPendingMutation is returned when Confirm or Rollback is called
	// without a prior Apply.
	ErrNoPendingMutation = errors.New("optimistic: no pending mutation")
)

type State int

const (
	Idle State = iota
	OptimisticallyApplied
	Confirmed
	RolledBack
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case OptimisticallyApplied:
		return "optimistically_applied"
	case Confirmed:
		return "confirmed"
	case RolledBack:
		return "rolled_back"
	default:
		return "unknown"
	}
}

// Counter tracks one numeric counter (likes, impressions, reactions)
// through the optimistic lifecycle. A new mutation may start from Idle,
// Confirmed or RolledBack; starting one while another is pending is an
// error.
type Counter struct {
	value int64
	prev  int64
	state State
}

func NewCounter(initial int64) *Counter {
	return &Counter{value: initial, state: Idle}
}

func (c *Counter) Value() int64 {
	return c.value
}

func (c *Counter) State() State {
	return c.state
}

// Apply mutates the local value by delta before the server has answered.
func (c *Counter) Apply(delta int64) error {
	if c.state == OptimisticallyApplied {
		return ErrMutationInFlight
	}
	c.prev = c.value
	c.value += delta
	c.state = OptimisticallyApplied
	return nil
}

// Confirm replaces the local value with the canonical server value.
func (c *Counter) Confirm(canonical int64) error {
	if c.state != OptimisticallyApplied {
		return ErrNoPendingMutation
	}
	c.value = canonical
	c.state = Confirmed
	return nil
}

// Rollback restores the exact pre-mutation value.
func (c *Counter) Rollback() error {
	if c.state != OptimisticallyApplied {
		return ErrNoPendingMutation
	}
	c.value = c.prev
	c.state = RolledBack
	return nil
}

// Flag tracks one boolean (marked unavailable, reported, callback
// requested) through the same lifecycle as Counter.
type Flag struct {
	value bool
	prev  bool
	state State
}

func NewFlag(initial bool) *Flag {
	return &Flag{value: initial, state: Idle}
}

func (f *Flag) Value() bool {
	return f.value
}

func (f *Flag) State() State {
	return f.state
}

func (f *Flag) Apply(value bool) error {
	if f.state == OptimisticallyApplied {
		return ErrMutationInFlight
	}
	f.prev = f.value
	f.value = value
	f.state = OptimisticallyApplied
	return nil
}

func (f *Flag) Confirm(canonical bool) error {
	if f.state != OptimisticallyApplied {
		return ErrNoPendingMutation
	}
	f.value = canonical
	f.state = Confirmed
	return nil
}

func (f *Flag) Rollback() error {
	if f.state != OptimisticallyApplied {
		return ErrNoPendingMutation
	}
	f.value = f.prev
	f.state = RolledBack
	return nil
}
