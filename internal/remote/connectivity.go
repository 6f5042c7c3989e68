package remote

import "sync/atomic"

// Flag is a Connectivity implementation backed by an atomic bool,
// flipped by whatever reachability signal the host app has.
type Flag struct {
	connected atomic.Bool
}

// NewFlag creates a Flag with the given initial state.
func NewFlag(connected bool) *Flag {
	f := &Flag{}
	f.connected.Store(connected)
	return f
}

// Set updates the connectivity state.
func (f *Flag) Set(connected bool) {
	f.connected.Store(connected)
}

// IsConnected reports the current state.
func (f *Flag) IsConnected() bool {
	return f.connected.Load()
}
