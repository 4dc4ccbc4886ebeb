package probe

import "sync/atomic"

const (
	running = iota
	stopped
)

// Flag is a one way stop signal shared between the signal handler and
// the probe loop. The zero value is running. State changes use CPU
// effective atomic vars, so concurrent Stop calls are safe.
type Flag struct {
	state uint32
}

// Stop raises the flag. The loop observes it at iteration boundaries,
// a started probe still completes or times out.
func (f *Flag) Stop() {
	atomic.CompareAndSwapUint32(&f.state, running, stopped)
}

// Stopped reports whether the flag was raised
func (f *Flag) Stopped() bool {
	return atomic.LoadUint32(&f.state) == stopped
}
