package events

// Freezable is implemented by every *Event. Batch uses it to hold back
// notifications until a group of mutations is complete.
type Freezable interface {
	freeze()
	thaw()
}

// Batch freezes the given events, runs fn, then lets every event that was
// emitted while frozen fire exactly once with its latest payload. Listeners
// therefore only ever observe the state after fn returned.
//
// Batches nest: an event only fires when its outermost batch ends. Events are
// thawed in the order given, also when fn panics.
func Batch(fn func(), frozen ...Freezable) {
	for _, f := range frozen {
		f.freeze()
	}
	defer func() {
		for _, f := range frozen {
			f.thaw()
		}
	}()

	fn()
}
