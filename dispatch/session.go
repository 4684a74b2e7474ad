package dispatch

// SessionState is the one mutable record threaded through the
// single-threaded dispatch loop (spec §4.4). Only the loop goroutine ever
// touches it directly; worker goroutines spawned by the bounded-latency
// executor only ever see the Span/backend values it hands them, never
// SessionState itself.
type SessionState struct {
	// Initialized is set once the initialize request has been handled.
	Initialized bool
	// ShuttingDown is set once shutdown has been handled; Run exits after
	// replying to it.
	ShuttingDown bool
	// CurrentProject is the build queue's target project path. It starts
	// unset (empty string) and is set from initialize's rootPath — there
	// is no other point in this protocol where a project path is
	// supplied (spec §13 open-question resolution #5).
	CurrentProject string
}
