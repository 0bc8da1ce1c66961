package journal

import (
	"time"
)

// Record is one renderer call as seen by the journal
type Record struct {
	// Seq orders the records of a session
	Seq uint64

	// Call is the renderer method, e.g. "init" or "bindSurface"
	Call string

	// Arg is the call argument, the sample id for init
	Arg int64

	// OK is the outcome reported by the renderer
	OK bool

	// At is the call time in unix nanoseconds
	At int64
}

// Time returns the call time
func (r *Record) Time() time.Time {
	return time.Unix(0, r.At)
}

// Session describes one journaled session
type Session struct {
	ID         uint64
	SampleID   int
	SampleName string
	Started    int64
}

// StartTime returns the time the session began
func (s *Session) StartTime() time.Time {
	return time.Unix(0, s.Started)
}
