package bridge

// State is the session lifecycle state of a Bridge
type State uint8

const (
	StateCreated State = iota
	StateInitialized
	StateRunning
	StatePaused
	// StateDegraded is entered when Init fails. Only Destroy may still
	// reach the renderer.
	StateDegraded
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "Created"
	case StateInitialized:
		return "Initialized"
	case StateRunning:
		return "Running"
	case StatePaused:
		return "Paused"
	case StateDegraded:
		return "Degraded"
	case StateDestroyed:
		return "Destroyed"
	}
	return "Unknown"
}

// initialized reports whether Init succeeded and Destroy was not issued yet
func (s State) initialized() bool {
	return s == StateInitialized || s == StateRunning || s == StatePaused
}

// Session is a snapshot of the state held by a Bridge
type Session struct {
	Descriptor   SampleDescriptor
	State        State
	Initialized  bool
	Running      bool
	SurfaceBound bool
}
