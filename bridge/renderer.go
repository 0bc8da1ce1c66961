package bridge

import (
	"image"
)

// Renderer is the call boundary of the rendering engine. Every call reports
// success; only Init failures are acted upon by the Bridge.
type Renderer interface {
	Init(sampleID int) bool
	Destroy() bool
	Start() bool
	Stop() bool
	BindSurface(s Surface) bool
	Resize() bool
	UnbindSurface() bool
}

// Surface is a drawable target owned by the windowing system. The Bridge and
// the renderer only borrow it between its created and destroyed events.
type Surface interface {
	// Size returns the current dimensions of the drawable region
	Size() image.Point
	// Present hands a finished frame to the windowing system
	Present(frame image.Image)
}

// FailurePresenter notifies the user that a sample could not be initialized.
// Once the user dismisses the notification the host delivers
// Bridge.OnFailureAcknowledged.
type FailurePresenter interface {
	PresentFailure(sampleName string)
}

// SampleDescriptor identifies the sample configuration of a session
type SampleDescriptor struct {
	ID   int
	Name string
}
