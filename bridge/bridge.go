// Package bridge reconciles the host screen lifecycle and the drawable
// surface lifecycle into an ordered call sequence on a Renderer.
package bridge

import (
	"errors"
	"fmt"
	"sync/atomic"

	"gopkg.in/op/go-logging.v1"
)

var (
	ErrInitFailed   = errors.New("bridge: sample initialization failed")
	ErrInvalidState = errors.New("bridge: event not valid in current state")
	ErrReentrant    = errors.New("bridge: re-entrant lifecycle event")
)

// Option configures a Bridge
type Option func(*Bridge)

// WithLogger sets the logger used for lifecycle tracing
func WithLogger(log *logging.Logger) Option {
	return func(b *Bridge) {
		b.log = log
	}
}

// WithFinisher sets the function terminating the hosting screen after the
// user acknowledged an initialization failure.
func WithFinisher(finish func()) Option {
	return func(b *Bridge) {
		b.finish = finish
	}
}

// Bridge owns the session state of one hosting screen. All methods must be
// called from the single host callback thread.
type Bridge struct {
	r         Renderer
	presenter FailurePresenter
	finish    func()
	log       *logging.Logger

	busy int32

	descriptor SampleDescriptor
	state      State
	surface    Surface
	finished   bool
}

// New returns a Bridge in the Created state. The renderer must be ready to
// accept Init.
func New(r Renderer, p FailurePresenter, opts ...Option) *Bridge {
	b := &Bridge{r: r, presenter: p, state: StateCreated}
	for _, opt := range opts {
		opt(b)
	}
	if b.log == nil {
		b.log = logging.MustGetLogger("bridge")
	}
	return b
}

// enter panics when an event arrives while another one is being processed
func (b *Bridge) enter(event string) func() {
	if !atomic.CompareAndSwapInt32(&b.busy, 0, 1) {
		panic(fmt.Errorf("%w: %s", ErrReentrant, event))
	}
	b.log.Debugf("%s (state=%s bound=%v)", event, b.state, b.surface != nil)
	return func() {
		atomic.StoreInt32(&b.busy, 0)
	}
}

// Session returns a snapshot of the current session state
func (b *Bridge) Session() Session {
	return Session{
		Descriptor:   b.descriptor,
		State:        b.state,
		Initialized:  b.state.initialized(),
		Running:      b.state == StateRunning,
		SurfaceBound: b.surface != nil,
	}
}

// State returns the session lifecycle state
func (b *Bridge) State() State {
	return b.state
}

// OnSessionCreate initializes the renderer for the sample. When the
// renderer reports failure the session is degraded, the user is notified
// and an error wrapping ErrInitFailed is returned.
func (b *Bridge) OnSessionCreate(d SampleDescriptor) error {
	defer b.enter("OnSessionCreate")()

	if b.state != StateCreated {
		b.log.Debugf("ignoring create of %q in state %s", d.Name, b.state)
		return fmt.Errorf("%w: create in %s", ErrInvalidState, b.state)
	}
	b.descriptor = d
	if !b.r.Init(d.ID) {
		b.state = StateDegraded
		b.log.Errorf("could not initialize sample %d (%s)", d.ID, d.Name)
		if b.presenter != nil {
			b.presenter.PresentFailure(d.Name)
		}
		return fmt.Errorf("%w: %s", ErrInitFailed, d.Name)
	}
	b.state = StateInitialized
	return nil
}

// OnSessionResume starts frame production
func (b *Bridge) OnSessionResume() {
	defer b.enter("OnSessionResume")()

	switch b.state {
	case StateInitialized, StatePaused:
	default:
		b.log.Debugf("ignoring resume in state %s", b.state)
		return
	}
	b.check("start", b.r.Start())
	b.state = StateRunning
}

// OnSessionPause suspends frame production. The surface may already be
// unbound.
func (b *Bridge) OnSessionPause() {
	defer b.enter("OnSessionPause")()

	if b.state != StateRunning {
		b.log.Debugf("ignoring pause in state %s", b.state)
		return
	}
	b.check("stop", b.r.Stop())
	b.state = StatePaused
}

// OnSessionDestroy tears the session down. A running session is stopped
// and a bound surface unbound before the renderer is destroyed. Only the
// first call reaches the renderer.
func (b *Bridge) OnSessionDestroy() {
	defer b.enter("OnSessionDestroy")()

	if b.state == StateDestroyed {
		return
	}
	if b.state == StateRunning {
		b.check("stop", b.r.Stop())
	}
	if b.surface != nil {
		b.check("unbindSurface", b.r.UnbindSurface())
		b.surface = nil
	}
	b.check("destroy", b.r.Destroy())
	b.state = StateDestroyed
}

// OnSurfaceCreated binds a new drawable surface. Surfaces delivered before
// a successful Init or after teardown are dropped.
func (b *Bridge) OnSurfaceCreated(s Surface) {
	defer b.enter("OnSurfaceCreated")()

	if !b.state.initialized() {
		b.log.Debugf("dropping surface in state %s", b.state)
		return
	}
	if b.surface != nil {
		b.log.Warning("surface created while another surface is bound")
		b.check("unbindSurface", b.r.UnbindSurface())
		b.surface = nil
	}
	b.surface = s
	b.check("bindSurface", b.r.BindSurface(s))
}

// OnSurfaceChanged asks the renderer to re-derive its target dimensions.
// It is silently ignored when no surface is bound.
func (b *Bridge) OnSurfaceChanged(width, height int) {
	defer b.enter("OnSurfaceChanged")()

	if b.surface == nil || !b.state.initialized() {
		b.log.Debugf("dropping surface change %dx%d", width, height)
		return
	}
	b.log.Debugf("surface changed to %dx%d", width, height)
	b.check("resize", b.r.Resize())
}

// OnSurfaceDestroyed detaches the bound surface
func (b *Bridge) OnSurfaceDestroyed() {
	defer b.enter("OnSurfaceDestroyed")()

	if b.surface == nil {
		return
	}
	b.surface = nil
	b.check("unbindSurface", b.r.UnbindSurface())
}

// OnFailureAcknowledged terminates the hosting screen once the user
// dismissed the initialization failure.
func (b *Bridge) OnFailureAcknowledged() {
	defer b.enter("OnFailureAcknowledged")()

	if b.state != StateDegraded || b.finished {
		return
	}
	b.finished = true
	if b.finish != nil {
		b.finish()
	}
}

func (b *Bridge) check(call string, ok bool) {
	if !ok {
		b.log.Warningf("renderer %s failed for sample %q", call, b.descriptor.Name)
	}
}
