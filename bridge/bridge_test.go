package bridge

import (
	"errors"
	"fmt"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is a Renderer that records every call it receives
type recorder struct {
	calls  []string
	initOK bool
	b      *Bridge // when set, Start re-enters the bridge
}

func (r *recorder) Init(id int) bool {
	r.calls = append(r.calls, fmt.Sprintf("init(%d)", id))
	return r.initOK
}

func (r *recorder) Destroy() bool { r.calls = append(r.calls, "destroy"); return true }
func (r *recorder) Start() bool {
	r.calls = append(r.calls, "start")
	if r.b != nil {
		r.b.OnSessionPause()
	}
	return true
}
func (r *recorder) Stop() bool { r.calls = append(r.calls, "stop"); return true }
func (r *recorder) BindSurface(s Surface) bool { r.calls = append(r.calls, "bindSurface"); return true }
func (r *recorder) Resize() bool { r.calls = append(r.calls, "resize"); return true }
func (r *recorder) UnbindSurface() bool { r.calls = append(r.calls, "unbindSurface"); return true }

type presenter struct {
	names []string
}

func (p *presenter) PresentFailure(name string) {
	p.names = append(p.names, name)
}

type surface struct{}

func (surface) Size() image.Point { return image.Pt(800, 600) }
func (surface) Present(image.Image) {}

func newBridge(initOK bool) (*Bridge, *recorder, *presenter) {
	r := &recorder{initOK: initOK}
	p := new(presenter)
	return New(r, p), r, p
}

func TestBridgeScenarioA(t *testing.T) {
	require := require.New(t)
	b, r, p := newBridge(true)

	require.NoError(b.OnSessionCreate(SampleDescriptor{ID: 3, Name: "Triangle"}))
	b.OnSessionResume()
	require.True(b.Session().Running)
	b.OnSessionPause()
	require.Equal(StatePaused, b.State())
	b.OnSessionDestroy()

	require.Equal([]string{"init(3)", "start", "stop", "destroy"}, r.calls)
	require.Empty(p.names)
	require.Equal(StateDestroyed, b.State())
}

func TestBridgeScenarioB(t *testing.T) {
	require := require.New(t)
	b, r, p := newBridge(false)

	err := b.OnSessionCreate(SampleDescriptor{ID: 7, Name: "Compute"})
	require.True(errors.Is(err, ErrInitFailed))
	require.Equal(StateDegraded, b.State())

	b.OnSurfaceCreated(surface{})
	b.OnSurfaceChanged(800, 600)
	b.OnSessionResume()
	b.OnSessionPause()
	b.OnSurfaceDestroyed()
	b.OnSessionDestroy()
	b.OnSessionDestroy()

	require.Equal([]string{"init(7)", "destroy"}, r.calls)
	require.Equal([]string{"Compute"}, p.names)
}

func TestBridgeScenarioC(t *testing.T) {
	require := require.New(t)
	b, r, _ := newBridge(true)

	require.NoError(b.OnSessionCreate(SampleDescriptor{ID: 0, Name: "Simple Triangle"}))
	b.OnSurfaceCreated(surface{})
	b.OnSurfaceChanged(800, 600)
	b.OnSessionResume()
	b.OnSurfaceDestroyed()
	require.False(b.Session().SurfaceBound)
	require.True(b.Session().Running)
	b.OnSessionPause()
	b.OnSessionDestroy()

	require.Equal([]string{"init(0)", "bindSurface", "resize", "start", "unbindSurface", "stop", "destroy"}, r.calls)
}

func TestBridgeDestroyIdempotent(t *testing.T) {
	require := require.New(t)
	b, r, _ := newBridge(true)

	require.NoError(b.OnSessionCreate(SampleDescriptor{ID: 1, Name: "Ray Query Triangle"}))
	b.OnSessionDestroy()
	b.OnSessionDestroy()
	require.Equal([]string{"init(1)", "destroy"}, r.calls)

	// nothing reaches the renderer after destroy
	b.OnSessionResume()
	b.OnSurfaceCreated(surface{})
	b.OnSurfaceChanged(1, 1)
	b.OnSurfaceDestroyed()
	b.OnSessionPause()
	require.ErrorIs(b.OnSessionCreate(SampleDescriptor{ID: 1}), ErrInvalidState)
	require.Equal([]string{"init(1)", "destroy"}, r.calls)
}

func TestBridgeDestroyBeforeCreate(t *testing.T) {
	require := require.New(t)
	b, r, _ := newBridge(true)
	b.OnSessionDestroy()
	b.OnSessionDestroy()
	require.Equal([]string{"destroy"}, r.calls)
}

func TestBridgeSurfaceBeforeInit(t *testing.T) {
	require := require.New(t)
	b, r, _ := newBridge(true)

	b.OnSurfaceCreated(surface{})
	b.OnSurfaceChanged(800, 600)
	b.OnSurfaceDestroyed()
	require.Empty(r.calls)

	require.NoError(b.OnSessionCreate(SampleDescriptor{ID: 0, Name: "Simple Triangle"}))
	// the dropped surface is not remembered
	b.OnSurfaceChanged(800, 600)
	require.Equal([]string{"init(0)"}, r.calls)
}

func TestBridgeResizeRequiresSurface(t *testing.T) {
	require := require.New(t)
	b, r, _ := newBridge(true)
	require.NoError(b.OnSessionCreate(SampleDescriptor{ID: 0}))
	b.OnSessionResume()

	b.OnSurfaceChanged(640, 480)
	b.OnSurfaceDestroyed()
	require.Equal([]string{"init(0)", "start"}, r.calls)

	b.OnSurfaceCreated(surface{})
	b.OnSurfaceChanged(640, 480)
	b.OnSurfaceChanged(480, 640)
	b.OnSurfaceDestroyed()
	b.OnSurfaceChanged(640, 480)
	require.Equal([]string{"init(0)", "start", "bindSurface", "resize", "resize", "unbindSurface"}, r.calls)
}

func TestBridgeSurfaceCreatedTwice(t *testing.T) {
	require := require.New(t)
	b, r, _ := newBridge(true)
	require.NoError(b.OnSessionCreate(SampleDescriptor{ID: 0}))

	b.OnSurfaceCreated(surface{})
	b.OnSurfaceCreated(surface{})
	require.Equal([]string{"init(0)", "bindSurface", "unbindSurface", "bindSurface"}, r.calls)
	require.True(b.Session().SurfaceBound)
}

func TestBridgeDestroyReleasesLiveResources(t *testing.T) {
	require := require.New(t)
	b, r, _ := newBridge(true)
	require.NoError(b.OnSessionCreate(SampleDescriptor{ID: 0}))
	b.OnSurfaceCreated(surface{})
	b.OnSessionResume()

	b.OnSessionDestroy()
	require.Equal([]string{"init(0)", "bindSurface", "start", "stop", "unbindSurface", "destroy"}, r.calls)

	s := b.Session()
	require.False(s.Running)
	require.False(s.SurfaceBound)
	require.False(s.Initialized)
}

func TestBridgeInvalidSessionTransitions(t *testing.T) {
	require := require.New(t)
	b, r, _ := newBridge(true)

	// resume and pause are ignored before create
	b.OnSessionResume()
	b.OnSessionPause()
	require.Empty(r.calls)

	require.NoError(b.OnSessionCreate(SampleDescriptor{ID: 2, Name: "Julia Set"}))
	require.True(errors.Is(b.OnSessionCreate(SampleDescriptor{ID: 2}), ErrInvalidState))

	b.OnSessionPause()
	b.OnSessionResume()
	b.OnSessionResume()
	b.OnSessionPause()
	b.OnSessionPause()
	b.OnSessionResume()
	require.Equal([]string{"init(2)", "start", "stop", "start"}, r.calls)
}

func TestBridgeFailureAcknowledged(t *testing.T) {
	require := require.New(t)
	finished := 0
	r := &recorder{}
	b := New(r, new(presenter), WithFinisher(func() { finished++ }))

	b.OnFailureAcknowledged()
	require.Equal(0, finished)

	require.Error(b.OnSessionCreate(SampleDescriptor{ID: 9, Name: "Mesh Shader"}))
	b.OnFailureAcknowledged()
	b.OnFailureAcknowledged()
	require.Equal(1, finished)
	require.Equal([]string{"init(9)"}, r.calls)
}

func TestBridgeFailureAcknowledgedWhenHealthy(t *testing.T) {
	finished := false
	b := New(&recorder{initOK: true}, new(presenter), WithFinisher(func() { finished = true }))
	require.NoError(t, b.OnSessionCreate(SampleDescriptor{ID: 0}))
	b.OnFailureAcknowledged()
	assert.False(t, finished)
}

func TestBridgeReentrancyPanics(t *testing.T) {
	r := &recorder{initOK: true}
	b := New(r, new(presenter))
	r.b = b
	require.NoError(t, b.OnSessionCreate(SampleDescriptor{ID: 0}))

	defer func() {
		v := recover()
		err, ok := v.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, ErrReentrant))
	}()
	b.OnSessionResume()
	t.Fatal("re-entrant call did not panic")
}

func TestStateString(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("Running", StateRunning.String())
	assert.Equal("Degraded", StateDegraded.String())
	assert.Equal("Unknown", State(42).String())
}
