// Package engine renders the harness samples. An Engine implements
// bridge.Renderer: it owns the sample state for one session and runs the
// frame loop between Start and Stop.
package engine

import (
	"image"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aarnaud/vkwsamples/bridge"
	"github.com/katzenpost/katzenpost/core/worker"
	"golang.org/x/image/draw"
	"gopkg.in/op/go-logging.v1"
)

const (
	DefaultFrameInterval = 16 * time.Millisecond
)

var DefaultFramebuffer = image.Pt(1440, 2560)

// Config holds the engine parameters
type Config struct {
	Framebuffer   image.Point
	FrameInterval time.Duration
}

// Engine is the renderer behind the lifecycle bridge. Init, Destroy,
// Start and Stop must be called from a single goroutine.
type Engine struct {
	// Mutex guards the sample and the surface; it is held while a frame
	// renders.
	sync.Mutex

	log      *logging.Logger
	cfg      Config
	registry *Registry

	sample  Sample
	surface bridge.Surface
	target  image.Point

	requestResize atomic.Bool
	frames        atomic.Uint64

	loop *worker.Worker
}

var _ bridge.Renderer = (*Engine)(nil)

// New returns an Engine creating its samples from registry
func New(registry *Registry, cfg Config, log *logging.Logger) *Engine {
	if cfg.Framebuffer.X <= 0 || cfg.Framebuffer.Y <= 0 {
		cfg.Framebuffer = DefaultFramebuffer
	}
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = DefaultFrameInterval
	}
	if log == nil {
		log = logging.MustGetLogger("engine")
	}
	return &Engine{log: log, cfg: cfg, registry: registry}
}

// Init creates and initializes the sample registered under sampleID
func (e *Engine) Init(sampleID int) bool {
	e.Lock()
	defer e.Unlock()

	if e.sample != nil {
		e.log.Error("sample already initialized")
		return false
	}
	name, factory, ok := e.registry.Lookup(sampleID)
	if !ok {
		e.log.Errorf("wrong sample ID %d", sampleID)
		return false
	}
	s := factory(e.cfg.Framebuffer)
	if err := s.Init(); err != nil {
		e.log.Errorf("error initializing sample %s: %v", name, err)
		s.Close()
		return false
	}
	e.log.Infof("sample %s initialized (%dx%d)", name, e.cfg.Framebuffer.X, e.cfg.Framebuffer.Y)
	e.sample = s
	return true
}

// Destroy halts the frame loop and releases the sample
func (e *Engine) Destroy() bool {
	e.halt()

	e.Lock()
	defer e.Unlock()
	if e.sample != nil {
		e.sample.Close()
		e.sample = nil
	}
	e.surface = nil
	return true
}

// Start launches the frame loop
func (e *Engine) Start() bool {
	e.Lock()
	initialized := e.sample != nil
	e.Unlock()
	if !initialized {
		e.log.Error("cannot start, sample not initialized")
		return false
	}
	if e.loop != nil {
		return true
	}
	w := new(worker.Worker)
	w.Go(func() { e.mainLoop(w) })
	e.loop = w
	e.log.Debug("main loop started")
	return true
}

// Stop halts the frame loop and waits for it to exit
func (e *Engine) Stop() bool {
	if e.loop == nil {
		return false
	}
	e.halt()
	e.log.Debug("main loop stopped")
	return true
}

// halt must not be called with the lock held, the loop takes it every frame
func (e *Engine) halt() {
	if e.loop != nil {
		e.loop.Halt()
		e.loop = nil
	}
}

// BindSurface attaches the drawable target frames are presented to
func (e *Engine) BindSurface(s bridge.Surface) bool {
	e.Lock()
	defer e.Unlock()

	if e.sample == nil {
		e.log.Error("error sample not initialized")
		return false
	}
	if s == nil {
		e.log.Error("error initializing sample surface")
		return false
	}
	e.surface = s
	e.requestResize.Store(true)
	size := s.Size()
	e.log.Debugf("native window initialized: w=%d, h=%d", size.X, size.Y)
	return true
}

// Resize requests the target size be re-derived from the surface before
// the next frame
func (e *Engine) Resize() bool {
	e.requestResize.Store(true)
	return true
}

// UnbindSurface detaches the drawable target
func (e *Engine) UnbindSurface() bool {
	e.Lock()
	defer e.Unlock()
	e.surface = nil
	e.target = image.Point{}
	return true
}

// Frames returns the number of frames presented so far
func (e *Engine) Frames() uint64 {
	return e.frames.Load()
}

func (e *Engine) mainLoop(w *worker.Worker) {
	ticker := time.NewTicker(e.cfg.FrameInterval)
	defer ticker.Stop()
	for {
		select {
		case <-w.HaltCh():
			return
		case <-ticker.C:
			e.renderFrame()
		}
	}
}

func (e *Engine) renderFrame() {
	e.Lock()
	defer e.Unlock()

	if e.sample == nil || e.surface == nil {
		return
	}
	if e.requestResize.Swap(false) {
		size := e.surface.Size()
		if size.X > 0 && size.Y > 0 {
			e.target = size
			e.sample.Resize(fit(e.cfg.Framebuffer, size))
		}
	}
	frame := e.sample.Render()
	if frame == nil {
		return
	}
	e.surface.Present(present(frame, e.target))
	e.frames.Add(1)
}

// present copies frame into a new image of the target size, scaling it to
// the largest centered rectangle keeping its aspect ratio
func present(frame image.Image, target image.Point) image.Image {
	src := frame.Bounds()
	if target.X <= 0 || target.Y <= 0 {
		target = src.Size()
	}
	dst := image.NewRGBA(image.Rectangle{Max: target})
	if src.Size() == target {
		draw.Draw(dst, dst.Bounds(), frame, src.Min, draw.Src)
		return dst
	}
	s := min(float64(target.X)/float64(src.Dx()), float64(target.Y)/float64(src.Dy()))
	size := image.Pt(int(float64(src.Dx())*s), int(float64(src.Dy())*s))
	off := target.Sub(size).Div(2)
	draw.ApproxBiLinear.Scale(dst, image.Rectangle{Min: off, Max: off.Add(size)}, frame, src, draw.Src, nil)
	return dst
}
