package engine

import (
	"errors"
	"image"
	"sort"
	"sync"
)

var (
	ErrDuplicateSample    = errors.New("engine: sample id already registered")
	ErrUnsupportedDevice  = errors.New("engine: device is probably not compatible")
	ErrInvalidFramebuffer = errors.New("engine: invalid framebuffer size")
)

// Sample is one graphics sample driven by the engine frame loop. All
// methods are called with the engine lock held.
type Sample interface {
	// Init allocates the sample resources
	Init() error
	// Resize adapts the render target to the given framebuffer size
	Resize(framebuffer image.Point)
	// Render draws the next frame
	Render() image.Image
	// Close releases the sample resources
	Close()
}

// Factory creates a sample rendering into a framebuffer of the given size
type Factory func(framebuffer image.Point) Sample

type entry struct {
	name    string
	factory Factory
}

// Registry maps sample ids to their factories
type Registry struct {
	sync.RWMutex
	entries map[int]entry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[int]entry)}
}

// Register adds a sample under id
func (r *Registry) Register(id int, name string, f Factory) error {
	r.Lock()
	defer r.Unlock()
	if _, ok := r.entries[id]; ok {
		return ErrDuplicateSample
	}
	r.entries[id] = entry{name: name, factory: f}
	return nil
}

// Lookup returns the name and factory registered under id
func (r *Registry) Lookup(id int) (string, Factory, bool) {
	r.RLock()
	defer r.RUnlock()
	e, ok := r.entries[id]
	return e.name, e.factory, ok
}

// Name returns the display name of a sample, or "" if id is unknown
func (r *Registry) Name(id int) string {
	name, _, _ := r.Lookup(id)
	return name
}

// IDs returns the registered sample ids in ascending order
func (r *Registry) IDs() []int {
	r.RLock()
	defer r.RUnlock()
	ids := make([]int, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

const (
	SimpleTriangleID = iota
	RayQueryTriangleID
	JuliaSetID
)

// DefaultRegistry holds the samples shipped with the harness
var DefaultRegistry = NewRegistry()

func init() {
	DefaultRegistry.Register(SimpleTriangleID, "Simple Triangle", newSimpleTriangle)
	DefaultRegistry.Register(RayQueryTriangleID, "Ray Query Triangle", newRayQueryTriangle)
	DefaultRegistry.Register(JuliaSetID, "Julia Set", newJuliaSet)
}

// fit scales size down, keeping its aspect ratio, until it fits in bounds
func fit(bounds, size image.Point) image.Point {
	if size.X <= 0 || size.Y <= 0 {
		return bounds
	}
	if size.X <= bounds.X && size.Y <= bounds.Y {
		return size
	}
	s := min(float64(bounds.X)/float64(size.X), float64(bounds.Y)/float64(size.Y))
	return image.Pt(max(1, int(float64(size.X)*s)), max(1, int(float64(size.Y)*s)))
}
