package main

import (
	"image"
	"sync"

	"gioui.org/layout"
	"gioui.org/op/paint"
	"github.com/aarnaud/vkwsamples/bridge"
)

// windowSurface is the drawable area of the window handed to the renderer.
// Present is called from the engine frame loop, everything else from the
// window event loop.
type windowSurface struct {
	sync.Mutex

	invalidate func()
	size       image.Point
	frame      image.Image
}

var _ bridge.Surface = (*windowSurface)(nil)

func newWindowSurface(invalidate func()) *windowSurface {
	return &windowSurface{invalidate: invalidate}
}

func (s *windowSurface) Size() image.Point {
	s.Lock()
	defer s.Unlock()
	return s.size
}

func (s *windowSurface) Present(frame image.Image) {
	s.Lock()
	s.frame = frame
	s.Unlock()
	if s.invalidate != nil {
		s.invalidate()
	}
}

// resize records the window size and reports whether it changed
func (s *windowSurface) resize(size image.Point) bool {
	s.Lock()
	defer s.Unlock()
	if s.size == size {
		return false
	}
	s.size = size
	return true
}

// reset forgets the size and the last frame of a detached view
func (s *windowSurface) reset() {
	s.Lock()
	defer s.Unlock()
	s.size = image.Point{}
	s.frame = nil
}

func (s *windowSurface) Layout(gtx layout.Context) layout.Dimensions {
	s.Lock()
	frame := s.frame
	s.Unlock()
	paint.Fill(gtx.Ops, rgb(0x0))
	if frame != nil {
		paint.NewImageOp(frame).Add(gtx.Ops)
		paint.PaintOp{}.Add(gtx.Ops)
	}
	return layout.Dimensions{Size: gtx.Constraints.Max}
}
