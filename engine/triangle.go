package engine

import (
	"image"
	"math"

	"github.com/gogpu/gg"
)

const rotationStep = math.Pi / 180

type simpleTriangle struct {
	size  image.Point
	dc    *gg.Context
	angle float64
}

func newSimpleTriangle(framebuffer image.Point) Sample {
	return &simpleTriangle{size: framebuffer}
}

func (s *simpleTriangle) Init() error {
	if s.size.X <= 0 || s.size.Y <= 0 {
		return ErrInvalidFramebuffer
	}
	s.dc = gg.NewContext(s.size.X, s.size.Y)
	return nil
}

func (s *simpleTriangle) Resize(framebuffer image.Point) {
	if framebuffer == s.size || framebuffer.X <= 0 || framebuffer.Y <= 0 {
		return
	}
	if s.dc != nil {
		s.dc.Close()
	}
	s.size = framebuffer
	s.dc = gg.NewContext(s.size.X, s.size.Y)
}

func (s *simpleTriangle) Render() image.Image {
	dc := s.dc
	dc.ClearWithColor(gg.Hex("#1e1e2e"))

	w, h := float64(s.size.X), float64(s.size.Y)
	dc.Push()
	dc.RotateAbout(s.angle, w/2, h/2)
	triangle(dc, w/2, h/2, min(w, h)*0.4)
	dc.SetRGB(0.95, 0.55, 0.2)
	dc.Fill()
	dc.Pop()

	s.angle = math.Mod(s.angle+rotationStep, 2*math.Pi)
	return dc.Image()
}

func (s *simpleTriangle) Close() {
	if s.dc != nil {
		s.dc.Close()
		s.dc = nil
	}
}

// triangle adds an equilateral triangle centered on (cx, cy) to the path
func triangle(dc *gg.Context, cx, cy, r float64) {
	for i := 0; i < 3; i++ {
		a := -math.Pi/2 + float64(i)*2*math.Pi/3
		x, y := cx+r*math.Cos(a), cy+r*math.Sin(a)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.ClosePath()
}

// rayQueryTriangle casts the triangle's shadow onto a ground plane and
// needs a GPU accelerator able to render whole scenes.
type rayQueryTriangle struct {
	simpleTriangle
	accel gg.GPUAccelerator
}

func newRayQueryTriangle(framebuffer image.Point) Sample {
	return &rayQueryTriangle{simpleTriangle: simpleTriangle{size: framebuffer}}
}

func (s *rayQueryTriangle) Init() error {
	a := gg.Accelerator()
	if a == nil || !a.CanAccelerate(gg.AccelScene) {
		return ErrUnsupportedDevice
	}
	s.accel = a
	return s.simpleTriangle.Init()
}

func (s *rayQueryTriangle) Render() image.Image {
	dc := s.dc
	dc.ClearWithColor(gg.Hex("#10141c"))

	w, h := float64(s.size.X), float64(s.size.Y)
	r := min(w, h) * 0.35

	// shadow
	dc.Push()
	dc.RotateAbout(s.angle, w/2+r*0.15, h/2+r*0.25)
	triangle(dc, w/2+r*0.15, h/2+r*0.25, r)
	dc.SetRGBA(0, 0, 0, 0.5)
	dc.Fill()
	dc.Pop()

	dc.Push()
	dc.RotateAbout(s.angle, w/2, h/2)
	triangle(dc, w/2, h/2, r)
	dc.SetRGB(0.3, 0.7, 0.95)
	dc.Fill()
	dc.Pop()

	s.angle = math.Mod(s.angle+rotationStep, 2*math.Pi)
	return dc.Image()
}
