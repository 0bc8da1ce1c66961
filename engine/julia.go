package engine

import (
	"image"
	"math"

	"github.com/benc-uk/gofract/pkg/colors"
	"github.com/benc-uk/gofract/pkg/fractals"
)

const (
	juliaMinSide = 64
	juliaMaxSide = 512
	juliaRadius  = 0.7885
	juliaStep    = math.Pi / 360
)

// juliaSet renders an animated Julia set. The fractal is always square and
// coarser than the framebuffer; the engine scales it onto the surface.
type juliaSet struct {
	side     int
	img      *image.RGBA
	gradient colors.GradientTable
	phase    float64
}

func newJuliaSet(framebuffer image.Point) Sample {
	return &juliaSet{side: juliaSide(framebuffer)}
}

func juliaSide(framebuffer image.Point) int {
	s := min(framebuffer.X, framebuffer.Y) / 4
	return min(max(s, juliaMinSide), juliaMaxSide)
}

func (s *juliaSet) Init() error {
	if s.side <= 0 {
		return ErrInvalidFramebuffer
	}
	for i, c := range []string{"#000764", "#206bcb", "#edffff", "#ffaa00", "#000200"} {
		s.gradient.AddToTable(c, float64(i)/4.0)
	}
	s.img = image.NewRGBA(image.Rect(0, 0, s.side, s.side))
	return nil
}

func (s *juliaSet) Resize(framebuffer image.Point) {
	side := juliaSide(framebuffer)
	if side == s.side {
		return
	}
	s.side = side
	s.img = image.NewRGBA(image.Rect(0, 0, s.side, s.side))
}

func (s *juliaSet) Render() image.Image {
	f := &fractals.Fractal{FractType: "julia",
		Center:       fractals.ComplexPair{0, 0},
		MagFactor:    1.0,
		MaxIter:      90,
		W:            3.0,
		H:            3.0,
		ImgWidth:     s.side,
		JuliaSeed:    fractals.ComplexPair{juliaRadius * math.Cos(s.phase), juliaRadius * math.Sin(s.phase)},
		InnerColor:   "#000000",
		FullScreen:   false,
		ColorRepeats: 2.0}
	f.Render(s.img, s.gradient)

	s.phase = math.Mod(s.phase+juliaStep, 2*math.Pi)
	return s.img
}

func (s *juliaSet) Close() {
	s.img = nil
}
