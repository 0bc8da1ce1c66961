package main

import (
	"image"

	"github.com/aarnaud/vkwsamples/bridge"
)

// host translates window notifications into bridge lifecycle events.
// It tracks whether a view is attached and whether the window has focus
// so repeated notifications reach the bridge once.
type host struct {
	b       *bridge.Bridge
	surface *windowSurface

	attached bool
	focused  bool
}

func newHost(b *bridge.Bridge, s *windowSurface) *host {
	return &host{b: b, surface: s}
}

// viewCreated reports a new drawable view. Its size is delivered by the
// next frame.
func (h *host) viewCreated() {
	if h.attached {
		return
	}
	h.attached = true
	h.surface.reset()
	h.b.OnSurfaceCreated(h.surface)
}

func (h *host) viewDestroyed() {
	if !h.attached {
		return
	}
	h.attached = false
	h.b.OnSurfaceDestroyed()
	h.surface.reset()
}

// frame reports the window size seen by a frame event
func (h *host) frame(size image.Point) {
	if !h.attached {
		return
	}
	if h.surface.resize(size) {
		h.b.OnSurfaceChanged(size.X, size.Y)
	}
}

func (h *host) focus(focused bool) {
	if focused == h.focused {
		return
	}
	h.focused = focused
	if focused {
		h.b.OnSessionResume()
	} else {
		h.b.OnSessionPause()
	}
}

func (h *host) destroy() {
	h.b.OnSessionDestroy()
}
