//go:build !android

package main

import (
	"gioui.org/app"
	"gioui.org/io/event"
)

// handleGioEvents treats the first frame as the creation of the drawable
// surface, since desktop windows have no separate view lifecycle.
func (a *App) handleGioEvents(e event.Event) error {
	switch e := e.(type) {
	case app.ConfigEvent:
		a.host.focus(e.Config.Focused)
	case app.DestroyEvent:
		return a.shutdown(e.Err)
	case app.FrameEvent:
		a.host.viewCreated()
		a.host.frame(e.Size)
		gtx := app.NewContext(a.ops, e)
		a.Layout(gtx)
		e.Frame(gtx.Ops)
	}
	return nil
}
