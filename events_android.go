//go:build android

package main

import (
	"gioui.org/app"
	"gioui.org/io/event"
)

// handleGioEvents binds and unbinds the sample surface when
// AndroidViewEvents indicate that the application has a view or not.
func (a *App) handleGioEvents(e event.Event) error {
	switch e := e.(type) {
	case app.ConfigEvent:
		a.host.focus(e.Config.Focused)
	case app.DestroyEvent:
		return a.shutdown(e.Err)
	case app.FrameEvent:
		a.host.frame(e.Size)
		gtx := app.NewContext(a.ops, e)
		a.Layout(gtx)
		e.Frame(gtx.Ops)
	case app.AndroidViewEvent:
		if e.View == 0 {
			a.host.viewDestroyed()
		} else {
			a.host.viewCreated()
		}
	}
	return nil
}
