package main

import (
	"runtime"

	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/layout"
)

// helper to capture back / escape presses from any page
func backEvent(gtx layout.Context) bool {
	filters := []event.Filter{
		key.Filter{Name: key.NameEscape},
		key.Filter{Name: key.NameBack},
	}
	if ke, ok := gtx.Event(filters...); ok {
		switch ke := ke.(type) {
		case key.Event:
			if runtime.GOOS == "android" || ke.State == key.Release {
				return true
			}
		}
	}
	return false
}

// helper to capture the enter key acknowledging a dialog
func submitEvent(gtx layout.Context) bool {
	filters := []event.Filter{
		key.Filter{Name: key.NameReturn},
		key.Filter{Name: key.NameEnter},
	}
	if ke, ok := gtx.Event(filters...); ok {
		switch ke := ke.(type) {
		case key.Event:
			// if on android key.Release isn't implemented
			if runtime.GOOS == "android" || ke.State == key.Press {
				return true
			}
		}
	}
	return false
}
