package main

import (
	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"
)

// theme must be created AFTER the window on android
func newTheme() *material.Theme {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))
	th.Bg = rgb(0x0)
	th.Fg = rgb(0xFFFFFFFF)
	th.ContrastBg = rgb(0x22222222)
	th.ContrastFg = rgb(0x77777777)
	return th
}

func dialogBackground() Background {
	return Background{
		Color:  th.ContrastBg,
		Inset:  layout.UniformInset(unit.Dp(24)),
		Radius: unit.Dp(10),
	}
}

var (
	dialogMargin = layout.UniformInset(unit.Dp(32))
	inbetween    = layout.Inset{Top: unit.Dp(12)}
)
