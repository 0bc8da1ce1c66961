package main

import (
	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"golang.org/x/exp/shiny/materialdesign/icons"
)

const failureMessage = "Could not initialize sample, device is probably not compatible"

var alertIcon, _ = widget.NewIcon(icons.AlertError)

// failurePage is the modal dialog shown when a sample cannot initialize
type failurePage struct {
	title string
	ok    *widget.Clickable
}

type failureAcknowledged struct{}

func newFailurePage(title string) *failurePage {
	return &failurePage{title: title, ok: &widget.Clickable{}}
}

func (p *failurePage) Start(stop <-chan struct{}) {
}

func (p *failurePage) Event(gtx layout.Context) interface{} {
	if p.ok.Clicked(gtx) || submitEvent(gtx) {
		return failureAcknowledged{}
	}
	return nil
}

func (p *failurePage) Layout(gtx layout.Context) layout.Dimensions {
	bg := Background{Color: th.Bg}
	return bg.Layout(gtx, func(gtx C) D {
		return layout.Center.Layout(gtx, func(gtx C) D {
			return dialogMargin.Layout(gtx, func(gtx C) D {
				dbg := dialogBackground()
				return dbg.Layout(gtx, func(gtx C) D {
					return layout.Flex{Axis: layout.Vertical, Alignment: layout.Middle}.Layout(gtx,
						layout.Rigid(func(gtx C) D {
							gtx.Constraints.Min.X = gtx.Dp(unit.Dp(48))
							return alertIcon.Layout(gtx, th.Fg)
						}),
						layout.Rigid(func(gtx C) D {
							return inbetween.Layout(gtx, material.H6(th, p.title).Layout)
						}),
						layout.Rigid(func(gtx C) D {
							return inbetween.Layout(gtx, material.Body1(th, failureMessage).Layout)
						}),
						layout.Rigid(func(gtx C) D {
							return inbetween.Layout(gtx, material.Button(th, p.ok, "OK").Layout)
						}),
					)
				})
			})
		})
	})
}

// failurePresenter shows the failure dialog on the window
type failurePresenter struct {
	a *App
}

func (p failurePresenter) PresentFailure(sampleName string) {
	p.a.stack.Push(newFailurePage(sampleName))
	shortNotify(sampleName, failureMessage)
	p.a.w.Invalidate()
}
