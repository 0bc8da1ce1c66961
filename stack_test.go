package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type page struct {
	started int
}

func (p *page) Start(stop <-chan struct{}) { p.started++ }
func (p *page) Event(C) interface{} { return nil }
func (p *page) Layout(gtx C) D { return D{} }

func TestPageStack(t *testing.T) {
	require := require.New(t)
	var s pageStack
	a, b := &page{}, &page{}

	s.Push(a)
	require.Equal(1, s.Len())
	s.Push(b)
	require.Equal(b, s.Current())
	s.Pop()
	require.Equal(a, s.Current())
	require.Equal(2, a.started)
	require.Equal(1, b.started)
	s.Pop()
	require.Zero(s.Len())
	s.Pop()
}
