package main

import (
	"bytes"
	"testing"

	"github.com/aarnaud/vkwsamples/bridge"
	"github.com/aarnaud/vkwsamples/journal"
	"github.com/stretchr/testify/require"
)

func TestDump(t *testing.T) {
	require := require.New(t)
	j, err := journal.Open("", journal.Options{}, nil)
	require.NoError(err)
	defer j.Close()

	out := new(bytes.Buffer)
	require.NoError(dump(out, j))
	require.Equal("journal is empty\n", out.String())

	d := bridge.SampleDescriptor{ID: 1, Name: "Ray Query Triangle"}
	require.NoError(j.Begin(d))
	b := bridge.New(journal.NewRenderer(&callRecorder{}, j, nil), &failures{})
	require.Error(b.OnSessionCreate(d))
	b.OnSessionDestroy()

	out.Reset()
	require.NoError(dump(out, j))
	require.Contains(out.String(), "Ray Query Triangle (sample 1)")
	require.Contains(out.String(), "init")
	require.Contains(out.String(), "failed sample=1")
	require.Contains(out.String(), "destroy")
}
