package main

import (
	"fmt"
	"io"
	"time"

	"github.com/aarnaud/vkwsamples/journal"
	"github.com/hako/durafmt"
)

// dump prints every journaled session and its renderer calls, oldest first
func dump(w io.Writer, j *journal.Journal) error {
	sessions, err := j.Sessions()
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Fprintln(w, "journal is empty")
		return nil
	}
	for _, s := range sessions {
		start := s.StartTime()
		fmt.Fprintf(w, "session %d: %s (sample %d), %s ago\n", s.ID, s.SampleName, s.SampleID,
			durafmt.ParseShort(time.Since(start).Truncate(time.Second)))
		records, err := j.Records(s.ID)
		if err != nil {
			return err
		}
		for _, r := range records {
			status := "ok"
			if !r.OK {
				status = "failed"
			}
			fmt.Fprintf(w, "  %4d +%-10s %-14s %-6s", r.Seq, durafmt.ParseShort(r.Time().Sub(start)), r.Call, status)
			if r.Call == "init" {
				fmt.Fprintf(w, " sample=%d", r.Arg)
			}
			fmt.Fprintln(w)
		}
	}
	return nil
}
