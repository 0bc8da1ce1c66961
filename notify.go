package main

import (
	"time"

	"gioui.org/x/notify"
)

func shortNotify(title, msg string) {
	go func() {
		n, err := notify.Push(title, msg)
		if err != nil {
			log.Debugf("notification unavailable: %v", err)
			return
		}
		<-time.After(notificationTimeout)
		n.Cancel()
	}()
}
