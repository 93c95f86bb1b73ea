package ui

import (
	"time"

	"boatyard/internal/loop"
)

// taskDoneMsg carries the continuation of a finished task back to the loop
type taskDoneMsg struct {
	name string
	next loop.Continuation
}

// toastTickMsg is sent on a timer to expire toasts
type toastTickMsg time.Time

// quitMsg signals that the application should quit
type quitMsg struct{}
