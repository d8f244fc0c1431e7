package main

import (
	"io"
	"os"
	"time"
)

// defaultWatchDebounce coalesces the burst of events an editor save produces.
const defaultWatchDebounce = 200 * time.Millisecond

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now           func() time.Time
	Stdout        io.Writer
	Stderr        io.Writer
	WatchDebounce time.Duration
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:           time.Now,
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
		WatchDebounce: defaultWatchDebounce,
	}
}
