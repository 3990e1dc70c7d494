// Package klog provides the structured logger shared by the core's logging
// components (the manipulator engine, the config loader, the IPC endpoints of
// C8, and the two daemons).
package klog

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	once zerolog.Logger
	mu   sync.Once
)

// base lazily builds the process-wide console logger with a timestamp,
// matching the console-writer + timestamp shape of a typical zerolog setup
// in this corpus.
func base() zerolog.Logger {
	mu.Do(func() {
		once = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05.000"}).
			With().
			Timestamp().
			Logger()
	})
	return once
}

// New returns a sub-logger scoped to the named component, e.g.
// klog.New("manipulator") or klog.New("ipc.client").
func New(component string) zerolog.Logger {
	return base().With().Str("component", component).Logger()
}
