package driver

import (
	"context"
	"time"
)

type DriverOpt func(*Driver)

// WithTickLength sets how often managers are ticked.
func WithTickLength(tickLength time.Duration) DriverOpt {
	return func(d *Driver) {
		d.tickLength = tickLength
	}
}

// WithStartup adds a step run once on the driver's goroutine before the
// first tick. Steps run in the order they were added.
func WithStartup(fn func(context.Context) error) DriverOpt {
	return func(d *Driver) {
		d.startup = append(d.startup, fn)
	}
}
