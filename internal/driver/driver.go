package driver

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const (
	DefaultTickLength = time.Second * 2
)

// Manager is anything that advances with the world clock.
type Manager interface {
	Tick(context.Context) error
}

// Driver is the single logic thread of the world. Every manager runs on it,
// in order, once per tick, so world state is never touched concurrently.
type Driver struct {
	tickLength time.Duration
	managers   []Manager
	startup    []func(context.Context) error
	ticks      uint64
}

func NewDriver(managers []Manager, opts ...DriverOpt) *Driver {
	d := &Driver{
		tickLength: DefaultTickLength,
		managers:   managers,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Start satisfies service.Worker.
func (d *Driver) Start(ctx context.Context) error {
	for _, fn := range d.startup {
		if err := fn(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("driver startup: %w", err)
		}
	}

	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()

	slog.InfoContext(ctx, "driver started", "tick", d.tickLength, "managers", len(d.managers))

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "driver stopped", "ticks", d.ticks)
			return nil
		case <-ticker.C:
			err := d.Tick(ctx)
			if err != nil {
				return err
			}
		}
	}
}

func (d *Driver) Tick(ctx context.Context) error {
	d.ticks++
	for i, m := range d.managers {
		if err := m.Tick(ctx); err != nil {
			return fmt.Errorf("tick %d, manager %d: %w", d.ticks, i, err)
		}
	}
	return nil
}
