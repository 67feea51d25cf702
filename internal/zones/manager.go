package zones

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/pixil98/go-worldcore/internal/world"
)

// Resetter runs a zone's reset program.
type Resetter interface {
	ResetZone(ctx context.Context, zr world.ZoneRnum) error
}

// Occupancy reports how many players are inside a zone.
type Occupancy interface {
	Players(zr world.ZoneRnum) int
}

// ZoneManager ages zones every tick and resets the ones whose lifespan ran
// out. Due zones wait in a queue keyed by vnum, so table edits between ticks
// cannot point the queue at the wrong zone.
type ZoneManager struct {
	world     *world.World
	resetter  Resetter
	occupancy Occupancy

	tickLength time.Duration
	queue      []world.Vnum
}

func NewZoneManager(w *world.World, r Resetter, opts ...ZoneManagerOpt) *ZoneManager {
	zm := &ZoneManager{
		world:      w,
		resetter:   r,
		tickLength: 2 * time.Second,
	}

	for _, opt := range opts {
		opt(zm)
	}

	return zm
}

// Tick satisfies driver.Manager.
func (zm *ZoneManager) Tick(ctx context.Context) error {
	for _, z := range zm.world.Zones.Items() {
		if z.ResetMode == world.ZoneResetNever || z.Lifespan <= 0 {
			continue
		}
		z.Age += zm.tickLength
		if z.Age >= z.Lifespan && !slices.Contains(zm.queue, z.Number) {
			slog.DebugContext(ctx, "zone due for reset", "zone", z.Number, "age", z.Age)
			zm.queue = append(zm.queue, z.Number)
		}
	}

	var keep []world.Vnum
	for _, v := range zm.queue {
		zr := zm.world.RealZone(v)
		z := zm.world.Zone(zr)
		if z == nil || z.ResetMode == world.ZoneResetNever {
			continue
		}
		if z.ResetMode == world.ZoneResetEmpty && zm.players(zr) > 0 {
			keep = append(keep, v)
			continue
		}

		err := zm.resetter.ResetZone(ctx, zr)
		if errors.Is(err, world.ErrResetActive) {
			keep = append(keep, v)
			continue
		}
		if err != nil {
			return fmt.Errorf("resetting zone %d: %w", v, err)
		}
	}
	zm.queue = keep

	return nil
}

// ForceReset resets a zone now, whatever its age, mode or occupancy.
func (zm *ZoneManager) ForceReset(ctx context.Context, v world.Vnum) error {
	zr := zm.world.RealZone(v)
	if zr == world.NoZone {
		return fmt.Errorf("zone %d: %w", v, world.ErrNotFound)
	}
	if err := zm.resetter.ResetZone(ctx, zr); err != nil {
		return err
	}
	zm.queue = slices.DeleteFunc(zm.queue, func(q world.Vnum) bool { return q == v })

	slog.InfoContext(ctx, "zone reset forced", "zone", v)
	return nil
}

// ResetAll resets every zone once, in vnum order, whatever its mode. It is
// run at boot before the first tick.
func (zm *ZoneManager) ResetAll(ctx context.Context) error {
	for zr := range zm.world.Zones.Len() {
		z := zm.world.Zone(world.ZoneRnum(zr))
		slog.DebugContext(ctx, "resetting zone", "zone", z.Number, "name", z.Name)
		if err := zm.resetter.ResetZone(ctx, world.ZoneRnum(zr)); err != nil {
			return fmt.Errorf("resetting zone %d: %w", z.Number, err)
		}
	}
	zm.queue = nil
	return nil
}

// Queued returns the vnums of zones waiting for a reset.
func (zm *ZoneManager) Queued() []world.Vnum {
	return slices.Clone(zm.queue)
}

func (zm *ZoneManager) players(zr world.ZoneRnum) int {
	if zm.occupancy == nil {
		return 0
	}
	return zm.occupancy.Players(zr)
}
