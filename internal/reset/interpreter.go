package reset

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/pixil98/go-worldcore/internal/world"
)

// Target is what an AttachTrigger or SetVar command applies to. Exactly one
// of Mobile, Object and Room is set, as selected by Kind.
type Target struct {
	Kind   world.TargetKind
	Zone   world.Vnum
	Mobile *world.MobileInstance
	Object *world.ObjectInstance
	Room   *world.Room
}

// Triggers is the scripting engine resets hand work to. It runs outside the
// world core; calls are treated as synchronous.
type Triggers interface {
	Attach(ctx context.Context, t Target, trigger world.Vnum) error
	SetVariable(ctx context.Context, t Target, name, value string) error
	RoomReset(ctx context.Context, z *world.Zone, r *world.Room) error
	WearAllowed(ctx context.Context, mi *world.MobileInstance, oi *world.ObjectInstance, slot world.WearSlot) bool
}

// Roller is the source of randomness for percent gates and treasure.
type Roller interface {
	// Percent returns a value in [1, 100].
	Percent() int
	// Intn returns a value in [0, n).
	Intn(n int) int
}

// Notifier is told about every completed reset.
type Notifier interface {
	ZoneReset(ctx context.Context, w *world.World, zr world.ZoneRnum) error
}

type randRoller struct{}

func (randRoller) Percent() int   { return rand.IntN(100) + 1 }
func (randRoller) Intn(n int) int { return rand.IntN(n) }

type nopTriggers struct{}

func (nopTriggers) Attach(context.Context, Target, world.Vnum) error          { return nil }
func (nopTriggers) SetVariable(context.Context, Target, string, string) error { return nil }
func (nopTriggers) RoomReset(context.Context, *world.Zone, *world.Room) error { return nil }
func (nopTriggers) WearAllowed(context.Context, *world.MobileInstance, *world.ObjectInstance, world.WearSlot) bool {
	return true
}

// Interpreter runs zone programs against a world.
type Interpreter struct {
	world    *world.World
	triggers Triggers
	roller   Roller
	notifier Notifier
	tuning   Tuning
	now      func() time.Time
}

func NewInterpreter(w *world.World, opts ...InterpreterOpt) *Interpreter {
	in := &Interpreter{
		world:    w,
		triggers: nopTriggers{},
		roller:   randRoller{},
		tuning:   DefaultTuning(),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(in)
	}

	return in
}

// ResetZone runs the program of the zone at zr once. A zone whose reset is
// already in progress is refused with world.ErrResetActive and left alone.
// Individual commands never fail the pass; they are logged and neutralised.
func (in *Interpreter) ResetZone(ctx context.Context, zr world.ZoneRnum) error {
	z := in.world.Zone(zr)
	if z == nil {
		return fmt.Errorf("zone rnum %d: %w", zr, world.ErrNotFound)
	}
	if z.State == world.ResetActive {
		slog.WarnContext(ctx, "zone reset refused", "zone", z.Number, "reason", "reset already in progress",
			"since", z.ResetStart)
		return fmt.Errorf("zone %d: %w", z.Number, world.ErrResetActive)
	}

	z.State = world.ResetActive
	z.ResetStart = in.now()
	defer func() {
		z.State = world.ResetNormal
		z.ResetStart = time.Time{}
	}()

	p := &pass{
		Interpreter: in,
		zone:        z,
		zr:          zr,
		lastRoom:    world.Nowhere,
		claimed:     map[*world.ObjectInstance]bool{},
	}
	p.run(ctx)

	rooms := in.world.ZoneRooms(zr)
	for _, r := range rooms {
		room := in.world.Room(r)
		if err := in.triggers.RoomReset(ctx, z, room); err != nil {
			slog.WarnContext(ctx, "room reset trigger failed", "zone", z.Number, "room", room.Number, "error", err)
		}
	}
	p.placeTreasure(ctx, rooms)
	p.release(ctx)

	z.Age = 0

	slog.InfoContext(ctx, "zone reset complete",
		"zone", z.Number, "commands", p.executed, "mobiles", p.mobiles, "objects", p.objects,
		"chests", p.chests, "released", p.released, "disabled", p.disabled)

	if in.notifier != nil {
		if err := in.notifier.ZoneReset(ctx, in.world, zr); err != nil {
			slog.WarnContext(ctx, "zone reset notification failed", "zone", z.Number, "error", err)
		}
	}
	return nil
}
