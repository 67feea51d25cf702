package world

import (
	"context"
	"fmt"
	"log/slog"
)

// DisableCommand turns c into a no-op and writes the reason to the builder log.
func (z *Zone) DisableCommand(ctx context.Context, c *Command, reason string) {
	slog.WarnContext(ctx, "zone command disabled",
		"zone", z.Number, "line", c.Line, "cmd", c.Op.String(), "reason", reason)
	c.Disable(reason)
}

// ResolveProgram turns authored commands into a zone program, resolving every
// vnum operand once. A command whose operands do not resolve is disabled and
// logged; only a mismatched command count fails the whole program.
func (w *World) ResolveProgram(ctx context.Context, z *Zone, zr *ZoneRecord) ([]Command, error) {
	if zr.Count > 0 && zr.Count != len(zr.Commands) {
		return nil, fmt.Errorf("zone %d: %w: declared %d commands, found %d",
			z.Number, ErrLoadFormat, zr.Count, len(zr.Commands))
	}

	cmds := make([]Command, 0, len(zr.Commands)+1)
	for i := range zr.Commands {
		cmds = append(cmds, w.resolveCommand(ctx, z, &zr.Commands[i], i))
	}

	if n := len(cmds); n == 0 || cmds[n-1].Op != OpStop {
		cmds = append(cmds, Command{
			Op: OpStop, Line: len(zr.Commands) + 1,
			Mob: NoMob, Obj: NoObj, Container: NoObj, Room: Nowhere, Slot: -1, Dir: -1,
		})
	}
	return cmds, nil
}

func (w *World) resolveCommand(ctx context.Context, z *Zone, cr *CommandRecord, idx int) Command {
	c := Command{
		Op:        ParseOpcode(cr.Op),
		If:        cr.If,
		Line:      cr.Line,
		Mob:       NoMob,
		Obj:       NoObj,
		Container: NoObj,
		Room:      Nowhere,
		Max:       cr.Max,
		Percent:   100,
		Slot:      -1,
		Dir:       -1,
		State:     DoorState(cr.State),
		Target:    ParseTargetKind(cr.Target),
		Trigger:   cr.Trigger,
		Skip:      cr.Skip,
		Name:      cr.Name,
		Value:     cr.Value,
	}
	if c.Line == 0 {
		c.Line = idx + 1
	}
	if cr.Percent != nil {
		c.Percent = *cr.Percent
	}
	if cr.Slot != nil {
		c.Slot = WearSlot(*cr.Slot)
	}
	if cr.Dir != "" {
		c.Dir = ParseDirection(cr.Dir)
	}

	if c.Op == OpInvalid {
		c.Disabled = fmt.Sprintf("unknown opcode %q", cr.Op)
		slog.WarnContext(ctx, "zone command disabled",
			"zone", z.Number, "line", c.Line, "cmd", cr.Op, "reason", c.Disabled)
		return c
	}

	if err := w.resolveOperands(&c, cr); err != nil {
		z.DisableCommand(ctx, &c, err.Error())
	}
	return c
}

func (w *World) resolveOperands(c *Command, cr *CommandRecord) error {
	if c.If > MaxConditionalOffset || c.If < -MaxConditionalOffset {
		return fmt.Errorf("conditional offset %d out of range", c.If)
	}
	if c.Percent < 0 || c.Percent > 100 {
		return fmt.Errorf("percent %d out of range", c.Percent)
	}

	mob := func() error {
		if cr.Mob == nil {
			return fmt.Errorf("mobile operand missing")
		}
		if c.Mob = w.RealMobile(*cr.Mob); c.Mob == NoMob {
			return fmt.Errorf("invalid mobile vnum %d", *cr.Mob)
		}
		return nil
	}
	obj := func() error {
		if cr.Obj == nil {
			return fmt.Errorf("object operand missing")
		}
		if c.Obj = w.RealObject(*cr.Obj); c.Obj == NoObj {
			return fmt.Errorf("invalid object vnum %d", *cr.Obj)
		}
		return nil
	}
	room := func(optional bool) error {
		if cr.Room == nil {
			if optional {
				return nil
			}
			return fmt.Errorf("room operand missing")
		}
		if c.Room = w.RealRoom(*cr.Room); c.Room == Nowhere {
			return fmt.Errorf("invalid room vnum %d", *cr.Room)
		}
		return nil
	}

	switch c.Op {
	case OpSpawnMob:
		if err := mob(); err != nil {
			return err
		}
		return room(false)
	case OpSpawnObj:
		if err := obj(); err != nil {
			return err
		}
		return room(true)
	case OpObjIntoObj:
		if err := obj(); err != nil {
			return err
		}
		if cr.Container == nil {
			return fmt.Errorf("container operand missing")
		}
		if c.Container = w.RealObject(*cr.Container); c.Container == NoObj {
			return fmt.Errorf("invalid container vnum %d", *cr.Container)
		}
		if c.Max < 0 {
			return fmt.Errorf("per-room cap %d does not apply to %s", c.Max, c.Op)
		}
	case OpGiveToMob, OpEquipOnMob:
		if c.Max < 0 {
			return fmt.Errorf("per-room cap %d does not apply to %s", c.Max, c.Op)
		}
		return obj()
	case OpRemoveObj:
		if err := obj(); err != nil {
			return err
		}
		return room(false)
	case OpSetDoor:
		if !c.Dir.Valid() {
			return fmt.Errorf("invalid direction %q", cr.Dir)
		}
		if !c.State.Valid() {
			return fmt.Errorf("invalid door state %d", c.State)
		}
		return room(false)
	case OpAttachTrigger, OpSetVar:
		if c.Target == TargetNone {
			return fmt.Errorf("invalid target %q", cr.Target)
		}
		if c.Op == OpSetVar && c.Name == "" {
			return fmt.Errorf("variable name missing")
		}
		if c.Target == TargetRoom {
			return room(false)
		}
	case OpJump:
		if c.Skip <= 0 {
			return fmt.Errorf("jump distance %d must be positive", c.Skip)
		}
	}
	return nil
}
