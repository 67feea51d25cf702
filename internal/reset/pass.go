package reset

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/pixil98/go-worldcore/internal/storage"
	"github.com/pixil98/go-worldcore/internal/world"
)

// pass is the state of one run of a zone program. Nothing in it outlives
// the run.
type pass struct {
	*Interpreter

	zone    *world.Zone
	zr      world.ZoneRnum
	results ResultQueue
	jump    int

	lastMob  *world.MobileInstance
	lastObj  *world.ObjectInstance
	lastRoom world.RoomRnum

	// Objects spawned at nowhere wait here until a later command claims them.
	pending []*world.ObjectInstance
	claimed map[*world.ObjectInstance]bool

	executed, mobiles, objects, chests, released, disabled int
}

func (p *pass) run(ctx context.Context) {
	for i := 0; i < len(p.zone.Commands); i++ {
		c := &p.zone.Commands[i]
		if c.Op == world.OpStop {
			break
		}

		if p.jump > 0 {
			p.jump--
			p.results.Push(false)
			continue
		}
		if !p.results.Test(c.If) {
			p.results.Push(false)
			continue
		}

		p.executed++
		p.results.Push(p.exec(ctx, i, c))
	}
}

func (p *pass) exec(ctx context.Context, i int, c *world.Command) bool {
	switch c.Op {
	case world.OpSpawnMob:
		return p.spawnMob(ctx, c)
	case world.OpSpawnObj:
		return p.spawnObj(ctx, i, c)
	case world.OpObjIntoObj:
		return p.objIntoObj(ctx, i, c)
	case world.OpGiveToMob:
		return p.giveToMob(ctx, i, c)
	case world.OpEquipOnMob:
		return p.equipOnMob(ctx, i, c)
	case world.OpRemoveObj:
		return p.removeObj(ctx, c)
	case world.OpSetDoor:
		return p.setDoor(ctx, c)
	case world.OpAttachTrigger, world.OpSetVar:
		return p.script(ctx, i, c)
	case world.OpTreasureMob:
		return p.treasureMob(ctx, i, c)
	case world.OpTreasureContainer:
		return p.treasureContainer(ctx, i, c)
	case world.OpJump:
		if !p.roll(c.Percent) {
			return false
		}
		p.jump = c.Skip
		return true
	default:
		return false
	}
}

func (p *pass) disable(ctx context.Context, c *world.Command, format string, args ...any) {
	p.zone.DisableCommand(ctx, c, fmt.Sprintf(format, args...))
	p.disabled++
}

func (p *pass) roll(percent int) bool {
	return percent >= 100 || p.roller.Percent() <= percent
}

// missing handles a command whose dependent entity is not there. A gated
// command, or one that follows a command meant to supply the entity, simply
// fails this pass. Anything else can never succeed and is disabled.
func (p *pass) missing(ctx context.Context, i int, c *world.Command, what string, binders ...world.Opcode) bool {
	if c.If != 0 || p.precededBy(i, binders...) {
		slog.DebugContext(ctx, "zone command target missing", "zone", p.zone.Number, "line", c.Line, "target", what)
		return false
	}
	p.disable(ctx, c, "%s: %v", what, world.ErrTargetNotFound)
	return false
}

func (p *pass) precededBy(i int, ops ...world.Opcode) bool {
	for j := i - 1; j >= 0; j-- {
		if slices.Contains(ops, p.zone.Commands[j].Op) {
			return true
		}
	}
	return false
}

// claimedLater reports whether an object spawned by command i would be
// picked up by a script command before anything rebinds the last object.
func (p *pass) claimedLater(i int) bool {
	for _, c := range p.zone.Commands[i+1:] {
		switch c.Op {
		case world.OpStop, world.OpSpawnObj, world.OpObjIntoObj, world.OpGiveToMob,
			world.OpEquipOnMob, world.OpTreasureContainer:
			return false
		case world.OpAttachTrigger, world.OpSetVar:
			if c.Target == world.TargetObj {
				return true
			}
		}
	}
	return false
}

func (p *pass) underObjCap(c *world.Command, t *world.ObjTemplate, room world.RoomRnum) bool {
	switch {
	case c.Max > 0:
		return t.Count < c.Max
	case c.Max < 0:
		return p.world.ObjectsInRoom(room, t) < -c.Max
	}
	return true
}

func (p *pass) spawnMob(ctx context.Context, c *world.Command) bool {
	p.lastMob = nil

	t := p.world.Mobile(c.Mob)
	if t == nil {
		p.disable(ctx, c, "mobile rnum %d: %v", c.Mob, world.ErrNotFound)
		return false
	}
	// Later commands act in this room even when the spawn is gated out.
	p.lastRoom = c.Room

	switch {
	case c.Max > 0 && t.Count >= c.Max:
		return false
	case c.Max < 0 && p.world.MobilesInRoom(c.Room, t) >= -c.Max:
		return false
	}
	if !p.roll(c.Percent) {
		return false
	}

	mi, err := p.world.SpawnMobile(c.Mob)
	if err != nil {
		slog.WarnContext(ctx, "mobile spawn skipped", "zone", p.zone.Number, "line", c.Line, "error", err)
		return false
	}
	if err := p.world.PlaceMobile(mi, c.Room); err != nil {
		p.world.ExtractMobile(mi)
		p.disable(ctx, c, "placing mobile: %v", err)
		return false
	}

	p.lastMob = mi
	p.mobiles++
	return true
}

func (p *pass) spawnObj(ctx context.Context, i int, c *world.Command) bool {
	t := p.world.Object(c.Obj)
	if t == nil {
		p.disable(ctx, c, "object rnum %d: %v", c.Obj, world.ErrNotFound)
		return false
	}
	if c.Room != world.Nowhere {
		p.lastRoom = c.Room
	}
	if !p.underObjCap(c, t, c.Room) || !p.roll(c.Percent) {
		return false
	}

	if c.Room == world.Nowhere && !p.claimedLater(i) {
		slog.DebugContext(ctx, "object spawn suppressed", "zone", p.zone.Number, "line", c.Line,
			"obj", t.Number, "reason", "nothing claims it")
		return false
	}

	oi, err := p.world.SpawnObject(c.Obj)
	if err != nil {
		slog.WarnContext(ctx, "object spawn skipped", "zone", p.zone.Number, "line", c.Line, "error", err)
		return false
	}

	if c.Room == world.Nowhere {
		p.world.HoldObject(oi)
		p.pending = append(p.pending, oi)
	} else {
		if err := p.world.PlaceObject(oi, c.Room); err != nil {
			p.world.ExtractObject(oi)
			p.disable(ctx, c, "placing object: %v", err)
			return false
		}
	}

	p.lastObj = oi
	p.objects++
	return true
}

func (p *pass) objIntoObj(ctx context.Context, i int, c *world.Command) bool {
	t := p.world.Object(c.Obj)
	ct := p.world.Object(c.Container)
	if t == nil || ct == nil {
		p.disable(ctx, c, "object operand: %v", world.ErrNotFound)
		return false
	}
	if !p.underObjCap(c, t, world.Nowhere) || !p.roll(c.Percent) {
		return false
	}

	container := p.lastObj
	if container == nil || container.Proto != ct {
		container = p.world.FindObject(p.lastRoom, ct)
	}
	if container == nil {
		return p.missing(ctx, i, c, fmt.Sprintf("container %d", ct.Number),
			world.OpSpawnObj, world.OpObjIntoObj)
	}

	oi, err := p.world.SpawnObject(c.Obj)
	if err != nil {
		slog.WarnContext(ctx, "object spawn skipped", "zone", p.zone.Number, "line", c.Line, "error", err)
		return false
	}
	if err := p.world.PutInContainer(oi, container); err != nil {
		p.world.ExtractObject(oi)
		p.disable(ctx, c, "%v", err)
		return false
	}

	p.lastObj = oi
	p.objects++
	return true
}

// mobObject spawns the object of a give or equip command once its gates pass.
func (p *pass) mobObject(ctx context.Context, i int, c *world.Command) (*world.ObjectInstance, bool) {
	t := p.world.Object(c.Obj)
	if t == nil {
		p.disable(ctx, c, "object rnum %d: %v", c.Obj, world.ErrNotFound)
		return nil, false
	}
	if p.lastMob == nil {
		return nil, p.missing(ctx, i, c, "no mobile to hand the object to", world.OpSpawnMob)
	}
	if !p.underObjCap(c, t, world.Nowhere) || !p.roll(c.Percent) {
		return nil, false
	}

	oi, err := p.world.SpawnObject(c.Obj)
	if err != nil {
		slog.WarnContext(ctx, "object spawn skipped", "zone", p.zone.Number, "line", c.Line, "error", err)
		return nil, false
	}
	p.objects++
	return oi, true
}

func (p *pass) giveToMob(ctx context.Context, i int, c *world.Command) bool {
	oi, ok := p.mobObject(ctx, i, c)
	if !ok {
		return false
	}
	p.world.GiveToMobile(oi, p.lastMob)
	p.lastObj = oi
	return true
}

func (p *pass) equipOnMob(ctx context.Context, i int, c *world.Command) bool {
	if !c.Slot.Valid() {
		p.disable(ctx, c, "invalid wear slot %d", c.Slot)
		return false
	}

	oi, ok := p.mobObject(ctx, i, c)
	if !ok {
		return false
	}
	p.lastObj = oi

	mi := p.lastMob
	reason := ""
	switch {
	case !oi.Proto.CanWear(c.Slot):
		reason = "object cannot be worn there"
	case mi.Equipment[c.Slot] != nil:
		reason = "slot already in use"
	case !p.triggers.WearAllowed(ctx, mi, oi, c.Slot):
		reason = "vetoed"
	}
	if reason == "" {
		err := p.world.EquipMobile(oi, mi, c.Slot)
		if err == nil {
			return true
		}
		reason = err.Error()
	}

	slog.DebugContext(ctx, "equip fell back to inventory", "zone", p.zone.Number, "line", c.Line,
		"obj", oi.Proto.Number, "slot", c.Slot.String(), "reason", reason)
	p.world.GiveToMobile(oi, mi)
	return true
}

func (p *pass) removeObj(ctx context.Context, c *world.Command) bool {
	room := p.world.Room(c.Room)
	t := p.world.Object(c.Obj)
	if room == nil || t == nil {
		p.disable(ctx, c, "remove operand: %v", world.ErrNotFound)
		return false
	}
	p.lastRoom = c.Room

	for _, oi := range room.Objects {
		if oi.Proto == t {
			p.world.ExtractObject(oi)
			return true
		}
	}
	return false
}

func (p *pass) setDoor(ctx context.Context, c *world.Command) bool {
	room := p.world.Room(c.Room)
	if room == nil {
		p.disable(ctx, c, "room rnum %d: %v", c.Room, world.ErrNotFound)
		return false
	}
	e := room.Exit(c.Dir)
	if e == nil {
		p.disable(ctx, c, "room %d has no exit %s", room.Number, c.Dir)
		return false
	}

	e.Flags = c.State.Apply(e.Flags)
	p.lastRoom = c.Room
	return true
}

func (p *pass) script(ctx context.Context, i int, c *world.Command) bool {
	t := Target{Kind: c.Target, Zone: p.zone.Number}
	var vars *storage.Vars

	switch c.Target {
	case world.TargetMob:
		if p.lastMob == nil {
			return p.missing(ctx, i, c, "no mobile to script", world.OpSpawnMob)
		}
		t.Mobile = p.lastMob
		vars = &p.lastMob.Vars
	case world.TargetObj:
		if p.lastObj == nil {
			return p.missing(ctx, i, c, "no object to script",
				world.OpSpawnObj, world.OpObjIntoObj, world.OpGiveToMob, world.OpEquipOnMob)
		}
		t.Object = p.lastObj
		vars = &p.lastObj.Vars
	case world.TargetRoom:
		if t.Room = p.world.Room(c.Room); t.Room == nil {
			p.disable(ctx, c, "room rnum %d: %v", c.Room, world.ErrNotFound)
			return false
		}
		vars = &t.Room.Vars
		p.lastRoom = c.Room
	default:
		p.disable(ctx, c, "invalid target %s", c.Target)
		return false
	}

	var err error
	if c.Op == world.OpAttachTrigger {
		err = p.triggers.Attach(ctx, t, c.Trigger)
	} else {
		if err = vars.Set(c.Name, c.Value); err == nil {
			err = p.triggers.SetVariable(ctx, t, c.Name, c.Value)
		}
	}
	if err != nil {
		slog.WarnContext(ctx, "trigger hand-off failed", "zone", p.zone.Number, "line", c.Line,
			"cmd", c.Op.String(), "error", err)
		return false
	}

	if t.Object != nil {
		p.claimed[t.Object] = true
	}
	return true
}

func (p *pass) treasureMob(ctx context.Context, i int, c *world.Command) bool {
	if p.lastMob == nil {
		return p.missing(ctx, i, c, "no mobile to carry treasure", world.OpSpawnMob)
	}
	if !p.roll(c.Percent) {
		return false
	}
	oi := p.spawnTreasure(ctx)
	if oi == nil {
		return false
	}
	p.world.GiveToMobile(oi, p.lastMob)
	return true
}

func (p *pass) treasureContainer(ctx context.Context, i int, c *world.Command) bool {
	if p.lastObj == nil || p.lastObj.Proto.Type() != world.ObjectTypeContainer {
		return p.missing(ctx, i, c, "no container for treasure", world.OpSpawnObj, world.OpObjIntoObj)
	}
	if !p.roll(c.Percent) {
		return false
	}
	oi := p.spawnTreasure(ctx)
	if oi == nil {
		return false
	}
	if err := p.world.PutInContainer(oi, p.lastObj); err != nil {
		p.world.ExtractObject(oi)
		return false
	}
	return true
}

func (p *pass) spawnTreasure(ctx context.Context) *world.ObjectInstance {
	v := p.tuning.pick(p.roller)
	if v == world.NoVnum {
		return nil
	}
	r := p.world.RealObject(v)
	if r == world.NoObj {
		slog.WarnContext(ctx, "treasure object does not exist", "zone", p.zone.Number, "obj", v)
		return nil
	}
	oi, err := p.world.SpawnObject(r)
	if err != nil {
		slog.WarnContext(ctx, "treasure spawn skipped", "zone", p.zone.Number, "error", err)
		return nil
	}
	p.objects++
	return oi
}
