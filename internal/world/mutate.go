package world

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
)

// AddRoom inserts a room, or overwrites the room with the same vnum while
// keeping whatever currently stands in it. Every reference at or past the
// insertion point is renumbered in the same call.
func (w *World) AddRoom(ctx context.Context, rr *RoomRecord) (RoomRnum, error) {
	if err := rr.Validate(); err != nil {
		return Nowhere, fmt.Errorf("room %d: %w", rr.Number, err)
	}
	zr := w.ZoneFor(rr.Number)
	if zr == NoZone {
		return Nowhere, fmt.Errorf("room %d: owning zone: %w", rr.Number, ErrNotFound)
	}

	i, found := w.Rooms.position(rr.Number)
	pos := RoomRnum(i)

	if found {
		old := w.Rooms.At(i)
		r := newRoom(rr, zr)
		r.Mobiles, r.Objects, r.Vars = old.Mobiles, old.Objects, old.Vars
		*old = *r
		w.setExits(ctx, old, rr.Exits)
		w.rebuildSpatial()
		slog.InfoContext(ctx, "room updated", "room", rr.Number, "rnum", pos)
		return pos, nil
	}

	r := newRoom(rr, zr)
	w.Rooms.insertAt(i, r)
	w.fixRoomRefs(pos, 1)
	w.setExits(ctx, r, rr.Exits)
	if r.Coords != nil {
		w.spatial[*r.Coords] = pos
	}

	slog.InfoContext(ctx, "room added", "room", rr.Number, "rnum", pos)
	return pos, nil
}

// DeleteRoom removes a room. Anything standing in it is moved to the void
// room, exits into it are dropped or lead nowhere, and zone commands that
// target it are disabled.
func (w *World) DeleteRoom(ctx context.Context, pos RoomRnum) error {
	victim := w.Room(pos)
	if victim == nil {
		return fmt.Errorf("room rnum %d: %w", pos, ErrNotFound)
	}
	if pos == w.Void {
		return ErrVoidRoom
	}

	mobs, objs := victim.Mobiles, victim.Objects
	victim.Mobiles, victim.Objects = nil, nil

	w.dropRoomRefs(ctx, pos)
	w.Rooms.removeAt(int(pos))
	w.fixRoomRefs(pos, -1)
	w.rebuildSpatial()

	for _, mi := range mobs {
		mi.Room = Nowhere
		if err := w.PlaceMobile(mi, w.Void); err != nil {
			return fmt.Errorf("moving mobile %s to the void: %w", mi.InstanceId, err)
		}
	}
	for _, oi := range objs {
		oi.Room = Nowhere
		if err := w.PlaceObject(oi, w.Void); err != nil {
			return fmt.Errorf("moving object %s to the void: %w", oi.InstanceId, err)
		}
	}

	slog.InfoContext(ctx, "room deleted", "room", victim.Number, "rnum", pos,
		"moved_mobiles", len(mobs), "moved_objects", len(objs))
	return nil
}

// AddMobile inserts a mobile template, or overwrites the template with the
// same vnum in place so live instances keep pointing at it.
func (w *World) AddMobile(ctx context.Context, t *MobTemplate) (MobRnum, error) {
	if err := t.Validate(); err != nil {
		return NoMob, fmt.Errorf("mobile %d: %w", t.Number, err)
	}

	i, found := w.Mobiles.position(t.Number)
	pos := MobRnum(i)
	if found {
		old := w.Mobiles.At(i)
		count := old.Count
		*old = *t
		old.Count = count
		slog.InfoContext(ctx, "mobile updated", "mob", t.Number, "rnum", pos)
		return pos, nil
	}

	t.Count = 0
	w.Mobiles.insertAt(i, t)
	w.fixMobRefs(pos, 1)

	slog.InfoContext(ctx, "mobile added", "mob", t.Number, "rnum", pos)
	return pos, nil
}

// DeleteMobile removes a mobile template and every live instance of it.
func (w *World) DeleteMobile(ctx context.Context, pos MobRnum) error {
	t := w.Mobile(pos)
	if t == nil {
		return fmt.Errorf("mobile rnum %d: %w", pos, ErrNotFound)
	}

	extracted := 0
	for _, r := range w.Rooms.Items() {
		for _, mi := range slices.Clone(r.Mobiles) {
			if mi.Proto == t {
				w.ExtractMobile(mi)
				extracted++
			}
		}
	}

	w.dropMobRefs(ctx, pos)
	w.Mobiles.removeAt(int(pos))
	w.fixMobRefs(pos, -1)

	slog.InfoContext(ctx, "mobile deleted", "mob", t.Number, "rnum", pos, "extracted", extracted)
	return nil
}

// AddObject inserts an object template, or overwrites the template with the
// same vnum in place so live instances keep pointing at it.
func (w *World) AddObject(ctx context.Context, t *ObjTemplate) (ObjRnum, error) {
	if err := t.Validate(); err != nil {
		return NoObj, fmt.Errorf("object %d: %w", t.Number, err)
	}

	i, found := w.Objects.position(t.Number)
	pos := ObjRnum(i)
	if found {
		old := w.Objects.At(i)
		count := old.Count
		*old = *t
		old.Count = count
		slog.InfoContext(ctx, "object updated", "obj", t.Number, "rnum", pos)
		return pos, nil
	}

	t.Count = 0
	w.Objects.insertAt(i, t)
	w.fixObjRefs(pos, 1)

	slog.InfoContext(ctx, "object added", "obj", t.Number, "rnum", pos)
	return pos, nil
}

// DeleteObject removes an object template and every live instance of it,
// wherever the instance is.
func (w *World) DeleteObject(ctx context.Context, pos ObjRnum) error {
	t := w.Object(pos)
	if t == nil {
		return fmt.Errorf("object rnum %d: %w", pos, ErrNotFound)
	}

	victims := w.instancesOf(t)
	for _, oi := range victims {
		w.ExtractObject(oi)
	}

	w.dropObjRefs(ctx, pos)
	w.Objects.removeAt(int(pos))
	w.fixObjRefs(pos, -1)

	slog.InfoContext(ctx, "object deleted", "obj", t.Number, "rnum", pos, "extracted", len(victims))
	return nil
}

// instancesOf collects the outermost instances of t. Instances nested inside
// another match go away with it.
func (w *World) instancesOf(t *ObjTemplate) []*ObjectInstance {
	var out []*ObjectInstance
	var walk func([]*ObjectInstance)
	walk = func(list []*ObjectInstance) {
		for _, oi := range list {
			if oi.Proto == t {
				out = append(out, oi)
				continue
			}
			walk(oi.Contents)
		}
	}

	for _, r := range w.Rooms.Items() {
		walk(r.Objects)
		for _, mi := range r.Mobiles {
			walk(mi.Inventory)
			for _, oi := range mi.Equipment {
				if oi != nil {
					walk([]*ObjectInstance{oi})
				}
			}
		}
	}
	walk(w.held)
	return out
}

// AddZone inserts a zone, or overwrites the zone with the same vnum while
// keeping its age and reset state. The command program is resolved against
// the current tables.
func (w *World) AddZone(ctx context.Context, zr *ZoneRecord) (ZoneRnum, error) {
	if err := zr.Validate(); err != nil {
		return NoZone, fmt.Errorf("zone %d: %w", zr.Number, err)
	}
	z, err := newZone(zr)
	if err != nil {
		return NoZone, err
	}

	i, found := w.Zones.position(zr.Number)
	pos := ZoneRnum(i)

	for j, other := range w.Zones.Items() {
		if found && j == i {
			continue
		}
		if z.Bot <= other.Top && other.Bot <= z.Top {
			return NoZone, fmt.Errorf("zone %d: %w (zone %d)", zr.Number, ErrZoneOverlap, other.Number)
		}
	}

	cmds, err := w.ResolveProgram(ctx, z, zr)
	if err != nil {
		return NoZone, err
	}
	z.Commands = cmds

	if found {
		old := w.Zones.At(i)
		for _, r := range w.Rooms.Items() {
			if r.Zone == pos && !z.Contains(r.Number) {
				return NoZone, fmt.Errorf("zone %d: room %d would be left without a zone: %w", zr.Number, r.Number, ErrZoneNotEmpty)
			}
		}
		z.Age, z.State, z.ResetStart = old.Age, old.State, old.ResetStart
		*old = *z
		slog.InfoContext(ctx, "zone updated", "zone", zr.Number, "rnum", pos)
		return pos, nil
	}

	w.Zones.insertAt(i, z)
	w.fixZoneRefs(pos, 1)

	slog.InfoContext(ctx, "zone added", "zone", zr.Number, "rnum", pos)
	return pos, nil
}

// DeleteZone removes a zone that no longer owns any rooms.
func (w *World) DeleteZone(ctx context.Context, pos ZoneRnum) error {
	z := w.Zone(pos)
	if z == nil {
		return fmt.Errorf("zone rnum %d: %w", pos, ErrNotFound)
	}
	for _, r := range w.Rooms.Items() {
		if r.Zone == pos {
			return fmt.Errorf("zone %d: %w", z.Number, ErrZoneNotEmpty)
		}
	}

	w.Zones.removeAt(int(pos))
	w.fixZoneRefs(pos, -1)

	slog.InfoContext(ctx, "zone deleted", "zone", z.Number, "rnum", pos)
	return nil
}

// AddShop inserts or replaces a shop. Nothing holds shop rnums, so no
// renumbering is needed.
func (w *World) AddShop(ctx context.Context, sr *ShopRecord) (ShopRnum, error) {
	if err := sr.Validate(); err != nil {
		return NoShop, fmt.Errorf("shop %d: %w", sr.Number, err)
	}

	s := w.newShop(sr)
	i, found := w.Shops.position(sr.Number)
	if found {
		w.Shops.set(i, s)
	} else {
		w.Shops.insertAt(i, s)
	}

	slog.InfoContext(ctx, "shop saved", "shop", sr.Number, "rnum", i)
	return ShopRnum(i), nil
}

// DeleteShop removes a shop.
func (w *World) DeleteShop(ctx context.Context, pos ShopRnum) error {
	s := w.Shop(pos)
	if s == nil {
		return fmt.Errorf("shop rnum %d: %w", pos, ErrNotFound)
	}
	w.Shops.removeAt(int(pos))
	slog.InfoContext(ctx, "shop deleted", "shop", s.Number, "rnum", pos)
	return nil
}
