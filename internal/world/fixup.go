package world

import (
	"context"
	"fmt"
	"slices"
)

// renumber moves one reference after the entry at pos was inserted (delta
// +1) or removed (delta -1). Sentinels are left alone, and so is a reference
// to the removed entry itself; redirecting those is up to the caller.
func renumber[T ~int](r, pos T, delta int) T {
	switch {
	case r < 0:
		return r
	case delta > 0 && r >= pos:
		return r + 1
	case delta < 0 && r > pos:
		return r - 1
	}
	return r
}

// fixRoomRefs renumbers everything that holds a room rnum after the room
// table changed at pos.
func (w *World) fixRoomRefs(pos RoomRnum, delta int) {
	for _, r := range w.Rooms.Items() {
		for _, e := range r.Exits {
			if e != nil {
				e.ToRoom = renumber(e.ToRoom, pos, delta)
			}
		}
	}

	for _, z := range w.Zones.Items() {
		for i := range z.Commands {
			z.Commands[i].Room = renumber(z.Commands[i].Room, pos, delta)
		}
	}

	for _, s := range w.Shops.Items() {
		for i := range s.Rooms {
			s.Rooms[i] = renumber(s.Rooms[i], pos, delta)
		}
	}

	w.Start.Mortal = renumber(w.Start.Mortal, pos, delta)
	w.Start.Immortal = renumber(w.Start.Immortal, pos, delta)
	w.Start.Frozen = renumber(w.Start.Frozen, pos, delta)
	w.Void = renumber(w.Void, pos, delta)

	for c, r := range w.spatial {
		w.spatial[c] = renumber(r, pos, delta)
	}

	// Occupants record the rnum of the room they stand in.
	for i := max(int(pos), 0); i < w.Rooms.Len(); i++ {
		r := w.Rooms.At(i)
		for _, mi := range r.Mobiles {
			mi.Room = RoomRnum(i)
		}
		for _, oi := range r.Objects {
			oi.Room = RoomRnum(i)
		}
	}
}

// dropRoomRefs redirects everything that points at the room about to be
// removed. Exits with nothing to look at are dropped, the rest lead nowhere.
// Commands targeting the room are disabled.
func (w *World) dropRoomRefs(ctx context.Context, pos RoomRnum) {
	for _, r := range w.Rooms.Items() {
		for d, e := range r.Exits {
			if e == nil || e.ToRoom != pos {
				continue
			}
			if e.Visible() {
				e.ToRoom = Nowhere
			} else {
				r.Exits[d] = nil
			}
		}
	}

	vnum := w.Room(pos).Number
	for _, z := range w.Zones.Items() {
		for i := range z.Commands {
			c := &z.Commands[i]
			if c.Room != pos {
				continue
			}
			if c.Active() {
				z.DisableCommand(ctx, c, fmt.Sprintf("room %d was deleted", vnum))
			}
			c.Room = Nowhere
		}
	}

	for _, s := range w.Shops.Items() {
		s.Rooms = slices.DeleteFunc(s.Rooms, func(r RoomRnum) bool { return r == pos })
	}

	for _, start := range []*RoomRnum{&w.Start.Mortal, &w.Start.Immortal, &w.Start.Frozen} {
		if *start == pos {
			*start = w.Void
		}
	}
}

// fixMobRefs renumbers everything that holds a mobile template rnum.
func (w *World) fixMobRefs(pos MobRnum, delta int) {
	for _, z := range w.Zones.Items() {
		for i := range z.Commands {
			z.Commands[i].Mob = renumber(z.Commands[i].Mob, pos, delta)
		}
	}
	for _, s := range w.Shops.Items() {
		s.Keeper = renumber(s.Keeper, pos, delta)
	}
}

func (w *World) dropMobRefs(ctx context.Context, pos MobRnum) {
	vnum := w.Mobile(pos).Number
	for _, z := range w.Zones.Items() {
		for i := range z.Commands {
			c := &z.Commands[i]
			if c.Mob != pos {
				continue
			}
			if c.Active() {
				z.DisableCommand(ctx, c, fmt.Sprintf("mobile %d was deleted", vnum))
			}
			c.Mob = NoMob
		}
	}
	for _, s := range w.Shops.Items() {
		if s.Keeper == pos {
			s.Keeper = NoMob
		}
	}
}

// fixObjRefs renumbers everything that holds an object template rnum.
func (w *World) fixObjRefs(pos ObjRnum, delta int) {
	for _, z := range w.Zones.Items() {
		for i := range z.Commands {
			c := &z.Commands[i]
			c.Obj = renumber(c.Obj, pos, delta)
			c.Container = renumber(c.Container, pos, delta)
		}
	}
	for _, s := range w.Shops.Items() {
		for i := range s.Products {
			s.Products[i] = renumber(s.Products[i], pos, delta)
		}
	}
}

func (w *World) dropObjRefs(ctx context.Context, pos ObjRnum) {
	vnum := w.Object(pos).Number
	for _, z := range w.Zones.Items() {
		for i := range z.Commands {
			c := &z.Commands[i]
			if c.Obj != pos && c.Container != pos {
				continue
			}
			if c.Active() {
				z.DisableCommand(ctx, c, fmt.Sprintf("object %d was deleted", vnum))
			}
			if c.Obj == pos {
				c.Obj = NoObj
			}
			if c.Container == pos {
				c.Container = NoObj
			}
		}
	}
	for _, s := range w.Shops.Items() {
		s.Products = slices.DeleteFunc(s.Products, func(o ObjRnum) bool { return o == pos })
	}
}

// fixZoneRefs renumbers the owning zone of every room.
func (w *World) fixZoneRefs(pos ZoneRnum, delta int) {
	for _, r := range w.Rooms.Items() {
		r.Zone = renumber(r.Zone, pos, delta)
	}
}
