package world

// StartRooms caches the rooms characters enter the game in.
type StartRooms struct {
	Mortal   RoomRnum
	Immortal RoomRnum
	Frozen   RoomRnum
}

// World owns every entity table. It is built once at boot and afterwards
// changed only through its Add*/Delete* methods. It does no locking: all
// calls must come from the single game loop.
type World struct {
	Rooms   *Table[*Room]
	Mobiles *Table[*MobTemplate]
	Objects *Table[*ObjTemplate]
	Zones   *Table[*Zone]
	Shops   *Table[*Shop]

	Start StartRooms
	Void  RoomRnum

	spatial map[Coord]RoomRnum
	held    []*ObjectInstance

	instanceLimit int
	live          int
}

type WorldOpt func(*World)

// WithInstanceLimit caps the number of live mobile and object instances.
func WithInstanceLimit(n int) WorldOpt {
	return func(w *World) {
		w.instanceLimit = n
	}
}

func newWorld(opts ...WorldOpt) *World {
	w := &World{
		Rooms:   NewTable[*Room](0),
		Mobiles: NewTable[*MobTemplate](0),
		Objects: NewTable[*ObjTemplate](0),
		Zones:   NewTable[*Zone](0),
		Shops:   NewTable[*Shop](0),
		Start:   StartRooms{Mortal: Nowhere, Immortal: Nowhere, Frozen: Nowhere},
		Void:    Nowhere,
		spatial: map[Coord]RoomRnum{},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *World) RealRoom(v Vnum) RoomRnum      { return RoomRnum(w.Rooms.Resolve(v)) }
func (w *World) RealMobile(v Vnum) MobRnum     { return MobRnum(w.Mobiles.Resolve(v)) }
func (w *World) RealObject(v Vnum) ObjRnum     { return ObjRnum(w.Objects.Resolve(v)) }
func (w *World) RealZone(v Vnum) ZoneRnum      { return ZoneRnum(w.Zones.Resolve(v)) }
func (w *World) RealShop(v Vnum) ShopRnum      { return ShopRnum(w.Shops.Resolve(v)) }
func (w *World) Room(r RoomRnum) *Room         { return w.Rooms.At(int(r)) }
func (w *World) Mobile(r MobRnum) *MobTemplate { return w.Mobiles.At(int(r)) }
func (w *World) Object(r ObjRnum) *ObjTemplate { return w.Objects.At(int(r)) }
func (w *World) Zone(r ZoneRnum) *Zone         { return w.Zones.At(int(r)) }
func (w *World) Shop(r ShopRnum) *Shop         { return w.Shops.At(int(r)) }

// ZoneRooms returns the rnums of every room the zone owns, in vnum order.
func (w *World) ZoneRooms(zr ZoneRnum) []RoomRnum {
	z := w.Zone(zr)
	if z == nil {
		return nil
	}

	var out []RoomRnum
	for i := w.Rooms.lowerBound(z.Bot); i < w.Rooms.Len(); i++ {
		r := w.Rooms.At(i)
		if r.Number > z.Top {
			break
		}
		if r.Zone == zr {
			out = append(out, RoomRnum(i))
		}
	}
	return out
}

// ZoneFor returns the zone whose range covers v.
func (w *World) ZoneFor(v Vnum) ZoneRnum {
	for i, z := range w.Zones.Items() {
		if z.Contains(v) {
			return ZoneRnum(i)
		}
	}
	return NoZone
}

// RoomAt returns the room placed at c on the open-world map.
func (w *World) RoomAt(c Coord) RoomRnum {
	if r, ok := w.spatial[c]; ok {
		return r
	}
	return Nowhere
}

// Held returns objects kept at nowhere for scripts.
func (w *World) Held() []*ObjectInstance {
	return w.held
}

// Live returns the number of live mobile and object instances.
func (w *World) Live() int {
	return w.live
}

func (w *World) rebuildSpatial() {
	w.spatial = make(map[Coord]RoomRnum, len(w.spatial))
	for i, r := range w.Rooms.Items() {
		if r.Coords != nil {
			w.spatial[*r.Coords] = RoomRnum(i)
		}
	}
}
