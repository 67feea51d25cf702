package world

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
)

// StartRecord names the start rooms by vnum.
type StartRecord struct {
	Mortal   Vnum `json:"mortal"`
	Immortal Vnum `json:"immortal"`
	Frozen   Vnum `json:"frozen"`
}

// Records is everything the loader hands over at boot.
type Records struct {
	Zones   []*ZoneRecord
	Rooms   []*RoomRecord
	Mobiles []*MobTemplate
	Objects []*ObjTemplate
	Shops   []*ShopRecord

	Start StartRecord
	Void  Vnum
}

// Boot builds the world from parsed records. Structural problems (no zones,
// no rooms, duplicate vnums, rooms outside every zone, a missing start or
// void room) are fatal. Bad references inside records are logged and
// neutralised instead.
func Boot(ctx context.Context, recs Records, opts ...WorldOpt) (*World, error) {
	if len(recs.Zones) == 0 {
		return nil, fmt.Errorf("%w: no zones", ErrLoadFormat)
	}
	if len(recs.Rooms) == 0 {
		return nil, fmt.Errorf("%w: no rooms", ErrLoadFormat)
	}

	w := newWorld(opts...)

	if err := w.bootZones(recs.Zones); err != nil {
		return nil, err
	}
	if err := w.bootRooms(recs.Rooms); err != nil {
		return nil, err
	}
	if v, ok := w.Mobiles.load(slices.Clone(recs.Mobiles)); !ok {
		return nil, fmt.Errorf("%w: duplicate mobile %d", ErrLoadFormat, v)
	}
	if v, ok := w.Objects.load(slices.Clone(recs.Objects)); !ok {
		return nil, fmt.Errorf("%w: duplicate object %d", ErrLoadFormat, v)
	}

	for _, rr := range recs.Rooms {
		w.setExits(ctx, w.Room(w.RealRoom(rr.Number)), rr.Exits)
	}

	shops := make([]*Shop, 0, len(recs.Shops))
	for _, sr := range recs.Shops {
		shops = append(shops, w.newShop(sr))
	}
	if v, ok := w.Shops.load(shops); !ok {
		return nil, fmt.Errorf("%w: duplicate shop %d", ErrLoadFormat, v)
	}

	if err := w.bootStartRooms(ctx, recs.Start, recs.Void); err != nil {
		return nil, err
	}

	for _, zr := range recs.Zones {
		z := w.Zone(w.RealZone(zr.Number))
		cmds, err := w.ResolveProgram(ctx, z, zr)
		if err != nil {
			return nil, err
		}
		z.Commands = cmds
	}

	w.rebuildSpatial()

	slog.InfoContext(ctx, "world loaded",
		"zones", w.Zones.Len(), "rooms", w.Rooms.Len(),
		"mobiles", w.Mobiles.Len(), "objects", w.Objects.Len(), "shops", w.Shops.Len())

	return w, nil
}

func (w *World) bootZones(recs []*ZoneRecord) error {
	zones := make([]*Zone, 0, len(recs))
	for _, zr := range recs {
		z, err := newZone(zr)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrLoadFormat, err)
		}
		zones = append(zones, z)
	}
	if v, ok := w.Zones.load(zones); !ok {
		return fmt.Errorf("%w: duplicate zone %d", ErrLoadFormat, v)
	}

	byBot := slices.Clone(w.Zones.Items())
	slices.SortFunc(byBot, func(a, b *Zone) int { return int(a.Bot - b.Bot) })
	for i := 1; i < len(byBot); i++ {
		if byBot[i].Bot <= byBot[i-1].Top {
			return fmt.Errorf("%w: zone %d: %w (zone %d)", ErrLoadFormat, byBot[i].Number, ErrZoneOverlap, byBot[i-1].Number)
		}
	}
	return nil
}

func (w *World) bootRooms(recs []*RoomRecord) error {
	rooms := make([]*Room, 0, len(recs))
	for _, rr := range recs {
		zr := w.ZoneFor(rr.Number)
		if zr == NoZone {
			return fmt.Errorf("%w: room %d belongs to no zone", ErrLoadFormat, rr.Number)
		}
		rooms = append(rooms, newRoom(rr, zr))
	}
	if v, ok := w.Rooms.load(rooms); !ok {
		return fmt.Errorf("%w: duplicate room %d", ErrLoadFormat, v)
	}
	return nil
}

func (w *World) bootStartRooms(ctx context.Context, start StartRecord, void Vnum) error {
	if w.Void = w.RealRoom(void); w.Void == Nowhere {
		return fmt.Errorf("%w: void room %d does not exist", ErrLoadFormat, void)
	}
	if w.Start.Mortal = w.RealRoom(start.Mortal); w.Start.Mortal == Nowhere {
		return fmt.Errorf("%w: mortal start room %d does not exist", ErrLoadFormat, start.Mortal)
	}
	if w.Start.Immortal = w.RealRoom(start.Immortal); w.Start.Immortal == Nowhere {
		slog.WarnContext(ctx, "immortal start room does not exist, using mortal start room", "room", start.Immortal)
		w.Start.Immortal = w.Start.Mortal
	}
	if w.Start.Frozen = w.RealRoom(start.Frozen); w.Start.Frozen == Nowhere {
		slog.WarnContext(ctx, "frozen start room does not exist, using mortal start room", "room", start.Frozen)
		w.Start.Frozen = w.Start.Mortal
	}
	return nil
}

// setExits replaces a room's exits from their records, resolving the
// destinations against the current table.
func (w *World) setExits(ctx context.Context, r *Room, recs []ExitRecord) {
	r.Exits = [NumDirections]*Exit{}
	for _, er := range recs {
		d := ParseDirection(er.Direction)
		if !d.Valid() {
			slog.WarnContext(ctx, "skipping exit with invalid direction", "room", r.Number, "dir", er.Direction)
			continue
		}
		e := &Exit{
			Keyword:     er.Keyword,
			Description: er.Description,
			ToRoom:      w.RealRoom(er.ToRoom),
			Flags:       er.flags(),
			Key:         NoVnum,
		}
		if er.Key != nil {
			e.Key = *er.Key
		}
		if e.ToRoom == Nowhere && er.ToRoom != NoVnum {
			slog.WarnContext(ctx, "exit leads to a room that does not exist", "room", r.Number, "dir", d.String(), "to", er.ToRoom)
		}
		r.Exits[d] = e
	}
}
