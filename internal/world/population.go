package world

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// SpawnMobile creates a live instance of the template at m. The instance is
// not placed anywhere yet.
func (w *World) SpawnMobile(m MobRnum) (*MobileInstance, error) {
	t := w.Mobile(m)
	if t == nil {
		return nil, fmt.Errorf("mobile rnum %d: %w", m, ErrNotFound)
	}
	if w.instanceLimit > 0 && w.live >= w.instanceLimit {
		return nil, fmt.Errorf("spawning mobile %d: %w", t.Number, ErrCapacity)
	}

	t.Count++
	w.live++
	return &MobileInstance{
		InstanceId: uuid.New().String(),
		Proto:      t,
		Room:       Nowhere,
	}, nil
}

// SpawnObject creates a live instance of the template at o. The instance is
// not placed anywhere yet.
func (w *World) SpawnObject(o ObjRnum) (*ObjectInstance, error) {
	t := w.Object(o)
	if t == nil {
		return nil, fmt.Errorf("object rnum %d: %w", o, ErrNotFound)
	}
	if w.instanceLimit > 0 && w.live >= w.instanceLimit {
		return nil, fmt.Errorf("spawning object %d: %w", t.Number, ErrCapacity)
	}

	t.Count++
	w.live++
	return &ObjectInstance{
		InstanceId: uuid.New().String(),
		Proto:      t,
		Room:       Nowhere,
		WornOn:     -1,
	}, nil
}

// PlaceMobile moves a mobile into room r. Mobiles placed in an open-world
// zone take the room's map coordinates.
func (w *World) PlaceMobile(mi *MobileInstance, r RoomRnum) error {
	room := w.Room(r)
	if room == nil {
		return fmt.Errorf("room rnum %d: %w", r, ErrNotFound)
	}

	if old := w.Room(mi.Room); old != nil {
		old.Mobiles = remove(old.Mobiles, mi)
	}
	room.Mobiles = append(room.Mobiles, mi)
	mi.Room = r

	mi.Coords = nil
	if z := w.Zone(room.Zone); z != nil && z.Flags&ZoneWilderness != 0 && room.Coords != nil {
		c := *room.Coords
		mi.Coords = &c
	}
	return nil
}

// PlaceObject moves an object onto the floor of room r.
func (w *World) PlaceObject(oi *ObjectInstance, r RoomRnum) error {
	room := w.Room(r)
	if room == nil {
		return fmt.Errorf("room rnum %d: %w", r, ErrNotFound)
	}
	w.detachObject(oi)
	room.Objects = append(room.Objects, oi)
	oi.Room = r
	return nil
}

// PutInContainer moves an object into another object.
func (w *World) PutInContainer(oi, container *ObjectInstance) error {
	for c := container; c != nil; c = c.In {
		if c == oi {
			return fmt.Errorf("object %s cannot contain itself", oi.InstanceId)
		}
	}
	w.detachObject(oi)
	container.Contents = append(container.Contents, oi)
	oi.In = container
	return nil
}

// GiveToMobile moves an object into a mobile's inventory.
func (w *World) GiveToMobile(oi *ObjectInstance, mi *MobileInstance) {
	w.detachObject(oi)
	mi.Inventory = append(mi.Inventory, oi)
	oi.CarriedBy = mi
}

// EquipMobile puts an object on one of a mobile's wear slots.
func (w *World) EquipMobile(oi *ObjectInstance, mi *MobileInstance, slot WearSlot) error {
	if !slot.Valid() {
		return fmt.Errorf("invalid wear slot %d", slot)
	}
	if mi.Equipment[slot] != nil {
		return fmt.Errorf("wear slot %s: %w", slot, ErrCapacity)
	}
	w.detachObject(oi)
	mi.Equipment[slot] = oi
	oi.WornBy = mi
	oi.WornOn = slot
	return nil
}

// HoldObject keeps an object at nowhere so scripts can pick it up later.
func (w *World) HoldObject(oi *ObjectInstance) {
	w.detachObject(oi)
	w.held = append(w.held, oi)
}

// ExtractObject removes an object and everything inside it from the world.
func (w *World) ExtractObject(oi *ObjectInstance) {
	w.detachObject(oi)
	for _, c := range slices.Clone(oi.Contents) {
		w.ExtractObject(c)
	}
	oi.Proto.Count--
	w.live--
}

// ExtractMobile removes a mobile and everything it carries from the world.
func (w *World) ExtractMobile(mi *MobileInstance) {
	for _, oi := range slices.Clone(mi.Inventory) {
		w.ExtractObject(oi)
	}
	for _, oi := range mi.Equipment {
		if oi != nil {
			w.ExtractObject(oi)
		}
	}
	if room := w.Room(mi.Room); room != nil {
		room.Mobiles = remove(room.Mobiles, mi)
	}
	mi.Room = Nowhere
	mi.Proto.Count--
	w.live--
}

// MobilesInRoom counts instances of t standing in room r.
func (w *World) MobilesInRoom(r RoomRnum, t *MobTemplate) int {
	room := w.Room(r)
	if room == nil {
		return 0
	}
	n := 0
	for _, mi := range room.Mobiles {
		if mi.Proto == t {
			n++
		}
	}
	return n
}

// ObjectsInRoom counts instances of t lying on the floor of room r.
func (w *World) ObjectsInRoom(r RoomRnum, t *ObjTemplate) int {
	room := w.Room(r)
	if room == nil {
		return 0
	}
	n := 0
	for _, oi := range room.Objects {
		if oi.Proto == t {
			n++
		}
	}
	return n
}

// FindObject returns the first instance of t in room r, looking inside
// containers as well.
func (w *World) FindObject(r RoomRnum, t *ObjTemplate) *ObjectInstance {
	room := w.Room(r)
	if room == nil {
		return nil
	}
	return findIn(room.Objects, t)
}

func findIn(list []*ObjectInstance, t *ObjTemplate) *ObjectInstance {
	for _, oi := range list {
		if oi.Proto == t {
			return oi
		}
	}
	for _, oi := range list {
		if found := findIn(oi.Contents, t); found != nil {
			return found
		}
	}
	return nil
}

func (w *World) detachObject(oi *ObjectInstance) {
	if room := w.Room(oi.Room); room != nil {
		room.Objects = remove(room.Objects, oi)
	}
	if oi.In != nil {
		oi.In.Contents = remove(oi.In.Contents, oi)
	}
	if oi.CarriedBy != nil {
		oi.CarriedBy.Inventory = remove(oi.CarriedBy.Inventory, oi)
	}
	if oi.WornBy != nil && oi.WornOn.Valid() {
		oi.WornBy.Equipment[oi.WornOn] = nil
	}
	w.held = remove(w.held, oi)

	oi.Room = Nowhere
	oi.In = nil
	oi.CarriedBy = nil
	oi.WornBy = nil
	oi.WornOn = -1
}

func remove[T comparable](list []T, e T) []T {
	if i := slices.Index(list, e); i >= 0 {
		return slices.Delete(list, i, i+1)
	}
	return list
}
