package world

import (
	"errors"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestSpawnAndPlace(t *testing.T) {
	w := newTestWorld(t)
	guard := w.Mobile(w.RealMobile(100))

	mi, err := w.SpawnMobile(w.RealMobile(100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "count", guard.Count, 1)
	testutil.AssertEqual(t, "live", w.Live(), 1)
	testutil.AssertEqual(t, "unplaced", mi.Room, Nowhere)

	post := w.RealRoom(102)
	if err := w.PlaceMobile(mi, post); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "room", mi.Room, post)
	testutil.AssertEqual(t, "in room", w.MobilesInRoom(post, guard), 1)

	square := w.RealRoom(100)
	if err := w.PlaceMobile(mi, square); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "left old room", w.MobilesInRoom(post, guard), 0)
	testutil.AssertEqual(t, "in new room", w.MobilesInRoom(square, guard), 1)

	w.ExtractMobile(mi)
	testutil.AssertEqual(t, "count after extract", guard.Count, 0)
	testutil.AssertEqual(t, "live after extract", w.Live(), 0)
	testutil.AssertEqual(t, "room after extract", w.MobilesInRoom(square, guard), 0)
}

func TestSpawn_Errors(t *testing.T) {
	w := newTestWorld(t)

	_, err := w.SpawnMobile(MobRnum(42))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	_, err = w.SpawnObject(NoObj)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSpawn_InstanceLimit(t *testing.T) {
	w, err := Boot(t.Context(), testRecords(), WithInstanceLimit(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for range 2 {
		if _, err := w.SpawnObject(0); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	_, err = w.SpawnMobile(0)
	testutil.AssertErrorContains(t, err, "capacity reached")
	testutil.AssertEqual(t, "live", w.Live(), 2)
}

func TestPlaceMobile_Wilderness(t *testing.T) {
	recs := testRecords()
	recs.Zones[1].Wilderness = true
	w, err := Boot(t.Context(), recs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mi, _ := w.SpawnMobile(0)
	if err := w.PlaceMobile(mi, w.RealRoom(101)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mi.Coords == nil {
		t.Fatalf("expected coordinates")
	}
	testutil.AssertEqual(t, "coords", *mi.Coords, Coord{X: 0, Y: 1})

	if err := w.PlaceMobile(mi, w.RealRoom(102)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mi.Coords != nil {
		t.Errorf("expected no coordinates in an unmapped room")
	}
}

func TestObjectMovement(t *testing.T) {
	w := newTestWorld(t)
	bread := w.Object(w.RealObject(201))
	room := w.RealRoom(104)

	chest, _ := w.SpawnObject(w.RealObject(202))
	loaf, _ := w.SpawnObject(w.RealObject(201))

	if err := w.PlaceObject(chest, room); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := w.PutInContainer(loaf, chest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "floor count", w.ObjectsInRoom(room, bread), 0)
	if w.FindObject(room, bread) != loaf {
		t.Errorf("expected to find the loaf inside the chest")
	}

	err := w.PutInContainer(chest, loaf)
	testutil.AssertErrorContains(t, err, "cannot contain itself")

	mi, _ := w.SpawnMobile(0)
	w.GiveToMobile(loaf, mi)
	testutil.AssertEqual(t, "chest emptied", len(chest.Contents), 0)
	testutil.AssertEqual(t, "carried", len(mi.Inventory), 1)
	if loaf.CarriedBy != mi || loaf.In != nil {
		t.Errorf("expected the loaf to be carried only")
	}

	w.HoldObject(loaf)
	testutil.AssertEqual(t, "inventory emptied", len(mi.Inventory), 0)
	testutil.AssertEqual(t, "held", len(w.Held()), 1)

	w.ExtractObject(chest)
	testutil.AssertEqual(t, "chest gone", w.Object(w.RealObject(202)).Count, 0)
	testutil.AssertEqual(t, "floor empty", len(w.Room(room).Objects), 0)
}

func TestEquipMobile(t *testing.T) {
	w := newTestWorld(t)
	mi, _ := w.SpawnMobile(0)
	first, _ := w.SpawnObject(0)
	second, _ := w.SpawnObject(0)

	tests := map[string]struct {
		obj    *ObjectInstance
		slot   WearSlot
		expErr string
	}{
		"first wield": {obj: first, slot: WearWield},
		"occupied":    {obj: second, slot: WearWield, expErr: "capacity reached"},
		"bad slot":    {obj: second, slot: NumWears, expErr: "invalid wear slot"},
	}

	for _, name := range []string{"first wield", "occupied", "bad slot"} {
		tt := tests[name]
		t.Run(name, func(t *testing.T) {
			err := w.EquipMobile(tt.obj, mi, tt.slot)
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if mi.Equipment[tt.slot] != tt.obj {
				t.Errorf("expected object in slot %s", tt.slot)
			}
		})
	}

	w.ExtractMobile(mi)
	testutil.AssertEqual(t, "sword count", w.Object(0).Count, 1)
	testutil.AssertEqual(t, "live", w.Live(), 1)
}

func TestObjectInstance_OuterRoom(t *testing.T) {
	bakery := RoomRnum(6)

	tests := map[string]struct {
		place   func(*World, *ObjectInstance, *MobileInstance) error
		expRoom RoomRnum
	}{
		"on the floor": {
			place: func(w *World, oi *ObjectInstance, _ *MobileInstance) error {
				return w.PlaceObject(oi, bakery)
			},
			expRoom: bakery,
		},
		"carried": {
			place: func(w *World, oi *ObjectInstance, mi *MobileInstance) error {
				w.GiveToMobile(oi, mi)
				return nil
			},
			expRoom: bakery,
		},
		"worn": {
			place: func(w *World, oi *ObjectInstance, mi *MobileInstance) error {
				return w.EquipMobile(oi, mi, WearWield)
			},
			expRoom: bakery,
		},
		"in a carried chest": {
			place: func(w *World, oi *ObjectInstance, mi *MobileInstance) error {
				chest, err := w.SpawnObject(w.RealObject(202))
				if err != nil {
					return err
				}
				w.GiveToMobile(chest, mi)
				return w.PutInContainer(oi, chest)
			},
			expRoom: bakery,
		},
		"held": {
			place: func(w *World, oi *ObjectInstance, _ *MobileInstance) error {
				w.HoldObject(oi)
				return nil
			},
			expRoom: Nowhere,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w := newTestWorld(t)
			testutil.AssertEqual(t, "bakery", w.RealRoom(104), bakery)

			mi, _ := w.SpawnMobile(0)
			if err := w.PlaceMobile(mi, bakery); err != nil {
				t.Fatalf("placing mobile: %v", err)
			}
			oi, _ := w.SpawnObject(w.RealObject(201))
			if err := tt.place(w, oi, mi); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "room", oi.OuterRoom(), tt.expRoom)
		})
	}
}
