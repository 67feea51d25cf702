package world

import (
	"context"
	"testing"
)

func vp(v int) *Vnum {
	x := Vnum(v)
	return &x
}

func ip(i int) *int {
	return &i
}

// testRecords describes a void zone (rooms 0-1) and zone 100 (rooms 100-105).
//
//	rnum: 0   1   2    3    4    5    6    7
//	vnum: 0   1   100  101  102  103  104  105
func testRecords() Records {
	return Records{
		Zones: []*ZoneRecord{
			{Number: 0, Name: "the void", Bot: 0, Top: 99, ResetMode: ZoneResetNever},
			{
				Number: 100, Name: "millbrook", Bot: 100, Top: 199, Lifespan: "10m", ResetMode: ZoneResetAlways,
				Commands: []CommandRecord{
					{Op: "spawn_mob", Mob: vp(100), Max: 1, Room: vp(102)},
					{Op: "equip_obj", If: 1, Obj: vp(200), Max: 1, Slot: ip(int(WearWield))},
					{Op: "door", Room: vp(103), Dir: "west", State: 2},
					{Op: "spawn_obj", Obj: vp(201), Max: 5, Room: vp(105)},
					{Op: "stop"},
				},
			},
		},
		Rooms: []*RoomRecord{
			{Number: 0, Name: "The Void"},
			{Number: 1, Name: "Limbo"},
			{Number: 100, Name: "Town Square", Coords: &Coord{X: 0, Y: 0}, Exits: []ExitRecord{
				{Direction: "north", ToRoom: 101},
				{Direction: "east", ToRoom: 105, Keyword: "gate"},
			}},
			{Number: 101, Name: "North Road", Coords: &Coord{X: 0, Y: 1}, Exits: []ExitRecord{
				{Direction: "south", ToRoom: 100},
				{Direction: "east", ToRoom: 103},
			}},
			{Number: 102, Name: "Guard Post", Exits: []ExitRecord{
				{Direction: "east", ToRoom: 103, Door: true, Keyword: "door"},
			}},
			{Number: 103, Name: "Storeroom", Exits: []ExitRecord{
				{Direction: "west", ToRoom: 102, Door: true, Keyword: "door"},
			}},
			{Number: 104, Name: "Bakery", Treasure: true},
			{Number: 105, Name: "East Gate", Exits: []ExitRecord{
				{Direction: "west", ToRoom: 100},
			}},
		},
		Mobiles: []*MobTemplate{
			{Number: 100, Aliases: []string{"guard"}, ShortDesc: "the town guard"},
			{Number: 101, Aliases: []string{"baker"}, ShortDesc: "the baker"},
		},
		Objects: []*ObjTemplate{
			{Number: 200, Aliases: []string{"sword"}, ShortDesc: "a short sword", TypeStr: "weapon", Wear: []string{"wield"}},
			{Number: 201, Aliases: []string{"bread"}, ShortDesc: "a loaf of bread", TypeStr: "other"},
			{Number: 202, Aliases: []string{"chest"}, ShortDesc: "a chest", TypeStr: "container"},
		},
		Shops: []*ShopRecord{
			{Number: 1, Keeper: 101, Products: []Vnum{201}, Rooms: []Vnum{104, 105}},
		},
		Start: StartRecord{Mortal: 100, Immortal: 1, Frozen: 0},
		Void:  0,
	}
}

func newTestWorld(t *testing.T) *World {
	t.Helper()
	w, err := Boot(context.Background(), testRecords())
	if err != nil {
		t.Fatalf("booting test world: %v", err)
	}
	return w
}
