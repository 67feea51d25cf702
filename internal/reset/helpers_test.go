package reset

import (
	"context"
	"testing"

	"github.com/pixil98/go-worldcore/internal/world"
)

func vp(v int) *world.Vnum {
	x := world.Vnum(v)
	return &x
}

func ip(i int) *int {
	return &i
}

// testWorld boots a void zone and zone 100 running cmds.
//
//	rnum: 0   1   2    3    4    5    6    7
//	vnum: 0   1   100  101  102  103  104  105
func testWorld(t *testing.T, cmds ...world.CommandRecord) (*world.World, world.ZoneRnum) {
	t.Helper()
	recs := world.Records{
		Zones: []*world.ZoneRecord{
			{Number: 0, Name: "the void", Bot: 0, Top: 99, ResetMode: world.ZoneResetNever},
			{Number: 100, Name: "millbrook", Bot: 100, Top: 199, Lifespan: "10m", ResetMode: world.ZoneResetAlways, Commands: cmds},
		},
		Rooms: []*world.RoomRecord{
			{Number: 0, Name: "The Void"},
			{Number: 1, Name: "Limbo"},
			{Number: 100, Name: "Town Square"},
			{Number: 101, Name: "North Road"},
			{Number: 102, Name: "Guard Post", Exits: []world.ExitRecord{
				{Direction: "east", ToRoom: 103, Door: true, Keyword: "door"},
			}},
			{Number: 103, Name: "Storeroom"},
			{Number: 104, Name: "Bakery", Treasure: true},
			{Number: 105, Name: "East Gate"},
		},
		Mobiles: []*world.MobTemplate{
			{Number: 100, Aliases: []string{"guard"}, ShortDesc: "the town guard"},
			{Number: 101, Aliases: []string{"baker"}, ShortDesc: "the baker"},
		},
		Objects: []*world.ObjTemplate{
			{Number: 200, Aliases: []string{"sword"}, ShortDesc: "a short sword", TypeStr: "weapon", Wear: []string{"wield"}},
			{Number: 201, Aliases: []string{"bread"}, ShortDesc: "a loaf of bread", TypeStr: "other"},
			{Number: 202, Aliases: []string{"chest"}, ShortDesc: "a chest", TypeStr: "container"},
			{Number: 203, Aliases: []string{"needle"}, ShortDesc: "a poisoned needle", TypeStr: "trap"},
		},
		Start: world.StartRecord{Mortal: 100, Immortal: 1, Frozen: 0},
		Void:  0,
	}

	w, err := world.Boot(context.Background(), recs)
	if err != nil {
		t.Fatalf("booting test world: %v", err)
	}
	return w, w.RealZone(100)
}

// fixedRoller always rolls the same percent and always draws index 0.
type fixedRoller struct {
	percent int
	rolls   int
}

func (r *fixedRoller) Percent() int {
	r.rolls++
	return r.percent
}

func (r *fixedRoller) Intn(int) int { return 0 }

type attachCall struct {
	target  Target
	trigger world.Vnum
}

type fakeTriggers struct {
	attached    []attachCall
	vars        map[string]string
	roomResets  []world.Vnum
	veto        bool
	onRoomReset func()
}

func (f *fakeTriggers) Attach(_ context.Context, t Target, trigger world.Vnum) error {
	f.attached = append(f.attached, attachCall{target: t, trigger: trigger})
	return nil
}

func (f *fakeTriggers) SetVariable(_ context.Context, _ Target, name, value string) error {
	if f.vars == nil {
		f.vars = map[string]string{}
	}
	f.vars[name] = value
	return nil
}

func (f *fakeTriggers) RoomReset(_ context.Context, _ *world.Zone, r *world.Room) error {
	f.roomResets = append(f.roomResets, r.Number)
	if f.onRoomReset != nil {
		f.onRoomReset()
	}
	return nil
}

func (f *fakeTriggers) WearAllowed(context.Context, *world.MobileInstance, *world.ObjectInstance, world.WearSlot) bool {
	return !f.veto
}

type fakeNotifier struct {
	zones []world.ZoneRnum
}

func (n *fakeNotifier) ZoneReset(_ context.Context, _ *world.World, zr world.ZoneRnum) error {
	n.zones = append(n.zones, zr)
	return nil
}
