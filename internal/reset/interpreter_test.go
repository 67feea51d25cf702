package reset

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
	"github.com/pixil98/go-worldcore/internal/world"
)

func TestResetZone_SpawnsInProgramOrder(t *testing.T) {
	w, zr := testWorld(t,
		world.CommandRecord{Op: "M", Mob: vp(100), Room: vp(100)},
		world.CommandRecord{Op: "M", Mob: vp(101), Room: vp(101)},
		world.CommandRecord{Op: "M", Mob: vp(100), Room: vp(102)},
		world.CommandRecord{Op: "S"},
	)
	in := NewInterpreter(w, WithRoller(&fixedRoller{percent: 1}))

	if err := in.ResetZone(context.Background(), zr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := map[string]struct {
		room world.Vnum
		mob  world.Vnum
	}{
		"first command":  {room: 100, mob: 100},
		"second command": {room: 101, mob: 101},
		"third command":  {room: 102, mob: 100},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			room := w.Room(w.RealRoom(tt.room))
			testutil.AssertEqual(t, "mobiles", len(room.Mobiles), 1)
			testutil.AssertEqual(t, "template", room.Mobiles[0].Proto.Number, tt.mob)
		})
	}
	testutil.AssertEqual(t, "live", w.Live(), 3)
}

func TestResetZone_JumpSkipsNextCommand(t *testing.T) {
	w, zr := testWorld(t,
		world.CommandRecord{Op: "J", Skip: 1, Percent: ip(100)},
		world.CommandRecord{Op: "M", Mob: vp(100), Room: vp(100)},
		world.CommandRecord{Op: "M", If: 1, Mob: vp(101), Room: vp(101)},
		world.CommandRecord{Op: "M", If: -2, Mob: vp(101), Room: vp(102)},
	)
	in := NewInterpreter(w, WithRoller(&fixedRoller{percent: 1}))

	for range 3 {
		if err := in.ResetZone(context.Background(), zr); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	testutil.AssertEqual(t, "skipped spawn", len(w.Room(w.RealRoom(100)).Mobiles), 0)
	testutil.AssertEqual(t, "gated on skipped", len(w.Room(w.RealRoom(101)).Mobiles), 0)
	testutil.AssertEqual(t, "gated on inverse", len(w.Room(w.RealRoom(102)).Mobiles), 3)
}

func TestResetZone_JumpRollFails(t *testing.T) {
	w, zr := testWorld(t,
		world.CommandRecord{Op: "J", Skip: 1, Percent: ip(50)},
		world.CommandRecord{Op: "M", Mob: vp(100), Room: vp(100)},
	)
	in := NewInterpreter(w, WithRoller(&fixedRoller{percent: 80}))

	if err := in.ResetZone(context.Background(), zr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "spawned", len(w.Room(w.RealRoom(100)).Mobiles), 1)
}

func TestResetZone_EquipScenarioAndReentrancy(t *testing.T) {
	ctx := context.Background()
	w, zr := testWorld(t,
		world.CommandRecord{Op: "M", Mob: vp(100), Max: 1, Room: vp(102), Percent: ip(100)},
		world.CommandRecord{Op: "E", Obj: vp(200), Max: 1, Slot: ip(int(world.WearWield)), Percent: ip(100)},
		world.CommandRecord{Op: "S"},
	)
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	trig := &fakeTriggers{}
	in := NewInterpreter(w, WithTriggers(trig), WithClock(func() time.Time { return start }))
	z := w.Zone(zr)

	post := w.RealRoom(102)
	var nestedErr error
	var liveBefore, liveAfter int
	var stateDuring world.ResetState
	var startDuring time.Time
	nested := false
	trig.onRoomReset = func() {
		if nested {
			return
		}
		nested = true
		stateDuring, startDuring = z.State, z.ResetStart
		liveBefore = w.Live()
		nestedErr = in.ResetZone(ctx, zr)
		liveAfter = w.Live()
	}

	if err := in.ResetZone(ctx, zr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	room := w.Room(post)
	testutil.AssertEqual(t, "mobiles", len(room.Mobiles), 1)
	guard := room.Mobiles[0]
	if guard.Equipment[world.WearWield] == nil {
		t.Fatalf("expected the guard to wield the sword")
	}
	testutil.AssertEqual(t, "wielded", guard.Equipment[world.WearWield].Proto.Number, world.Vnum(200))

	if !errors.Is(nestedErr, world.ErrResetActive) {
		t.Errorf("expected ErrResetActive, got %v", nestedErr)
	}
	testutil.AssertEqual(t, "state during", stateDuring, world.ResetActive)
	testutil.AssertEqual(t, "start during", startDuring, start)
	testutil.AssertEqual(t, "population unchanged", liveAfter, liveBefore)
	testutil.AssertEqual(t, "state after", z.State, world.ResetNormal)
	testutil.AssertEqual(t, "start after", z.ResetStart, time.Time{})

	// The caps hold on the next pass.
	if err := in.ResetZone(ctx, zr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "mobiles after second pass", len(room.Mobiles), 1)
	testutil.AssertEqual(t, "live after second pass", w.Live(), 2)
}

func TestResetZone_Caps(t *testing.T) {
	tests := map[string]struct {
		cmd    world.CommandRecord
		passes int
		exp    int
	}{
		"absolute cap": {
			cmd:    world.CommandRecord{Op: "M", Mob: vp(100), Max: 2, Room: vp(100)},
			passes: 4,
			exp:    2,
		},
		"per room cap": {
			cmd:    world.CommandRecord{Op: "M", Mob: vp(100), Max: -3, Room: vp(100)},
			passes: 5,
			exp:    3,
		},
		"uncapped": {
			cmd:    world.CommandRecord{Op: "M", Mob: vp(100), Room: vp(100)},
			passes: 4,
			exp:    4,
		},
		"percent gate closed": {
			cmd:    world.CommandRecord{Op: "M", Mob: vp(100), Room: vp(100), Percent: ip(40)},
			passes: 3,
			exp:    0,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w, zr := testWorld(t, tt.cmd)
			in := NewInterpreter(w, WithRoller(&fixedRoller{percent: 50}))
			for range tt.passes {
				if err := in.ResetZone(context.Background(), zr); err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}
			testutil.AssertEqual(t, "mobiles", len(w.Room(w.RealRoom(100)).Mobiles), tt.exp)
		})
	}
}

func TestResetZone_NowhereObjects(t *testing.T) {
	tests := map[string]struct {
		cmds     []world.CommandRecord
		expCount int
		expHeld  int
		expVar   bool
	}{
		"claimed by a later variable": {
			cmds: []world.CommandRecord{
				{Op: "O", Obj: vp(201)},
				{Op: "V", Target: "obj", Name: "owner", Value: "baker"},
			},
			expCount: 1,
			expHeld:  1,
			expVar:   true,
		},
		"nothing claims it": {
			cmds: []world.CommandRecord{
				{Op: "O", Obj: vp(201)},
			},
		},
		"rebound before the claim": {
			cmds: []world.CommandRecord{
				{Op: "O", Obj: vp(201)},
				{Op: "O", Obj: vp(200), Room: vp(100)},
				{Op: "V", Target: "obj", Name: "owner", Value: "baker"},
			},
			expVar: true,
		},
		"claim gated off": {
			cmds: []world.CommandRecord{
				{Op: "O", Obj: vp(201)},
				{Op: "V", If: -1, Target: "obj", Name: "owner", Value: "baker"},
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w, zr := testWorld(t, tt.cmds...)
			trig := &fakeTriggers{}
			in := NewInterpreter(w, WithTriggers(trig), WithRoller(&fixedRoller{percent: 1}))

			if err := in.ResetZone(context.Background(), zr); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			testutil.AssertEqual(t, "count", w.Object(w.RealObject(201)).Count, tt.expCount)
			testutil.AssertEqual(t, "held", len(w.Held()), tt.expHeld)
			_, ok := trig.vars["owner"]
			testutil.AssertEqual(t, "var handed off", ok, tt.expVar)
			if tt.expHeld > 0 {
				var owner string
				found, err := w.Held()[0].Vars.Get("owner", &owner)
				if err != nil || !found {
					t.Fatalf("expected owner var, found=%v err=%v", found, err)
				}
				testutil.AssertEqual(t, "owner", owner, "baker")
			}
		})
	}
}

func TestResetZone_ObjIntoObj(t *testing.T) {
	tests := map[string]struct {
		cmds        []world.CommandRecord
		passes      int
		expInChest  int
		expCount    int
		expDisabled bool
	}{
		"container spawned first": {
			cmds: []world.CommandRecord{
				{Op: "O", Obj: vp(202), Room: vp(104)},
				{Op: "P", Obj: vp(201), Container: vp(202)},
			},
			expInChest: 1,
			expCount:   1,
		},
		"container found in the last room": {
			cmds: []world.CommandRecord{
				{Op: "O", Obj: vp(202), Room: vp(104)},
				{Op: "O", Obj: vp(200), Room: vp(104)},
				{Op: "P", Obj: vp(201), Container: vp(202)},
			},
			expInChest: 1,
			expCount:   1,
		},
		"missing container disables": {
			cmds: []world.CommandRecord{
				{Op: "P", Obj: vp(201), Container: vp(202)},
			},
			expDisabled: true,
		},
		"missing container under a gate": {
			cmds: []world.CommandRecord{
				{Op: "O", Obj: vp(200), Room: vp(104)},
				{Op: "P", If: 1, Obj: vp(201), Container: vp(202)},
			},
		},
		"capped container is still found on later resets": {
			cmds: []world.CommandRecord{
				{Op: "O", Obj: vp(202), Room: vp(104), Max: 1},
				{Op: "P", Obj: vp(201), Container: vp(202), Max: 5},
			},
			passes:     3,
			expInChest: 3,
			expCount:   3,
		},
		"container elsewhere fails without disabling": {
			cmds: []world.CommandRecord{
				{Op: "O", Obj: vp(202), Room: vp(103)},
				{Op: "O", Obj: vp(200), Room: vp(104)},
				{Op: "P", Obj: vp(201), Container: vp(202)},
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w, zr := testWorld(t, tt.cmds...)
			in := NewInterpreter(w, WithRoller(&fixedRoller{percent: 1}))

			for range max(tt.passes, 1) {
				if err := in.ResetZone(context.Background(), zr); err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}

			cmds := w.Zone(zr).Commands
			put := cmds[len(tt.cmds)-1]
			testutil.AssertEqual(t, "disabled", put.Op == world.OpNoop, tt.expDisabled)
			testutil.AssertEqual(t, "bread count", w.Object(w.RealObject(201)).Count, tt.expCount)

			in104 := 0
			for _, oi := range w.Room(w.RealRoom(104)).Objects {
				if oi.Proto.Number == 202 {
					in104 = len(oi.Contents)
				}
			}
			testutil.AssertEqual(t, "in chest", in104, tt.expInChest)
		})
	}
}

func TestResetZone_EquipFallsBackToInventory(t *testing.T) {
	tests := map[string]struct {
		obj  world.Vnum
		veto bool
	}{
		"vetoed":       {obj: 200, veto: true},
		"cannot wield": {obj: 201},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w, zr := testWorld(t,
				world.CommandRecord{Op: "M", Mob: vp(100), Room: vp(100)},
				world.CommandRecord{Op: "E", If: 1, Obj: vp(int(tt.obj)), Slot: ip(int(world.WearWield))},
			)
			in := NewInterpreter(w, WithTriggers(&fakeTriggers{veto: tt.veto}), WithRoller(&fixedRoller{percent: 1}))

			if err := in.ResetZone(context.Background(), zr); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			mi := w.Room(w.RealRoom(100)).Mobiles[0]
			if mi.Equipment[world.WearWield] != nil {
				t.Errorf("expected nothing wielded")
			}
			testutil.AssertEqual(t, "inventory", len(mi.Inventory), 1)
			testutil.AssertEqual(t, "carried", mi.Inventory[0].Proto.Number, tt.obj)
		})
	}
}

func TestResetZone_MissingMobile(t *testing.T) {
	tests := map[string]struct {
		cmds        []world.CommandRecord
		expDisabled bool
	}{
		"no spawn before the give": {
			cmds: []world.CommandRecord{
				{Op: "G", Obj: vp(201)},
			},
			expDisabled: true,
		},
		"spawn before the give was capped": {
			cmds: []world.CommandRecord{
				{Op: "M", Mob: vp(100), Max: 1, Room: vp(105)},
				{Op: "M", Mob: vp(100), Max: 1, Room: vp(100)},
				{Op: "G", Obj: vp(201)},
			},
		},
		"invalid slot": {
			cmds: []world.CommandRecord{
				{Op: "M", Mob: vp(100), Room: vp(100)},
				{Op: "E", Obj: vp(200), Slot: ip(int(world.NumWears))},
			},
			expDisabled: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w, zr := testWorld(t, tt.cmds...)
			in := NewInterpreter(w, WithRoller(&fixedRoller{percent: 1}))

			if err := in.ResetZone(context.Background(), zr); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			last := w.Zone(zr).Commands[len(tt.cmds)-1]
			testutil.AssertEqual(t, "disabled", last.Op == world.OpNoop, tt.expDisabled)
			testutil.AssertEqual(t, "objects", w.Object(w.RealObject(201)).Count, 0)
		})
	}
}

func TestResetZone_Doors(t *testing.T) {
	w, zr := testWorld(t,
		world.CommandRecord{Op: "D", Room: vp(102), Dir: "east", State: 2},
		world.CommandRecord{Op: "D", Room: vp(102), Dir: "north", State: 1},
	)
	in := NewInterpreter(w)

	if err := in.ResetZone(context.Background(), zr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e := w.Room(w.RealRoom(102)).Exit(world.East)
	testutil.AssertEqual(t, "flags", e.Flags, world.ExitIsDoor|world.ExitClosed|world.ExitLocked)

	cmds := w.Zone(zr).Commands
	testutil.AssertEqual(t, "existing exit", cmds[0].Op, world.OpSetDoor)
	testutil.AssertEqual(t, "missing exit", cmds[1].Op, world.OpNoop)
}

func TestResetZone_Triggers(t *testing.T) {
	w, zr := testWorld(t,
		world.CommandRecord{Op: "M", Mob: vp(101), Room: vp(104)},
		world.CommandRecord{Op: "T", If: 1, Target: "mob", Trigger: 7},
		world.CommandRecord{Op: "T", Target: "room", Room: vp(104), Trigger: 8},
		world.CommandRecord{Op: "V", Target: "room", Room: vp(104), Name: "smell", Value: "bread"},
	)
	trig := &fakeTriggers{}
	in := NewInterpreter(w, WithTriggers(trig), WithRoller(&fixedRoller{percent: 1}))

	if err := in.ResetZone(context.Background(), zr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.AssertEqual(t, "attached", len(trig.attached), 2)
	testutil.AssertEqual(t, "mob target", trig.attached[0].target.Kind, world.TargetMob)
	testutil.AssertEqual(t, "mob trigger", trig.attached[0].trigger, world.Vnum(7))
	testutil.AssertEqual(t, "room target", trig.attached[1].target.Room.Number, world.Vnum(104))
	testutil.AssertEqual(t, "var", trig.vars["smell"], "bread")
	testutil.AssertEqual(t, "room resets", len(trig.roomResets), 6)
	testutil.AssertEqual(t, "first room reset", trig.roomResets[0], world.Vnum(100))

	var smell string
	found, err := w.Room(w.RealRoom(104)).Vars.Get("smell", &smell)
	if err != nil || !found {
		t.Fatalf("expected room var, found=%v err=%v", found, err)
	}
	testutil.AssertEqual(t, "room var", smell, "bread")
}

func TestResetZone_Treasure(t *testing.T) {
	tests := map[string]struct {
		tuning    Tuning
		setup     func(*world.World)
		expChests int
		expTraps  int
		expRolls  int
	}{
		"chest with loot and trap": {
			tuning: Tuning{
				Treasure:  []TreasureEntry{{Vnum: 201, Weight: 1}},
				ChestVnum: 202, TrapVnum: 203,
				ChestChance: 100, TrapChance: 100, ChestsPerReset: 1, MaxRounds: 5,
			},
			expChests: 1,
			expTraps:  1,
			expRolls:  2,
		},
		"populated room is skipped": {
			tuning: Tuning{ChestVnum: 202, TrapVnum: world.NoVnum, ChestChance: 100, ChestsPerReset: 1, MaxRounds: 5},
			setup: func(w *world.World) {
				oi, _ := w.SpawnObject(w.RealObject(200))
				_ = w.PlaceObject(oi, w.RealRoom(104))
			},
		},
		"rounds are bounded": {
			tuning:   Tuning{ChestVnum: 202, TrapVnum: world.NoVnum, ChestChance: 0, ChestsPerReset: 1, MaxRounds: 4},
			expRolls: 4,
		},
		"no chest configured": {
			tuning: DefaultTuning(),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w, zr := testWorld(t)
			if tt.setup != nil {
				tt.setup(w)
			}
			roller := &fixedRoller{percent: 1}
			in := NewInterpreter(w, WithTuning(tt.tuning), WithRoller(roller))

			if err := in.ResetZone(context.Background(), zr); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			chests := 0
			traps := 0
			for _, oi := range w.Room(w.RealRoom(104)).Objects {
				if oi.Proto.Number != 202 {
					continue
				}
				chests++
				for _, c := range oi.Contents {
					if c.Proto.Type() == world.ObjectTypeTrap {
						traps++
					}
				}
			}
			testutil.AssertEqual(t, "chests", chests, tt.expChests)
			testutil.AssertEqual(t, "traps", traps, tt.expTraps)
			testutil.AssertEqual(t, "rolls", roller.rolls, tt.expRolls)
		})
	}
}

func TestResetZone_Bookkeeping(t *testing.T) {
	w, zr := testWorld(t)
	note := &fakeNotifier{}
	in := NewInterpreter(w, WithNotifier(note))
	w.Zone(zr).Age = 9 * time.Minute

	if err := in.ResetZone(context.Background(), zr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "age", w.Zone(zr).Age, time.Duration(0))
	testutil.AssertEqual(t, "notified", len(note.zones), 1)

	err := in.ResetZone(context.Background(), world.ZoneRnum(9))
	if !errors.Is(err, world.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
