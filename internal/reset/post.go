package reset

import (
	"context"
	"log/slog"
	"slices"

	"github.com/pixil98/go-worldcore/internal/world"
)

// eligibleForTreasure lists the rooms of the pass that may receive a chest:
// empty rooms flagged for treasure, or any empty room of a treasure zone.
func (p *pass) eligibleForTreasure(rooms []world.RoomRnum) []world.RoomRnum {
	zoneWide := p.zone.Flags&world.ZoneTreasure != 0

	var out []world.RoomRnum
	for _, r := range rooms {
		room := p.world.Room(r)
		if room.Populated() {
			continue
		}
		if zoneWide || room.Flags&world.RoomTreasure != 0 {
			out = append(out, r)
		}
	}
	return out
}

// placeTreasure drops random chests into eligible rooms. Every round draws
// one room; the number of rounds is capped so a low chest chance cannot
// keep the pass scanning.
func (p *pass) placeTreasure(ctx context.Context, rooms []world.RoomRnum) {
	chest := p.world.RealObject(p.tuning.ChestVnum)
	if chest == world.NoObj || p.tuning.ChestsPerReset <= 0 {
		return
	}
	trap := p.world.RealObject(p.tuning.TrapVnum)

	eligible := p.eligibleForTreasure(rooms)
	for round := 0; round < p.tuning.MaxRounds; round++ {
		if len(eligible) == 0 || p.chests >= p.tuning.ChestsPerReset {
			return
		}

		idx := p.roller.Intn(len(eligible))
		if p.roller.Percent() > p.tuning.ChestChance {
			continue
		}
		r := eligible[idx]
		eligible = slices.Delete(eligible, idx, idx+1)

		oi, err := p.world.SpawnObject(chest)
		if err != nil {
			slog.WarnContext(ctx, "chest spawn skipped", "zone", p.zone.Number, "error", err)
			return
		}
		if err := p.world.PlaceObject(oi, r); err != nil {
			p.world.ExtractObject(oi)
			continue
		}
		p.chests++
		p.objects++

		if loot := p.spawnTreasure(ctx); loot != nil {
			p.stash(loot, oi)
		}
		if trap != world.NoObj && p.roller.Percent() <= p.tuning.TrapChance {
			if t, err := p.world.SpawnObject(trap); err == nil {
				p.objects++
				p.stash(t, oi)
			}
		}
	}
}

func (p *pass) stash(oi, chest *world.ObjectInstance) {
	if err := p.world.PutInContainer(oi, chest); err != nil {
		p.world.ExtractObject(oi)
	}
}

// release extracts objects that were spawned at nowhere for a script command
// that never took them.
func (p *pass) release(ctx context.Context) {
	for _, oi := range p.pending {
		if p.claimed[oi] {
			continue
		}
		slog.DebugContext(ctx, "releasing unclaimed object", "zone", p.zone.Number, "obj", oi.Proto.Number)
		p.world.ExtractObject(oi)
		p.released++
	}
	p.pending = nil
}
