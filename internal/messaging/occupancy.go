package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pixil98/go-worldcore/internal/world"
)

// ZoneOccupancy tracks player counts per zone from the session layer's
// events. It satisfies zones.Occupancy.
type ZoneOccupancy struct {
	bus   *Server
	world *world.World

	mu      sync.Mutex
	players map[world.Vnum]int
}

func NewZoneOccupancy(bus *Server, w *world.World) *ZoneOccupancy {
	return &ZoneOccupancy{
		bus:     bus,
		world:   w,
		players: map[world.Vnum]int{},
	}
}

// Start satisfies service.Worker. It listens until ctx is done.
func (o *ZoneOccupancy) Start(ctx context.Context) error {
	if err := o.bus.WaitReady(ctx); err != nil {
		return nil
	}

	unsub, err := o.bus.Subscribe(SubjectZonePlayers, o.handle)
	if err != nil {
		return fmt.Errorf("subscribing to %s: %w", SubjectZonePlayers, err)
	}
	defer unsub()

	<-ctx.Done()
	return nil
}

func (o *ZoneOccupancy) handle(data []byte) {
	var ev ZonePlayersEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		slog.Warn("invalid zone players event", "error", err)
		return
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if ev.Players <= 0 {
		delete(o.players, ev.Zone)
		return
	}
	o.players[ev.Zone] = ev.Players
}

// Players returns the last reported player count of the zone at zr.
func (o *ZoneOccupancy) Players(zr world.ZoneRnum) int {
	z := o.world.Zone(zr)
	if z == nil {
		return 0
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	return o.players[z.Number]
}
