package command

import (
	"context"
	"fmt"

	"github.com/pixil98/go-service"
	"github.com/pixil98/go-worldcore/internal/driver"
	"github.com/pixil98/go-worldcore/internal/messaging"
	"github.com/pixil98/go-worldcore/internal/world"
	"github.com/pixil98/go-worldcore/internal/zones"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	recs, err := cfg.Storage.BuildRecords()
	if err != nil {
		return nil, fmt.Errorf("reading world records: %w", err)
	}
	recs.Start = cfg.StartRooms
	recs.Void = cfg.VoidRoom

	w, err := world.Boot(context.Background(), recs, cfg.Reset.worldOpts()...)
	if err != nil {
		return nil, fmt.Errorf("booting world: %w", err)
	}

	bus, err := cfg.Nats.buildServer()
	if err != nil {
		return nil, fmt.Errorf("building message bus: %w", err)
	}

	interpreter, err := cfg.Reset.buildInterpreter(w, bus)
	if err != nil {
		return nil, fmt.Errorf("creating reset interpreter: %w", err)
	}

	// Player counts for when-empty zones come from the session layer
	occupancy := messaging.NewZoneOccupancy(bus, w)

	tick := cfg.tickLength()
	zoneManager := zones.NewZoneManager(w, interpreter,
		zones.WithTickLength(tick),
		zones.WithOccupancy(occupancy),
	)

	// Boot resets publish trigger work, so they wait for the bus
	d := driver.NewDriver([]driver.Manager{zoneManager},
		driver.WithTickLength(tick),
		driver.WithStartup(bus.WaitReady),
		driver.WithStartup(zoneManager.ResetAll),
	)

	return service.WorkerList{
		"driver":    d,
		"nats":      bus,
		"occupancy": occupancy,
	}, nil
}
