package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-worldcore/internal/world"
)

type Config struct {
	TickInterval string            `json:"tick_interval"`
	Storage      StorageConfig     `json:"storage"`
	Nats         NatsConfig        `json:"nats"`
	Reset        ResetConfig       `json:"reset"`
	StartRooms   world.StartRecord `json:"start_rooms"`
	VoidRoom     world.Vnum        `json:"void_room"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	d, err := time.ParseDuration(c.TickInterval)
	if err != nil {
		el.Add(fmt.Errorf("parsing tick_interval: %w", err))
	} else if d < time.Second {
		el.Add(fmt.Errorf("tick_interval must be at least 1 second"))
	}

	if c.StartRooms.Mortal < 0 {
		el.Add(fmt.Errorf("start_rooms.mortal must be set"))
	}
	if c.VoidRoom < 0 {
		el.Add(fmt.Errorf("void_room must not be negative"))
	}

	el.Add(c.Storage.validate())
	el.Add(c.Nats.validate())
	el.Add(c.Reset.validate())

	return el.Err()
}

// tickLength is only called after Validate, so the interval parses.
func (c *Config) tickLength() time.Duration {
	d, _ := time.ParseDuration(c.TickInterval)
	return d
}
