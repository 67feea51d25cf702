package zones

import (
	"time"
)

type ZoneManagerOpt func(*ZoneManager)

// WithTickLength sets how much a zone ages per tick.
func WithTickLength(d time.Duration) ZoneManagerOpt {
	return func(zm *ZoneManager) {
		zm.tickLength = d
	}
}

// WithOccupancy sets the source of player counts for when-empty zones.
func WithOccupancy(o Occupancy) ZoneManagerOpt {
	return func(zm *ZoneManager) {
		zm.occupancy = o
	}
}
