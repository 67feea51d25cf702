package world

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
)

const (
	ZoneResetNever  = "never"  // Zone never resets on its own
	ZoneResetEmpty  = "empty"  // Zone resets when lifespan is reached and no players are in it
	ZoneResetAlways = "always" // Zone resets when lifespan is reached
)

// ResetState guards a zone against overlapping reset passes.
type ResetState int

const (
	ResetNormal ResetState = iota
	ResetActive
)

func (s ResetState) String() string {
	if s == ResetActive {
		return "active"
	}
	return "normal"
}

// ZoneFlag holds zone bits.
type ZoneFlag uint32

const (
	// ZoneWilderness places spawned mobiles at their room's map coordinates.
	ZoneWilderness ZoneFlag = 1 << iota
	// ZoneTreasure makes every room of the zone eligible for random chests.
	ZoneTreasure
)

// Zone is a region of rooms with its own reset program.
type Zone struct {
	Number    Vnum
	Name      string
	Bot, Top  Vnum
	Lifespan  time.Duration
	ResetMode string
	Flags     ZoneFlag
	Age       time.Duration
	Commands  []Command

	State      ResetState
	ResetStart time.Time
}

// VirtualNumber satisfies Numbered.
func (z *Zone) VirtualNumber() Vnum {
	return z.Number
}

// Contains reports whether v falls in the zone's vnum range.
func (z *Zone) Contains(v Vnum) bool {
	return v >= z.Bot && v <= z.Top
}

// Disabled returns the commands that have been turned into no-ops.
func (z *Zone) Disabled() []Command {
	var out []Command
	for _, c := range z.Commands {
		if c.Disabled != "" {
			out = append(out, c)
		}
	}
	return out
}

// ZoneRecord is an authored zone as handed over by the loader.
type ZoneRecord struct {
	Number     Vnum            `json:"-"`
	Name       string          `json:"name"`
	Bot        Vnum            `json:"bot"`
	Top        Vnum            `json:"top"`
	Lifespan   string          `json:"lifespan"` // duration string (e.g., "1m", "30s", "2h")
	ResetMode  string          `json:"reset_mode"`
	Wilderness bool            `json:"wilderness,omitempty"`
	Treasure   bool            `json:"treasure,omitempty"`
	Count      int             `json:"command_count,omitempty"`
	Commands   []CommandRecord `json:"commands"`
}

// Validate satisfies storage.ValidatingSpec.
func (z *ZoneRecord) Validate() error {
	el := errors.NewErrorList()

	if z.Top < z.Bot {
		el.Add(fmt.Errorf("top %d is below bot %d", z.Top, z.Bot))
	}

	switch z.ResetMode {
	case ZoneResetNever, ZoneResetEmpty, ZoneResetAlways:
		// valid
	case "":
		el.Add(fmt.Errorf("reset_mode is required (must be %s, %s, or %s)",
			ZoneResetNever, ZoneResetEmpty, ZoneResetAlways))
	default:
		el.Add(fmt.Errorf("invalid reset_mode: %s (must be %s, %s, or %s)",
			z.ResetMode, ZoneResetNever, ZoneResetEmpty, ZoneResetAlways))
	}

	if z.ResetMode == ZoneResetEmpty || z.ResetMode == ZoneResetAlways {
		if z.Lifespan == "" {
			el.Add(fmt.Errorf("lifespan is required for reset_mode %s", z.ResetMode))
		} else {
			d, err := time.ParseDuration(z.Lifespan)
			if err != nil {
				el.Add(fmt.Errorf("invalid lifespan %q: %w", z.Lifespan, err))
			} else if d <= 0 {
				el.Add(fmt.Errorf("lifespan must be positive for reset_mode %s", z.ResetMode))
			}
		}
	}

	// Older zone files carry no declared count; only check it when present.
	if z.Count > 0 && z.Count != len(z.Commands) {
		el.Add(fmt.Errorf("declared %d commands, found %d", z.Count, len(z.Commands)))
	}

	return el.Err()
}

func newZone(zr *ZoneRecord) (*Zone, error) {
	z := &Zone{
		Number:    zr.Number,
		Name:      zr.Name,
		Bot:       zr.Bot,
		Top:       zr.Top,
		ResetMode: zr.ResetMode,
	}
	if zr.Lifespan != "" {
		d, err := time.ParseDuration(zr.Lifespan)
		if err != nil {
			return nil, fmt.Errorf("zone %d: invalid lifespan %q: %w", zr.Number, zr.Lifespan, err)
		}
		z.Lifespan = d
	}
	if zr.Wilderness {
		z.Flags |= ZoneWilderness
	}
	if zr.Treasure {
		z.Flags |= ZoneTreasure
	}
	return z, nil
}
