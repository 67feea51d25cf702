package world

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-worldcore/internal/storage"
)

// Direction indexes a room's exits.
type Direction int

const (
	North Direction = iota
	East
	South
	West
	Up
	Down
	In
	Out

	NumDirections = 8
)

var directionNames = [NumDirections]string{"north", "east", "south", "west", "up", "down", "in", "out"}

func (d Direction) String() string {
	if d < 0 || d >= NumDirections {
		return fmt.Sprintf("direction(%d)", int(d))
	}
	return directionNames[d]
}

// Valid reports whether d names one of the exit slots.
func (d Direction) Valid() bool {
	return d >= 0 && d < NumDirections
}

// ParseDirection returns the direction named s, or -1.
func ParseDirection(s string) Direction {
	s = strings.ToLower(s)
	for i, n := range directionNames {
		if n == s {
			return Direction(i)
		}
	}
	return -1
}

// ExitFlag holds door state bits.
type ExitFlag uint8

const (
	ExitIsDoor ExitFlag = 1 << iota
	ExitClosed
	ExitLocked
	ExitPickproof
	ExitHidden
)

// Exit links a room to another room.
type Exit struct {
	Keyword     string
	Description string
	ToRoom      RoomRnum
	Flags       ExitFlag
	Key         Vnum
}

// Visible reports whether the exit carries anything a player can look at.
func (e *Exit) Visible() bool {
	return e.Keyword != "" || e.Description != ""
}

// RoomFlag holds room bits.
type RoomFlag uint32

const (
	// RoomTreasure marks a room as eligible for random chests and traps.
	RoomTreasure RoomFlag = 1 << iota
	// RoomNoMob keeps wandering mobiles out; resets may still place them.
	RoomNoMob
)

// Coord is a position on an open-world map.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Room is one location in the world table.
type Room struct {
	Number      Vnum
	Zone        ZoneRnum
	Name        string
	Description string
	Flags       RoomFlag
	Exits       [NumDirections]*Exit
	Coords      *Coord
	Triggers    []Vnum

	Mobiles []*MobileInstance
	Objects []*ObjectInstance

	Vars storage.Vars
}

// VirtualNumber satisfies Numbered.
func (r *Room) VirtualNumber() Vnum {
	return r.Number
}

// Exit returns the exit in direction d, or nil.
func (r *Room) Exit(d Direction) *Exit {
	if !d.Valid() {
		return nil
	}
	return r.Exits[d]
}

// Populated reports whether anything currently sits in the room.
func (r *Room) Populated() bool {
	return len(r.Mobiles) > 0 || len(r.Objects) > 0
}

// ExitRecord is an authored exit. Destinations are vnums and are resolved
// once the owning room is in the table.
type ExitRecord struct {
	Direction   string `json:"direction"`
	ToRoom      Vnum   `json:"to_room"`
	Keyword     string `json:"keyword,omitempty"`
	Description string `json:"description,omitempty"`
	Door        bool   `json:"door,omitempty"`
	Closed      bool   `json:"closed,omitempty"`
	Locked      bool   `json:"locked,omitempty"`
	Pickproof   bool   `json:"pickproof,omitempty"`
	Hidden      bool   `json:"hidden,omitempty"`
	Key         *Vnum  `json:"key,omitempty"`
}

func (er *ExitRecord) flags() ExitFlag {
	var f ExitFlag
	if er.Door {
		f |= ExitIsDoor
	}
	if er.Closed {
		f |= ExitClosed
	}
	if er.Locked {
		f |= ExitLocked
	}
	if er.Pickproof {
		f |= ExitPickproof
	}
	if er.Hidden {
		f |= ExitHidden
	}
	return f
}

// RoomRecord is an authored room as handed over by the loader.
type RoomRecord struct {
	Number      Vnum         `json:"-"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Treasure    bool         `json:"treasure,omitempty"`
	NoMob       bool         `json:"no_mob,omitempty"`
	Exits       []ExitRecord `json:"exits,omitempty"`
	Coords      *Coord       `json:"coords,omitempty"`
	Triggers    []Vnum       `json:"triggers,omitempty"`
}

// Validate satisfies storage.ValidatingSpec.
func (rr *RoomRecord) Validate() error {
	el := errors.NewErrorList()

	if rr.Name == "" {
		el.Add(fmt.Errorf("room name is required"))
	}

	seen := map[Direction]bool{}
	for i, e := range rr.Exits {
		d := ParseDirection(e.Direction)
		if d < 0 {
			el.Add(fmt.Errorf("exit %d: invalid direction %q", i, e.Direction))
			continue
		}
		if seen[d] {
			el.Add(fmt.Errorf("exit %d: duplicate direction %s", i, d))
		}
		seen[d] = true
	}

	return el.Err()
}

// newRoom builds a room from its record without exits; exits need the room
// to be in the table first.
func newRoom(rr *RoomRecord, zone ZoneRnum) *Room {
	r := &Room{
		Number:      rr.Number,
		Zone:        zone,
		Name:        rr.Name,
		Description: rr.Description,
		Triggers:    rr.Triggers,
	}
	if rr.Treasure {
		r.Flags |= RoomTreasure
	}
	if rr.NoMob {
		r.Flags |= RoomNoMob
	}
	if rr.Coords != nil {
		c := *rr.Coords
		r.Coords = &c
	}
	return r
}
