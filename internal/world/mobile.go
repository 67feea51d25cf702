package world

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-worldcore/internal/storage"
)

// MobTemplate defines a type of mobile. Multiple instances can be spawned
// from one template.
type MobTemplate struct {
	Number Vnum `json:"-"`

	// Aliases are keywords used to target the mobile (e.g., ["guard", "town"])
	Aliases []string `json:"aliases"`

	// ShortDesc is used in action messages (e.g., "the town guard")
	ShortDesc string `json:"short_desc"`

	// LongDesc is shown when the mobile stands in a room
	LongDesc string `json:"long_desc"`

	Triggers []Vnum `json:"triggers,omitempty"`

	// Count is the number of live instances.
	Count int `json:"-"`
}

// VirtualNumber satisfies Numbered.
func (m *MobTemplate) VirtualNumber() Vnum {
	return m.Number
}

// MatchName returns true if name matches any alias (case-insensitive).
func (m *MobTemplate) MatchName(name string) bool {
	for _, alias := range m.Aliases {
		if strings.EqualFold(alias, name) {
			return true
		}
	}
	return false
}

// Validate satisfies storage.ValidatingSpec.
func (m *MobTemplate) Validate() error {
	el := errors.NewErrorList()
	if len(m.Aliases) < 1 {
		el.Add(fmt.Errorf("mobile alias is required"))
	}
	if m.ShortDesc == "" {
		el.Add(fmt.Errorf("mobile short description is required"))
	}
	return el.Err()
}

// MobileInstance is one spawned copy of a MobTemplate.
type MobileInstance struct {
	InstanceId string
	Proto      *MobTemplate

	Room   RoomRnum
	Coords *Coord

	Inventory []*ObjectInstance
	Equipment [NumWears]*ObjectInstance

	Vars storage.Vars
}
