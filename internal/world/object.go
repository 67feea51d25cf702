package world

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-worldcore/internal/storage"
)

// ObjectType defines the category of an object.
type ObjectType int

const (
	ObjectTypeUnknown ObjectType = iota
	ObjectTypeOther
	ObjectTypeContainer
	ObjectTypeTreasure
	ObjectTypeWeapon
	ObjectTypeArmor
	ObjectTypeTrap
)

// WearSlot indexes a mobile's equipment.
type WearSlot int

const (
	WearLight WearSlot = iota
	WearFinger
	WearNeck
	WearBody
	WearHead
	WearLegs
	WearFeet
	WearHands
	WearArms
	WearShield
	WearAbout
	WearWaist
	WearWrist
	WearWield
	WearHold

	NumWears = 15
)

var wearNames = [NumWears]string{
	"light", "finger", "neck", "body", "head", "legs", "feet", "hands",
	"arms", "shield", "about", "waist", "wrist", "wield", "hold",
}

func (s WearSlot) String() string {
	if !s.Valid() {
		return fmt.Sprintf("slot(%d)", int(s))
	}
	return wearNames[s]
}

// Valid reports whether s is an equipment index.
func (s WearSlot) Valid() bool {
	return s >= 0 && s < NumWears
}

// ObjTemplate defines a type of object. Multiple instances can be spawned
// from one template.
type ObjTemplate struct {
	Number Vnum `json:"-"`

	// Aliases are keywords used to target this object (e.g., ["sword", "blade"])
	Aliases []string `json:"aliases"`

	// ShortDesc is used in action messages (e.g., "a rusty sword")
	ShortDesc string `json:"short_desc"`

	// LongDesc is shown when the object lies in a room
	LongDesc string `json:"long_desc"`

	// TypeStr is the object type from JSON
	TypeStr string `json:"type"`

	// Wear lists the slot names the object can be worn on.
	Wear []string `json:"wear,omitempty"`

	Triggers []Vnum `json:"triggers,omitempty"`

	// Count is the number of live instances.
	Count int `json:"-"`
}

// VirtualNumber satisfies Numbered.
func (o *ObjTemplate) VirtualNumber() Vnum {
	return o.Number
}

// Type returns the parsed ObjectType from TypeStr.
func (o *ObjTemplate) Type() ObjectType {
	switch strings.ToLower(o.TypeStr) {
	case "other":
		return ObjectTypeOther
	case "container":
		return ObjectTypeContainer
	case "treasure":
		return ObjectTypeTreasure
	case "weapon":
		return ObjectTypeWeapon
	case "armor":
		return ObjectTypeArmor
	case "trap":
		return ObjectTypeTrap
	default:
		return ObjectTypeUnknown
	}
}

// CanWear reports whether the object may be worn on slot.
func (o *ObjTemplate) CanWear(slot WearSlot) bool {
	if !slot.Valid() {
		return false
	}
	return slices.ContainsFunc(o.Wear, func(w string) bool {
		return strings.EqualFold(w, wearNames[slot])
	})
}

// Validate satisfies storage.ValidatingSpec
func (o *ObjTemplate) Validate() error {
	el := errors.NewErrorList()
	if len(o.Aliases) < 1 {
		el.Add(fmt.Errorf("object alias is required"))
	}
	if o.ShortDesc == "" {
		el.Add(fmt.Errorf("object short description is required"))
	}
	if o.TypeStr == "" {
		el.Add(fmt.Errorf("object type is required"))
	} else if o.Type() == ObjectTypeUnknown {
		el.Add(fmt.Errorf("object type %q is invalid", o.TypeStr))
	}
	for _, w := range o.Wear {
		if !slices.ContainsFunc(wearNames[:], func(n string) bool { return strings.EqualFold(n, w) }) {
			el.Add(fmt.Errorf("wear slot %q is invalid", w))
		}
	}
	return el.Err()
}

// ObjectInstance is one spawned copy of an ObjTemplate. At most one of Room,
// In, CarriedBy and WornBy locates it; an object with none of them is held
// at nowhere for scripts.
type ObjectInstance struct {
	InstanceId string
	Proto      *ObjTemplate

	Room      RoomRnum
	In        *ObjectInstance
	CarriedBy *MobileInstance
	WornBy    *MobileInstance
	WornOn    WearSlot

	Contents []*ObjectInstance

	Vars storage.Vars
}

// Placed reports whether the object sits anywhere in the world.
func (oi *ObjectInstance) Placed() bool {
	return oi.Room != Nowhere || oi.In != nil || oi.CarriedBy != nil || oi.WornBy != nil
}

// OuterRoom returns the room the object is ultimately in, following
// containers and whoever carries or wears it.
func (oi *ObjectInstance) OuterRoom() RoomRnum {
	for oi.In != nil {
		oi = oi.In
	}
	switch {
	case oi.CarriedBy != nil:
		return oi.CarriedBy.Room
	case oi.WornBy != nil:
		return oi.WornBy.Room
	}
	return oi.Room
}
