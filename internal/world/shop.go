package world

import (
	"fmt"
	"log/slog"

	"github.com/pixil98/go-errors"
)

// Shop ties a keeper mobile to the objects it sells and the rooms it trades in.
type Shop struct {
	Number   Vnum
	Keeper   MobRnum
	Products []ObjRnum
	Rooms    []RoomRnum
}

// VirtualNumber satisfies Numbered.
func (s *Shop) VirtualNumber() Vnum {
	return s.Number
}

// ShopRecord is an authored shop as handed over by the loader.
type ShopRecord struct {
	Number   Vnum   `json:"-"`
	Keeper   Vnum   `json:"keeper"`
	Products []Vnum `json:"products,omitempty"`
	Rooms    []Vnum `json:"rooms"`
}

// Validate satisfies storage.ValidatingSpec.
func (sr *ShopRecord) Validate() error {
	el := errors.NewErrorList()
	if len(sr.Rooms) == 0 {
		el.Add(fmt.Errorf("shop needs at least one room"))
	}
	return el.Err()
}

// newShop resolves a shop record. Entries that do not resolve are dropped
// and logged; a missing keeper leaves the shop unattended.
func (w *World) newShop(sr *ShopRecord) *Shop {
	s := &Shop{Number: sr.Number, Keeper: w.RealMobile(sr.Keeper)}
	if s.Keeper == NoMob {
		slog.Warn("shop keeper does not exist", "shop", sr.Number, "mob", sr.Keeper)
	}
	for _, v := range sr.Products {
		if o := w.RealObject(v); o != NoObj {
			s.Products = append(s.Products, o)
		} else {
			slog.Warn("shop product does not exist", "shop", sr.Number, "obj", v)
		}
	}
	for _, v := range sr.Rooms {
		if r := w.RealRoom(v); r != Nowhere {
			s.Rooms = append(s.Rooms, r)
		} else {
			slog.Warn("shop room does not exist", "shop", sr.Number, "room", v)
		}
	}
	return s
}
