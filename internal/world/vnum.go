package world

// Vnum is the stable, author assigned number of an entity definition.
type Vnum int

// NoVnum marks an absent vnum.
const NoVnum Vnum = -1

// Real numbers are positions in a Table. They are only valid until the next
// insert or delete in front of them, so anything holding one must be covered
// by the fix-up pass in fixup.go.
type (
	RoomRnum int
	MobRnum  int
	ObjRnum  int
	ZoneRnum int
	ShopRnum int
)

const (
	Nowhere RoomRnum = -1
	NoMob   MobRnum  = -1
	NoObj   ObjRnum  = -1
	NoZone  ZoneRnum = -1
	NoShop  ShopRnum = -1
)
