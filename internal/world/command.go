package world

import (
	"fmt"
	"strings"
)

// Opcode identifies a zone command.
type Opcode int

const (
	OpInvalid Opcode = iota
	OpNoop
	OpSpawnMob
	OpSpawnObj
	OpObjIntoObj
	OpGiveToMob
	OpEquipOnMob
	OpRemoveObj
	OpSetDoor
	OpAttachTrigger
	OpSetVar
	OpTreasureMob
	OpTreasureContainer
	OpJump
	OpStop
)

var opcodeNames = map[Opcode]string{
	OpInvalid:           "invalid",
	OpNoop:              "noop",
	OpSpawnMob:          "spawn_mob",
	OpSpawnObj:          "spawn_obj",
	OpObjIntoObj:        "put_obj",
	OpGiveToMob:         "give_obj",
	OpEquipOnMob:        "equip_obj",
	OpRemoveObj:         "remove_obj",
	OpSetDoor:           "door",
	OpAttachTrigger:     "trigger",
	OpSetVar:            "var",
	OpTreasureMob:       "treasure_mob",
	OpTreasureContainer: "treasure_obj",
	OpJump:              "jump",
	OpStop:              "stop",
}

// Older zone files use single letter opcodes.
var legacyOpcodes = map[string]Opcode{
	"*": OpNoop,
	"M": OpSpawnMob,
	"O": OpSpawnObj,
	"P": OpObjIntoObj,
	"G": OpGiveToMob,
	"E": OpEquipOnMob,
	"R": OpRemoveObj,
	"D": OpSetDoor,
	"T": OpAttachTrigger,
	"V": OpSetVar,
	"Y": OpTreasureMob,
	"Z": OpTreasureContainer,
	"J": OpJump,
	"S": OpStop,
}

func (o Opcode) String() string {
	if n, ok := opcodeNames[o]; ok {
		return n
	}
	return fmt.Sprintf("opcode(%d)", int(o))
}

// ParseOpcode maps an authored opcode to its Opcode. Unknown input yields
// OpInvalid.
func ParseOpcode(s string) Opcode {
	if op, ok := legacyOpcodes[s]; ok {
		return op
	}
	s = strings.ToLower(s)
	for op, n := range opcodeNames {
		if n == s && op != OpInvalid {
			return op
		}
	}
	return OpInvalid
}

// TargetKind selects what a trigger or variable command applies to.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetMob
	TargetObj
	TargetRoom
)

func (k TargetKind) String() string {
	switch k {
	case TargetMob:
		return "mob"
	case TargetObj:
		return "obj"
	case TargetRoom:
		return "room"
	default:
		return "none"
	}
}

// ParseTargetKind maps "mob", "obj" or "room" to a TargetKind.
func ParseTargetKind(s string) TargetKind {
	switch strings.ToLower(s) {
	case "mob":
		return TargetMob
	case "obj":
		return TargetObj
	case "room":
		return TargetRoom
	default:
		return TargetNone
	}
}

// DoorState indexes the fixed catalogue of door bit combinations.
type DoorState int

var doorStates = []ExitFlag{
	0,
	ExitClosed,
	ExitClosed | ExitLocked,
	ExitHidden,
	ExitHidden | ExitClosed,
	ExitHidden | ExitClosed | ExitLocked,
	ExitClosed | ExitLocked | ExitPickproof,
	ExitHidden | ExitClosed | ExitLocked | ExitPickproof,
}

const doorStateMask = ExitClosed | ExitLocked | ExitPickproof | ExitHidden

// Valid reports whether s is in the catalogue.
func (s DoorState) Valid() bool {
	return s >= 0 && int(s) < len(doorStates)
}

// Apply returns f with its door state bits replaced by s. Any state other
// than open also marks the exit as a door.
func (s DoorState) Apply(f ExitFlag) ExitFlag {
	if !s.Valid() {
		return f
	}
	f = (f &^ doorStateMask) | doorStates[s]
	if doorStates[s] != 0 {
		f |= ExitIsDoor
	}
	return f
}

// MaxConditionalOffset bounds the If offset of a command.
const MaxConditionalOffset = 126

// Command is one resolved instruction of a zone program. Operand fields not
// used by Op are left at their sentinels.
type Command struct {
	Op   Opcode
	If   int
	Line int

	Mob       MobRnum
	Obj       ObjRnum
	Container ObjRnum
	Room      RoomRnum

	Max     int
	Percent int

	Slot   WearSlot
	Dir    Direction
	State  DoorState
	Target TargetKind

	Trigger Vnum
	Skip    int
	Name    string
	Value   string

	// Disabled holds the reason a command was turned into a no-op, and Was
	// the opcode it had before.
	Disabled string
	Was      Opcode
}

// Disable turns the command into a no-op, keeping its line for diagnostics.
func (c *Command) Disable(reason string) {
	if c.Active() {
		c.Was = c.Op
	}
	c.Op = OpNoop
	c.Disabled = reason
}

// Active reports whether the command still does anything.
func (c *Command) Active() bool {
	return c.Op != OpNoop && c.Op != OpInvalid
}

// CommandRecord is an authored zone command. Operands are vnums; fields
// introduced after the first file format are optional.
type CommandRecord struct {
	Op   string `json:"op"`
	If   int    `json:"if,omitempty"`
	Line int    `json:"line,omitempty"`

	Mob       *Vnum `json:"mob,omitempty"`
	Obj       *Vnum `json:"obj,omitempty"`
	Container *Vnum `json:"container,omitempty"`
	Room      *Vnum `json:"room,omitempty"`

	Max     int  `json:"max,omitempty"`
	Percent *int `json:"percent,omitempty"`

	Slot   *int   `json:"slot,omitempty"`
	Dir    string `json:"dir,omitempty"`
	State  int    `json:"state,omitempty"`
	Target string `json:"target,omitempty"`

	Trigger Vnum   `json:"trigger,omitempty"`
	Skip    int    `json:"skip,omitempty"`
	Name    string `json:"name,omitempty"`
	Value   string `json:"value,omitempty"`
}
