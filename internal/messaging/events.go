package messaging

import (
	"github.com/pixil98/go-worldcore/internal/display"
	"github.com/pixil98/go-worldcore/internal/world"
)

const (
	SubjectTriggerAttach = "world.trigger.attach"
	SubjectTriggerVar    = "world.trigger.var"
	SubjectRoomReset     = "world.room.reset"
	SubjectZoneReset     = "world.zone.reset"
	SubjectWearVeto      = "world.wear.veto"
	SubjectZonePlayers   = "world.zone.players"
)

// TriggerEvent hands an attach or variable command to the scripting engine.
// Instance is empty for rooms; Room is the room the target stands in, or
// -1 for objects held at nowhere.
type TriggerEvent struct {
	Zone     world.Vnum `json:"zone"`
	Target   string     `json:"target"`
	Instance string     `json:"instance,omitempty"`
	Vnum     world.Vnum `json:"vnum"`
	Room     world.Vnum `json:"room"`
	Trigger  world.Vnum `json:"trigger,omitempty"`
	Name     string     `json:"name,omitempty"`
	Value    string     `json:"value,omitempty"`
}

// RoomResetEvent fires the reset triggers of one room.
type RoomResetEvent struct {
	Zone     world.Vnum   `json:"zone"`
	Room     world.Vnum   `json:"room"`
	Triggers []world.Vnum `json:"triggers,omitempty"`
}

// WearVetoRequest asks the scripting engine whether a mobile may wear an
// object. The reply is a WearVetoReply.
type WearVetoRequest struct {
	Mobile     string     `json:"mobile"`
	MobileVnum world.Vnum `json:"mobile_vnum"`
	Object     string     `json:"object"`
	ObjectVnum world.Vnum `json:"object_vnum"`
	Slot       string     `json:"slot"`
}

type WearVetoReply struct {
	Allowed bool `json:"allowed"`
}

// ZoneResetNotice is published after every completed reset.
type ZoneResetNotice struct {
	*display.ZoneReport
	Text string `json:"text"`
}

// ZonePlayersEvent is published by the session layer whenever the player
// count of a zone changes.
type ZonePlayersEvent struct {
	Zone    world.Vnum `json:"zone"`
	Players int        `json:"players"`
}
