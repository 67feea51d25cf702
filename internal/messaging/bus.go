package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/pixil98/go-worldcore/internal/reset"
	"github.com/pixil98/go-worldcore/internal/world"
)

const DefaultVetoTimeout = 250 * time.Millisecond

// TriggerBus hands reset-time script work to the scripting engine over the
// bus. It satisfies reset.Triggers.
type TriggerBus struct {
	pub         Publisher
	world       *world.World
	vetoTimeout time.Duration
}

func NewTriggerBus(pub Publisher, w *world.World, opts ...TriggerBusOpt) *TriggerBus {
	b := &TriggerBus{
		pub:         pub,
		world:       w,
		vetoTimeout: DefaultVetoTimeout,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

type TriggerBusOpt func(*TriggerBus)

// WithVetoTimeout sets how long a wear veto request may wait for a reply.
func WithVetoTimeout(d time.Duration) TriggerBusOpt {
	return func(b *TriggerBus) {
		b.vetoTimeout = d
	}
}

func (b *TriggerBus) event(t reset.Target) TriggerEvent {
	ev := TriggerEvent{Zone: t.Zone, Target: t.Kind.String(), Room: world.NoVnum}
	switch {
	case t.Mobile != nil:
		ev.Instance = t.Mobile.InstanceId
		ev.Vnum = t.Mobile.Proto.Number
		ev.Room = b.roomVnum(t.Mobile.Room)
	case t.Object != nil:
		ev.Instance = t.Object.InstanceId
		ev.Vnum = t.Object.Proto.Number
		ev.Room = b.roomVnum(t.Object.OuterRoom())
	case t.Room != nil:
		ev.Vnum = t.Room.Number
		ev.Room = t.Room.Number
	}
	return ev
}

func (b *TriggerBus) roomVnum(r world.RoomRnum) world.Vnum {
	if room := b.world.Room(r); room != nil {
		return room.Number
	}
	return world.NoVnum
}

// Attach satisfies reset.Triggers.
func (b *TriggerBus) Attach(_ context.Context, t reset.Target, trigger world.Vnum) error {
	ev := b.event(t)
	ev.Trigger = trigger
	return publishJSON(b.pub, SubjectTriggerAttach, ev)
}

// SetVariable satisfies reset.Triggers.
func (b *TriggerBus) SetVariable(_ context.Context, t reset.Target, name, value string) error {
	ev := b.event(t)
	ev.Name, ev.Value = name, value
	return publishJSON(b.pub, SubjectTriggerVar, ev)
}

// RoomReset satisfies reset.Triggers. Rooms without triggers are skipped.
func (b *TriggerBus) RoomReset(_ context.Context, z *world.Zone, r *world.Room) error {
	if len(r.Triggers) == 0 {
		return nil
	}
	return publishJSON(b.pub, SubjectRoomReset, RoomResetEvent{Zone: z.Number, Room: r.Number, Triggers: r.Triggers})
}

// WearAllowed satisfies reset.Triggers. Without a responder, or without a
// usable answer, wearing is allowed.
func (b *TriggerBus) WearAllowed(ctx context.Context, mi *world.MobileInstance, oi *world.ObjectInstance, slot world.WearSlot) bool {
	data, err := json.Marshal(WearVetoRequest{
		Mobile:     mi.InstanceId,
		MobileVnum: mi.Proto.Number,
		Object:     oi.InstanceId,
		ObjectVnum: oi.Proto.Number,
		Slot:       slot.String(),
	})
	if err != nil {
		return true
	}

	reply, err := b.pub.Request(SubjectWearVeto, data, b.vetoTimeout)
	if errors.Is(err, nats.ErrNoResponders) {
		return true
	}
	if err != nil {
		slog.WarnContext(ctx, "wear veto request failed", "mob", mi.Proto.Number, "obj", oi.Proto.Number, "error", err)
		return true
	}

	var r WearVetoReply
	if err := json.Unmarshal(reply, &r); err != nil {
		slog.WarnContext(ctx, "invalid wear veto reply", "error", err)
		return true
	}
	return r.Allowed
}
