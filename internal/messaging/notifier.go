package messaging

import (
	"context"
	"fmt"

	"github.com/pixil98/go-worldcore/internal/display"
	"github.com/pixil98/go-worldcore/internal/world"
)

// ResetNotifier publishes a zone report after every reset. It satisfies
// reset.Notifier.
type ResetNotifier struct {
	pub Publisher
}

func NewResetNotifier(pub Publisher) *ResetNotifier {
	return &ResetNotifier{pub: pub}
}

func (n *ResetNotifier) ZoneReset(_ context.Context, w *world.World, zr world.ZoneRnum) error {
	rep, err := display.NewZoneReport(w, zr)
	if err != nil {
		return fmt.Errorf("building zone report: %w", err)
	}
	text, err := rep.Render()
	if err != nil {
		return fmt.Errorf("rendering zone report: %w", err)
	}
	return publishJSON(n.pub, SubjectZoneReset, ZoneResetNotice{ZoneReport: rep, Text: text})
}
