package display

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
	"github.com/pixil98/go-worldcore/internal/world"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DisabledCommand is a zone command that no longer runs, and why.
type DisabledCommand struct {
	Line   int    `json:"line"`
	Op     string `json:"op"`
	Reason string `json:"reason"`
}

// ZoneReport summarises a zone for builders.
type ZoneReport struct {
	Zone     world.Vnum        `json:"zone"`
	Name     string            `json:"name"`
	Bot      world.Vnum        `json:"bot"`
	Top      world.Vnum        `json:"top"`
	Mode     string            `json:"reset_mode"`
	Lifespan time.Duration     `json:"lifespan"`
	Rooms    int               `json:"rooms"`
	Mobiles  int               `json:"mobiles"`
	Objects  int               `json:"objects"`
	Commands int               `json:"commands"`
	Disabled []DisabledCommand `json:"disabled,omitempty"`
}

// NewZoneReport collects the report for the zone at zr.
func NewZoneReport(w *world.World, zr world.ZoneRnum) (*ZoneReport, error) {
	z := w.Zone(zr)
	if z == nil {
		return nil, fmt.Errorf("zone rnum %d: %w", zr, world.ErrNotFound)
	}

	rep := &ZoneReport{
		Zone:     z.Number,
		Name:     z.Name,
		Bot:      z.Bot,
		Top:      z.Top,
		Mode:     z.ResetMode,
		Lifespan: z.Lifespan,
		Commands: len(z.Commands),
	}

	for _, r := range w.ZoneRooms(zr) {
		room := w.Room(r)
		rep.Rooms++
		rep.Mobiles += len(room.Mobiles)
		rep.Objects += countObjects(room.Objects)
		for _, mi := range room.Mobiles {
			rep.Objects += countObjects(mi.Inventory)
			for _, oi := range mi.Equipment {
				if oi != nil {
					rep.Objects += 1 + countObjects(oi.Contents)
				}
			}
		}
	}

	for _, c := range z.Disabled() {
		rep.Disabled = append(rep.Disabled, DisabledCommand{Line: c.Line, Op: c.Was.String(), Reason: c.Disabled})
	}

	return rep, nil
}

func countObjects(list []*world.ObjectInstance) int {
	n := len(list)
	for _, oi := range list {
		n += countObjects(oi.Contents)
	}
	return n
}

const reportTemplate = `Zone {{ .Zone }}: {{ title .Name }} [{{ .Bot }}-{{ .Top }}]
Resets {{ .Mode }}{{ if .Lifespan }} every {{ .Lifespan }}{{ end }}
{{ count .Rooms "room" }}, {{ count .Mobiles "mobile" }}, {{ count .Objects "object" }}, {{ count .Commands "command" }}
{{- if .Disabled }}
{{ repeat 20 "-" }}
{{- range .Disabled }}
line {{ .Line }} {{ upper .Op }}: {{ .Reason }}
{{- end }}
{{- end }}
`

var (
	printer = message.NewPrinter(language.English)

	reportTmpl = template.Must(template.New("zone").Funcs(sprig.TxtFuncMap()).Funcs(template.FuncMap{
		"title": func(s string) string {
			return cases.Title(language.English).String(s)
		},
		"count": func(n int, noun string) string {
			if n != 1 {
				noun += "s"
			}
			return printer.Sprintf("%d %s", n, noun)
		},
	}).Parse(reportTemplate))
)

// Render formats the report as wrapped text.
func (r *ZoneReport) Render() (string, error) {
	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, r); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return Wrap(buf.String()), nil
}
