package command

import (
	"fmt"
	"os"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-worldcore/internal/messaging"
	"github.com/pixil98/go-worldcore/internal/reset"
	"github.com/pixil98/go-worldcore/internal/world"
)

type ResetConfig struct {
	// TuningPath is a YAML file of random treasure knobs. Without one no
	// chests are placed.
	TuningPath    string `json:"tuning_path"`
	VetoTimeout   string `json:"veto_timeout"`
	InstanceLimit int    `json:"instance_limit"`
}

func (c *ResetConfig) validate() error {
	el := errors.NewErrorList()

	if c.TuningPath != "" {
		if _, err := os.Stat(c.TuningPath); err != nil {
			el.Add(fmt.Errorf("reset: invalid tuning_path %q: %w", c.TuningPath, err))
		}
	}
	if c.VetoTimeout != "" {
		d, err := time.ParseDuration(c.VetoTimeout)
		if err != nil {
			el.Add(fmt.Errorf("parsing reset.veto_timeout: %w", err))
		} else if d <= 0 {
			el.Add(fmt.Errorf("reset.veto_timeout must be positive"))
		}
	}
	if c.InstanceLimit < 0 {
		el.Add(fmt.Errorf("reset.instance_limit must not be negative"))
	}

	return el.Err()
}

func (c *ResetConfig) worldOpts() []world.WorldOpt {
	if c.InstanceLimit == 0 {
		return nil
	}
	return []world.WorldOpt{world.WithInstanceLimit(c.InstanceLimit)}
}

func (c *ResetConfig) buildTuning() (reset.Tuning, error) {
	if c.TuningPath == "" {
		return reset.DefaultTuning(), nil
	}
	return reset.LoadTuning(c.TuningPath)
}

// buildInterpreter wires the reset interpreter to the bus: trigger work and
// wear vetoes go to the scripting engine, and every finished reset is
// announced.
func (c *ResetConfig) buildInterpreter(w *world.World, pub messaging.Publisher) (*reset.Interpreter, error) {
	tuning, err := c.buildTuning()
	if err != nil {
		return nil, err
	}

	var busOpts []messaging.TriggerBusOpt
	if c.VetoTimeout != "" {
		d, err := time.ParseDuration(c.VetoTimeout)
		if err != nil {
			return nil, fmt.Errorf("parsing veto_timeout: %w", err)
		}
		busOpts = append(busOpts, messaging.WithVetoTimeout(d))
	}

	return reset.NewInterpreter(w,
		reset.WithTriggers(messaging.NewTriggerBus(pub, w, busOpts...)),
		reset.WithNotifier(messaging.NewResetNotifier(pub)),
		reset.WithTuning(tuning),
	), nil
}
