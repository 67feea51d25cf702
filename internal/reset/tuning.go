package reset

import (
	"fmt"
	"os"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-worldcore/internal/world"
	"gopkg.in/yaml.v3"
)

// TreasureEntry is one weighted row of the random treasure table.
type TreasureEntry struct {
	Vnum   world.Vnum `yaml:"vnum"`
	Weight int        `yaml:"weight"`
}

// Tuning holds the knobs of random treasure placement.
type Tuning struct {
	Treasure       []TreasureEntry `yaml:"treasure"`
	ChestVnum      world.Vnum      `yaml:"chest_vnum"`
	TrapVnum       world.Vnum      `yaml:"trap_vnum"`
	ChestChance    int             `yaml:"chest_chance"`
	TrapChance     int             `yaml:"trap_chance"`
	ChestsPerReset int             `yaml:"chests_per_reset"`
	MaxRounds      int             `yaml:"max_rounds"`
}

// DefaultTuning places no chests.
func DefaultTuning() Tuning {
	return Tuning{
		ChestVnum:      world.NoVnum,
		TrapVnum:       world.NoVnum,
		ChestChance:    10,
		TrapChance:     5,
		ChestsPerReset: 1,
		MaxRounds:      10,
	}
}

// LoadTuning reads a YAML tuning file over the defaults.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("reading tuning file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("parsing tuning file %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("tuning file %s: %w", path, err)
	}
	return t, nil
}

// Validate reports every out-of-range knob at once.
func (t Tuning) Validate() error {
	el := errors.NewErrorList()

	if t.ChestChance < 0 || t.ChestChance > 100 {
		el.Add(fmt.Errorf("chest_chance must be between 0 and 100"))
	}
	if t.TrapChance < 0 || t.TrapChance > 100 {
		el.Add(fmt.Errorf("trap_chance must be between 0 and 100"))
	}
	if t.ChestsPerReset < 0 {
		el.Add(fmt.Errorf("chests_per_reset must not be negative"))
	}
	if t.MaxRounds < 0 {
		el.Add(fmt.Errorf("max_rounds must not be negative"))
	}
	for i, e := range t.Treasure {
		if e.Weight <= 0 {
			el.Add(fmt.Errorf("treasure %d: weight must be positive", i))
		}
	}

	return el.Err()
}

// pick draws a treasure vnum by weight. It returns NoVnum for an empty table.
func (t Tuning) pick(r Roller) world.Vnum {
	total := 0
	for _, e := range t.Treasure {
		total += e.Weight
	}
	if total <= 0 {
		return world.NoVnum
	}

	n := r.Intn(total)
	for _, e := range t.Treasure {
		if n < e.Weight {
			return e.Vnum
		}
		n -= e.Weight
	}
	return world.NoVnum
}
