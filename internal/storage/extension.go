package storage

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// Vars holds the script variables set on a room or a live instance. Values
// are kept as JSON so any script value survives a round trip.
type Vars map[string]json.RawMessage

// Set stores v under name, creating the map on first use.
func (v *Vars) Set(name string, val any) error {
	b, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("encoding variable %q: %w", name, err)
	}

	if *v == nil {
		*v = Vars{}
	}
	(*v)[name] = b
	return nil
}

// Get decodes the variable name into out. found is false when it is unset.
func (v Vars) Get(name string, out any) (found bool, err error) {
	raw, ok := v[name]
	if !ok || len(raw) == 0 {
		return false, nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("decoding variable %q: %w", name, err)
	}
	return true, nil
}

func (v Vars) Delete(name string) {
	delete(v, name)
}

// Names returns the set variable names in order.
func (v Vars) Names() []string {
	return slices.Sorted(maps.Keys(v))
}
