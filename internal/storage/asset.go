package storage

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/pixil98/go-errors"
)

// Record ids are vnums written out in decimal.
var identifierPattern = regexp.MustCompile(`^[0-9]+$`)

type ValidatingSpec interface {
	Validate() error
}

// Asset is the envelope every record file is wrapped in.
type Asset[T ValidatingSpec] struct {
	Version    uint   `json:"version"`
	Identifier string `json:"id"`
	Spec       T      `json:"spec"`
}

// Vnum returns the id as a number. Only meaningful once Validate passes.
func (a *Asset[T]) Vnum() int {
	n, _ := strconv.Atoi(a.Identifier)
	return n
}

func (a *Asset[T]) Validate() error {
	el := errors.NewErrorList()

	if a.Version == 0 {
		el.Add(fmt.Errorf("version must be set"))
	}

	switch {
	case a.Identifier == "":
		el.Add(fmt.Errorf("id must be set"))
	case !identifierPattern.MatchString(a.Identifier):
		el.Add(fmt.Errorf("id %q must be a vnum", a.Identifier))
	default:
		if _, err := strconv.Atoi(a.Identifier); err != nil {
			el.Add(fmt.Errorf("id %q is out of range", a.Identifier))
		}
	}

	if err := a.Spec.Validate(); err != nil {
		el.Add(fmt.Errorf("spec: %w", err))
	}

	return el.Err()
}
