package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/pendsim/internal/dynamo"
)

// Default is the stepper used when no name is given.
const Default = "rk4"

// Info describes a stepper.
type Info struct {
	Name   string
	Stages int
	Order  int
}

// Stepper is an integrator that can describe itself.
type Stepper interface {
	dynamo.Integrator
	Info() Info
}

var registry = map[string]func() Stepper{
	"rk4":   func() Stepper { return NewRK4() },
	"euler": func() Stepper { return NewEuler() },
}

// Get returns a fresh stepper for name. An empty name selects Default.
func Get(name string) (Stepper, error) {
	if name == "" {
		name = Default
	}
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", dynamo.ErrUnknownIntegrator, name)
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
