package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/spinflight/internal/dynamo"
)

// Default is the stepper used when none is named.
const Default = "euler"

var steppers = map[string]func() dynamo.Stepper{
	"euler":    func() dynamo.Stepper { return NewSemiImplicitEuler() },
	"explicit": func() dynamo.Stepper { return NewEuler() },
	"rk4":      func() dynamo.Stepper { return NewRK4() },
	"verlet":   func() dynamo.Stepper { return NewVerlet() },
}

// ByName returns a fresh stepper. An empty name selects Default.
func ByName(name string) (dynamo.Stepper, error) {
	if name == "" {
		name = Default
	}
	fn, ok := steppers[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(steppers))
	for name := range steppers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
