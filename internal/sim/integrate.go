package sim

import (
	"fmt"

	"github.com/san-kum/spinflight/internal/dynamo"
	"github.com/san-kum/spinflight/internal/integrators"
	"github.com/san-kum/spinflight/internal/physics"
)

// Integrate runs the reference semi-implicit Euler scheme from x0. Params
// must satisfy Validate; anything else is a programming error and panics.
func Integrate(x0 dynamo.KinematicState, p physics.Params) *dynamo.Trajectory {
	res, err := New(integrators.NewSemiImplicitEuler()).Run(x0, p)
	if err != nil {
		panic(fmt.Sprintf("sim: integrate with invalid parameters: %v", err))
	}
	return res.Trajectory
}

// Launch integrates from the launch state described by p.
func Launch(p physics.Params) *dynamo.Trajectory {
	return Integrate(p.LaunchState(), p)
}
