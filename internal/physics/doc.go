// Package physics models a spinning projectile in air.
//
// [Build] turns raw user inputs into [Params], precomputing the drag and
// Magnus constants (0.5·π·r²·ρ·C) and resolving the spin selection into an
// axis:
//
//   - top spin: lateral axis (0, 0, 1), curves the flight vertically
//   - side spin: vertical axis (0, 1, 0), curves the flight sideways
//   - no spin: zero axis, no Magnus force whatever the spin rate
//
// [ForceModel] implements [dynamo.ForceField]:
//
//	F = (0, -m·g, 0) - k_d·|v|·v + k_m·ω·(axis × v)
//
// # Example
//
//	p, err := physics.Build(raw)
//	if err != nil {
//	    return err
//	}
//	fm := physics.NewForceModel(p)
//	f := fm.Forces(p.LaunchState())
package physics
