// Package dynamo provides the core value types of the flight engine.
//
// The package defines the data that flows between the force model, the
// steppers and the consumers of a finished run:
//
//   - [Vec3]: three-component vector, y is height, x downrange, z lateral
//   - [KinematicState]: position and velocity at a simulated time
//   - [ForceSet]: Magnus, drag and gravity vectors acting on the projectile
//   - [Sample]: immutable snapshot recorded once per integration step
//   - [Recorder]: accumulates samples into a [Trajectory]
//   - [Stepper]: advances a state by one fixed time step
//
// # Example
//
//	rec := dynamo.NewRecorder(n)
//	rec.Record(sample)
//	traj := rec.Finish()
//	last := traj.Last()
//
// # Thread Safety
//
// Values are plain data and safe to share once built. A Recorder is owned by
// a single integration run and must not be shared; the Trajectory it produces
// is read-only and may be read concurrently.
package dynamo
