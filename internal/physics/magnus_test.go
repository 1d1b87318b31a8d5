package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/spinflight/internal/dynamo"
	"github.com/san-kum/spinflight/internal/physics"
)

func baseParams() physics.Params {
	return physics.Params{
		InitialSpeed: 20,
		Elevation:    math.Pi / 4,
		DragK:        0.002,
		MagnusK:      0.001,
		SpinRate:     physics.RPMToRadPerSec(3000),
		Spin:         physics.SpinTop,
		Mass:         physics.DefaultMass,
		Gravity:      physics.DefaultGravity,
		Dt:           0.01,
		Duration:     10,
	}
}

func stateWithVelocity(v dynamo.Vec3) dynamo.KinematicState {
	return dynamo.KinematicState{Velocity: v}
}

var _ = Describe("ForceModel", func() {
	var p physics.Params

	BeforeEach(func() {
		p = baseParams()
	})

	Describe("gravity", func() {
		It("is constant and points down", func() {
			fm := physics.NewForceModel(p)
			for _, v := range []dynamo.Vec3{dynamo.Zero, dynamo.V(10, 5, -3), dynamo.V(-40, -20, 1)} {
				Expect(fm.Forces(stateWithVelocity(v)).Gravity).To(Equal(dynamo.V(0, -p.Mass*p.Gravity, 0)))
			}
		})
	})

	Describe("drag", func() {
		It("is zero at rest", func() {
			f := physics.NewForceModel(p).Forces(stateWithVelocity(dynamo.Zero))
			Expect(f.Drag.IsZero()).To(BeTrue())
		})

		It("is quadratic in speed", func() {
			v := dynamo.V(3, 4, 0)
			f := physics.NewForceModel(p).Forces(stateWithVelocity(v))
			Expect(f.Drag.Norm()).To(BeNumerically("~", p.DragK*25, 1e-12))
		})

		DescribeTable("opposes the velocity",
			func(v dynamo.Vec3) {
				f := physics.NewForceModel(p).Forces(stateWithVelocity(v))
				Expect(f.Drag.Dot(v)).To(BeNumerically("<=", 0))
				Expect(f.Drag.Cross(v).Norm()).To(BeNumerically("~", 0, 1e-9))
			},
			Entry("downrange", dynamo.V(30, 0, 0)),
			Entry("climbing", dynamo.V(14, 14, 0)),
			Entry("falling sideways", dynamo.V(5, -12, 7)),
			Entry("backwards", dynamo.V(-8, 1, -2)),
		)

		It("vanishes when the drag constant is zero", func() {
			p.DragK = 0
			f := physics.NewForceModel(p).Forces(stateWithVelocity(dynamo.V(50, 10, 0)))
			Expect(f.Drag.IsZero()).To(BeTrue())
		})
	})

	Describe("Magnus force", func() {
		It("lifts a top-spinning ball moving downrange", func() {
			f := physics.NewForceModel(p).Forces(stateWithVelocity(dynamo.V(10, 0, 0)))
			k := p.MagnusK * p.SpinRate * 10
			Expect(f.Magnus.X).To(BeNumerically("~", 0, 1e-12))
			Expect(f.Magnus.Y).To(BeNumerically("~", k, 1e-12))
			Expect(f.Magnus.Z).To(BeNumerically("~", 0, 1e-12))
		})

		It("pushes a side-spinning ball laterally", func() {
			p.Spin = physics.SpinSide
			f := physics.NewForceModel(p).Forces(stateWithVelocity(dynamo.V(10, 0, 0)))
			Expect(f.Magnus.Y).To(BeNumerically("~", 0, 1e-12))
			Expect(f.Magnus.Z).To(BeNumerically("~", -p.MagnusK*p.SpinRate*10, 1e-12))
		})

		It("reverses with the sign of the spin rate", func() {
			v := dynamo.V(12, 3, 1)
			pos := physics.NewForceModel(p).Forces(stateWithVelocity(v)).Magnus
			p.SpinRate = -p.SpinRate
			neg := physics.NewForceModel(p).Forces(stateWithVelocity(v)).Magnus
			Expect(pos.Add(neg).Norm()).To(BeNumerically("~", 0, 1e-12))
		})

		It("is perpendicular to the velocity", func() {
			v := dynamo.V(12, 3, 1)
			f := physics.NewForceModel(p).Forces(stateWithVelocity(v))
			Expect(f.Magnus.Dot(v)).To(BeNumerically("~", 0, 1e-9))
		})

		It("is zero without spin whatever the rate", func() {
			p.Spin = physics.SpinNone
			p.SpinRate = physics.RPMToRadPerSec(5000)
			f := physics.NewForceModel(p).Forces(stateWithVelocity(dynamo.V(30, 10, -4)))
			Expect(f.Magnus.IsZero()).To(BeTrue())
		})

		It("is zero at rest", func() {
			f := physics.NewForceModel(p).Forces(stateWithVelocity(dynamo.Zero))
			Expect(f.Magnus.IsZero()).To(BeTrue())
		})
	})

	Describe("acceleration", func() {
		It("is the total force divided by the mass", func() {
			fm := physics.NewForceModel(p)
			s := stateWithVelocity(dynamo.V(15, 8, 2))
			want := fm.Forces(s).Total().Scale(1 / p.Mass)
			Expect(dynamo.Acceleration(fm, s)).To(Equal(want))
			Expect(fm.Sample(s).Acceleration).To(Equal(want))
		})

		It("is plain gravity in vacuum", func() {
			p.DragK, p.MagnusK = 0, 0
			a := dynamo.Acceleration(physics.NewForceModel(p), stateWithVelocity(dynamo.V(20, 5, 0)))
			Expect(a.X).To(BeNumerically("~", 0, 1e-12))
			Expect(a.Y).To(BeNumerically("~", -p.Gravity, 1e-12))
			Expect(a.Z).To(BeNumerically("~", 0, 1e-12))
		})
	})

	Describe("mechanical energy", func() {
		It("adds kinetic and potential terms", func() {
			fm := physics.NewForceModel(p)
			s := dynamo.KinematicState{Position: dynamo.V(0, 2, 0), Velocity: dynamo.V(3, 4, 0)}
			want := 0.5*p.Mass*25 + p.Mass*p.Gravity*2
			Expect(fm.MechanicalEnergy(s)).To(BeNumerically("~", want, 1e-12))
		})
	})
})
