package physics_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/spinflight/internal/dynamo"
	"github.com/san-kum/spinflight/internal/physics"
)

func validRaw() physics.RawInputs {
	return physics.RawInputs{
		InitialVelocity: 25,
		Radius:          0.11,
		ElevationDeg:    30,
		AzimuthDeg:      -10,
		DragCoefficient: 0.25,
		LiftCoefficient: 0.1,
		AirDensity:      1.2,
		SpinRateRPM:     600,
		SideSpin:        true,
		TimeStep:        0.01,
		Duration:        10,
	}
}

var _ = Describe("Build", func() {
	It("derives the run constants", func() {
		raw := validRaw()
		p, err := physics.Build(raw)
		Expect(err).NotTo(HaveOccurred())

		aero := 0.5 * math.Pi * 0.11 * 0.11 * 1.2
		Expect(p.DragK).To(BeNumerically("~", aero*0.25, 1e-12))
		Expect(p.MagnusK).To(BeNumerically("~", aero*0.1, 1e-12))
		Expect(p.Elevation).To(BeNumerically("~", math.Pi/6, 1e-12))
		Expect(p.Azimuth).To(BeNumerically("~", -math.Pi/18, 1e-12))
		Expect(p.SpinRate).To(BeNumerically("~", 20*math.Pi, 1e-9))
		Expect(p.Spin).To(Equal(physics.SpinSide))
		Expect(p.SpinAxis()).To(Equal(dynamo.UnitY))
		Expect(p.Mass).To(Equal(physics.DefaultMass))
		Expect(p.Gravity).To(Equal(physics.DefaultGravity))
		Expect(p.Dt).To(Equal(0.01))
		Expect(p.Duration).To(Equal(10.0))
	})

	It("derives the top spin flag from the spin selection", func() {
		raw := validRaw()
		raw.SideSpin, raw.TopSpin = false, true
		p, err := physics.Build(raw)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.IsTopSpin()).To(BeTrue())
		Expect(p.SpinAxis()).To(Equal(dynamo.UnitZ))

		raw.TopSpin, raw.NoSpin = false, true
		p, err = physics.Build(raw)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.IsTopSpin()).To(BeFalse())
		Expect(p.SpinAxis()).To(Equal(dynamo.Zero))
	})

	It("accepts no selection when the spin rate is zero", func() {
		raw := validRaw()
		raw.SideSpin = false
		raw.SpinRateRPM = 0
		p, err := physics.Build(raw)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Spin).To(Equal(physics.SpinNone))
	})

	It("honours mass and gravity overrides", func() {
		raw := validRaw()
		raw.Mass, raw.Gravity = 0.057, 1.62
		p, err := physics.Build(raw)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Mass).To(Equal(0.057))
		Expect(p.Gravity).To(Equal(1.62))
	})

	DescribeTable("rejects broken invariants",
		func(mutate func(*physics.RawInputs), field string, sentinel error) {
			raw := validRaw()
			mutate(&raw)
			_, err := physics.Build(raw)
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, sentinel)).To(BeTrue(), err.Error())

			var ce *dynamo.ConstructionError
			Expect(errors.As(err, &ce)).To(BeTrue())
			Expect(ce.Field).To(Equal(field))
		},
		Entry("top and side spin", func(r *physics.RawInputs) { r.TopSpin = true }, "spin", dynamo.ErrConflictingSpin),
		Entry("side and no spin", func(r *physics.RawInputs) { r.NoSpin = true }, "spin", dynamo.ErrConflictingSpin),
		Entry("rate without spin type", func(r *physics.RawInputs) { r.SideSpin = false }, "spin", dynamo.ErrAmbiguousSpin),
		Entry("zero time step", func(r *physics.RawInputs) { r.TimeStep = 0 }, "time_step", dynamo.ErrStepNotPositive),
		Entry("duration equal to step", func(r *physics.RawInputs) { r.Duration = r.TimeStep }, "duration", dynamo.ErrDurationTooShort),
		Entry("zero radius", func(r *physics.RawInputs) { r.Radius = 0 }, "radius", dynamo.ErrNotPositive),
		Entry("negative drag", func(r *physics.RawInputs) { r.DragCoefficient = -0.1 }, "drag_coefficient", dynamo.ErrNegativeCoefficient),
		Entry("negative lift", func(r *physics.RawInputs) { r.LiftCoefficient = -0.1 }, "lift_coefficient", dynamo.ErrNegativeCoefficient),
		Entry("negative density", func(r *physics.RawInputs) { r.AirDensity = -1 }, "air_density", dynamo.ErrNegativeCoefficient),
		Entry("negative mass", func(r *physics.RawInputs) { r.Mass = -1 }, "mass", dynamo.ErrNotPositive),
		Entry("NaN speed", func(r *physics.RawInputs) { r.InitialVelocity = math.NaN() }, "initial_speed", dynamo.ErrNonFinite),
	)
})

var _ = Describe("Params", func() {
	It("resolves the launch velocity", func() {
		p := baseParams()
		p.Azimuth = math.Pi / 6
		v := p.LaunchVelocity()
		Expect(v.Norm()).To(BeNumerically("~", p.InitialSpeed, 1e-9))
		Expect(v.Y).To(BeNumerically("~", 20*math.Sin(math.Pi/4), 1e-9))
		Expect(v.Z / v.X).To(BeNumerically("~", math.Tan(math.Pi/6), 1e-9))

		s := p.LaunchState()
		Expect(s.Position).To(Equal(dynamo.Zero))
		Expect(s.Time).To(BeZero())
	})

	It("bounds the step count by ceil(duration/dt)", func() {
		p := baseParams()
		Expect(p.MaxSteps()).To(Equal(1000))
		p.Duration = 10.005
		Expect(p.MaxSteps()).To(Equal(1001))
	})

	It("validates a well formed value", func() {
		Expect(baseParams().Validate()).To(Succeed())
	})

	It("rejects an unknown spin type", func() {
		p := baseParams()
		p.Spin = physics.SpinType(7)
		Expect(p.Validate()).To(MatchError(dynamo.ErrConflictingSpin))
	})
})

var _ = Describe("SpinType", func() {
	It("round trips through its name", func() {
		for _, s := range []physics.SpinType{physics.SpinNone, physics.SpinTop, physics.SpinSide} {
			parsed, err := physics.ParseSpinType(s.String())
			Expect(err).NotTo(HaveOccurred())
			Expect(parsed).To(Equal(s))
		}
		_, err := physics.ParseSpinType("backspin")
		Expect(err).To(HaveOccurred())
	})
})
