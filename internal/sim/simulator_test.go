package sim

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rkode/internal/dynamo"
	"github.com/san-kum/rkode/internal/integrators"
	"github.com/san-kum/rkode/internal/trajectory"
)

var decay = dynamo.FieldFunc(func(t float64, y dynamo.State) dynamo.State {
	return dynamo.State{-y[0]}
})

var oscillator = dynamo.FieldFunc(func(t float64, y dynamo.State) dynamo.State {
	return dynamo.State{y[1], -y[0]}
})

type countingField struct {
	inner dynamo.VectorField
	calls int
}

func (c *countingField) Eval(t float64, y dynamo.State) dynamo.State {
	c.calls++
	return c.inner.Eval(t, y)
}

type failingSink struct {
	accepted int
	limit    int
}

var errDiskFull = errors.New("disk full")

func (f *failingSink) Record(t float64, y dynamo.State) error {
	if f.accepted >= f.limit {
		return errDiskFull
	}
	f.accepted++
	return nil
}

type sampleMetric struct {
	count int
	sum   float64
}

func (m *sampleMetric) Name() string { return "mean_y0" }
func (m *sampleMetric) Observe(t float64, y dynamo.State) {
	m.count++
	m.sum += y[0]
}
func (m *sampleMetric) Value() float64 {
	if m.count == 0 {
		return 0
	}
	return m.sum / float64(m.count)
}
func (m *sampleMetric) Reset() {
	m.count = 0
	m.sum = 0
}

var _ = Describe("Simulator", func() {
	var (
		ctx  context.Context
		sink *trajectory.Memory
	)

	BeforeEach(func() {
		ctx = context.Background()
		sink = trajectory.NewMemory()
	})

	Describe("recording", func() {
		It("records the initial condition plus one point per step", func() {
			cfg := dynamo.Config{Order: 1, T0: 0, H: 0.1, N: 10}
			result, err := Integrate(ctx, decay, integrators.NewRK4(), cfg, dynamo.State{1.0}, sink)

			Expect(err).NotTo(HaveOccurred())
			Expect(sink.Len()).To(Equal(11))
			Expect(result.Steps).To(Equal(10))
			Expect(result.Evaluations).To(Equal(40))
			Expect(result.Method).To(Equal("rk4"))
			Expect(result.FinalTime).To(BeNumerically("~", 1.0, 1e-12))
			Expect(result.Final[0]).To(BeNumerically("~", math.Exp(-1.0), 1e-5))
		})

		It("records times in increasing order starting at t0", func() {
			cfg := dynamo.Config{Order: 2, T0: 2.5, H: 0.25, N: 8}
			_, err := Integrate(ctx, oscillator, integrators.NewRK2(), cfg, dynamo.State{1, 0}, sink)
			Expect(err).NotTo(HaveOccurred())

			traj := sink.Trajectory()
			Expect(traj.Times[0]).To(Equal(2.5))
			for i := 1; i < traj.Len(); i++ {
				Expect(traj.Times[i] - traj.Times[i-1]).To(BeNumerically("~", 0.25, 1e-12))
			}
			Expect(traj.States[0]).To(Equal(dynamo.State{1, 0}))
		})

		It("reproduces the closed form for Euler on the decay field", func() {
			cfg := dynamo.Config{Order: 1, H: 0.1, N: 10}
			result, err := Integrate(ctx, decay, integrators.NewEuler(), cfg, dynamo.State{1.0}, sink)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Final[0]).To(BeNumerically("~", math.Pow(0.9, 10), 1e-12))
		})

		It("records once and evaluates nothing when n is zero", func() {
			field := &countingField{inner: decay}
			cfg := dynamo.Config{Order: 1, T0: 3, H: 0.1, N: 0}
			result, err := Integrate(ctx, field, integrators.NewRK4(), cfg, dynamo.State{7}, sink)

			Expect(err).NotTo(HaveOccurred())
			Expect(sink.Len()).To(Equal(1))
			Expect(field.calls).To(BeZero())
			Expect(result.Steps).To(BeZero())
			Expect(result.Final).To(Equal(dynamo.State{7}))
			Expect(result.FinalTime).To(Equal(3.0))
		})

		It("accepts a nil sink", func() {
			cfg := dynamo.Config{Order: 1, H: 0.1, N: 5}
			result, err := Integrate(ctx, decay, integrators.NewRK3(), cfg, dynamo.State{1}, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Steps).To(Equal(5))
		})

		It("does not modify the caller's initial state", func() {
			y0 := dynamo.State{1, 0}
			cfg := dynamo.Config{Order: 2, H: 0.1, N: 20}
			_, err := Integrate(ctx, oscillator, integrators.NewRK4(), cfg, y0, sink)
			Expect(err).NotTo(HaveOccurred())
			Expect(y0).To(Equal(dynamo.State{1, 0}))
		})
	})

	Describe("validation", func() {
		DescribeTable("rejects bad step sizes and counts before recording",
			func(cfg dynamo.Config) {
				field := &countingField{inner: decay}
				result, err := Integrate(ctx, field, integrators.NewRK4(), cfg, dynamo.State{1}, sink)

				Expect(err).To(MatchError(dynamo.ErrConfig))
				Expect(result).To(BeNil())
				Expect(sink.Len()).To(BeZero())
				Expect(field.calls).To(BeZero())
			},
			Entry("zero h", dynamo.Config{Order: 1, H: 0, N: 10}),
			Entry("negative h", dynamo.Config{Order: 1, H: -0.1, N: 10}),
			Entry("NaN h", dynamo.Config{Order: 1, H: math.NaN(), N: 10}),
			Entry("negative n", dynamo.Config{Order: 1, H: 0.1, N: -1}),
		)

		DescribeTable("rejects dimension problems before recording",
			func(order int, y0 dynamo.State) {
				cfg := dynamo.Config{Order: order, H: 0.1, N: 3}
				_, err := Integrate(ctx, decay, integrators.NewEuler(), cfg, y0, sink)

				Expect(err).To(MatchError(dynamo.ErrDimension))
				Expect(sink.Len()).To(BeZero())
			},
			Entry("zero order", 0, dynamo.State{}),
			Entry("negative order", -2, dynamo.State{1}),
			Entry("short initial state", 2, dynamo.State{1}),
			Entry("long initial state", 1, dynamo.State{1, 2}),
		)
	})

	Describe("failures while stepping", func() {
		It("aborts at the step where the field changes dimension", func() {
			field := dynamo.FieldFunc(func(t float64, y dynamo.State) dynamo.State {
				if t >= 0.25 {
					return dynamo.State{1, 2}
				}
				return dynamo.State{-y[0]}
			})
			cfg := dynamo.Config{Order: 1, H: 0.1, N: 10}
			result, err := Integrate(ctx, field, integrators.NewEuler(), cfg, dynamo.State{1}, sink)

			Expect(err).To(MatchError(dynamo.ErrDimension))
			var dimErr *dynamo.DimensionError
			Expect(errors.As(err, &dimErr)).To(BeTrue())
			Expect(dimErr.Step).To(Equal(3))
			Expect(dimErr.Want).To(Equal(1))
			Expect(dimErr.Got).To(Equal(2))
			Expect(result.Steps).To(Equal(3))
			Expect(sink.Len()).To(Equal(4))
		})

		It("surfaces sink failures and keeps earlier records", func() {
			failing := &failingSink{limit: 4}
			cfg := dynamo.Config{Order: 1, H: 0.1, N: 10}
			result, err := Integrate(ctx, decay, integrators.NewRK2(), cfg, dynamo.State{1}, failing)

			Expect(err).To(MatchError(dynamo.ErrSink))
			Expect(errors.Is(err, errDiskFull)).To(BeTrue())
			var sinkErr *dynamo.SinkError
			Expect(errors.As(err, &sinkErr)).To(BeTrue())
			Expect(sinkErr.Step).To(Equal(4))
			Expect(failing.accepted).To(Equal(4))
			Expect(result.Steps).To(Equal(4))
		})

		It("reports the initial record failing as step zero", func() {
			failing := &failingSink{limit: 0}
			cfg := dynamo.Config{Order: 1, H: 0.1, N: 10}
			result, err := Integrate(ctx, decay, integrators.NewRK2(), cfg, dynamo.State{1}, failing)

			var sinkErr *dynamo.SinkError
			Expect(errors.As(err, &sinkErr)).To(BeTrue())
			Expect(sinkErr.Step).To(BeZero())
			Expect(result.Steps).To(BeZero())
		})

		It("stops on NaN when state validation is enabled", func() {
			blowup := dynamo.FieldFunc(func(t float64, y dynamo.State) dynamo.State {
				if t > 0.15 {
					return dynamo.State{math.Inf(1)}
				}
				return dynamo.State{1}
			})
			cfg := dynamo.Config{Order: 1, H: 0.1, N: 10, ValidateState: true}
			result, err := Integrate(ctx, blowup, integrators.NewEuler(), cfg, dynamo.State{0}, sink)

			Expect(err).To(MatchError(dynamo.ErrUnstable))
			Expect(result.Final.IsValid()).To(BeTrue())
			Expect(sink.Len()).To(Equal(result.Steps + 1))
		})

		It("honours context cancellation between steps", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()

			cfg := dynamo.Config{Order: 1, H: 0.1, N: 10}
			result, err := Integrate(cancelled, decay, integrators.NewRK4(), cfg, dynamo.State{1}, sink)

			Expect(err).To(MatchError(context.Canceled))
			Expect(result.Steps).To(BeZero())
			Expect(sink.Len()).To(Equal(1))
		})
	})

	Describe("metrics", func() {
		It("observes every recorded point and reports the value", func() {
			metric := &sampleMetric{}
			s := New(decay, integrators.NewRK4())
			s.AddMetric(metric)

			cfg := dynamo.Config{Order: 1, H: 0.1, N: 10}
			result, err := s.Run(ctx, dynamo.State{1}, cfg, sink)

			Expect(err).NotTo(HaveOccurred())
			Expect(metric.count).To(Equal(11))
			Expect(result.Metrics).To(HaveKey("mean_y0"))

			_, err = s.Run(ctx, dynamo.State{1}, cfg, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(metric.count).To(Equal(11))
		})
	})
})
