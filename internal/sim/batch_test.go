package sim

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/rkode/internal/dynamo"
	"github.com/san-kum/rkode/internal/integrators"
	"github.com/san-kum/rkode/internal/trajectory"
)

var _ = Describe("RunBatch", func() {
	It("runs every method independently and keeps job order", func() {
		steppers := integrators.All()
		sinks := make([]*trajectory.Memory, len(steppers))
		jobs := make([]Job, len(steppers))
		for i, s := range steppers {
			sinks[i] = trajectory.NewMemory()
			jobs[i] = Job{
				Name:    s.Name(),
				Field:   decay,
				Stepper: s,
				Config:  dynamo.Config{Order: 1, H: 0.1, N: 10},
				Y0:      dynamo.State{1},
				Sink:    sinks[i],
			}
		}

		outcomes := RunBatch(context.Background(), jobs)
		Expect(FirstError(outcomes)).NotTo(HaveOccurred())
		Expect(outcomes).To(HaveLen(4))

		prevErr := math.Inf(1)
		for i, o := range outcomes {
			Expect(o.Name).To(Equal(steppers[i].Name()))
			Expect(sinks[i].Len()).To(Equal(11))
			err := math.Abs(o.Result.Final[0] - math.Exp(-1))
			Expect(err).To(BeNumerically("<", prevErr))
			prevErr = err
		}
	})

	It("reports failures per job", func() {
		jobs := []Job{
			{Name: "ok", Field: decay, Stepper: integrators.NewRK4(), Config: dynamo.Config{Order: 1, H: 0.1, N: 2}, Y0: dynamo.State{1}},
			{Name: "bad", Field: decay, Stepper: integrators.NewRK4(), Config: dynamo.Config{Order: 1, H: -1, N: 2}, Y0: dynamo.State{1}},
		}

		outcomes := RunBatch(context.Background(), jobs)
		Expect(outcomes[0].Err).NotTo(HaveOccurred())
		Expect(outcomes[1].Err).To(MatchError(dynamo.ErrConfig))
		Expect(FirstError(outcomes)).To(MatchError(dynamo.ErrConfig))
	})
})
