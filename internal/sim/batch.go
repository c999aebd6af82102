package sim

import (
	"context"
	"sync"
	"time"

	"github.com/san-kum/rkode/internal/dynamo"
)

// Job is one independent integration run.
type Job struct {
	Name    string
	Field   dynamo.VectorField
	Stepper dynamo.Stepper
	Config  dynamo.Config
	Y0      dynamo.State
	Sink    dynamo.Sink
	Metrics []dynamo.Metric
}

type Outcome struct {
	Name    string
	Result  *dynamo.Result
	Err     error
	Elapsed time.Duration
}

// RunBatch runs every job on its own goroutine and returns the outcomes in
// job order. Jobs must not share sinks, metrics or mutable fields.
func RunBatch(ctx context.Context, jobs []Job) []Outcome {
	outcomes := make([]Outcome, len(jobs))

	var wg sync.WaitGroup
	for i := range jobs {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			job := jobs[idx]
			s := New(job.Field, job.Stepper)
			for _, m := range job.Metrics {
				s.AddMetric(m)
			}

			start := time.Now()
			result, err := s.Run(ctx, job.Y0, job.Config, job.Sink)
			outcomes[idx] = Outcome{
				Name:    job.Name,
				Result:  result,
				Err:     err,
				Elapsed: time.Since(start),
			}
		}(i)
	}

	wg.Wait()
	return outcomes
}

// FirstError returns the first failed outcome's error, if any.
func FirstError(outcomes []Outcome) error {
	for _, o := range outcomes {
		if o.Err != nil {
			return o.Err
		}
	}
	return nil
}
