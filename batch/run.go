package batch

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ConvertFunc converts one job and returns the path it was written to.
type ConvertFunc func(ctx context.Context, job Job) (string, error)

// Result is the outcome of one job.
type Result struct {
	Job    Job
	Output string
	Err    error
}

// Runner converts jobs in parallel.
type Runner struct {
	log     *zap.Logger
	workers int
}

// NewRunner creates a Runner. workers <= 0 means one per CPU.
func NewRunner(log *zap.Logger, workers int) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Runner{log: log.Named("batch"), workers: workers}
}

// Run converts every job. A failing job does not stop the others; results
// keep the order of jobs and the returned error combines all failures.
func (r *Runner) Run(ctx context.Context, jobs []Job, convert ConvertFunc) ([]Result, error) {
	results := make([]Result, len(jobs))

	// jobs never fail the group, ctx alone decides when to stop
	var g errgroup.Group
	g.SetLimit(r.workers)
	for i, job := range jobs {
		g.Go(func() error {
			results[i].Job = job
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			out, err := convert(ctx, job)
			if err != nil {
				r.log.Error("Conversion failed", zap.String("path", job.Path), zap.Error(err))
				results[i].Err = fmt.Errorf("%s: %w", job.Rel, err)
				return nil
			}
			r.log.Debug("Converted", zap.String("path", job.Path), zap.String("output", out))
			results[i].Output = out
			return nil
		})
	}
	_ = g.Wait()

	var err error
	for _, res := range results {
		err = multierr.Append(err, res.Err)
	}
	return results, err
}
