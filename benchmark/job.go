package benchmark

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"objbench/logging"
	"objbench/progress"
	"objbench/store"
)

// Result holds the merged sample sets of one run.
type Result struct {
	Bandwidth SampleSet // bytes/sec, derived per iteration
	Latency   SampleSet // seconds per iteration
	IOPS      SampleSet // running ops/sec, sampled at each iteration
}

// workerResult is one worker's private accumulators. Workers never share
// mutable state during the timed phase; merging happens after they join.
type workerResult struct {
	bandwidth SampleSet
	latency   SampleSet
	iops      SampleSet
	err       error
}

// Run builds the task, fans it out across p.Workers parallel workers for
// p.RunTime, and merges their sample sets. Any worker error fails the whole
// run; no partial statistics are reported.
func Run(ctx context.Context, st store.Store, p Params) (Result, error) {
	if p.Workers < 1 {
		p.Workers = 1
	}

	task, err := NewTask(ctx, st, p)
	if err != nil {
		return Result{}, err
	}

	// A single limiter shared by every worker caps the aggregate rate.
	var limiter *rate.Limiter
	if p.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(p.RateLimit), p.Workers)
		logging.Infof("rate limit: %d ops/sec", p.RateLimit)
	}

	logging.Infof("starting %s run: %d worker(s), %d byte objects, %s window",
		p.Workload, p.Workers, p.ObjectSize, p.RunTime)

	start := time.Now()
	results := make([]workerResult, p.Workers)

	var wg sync.WaitGroup
	wg.Add(p.Workers)
	for i := 0; i < p.Workers; i++ {
		go func(slot *workerResult) {
			defer wg.Done()
			*slot = runWorker(ctx, st, task, start, p.RunTime, limiter)
		}(&results[i])
	}

	done := make(chan struct{})
	if p.Progress {
		go trackProgress(start, p.RunTime, done)
	}

	wg.Wait()
	close(done)

	merged := Result{}
	for i := range results {
		if results[i].err != nil {
			return Result{}, fmt.Errorf("worker %d: %w", i, results[i].err)
		}
		merged.Bandwidth.Merge(results[i].bandwidth)
		merged.Latency.Merge(results[i].latency)
		merged.IOPS.Merge(results[i].iops)
	}

	logging.Infof("run finished: %d iterations in %s", merged.Latency.Count(), time.Since(start).Round(time.Millisecond))
	return merged, nil
}

// runWorker executes the task until the shared deadline passes. The deadline
// is checked only at iteration boundaries, so an in-flight operation is never
// interrupted; a run can overshoot the window by up to one operation's
// latency.
func runWorker(ctx context.Context, st store.Store, task *Task, start time.Time, window time.Duration, limiter *rate.Limiter) workerResult {
	var res workerResult
	count := 0

	for {
		if time.Since(start) >= window {
			return res
		}

		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				res.err = err
				return res
			}
		}

		opStart := time.Now()
		moved, err := task.Run(ctx, st)
		if err != nil {
			res.err = err
			return res
		}
		lat := time.Since(opStart)
		if lat <= 0 {
			// Clock granularity floor; keeps the derived rates finite.
			lat = time.Nanosecond
		}
		count++

		res.latency.Add(lat.Seconds())
		res.bandwidth.Add(float64(moved) / lat.Seconds())
		res.iops.Add(float64(count) / time.Since(start).Seconds())
	}
}

// trackProgress renders the elapsed-time bar until the workers finish.
func trackProgress(start time.Time, window time.Duration, done <-chan struct{}) {
	bar := progress.NewTimerBar(window)
	bar.SetCaption("Running")

	ticker := time.NewTicker(125 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			bar.Done()
			return
		case <-ticker.C:
			bar.Tick(start)
		}
	}
}
