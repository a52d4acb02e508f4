package benchmark

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"objbench/config"
)

// fakeStore is an in-memory Store used to exercise the harness without a
// backend. Failures can be injected per call.
type fakeStore struct {
	mu         sync.Mutex
	objects    map[string][]byte
	reads      int
	writes     int
	opDelay    time.Duration
	failReadAt int // fail the Nth read (1-based), 0 means never
	writeErr   error
	closed     bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string][]byte)}
}

func (f *fakeStore) Read(ctx context.Context, key string) (int64, error) {
	if f.opDelay > 0 {
		time.Sleep(f.opDelay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	if f.failReadAt > 0 && f.reads >= f.failReadAt {
		return 0, errors.New("injected read failure")
	}
	data, ok := f.objects[key]
	if !ok {
		return 0, fmt.Errorf("no such key %q", key)
	}
	return int64(len(data)), nil
}

func (f *fakeStore) Write(ctx context.Context, key string, payload []byte) (int64, error) {
	if f.opDelay > 0 {
		time.Sleep(f.opDelay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	f.objects[key] = append([]byte(nil), payload...)
	return int64(len(payload)), nil
}

func (f *fakeStore) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func uploadParams(workers int, window time.Duration) Params {
	return Params{
		Workers:    workers,
		Workload:   config.WorkloadUpload,
		ObjectSize: 4096,
		RunTime:    window,
	}
}

// TestRunUploadSingleWorker drives one worker for 200ms against an instant
// store and checks the run completes with sane bandwidth samples.
func TestRunUploadSingleWorker(t *testing.T) {
	fs := newFakeStore()

	res, err := Run(context.Background(), fs, uploadParams(1, 200*time.Millisecond))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if res.Bandwidth.Count() < 1 {
		t.Fatal("expected at least one bandwidth sample")
	}
	if res.Bandwidth.Count() != res.Latency.Count() || res.Latency.Count() != res.IOPS.Count() {
		t.Fatalf("sample counts diverge: bw=%d lat=%d iops=%d",
			res.Bandwidth.Count(), res.Latency.Count(), res.IOPS.Count())
	}
	for _, v := range res.Bandwidth.values {
		if v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
			t.Fatalf("bandwidth sample not positive finite: %v", v)
		}
	}
}

// TestRunMergesAllWorkers checks that the merged sample count equals the
// total number of iterations across all workers.
func TestRunMergesAllWorkers(t *testing.T) {
	fs := newFakeStore()
	fs.opDelay = time.Millisecond

	res, err := Run(context.Background(), fs, uploadParams(4, 100*time.Millisecond))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	// Upload runs do no staging write, so every store write is one iteration.
	if res.Latency.Count() != fs.writes {
		t.Fatalf("expected %d latency samples, got %d", fs.writes, res.Latency.Count())
	}
	if res.Bandwidth.Count() != fs.writes || res.IOPS.Count() != fs.writes {
		t.Fatalf("merged counts diverge from %d iterations", fs.writes)
	}
}

// TestRunHonorsDeadline ensures the wall-clock run time stays close to the
// configured window: workers only overshoot by an in-flight operation.
func TestRunHonorsDeadline(t *testing.T) {
	fs := newFakeStore()
	fs.opDelay = 5 * time.Millisecond
	window := 100 * time.Millisecond

	start := time.Now()
	if _, err := Run(context.Background(), fs, uploadParams(2, window)); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	elapsed := time.Since(start)

	if elapsed < window {
		t.Fatalf("run returned before the window elapsed: %v", elapsed)
	}
	if elapsed > 2*window {
		t.Fatalf("run overshot the window too far: %v", elapsed)
	}
}

// TestRunReadFailureFailsRun checks that a read failure mid-run fails the
// whole run instead of silently reporting partial statistics.
func TestRunReadFailureFailsRun(t *testing.T) {
	fs := newFakeStore()
	fs.failReadAt = 3

	p := Params{
		Workers:    2,
		Workload:   config.WorkloadDownload,
		ObjectSize: 4096,
		RunTime:    500 * time.Millisecond,
	}
	_, err := Run(context.Background(), fs, p)
	if err == nil {
		t.Fatal("expected run to fail when a read fails")
	}
	if !strings.Contains(err.Error(), "download") {
		t.Fatalf("expected error to name the workload, got: %v", err)
	}
}

// TestRunStagingFailureAbortsBeforeWorkers ensures a failed staging write
// fails fast, before any worker issues a read.
func TestRunStagingFailureAbortsBeforeWorkers(t *testing.T) {
	fs := newFakeStore()
	fs.writeErr = errors.New("bucket gone")

	p := Params{
		Workers:    4,
		Workload:   config.WorkloadDownload,
		ObjectSize: 4096,
		RunTime:    time.Second,
	}
	_, err := Run(context.Background(), fs, p)
	if err == nil {
		t.Fatal("expected staging failure to fail the run")
	}
	if !strings.Contains(err.Error(), "staging") {
		t.Fatalf("expected a staging error, got: %v", err)
	}
	if fs.reads != 0 {
		t.Fatalf("expected no reads after staging failure, got %d", fs.reads)
	}
}

// TestRunZeroSamples covers a window shorter than any operation: the run
// succeeds with empty sample sets rather than erroring.
func TestRunZeroSamples(t *testing.T) {
	fs := newFakeStore()

	res, err := Run(context.Background(), fs, uploadParams(1, time.Nanosecond))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if res.Latency.Count() != 0 {
		t.Fatalf("expected zero samples, got %d", res.Latency.Count())
	}
	if !math.IsNaN(res.Latency.Avg()) {
		t.Fatal("expected NaN avg on empty sample set")
	}
}

// TestRunDefaultsWorkers treats a zero worker count as one worker.
func TestRunDefaultsWorkers(t *testing.T) {
	fs := newFakeStore()

	res, err := Run(context.Background(), fs, uploadParams(0, 50*time.Millisecond))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if res.Latency.Count() < 1 {
		t.Fatal("expected the defaulted single worker to record samples")
	}
}

// TestRunRateLimit bounds the iteration count when a rate limit is set.
func TestRunRateLimit(t *testing.T) {
	fs := newFakeStore()

	p := uploadParams(1, 200*time.Millisecond)
	p.RateLimit = 50

	res, err := Run(context.Background(), fs, p)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	// 50 ops/sec over 200ms is ~10 iterations plus the burst allowance; an
	// unlimited run against the instant store would record thousands.
	if res.Latency.Count() > 30 {
		t.Fatalf("rate limit not applied, recorded %d iterations", res.Latency.Count())
	}
}
