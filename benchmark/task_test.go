package benchmark

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"objbench/config"
)

func taskParams(w config.Workload) Params {
	return Params{
		Workers:    1,
		Workload:   w,
		ObjectSize: 4096,
		RunTime:    time.Second,
	}
}

// TestNewTaskStagesDownloadPayload ensures a download task writes its payload
// once before the run.
func TestNewTaskStagesDownloadPayload(t *testing.T) {
	fs := newFakeStore()

	task, err := NewTask(context.Background(), fs, taskParams(config.WorkloadDownload))
	if err != nil {
		t.Fatalf("building task failed: %v", err)
	}

	if fs.writes != 1 {
		t.Fatalf("expected exactly one staging write, got %d", fs.writes)
	}
	staged, ok := fs.objects[task.Key()]
	if !ok {
		t.Fatal("staged object missing from store")
	}
	if len(staged) != 4096 {
		t.Fatalf("expected 4096 byte staged payload, got %d", len(staged))
	}
	if !strings.Contains(task.Key(), "objbench-") {
		t.Fatalf("unexpected key format: %q", task.Key())
	}
}

// TestNewTaskUploadDefersWrites ensures an upload task touches the store only
// when run.
func TestNewTaskUploadDefersWrites(t *testing.T) {
	fs := newFakeStore()

	task, err := NewTask(context.Background(), fs, taskParams(config.WorkloadUpload))
	if err != nil {
		t.Fatalf("building task failed: %v", err)
	}
	if fs.writes != 0 {
		t.Fatalf("expected no writes during task construction, got %d", fs.writes)
	}

	moved, err := task.Run(context.Background(), fs)
	if err != nil {
		t.Fatalf("task run failed: %v", err)
	}
	if moved != 4096 {
		t.Fatalf("expected 4096 bytes moved, got %d", moved)
	}
	if fs.writes != 1 {
		t.Fatalf("expected one write per task run, got %d", fs.writes)
	}
}

// TestNewTaskStagingFailure ensures a failed staging write surfaces before
// any measurement starts.
func TestNewTaskStagingFailure(t *testing.T) {
	fs := newFakeStore()
	fs.writeErr = errors.New("no space left")

	_, err := NewTask(context.Background(), fs, taskParams(config.WorkloadDownload))
	if err == nil {
		t.Fatal("expected staging failure to surface")
	}
	if !strings.Contains(err.Error(), "staging") {
		t.Fatalf("expected a staging error, got: %v", err)
	}
}

// TestTaskRunDownloadBytes checks a download run reports the staged size.
func TestTaskRunDownloadBytes(t *testing.T) {
	fs := newFakeStore()

	task, err := NewTask(context.Background(), fs, taskParams(config.WorkloadDownload))
	if err != nil {
		t.Fatalf("building task failed: %v", err)
	}
	moved, err := task.Run(context.Background(), fs)
	if err != nil {
		t.Fatalf("task run failed: %v", err)
	}
	if moved != 4096 {
		t.Fatalf("expected 4096 bytes moved, got %d", moved)
	}
}

// TestTaskKeysUnique ensures two tasks never share an object key.
func TestTaskKeysUnique(t *testing.T) {
	fs := newFakeStore()

	a, err := NewTask(context.Background(), fs, taskParams(config.WorkloadUpload))
	if err != nil {
		t.Fatalf("building task failed: %v", err)
	}
	b, err := NewTask(context.Background(), fs, taskParams(config.WorkloadUpload))
	if err != nil {
		t.Fatalf("building task failed: %v", err)
	}
	if a.Key() == b.Key() {
		t.Fatalf("two tasks share key %q", a.Key())
	}
}

// TestTaskKeyPrefix ensures a configured prefix lands in front of the key.
func TestTaskKeyPrefix(t *testing.T) {
	fs := newFakeStore()

	p := taskParams(config.WorkloadUpload)
	p.Prefix = "runs/"
	task, err := NewTask(context.Background(), fs, p)
	if err != nil {
		t.Fatalf("building task failed: %v", err)
	}
	if !strings.HasPrefix(task.Key(), "runs/objbench-") {
		t.Fatalf("unexpected key: %q", task.Key())
	}
}
