package benchmark

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"

	"objbench/config"
	"objbench/store"
)

// fillByte is the filler for synthesized payloads. Content is irrelevant to
// the measurement.
const fillByte = 0xFE

// keyPrefix namespaces benchmark objects so concurrent runs against the same
// bucket never collide.
const keyPrefix = "objbench-"

// Task is the fixed unit of work every worker repeats. It is immutable after
// construction and shared read-only across workers.
//
// For upload workloads every worker writes the same key: the stored object
// ends up as whichever write finished last.
type Task struct {
	workload config.Workload
	key      string
	payload  []byte // upload payload, nil for download
}

// NewTask builds the task for a run. For download workloads the payload is
// staged to the backend with a single write before any worker starts; a
// staging failure fails the whole run.
func NewTask(ctx context.Context, st store.Store, p Params) (*Task, error) {
	key := p.Prefix + keyPrefix + uuid.NewString()
	payload := bytes.Repeat([]byte{fillByte}, int(p.ObjectSize))

	switch p.Workload {
	case config.WorkloadDownload:
		if _, err := st.Write(ctx, key, payload); err != nil {
			return nil, fmt.Errorf("staging %s object %q: %w", p.Workload, key, err)
		}
		return &Task{workload: p.Workload, key: key}, nil
	case config.WorkloadUpload:
		return &Task{workload: p.Workload, key: key, payload: payload}, nil
	default:
		return nil, fmt.Errorf("unknown workload %q", p.Workload)
	}
}

// Run performs the task's single operation against the store and returns the
// bytes moved.
func (t *Task) Run(ctx context.Context, st store.Store) (int64, error) {
	if t.workload == config.WorkloadDownload {
		n, err := st.Read(ctx, t.key)
		if err != nil {
			return 0, fmt.Errorf("download object %q: %w", t.key, err)
		}
		return n, nil
	}
	n, err := st.Write(ctx, t.key, t.payload)
	if err != nil {
		return 0, fmt.Errorf("upload object %q: %w", t.key, err)
	}
	return n, nil
}

// Key returns the object key the task operates on.
func (t *Task) Key() string {
	return t.key
}
