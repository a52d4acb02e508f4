package store

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FSStore implements Store on a local directory. It exists for smoke runs
// against a machine's disk and for exercising the harness without cloud
// credentials.
type FSStore struct {
	root string
}

// NewFSStore creates the root directory if needed and returns the store.
func NewFSStore(root string) (*FSStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating fs store root %s: %w", root, err)
	}
	return &FSStore{root: root}, nil
}

// Read opens the object file and drains it, returning the bytes read.
func (f *FSStore) Read(ctx context.Context, key string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	file, err := os.Open(filepath.Join(f.root, key))
	if err != nil {
		return 0, err
	}
	defer file.Close()

	buf := getBuffer()
	defer putBuffer(buf)
	return io.CopyBuffer(io.Discard, file, *buf)
}

// Write stores the payload under key, creating parent directories for
// prefixed keys.
func (f *FSStore) Write(ctx context.Context, key string, payload []byte) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	path := filepath.Join(f.root, key)
	if dir := filepath.Dir(path); dir != f.root {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, err
		}
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return 0, err
	}
	return int64(len(payload)), nil
}

// Close is a no-op; the store holds no transport resources.
func (f *FSStore) Close() error {
	return nil
}
