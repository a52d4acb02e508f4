// Package store provides the object-storage capability the benchmark drives.
package store

import (
	"context"
	"fmt"

	"objbench/config"
)

// Store is the minimal read/write capability a benchmark run needs.
// Implementations must be safe for concurrent use by multiple workers.
type Store interface {
	// Read fetches an object fully and returns the number of bytes received.
	Read(ctx context.Context, key string) (int64, error)
	// Write stores an object fully and returns the number of bytes accepted.
	Write(ctx context.Context, key string, payload []byte) (int64, error)
	// Close releases any transport resources the store holds.
	Close() error
}

// New builds the store described by the service config.
func New(svc config.Service) (Store, error) {
	switch svc.Type {
	case config.ServiceOCI:
		return NewOCIStore(svc)
	case config.ServiceFS:
		return NewFSStore(svc.Root)
	default:
		return nil, fmt.Errorf("unknown service type %q", svc.Type)
	}
}
