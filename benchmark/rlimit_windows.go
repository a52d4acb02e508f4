//go:build windows
// +build windows

package benchmark

import (
	"runtime/debug"

	"objbench/logging"
)

// SetMaxResources adjusts system resource limits on Windows systems.
func SetMaxResources() error {
	// Only set Go runtime's max threads on Windows, as we don't have an
	// equivalent for open file limits as on Unix systems.
	maxThreads := 8000
	debug.SetMaxThreads(maxThreads)

	logging.Debugf("runtime max threads set to %d", maxThreads)
	return nil
}
