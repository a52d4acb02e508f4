package benchmark

import (
	"time"

	"objbench/config"
)

// Params holds the parameters for one benchmark run
type Params struct {
	Workers    int             // Number of concurrent workers
	Workload   config.Workload // Operation every worker repeats
	ObjectSize int64           // Payload size in bytes
	Prefix     string          // Key prefix on the backend
	RunTime    time.Duration   // Wall-clock measurement window
	RateLimit  int             // Max operations per second across all workers, 0 means no limit
	Progress   bool            // Render a progress bar while the run is active
}

// ParamsFromConfig maps a validated job config onto run parameters.
func ParamsFromConfig(cfg config.Config) Params {
	return Params{
		Workers:    cfg.Job.Workers,
		Workload:   cfg.Job.Workload,
		ObjectSize: cfg.Job.ObjectSize,
		Prefix:     cfg.Service.Prefix,
		RunTime:    cfg.Job.RunTime.Duration,
		RateLimit:  cfg.Job.RateLimit,
	}
}
