package main

import (
	"context"
	"flag"
	"os"
	"time"

	"objbench/benchmark"
	"objbench/config"
	"objbench/logging"
	"objbench/report"
	"objbench/store"
)

func main() {
	// Define command-line flags; everything except -config overrides the file.
	configPath := flag.String("config", "objbench.yml", "Path to the benchmark config file")
	workers := flag.Int("workers", 0, "Override the number of parallel workers")
	workload := flag.String("workload", "", "Override the workload: download or upload")
	duration := flag.Duration("duration", 0, "Override the run duration")
	objectSize := flag.Int64("object-size", 0, "Override the object size in bytes")
	rateLimit := flag.Int("rate-limit", -1, "Override the max ops/sec (0 means no limit)")
	jsonOut := flag.String("json", "", "Write the report as JSON to this file")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	if *debug {
		logging.SetDebug()
	}

	cfg, err := config.ParseConf(*configPath)
	if err != nil {
		logging.Error(err)
		os.Exit(1)
	}

	if *workers > 0 {
		cfg.Job.Workers = *workers
	}
	if *workload != "" {
		cfg.Job.Workload = config.Workload(*workload)
	}
	if *duration > 0 {
		cfg.Job.RunTime = config.Duration{Duration: *duration}
	}
	if *objectSize > 0 {
		cfg.Job.ObjectSize = *objectSize
	}
	if *rateLimit >= 0 {
		cfg.Job.RateLimit = *rateLimit
	}
	if err := cfg.Validate(); err != nil {
		logging.Error(err)
		os.Exit(1)
	}

	// Raise OS limits for high worker counts; a failure is not fatal.
	if err := benchmark.SetMaxResources(); err != nil {
		logging.Warnf("could not adjust system resource limits: %v", err)
	}

	st, err := store.New(cfg.Service)
	if err != nil {
		logging.Error(err)
		os.Exit(1)
	}
	defer st.Close()

	params := benchmark.ParamsFromConfig(cfg)
	params.Progress = true

	startedAt := time.Now()
	res, err := benchmark.Run(context.Background(), st, params)
	if err != nil {
		logging.Errorf("run failed after %s: %v", time.Since(startedAt).Round(time.Millisecond), err)
		os.Exit(1)
	}

	rep := report.Build(params, res)
	rep.Display()

	if *jsonOut != "" {
		if err := rep.WriteJSON(*jsonOut); err != nil {
			logging.Error(err)
			os.Exit(1)
		}
		logging.Infof("report written to %s", *jsonOut)
	}
}
