// Package report turns merged sample sets into a human-readable summary.
package report

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/fatih/color"

	"objbench/benchmark"
)

// Metric summarizes one measured quantity.
type Metric struct {
	Samples int     `json:"samples"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Avg     float64 `json:"avg"`
	Stdev   float64 `json:"stdev"`
	P99     float64 `json:"p99"`
	P95     float64 `json:"p95"`
	P50     float64 `json:"p50"`
}

// Report is the full summary of a run. Bandwidth is reported in KiB/s,
// latency in milliseconds, iops in operations per second.
type Report struct {
	Workers    int    `json:"workers"`
	Workload   string `json:"workload"`
	ObjectSize int64  `json:"object_size"`
	Bandwidth  Metric `json:"bandwidth_kib_s"`
	Latency    Metric `json:"latency_ms"`
	IOPS       Metric `json:"iops"`
}

// Build converts a run's raw sample sets (bytes/sec, seconds, ops/sec) into
// reporting units.
func Build(p benchmark.Params, res benchmark.Result) Report {
	return Report{
		Workers:    p.Workers,
		Workload:   string(p.Workload),
		ObjectSize: p.ObjectSize,
		Bandwidth:  metricFrom(&res.Bandwidth, 1.0/1024.0),
		Latency:    metricFrom(&res.Latency, 1000.0),
		IOPS:       metricFrom(&res.IOPS, 1.0),
	}
}

func metricFrom(s *benchmark.SampleSet, scale float64) Metric {
	return Metric{
		Samples: s.Count(),
		Min:     s.Min() * scale,
		Max:     s.Max() * scale,
		Avg:     s.Avg() * scale,
		Stdev:   s.Stdev() * scale,
		P99:     s.Percentile(99) * scale,
		P95:     s.Percentile(95) * scale,
		P50:     s.Percentile(50) * scale,
	}
}

// Display prints the report to stdout.
func (r Report) Display() {
	header := color.New(color.FgCyan, color.Bold)

	fmt.Printf("\nWorkload: %s, %d worker(s), %d byte objects\n\n", r.Workload, r.Workers, r.ObjectSize)
	displayMetric(header, "Bandwidth (KiB/s)", r.Bandwidth)
	displayMetric(header, "Latency (ms)", r.Latency)
	displayMetric(header, "IOPS (ops/s)", r.IOPS)
}

func displayMetric(header *color.Color, title string, m Metric) {
	header.Printf("%s:\n", title)
	fmt.Printf("  samples: %d\n", m.Samples)
	fmt.Printf("  min:     %.3f\n", m.Min)
	fmt.Printf("  max:     %.3f\n", m.Max)
	fmt.Printf("  avg:     %.3f\n", m.Avg)
	fmt.Printf("  stdev:   %.3f\n", m.Stdev)
	fmt.Printf("  p99:     %.3f\n", m.P99)
	fmt.Printf("  p95:     %.3f\n", m.P95)
	fmt.Printf("  p50:     %.3f\n", m.P50)
	fmt.Println()
}

// WriteJSON dumps the report to a file. It fails if the run produced no
// samples, since NaN statistics are not representable in JSON.
func (r Report) WriteJSON(path string) error {
	if r.hasNaN() {
		return fmt.Errorf("report contains empty metrics, refusing to write JSON")
	}
	buf, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	buf = append(buf, '\n')
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("writing report to %s: %w", path, err)
	}
	return nil
}

func (r Report) hasNaN() bool {
	for _, m := range []Metric{r.Bandwidth, r.Latency, r.IOPS} {
		for _, v := range []float64{m.Min, m.Max, m.Avg, m.Stdev, m.P99, m.P95, m.P50} {
			if math.IsNaN(v) {
				return true
			}
		}
	}
	return false
}
