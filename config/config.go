package config

import (
	"fmt"
	"os"
	"time"

	"github.com/oracle/oci-go-sdk/v65/common"
	"gopkg.in/yaml.v3"
)

// MinObjectSize is the smallest payload the harness will drive. Anything
// below this measures request overhead, not data movement.
const MinObjectSize = 4096

// Workload selects the operation every worker repeats.
type Workload string

const (
	WorkloadDownload Workload = "download"
	WorkloadUpload   Workload = "upload"
)

// Service backend kinds.
const (
	ServiceOCI = "oci"
	ServiceFS  = "fs"
)

// DefaultFSRoot is used when an fs service omits its root directory.
const DefaultFSRoot = "/tmp/objbench"

// Config is the full benchmark configuration, parsed from a YAML file.
type Config struct {
	Service Service `yaml:"service"`
	Job     Job     `yaml:"job"`
}

// Service describes the object-storage backend to drive.
type Service struct {
	Type       string `yaml:"type"`
	Bucket     string `yaml:"bucket"`
	Namespace  string `yaml:"namespace"`
	Host       string `yaml:"host"`
	Prefix     string `yaml:"prefix"`
	ConfigFile string `yaml:"config_file"`
	Root       string `yaml:"root"`
}

// Job describes the workload to run against the backend.
type Job struct {
	Workers    int      `yaml:"workers"`
	Workload   Workload `yaml:"workload"`
	ObjectSize int64    `yaml:"object_size"`
	RunTime    Duration `yaml:"run_time"`
	RateLimit  int      `yaml:"rate_limit"`
}

// Duration wraps time.Duration so run_time can be written as "30s" or "1m"
// in the config file.
type Duration struct {
	time.Duration
}

// UnmarshalYAML parses a Go duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

// MarshalYAML renders the duration back to its string form.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// ParseConf reads and validates a benchmark config file.
func ParseConf(fn string) (Config, error) {
	var cfg Config
	buf, err := os.ReadFile(fn)
	if err != nil {
		return cfg, fmt.Errorf("reading config file %s: %w", fn, err)
	}
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w", fn, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the config and fills in defaults. Safe to call again after
// flag overrides have been applied.
func (c *Config) Validate() error {
	switch c.Service.Type {
	case ServiceOCI:
		if c.Service.Bucket == "" {
			return fmt.Errorf("service.bucket is required for the %s backend", ServiceOCI)
		}
	case ServiceFS:
		if c.Service.Root == "" {
			c.Service.Root = DefaultFSRoot
		}
	default:
		return fmt.Errorf("service.type must be %q or %q, got %q", ServiceOCI, ServiceFS, c.Service.Type)
	}

	switch c.Job.Workload {
	case WorkloadDownload, WorkloadUpload:
	default:
		return fmt.Errorf("job.workload must be %q or %q, got %q", WorkloadDownload, WorkloadUpload, c.Job.Workload)
	}

	if c.Job.Workers < 0 {
		return fmt.Errorf("job.workers must not be negative, got %d", c.Job.Workers)
	}
	if c.Job.Workers == 0 {
		c.Job.Workers = 1
	}
	if c.Job.ObjectSize < MinObjectSize {
		return fmt.Errorf("job.object_size must be at least %d bytes, got %d", MinObjectSize, c.Job.ObjectSize)
	}
	if c.Job.RunTime.Duration <= 0 {
		return fmt.Errorf("job.run_time must be a positive duration")
	}
	if c.Job.RateLimit < 0 {
		return fmt.Errorf("job.rate_limit must not be negative, got %d", c.Job.RateLimit)
	}
	return nil
}

// LoadOCIConfig loads the OCI configuration from the specified config file path
func LoadOCIConfig(configFilePath string) (common.ConfigurationProvider, error) {
	provider, err := common.ConfigurationProviderFromFile(configFilePath, "DEFAULT")
	if err != nil {
		return nil, fmt.Errorf("failed to load OCI config from file: %w", err)
	}
	return provider, nil
}
