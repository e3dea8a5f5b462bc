// Package audit writes a machine-readable YAML record of one vectorgen run
// next to the configuration copy in the working directory.
package audit

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Run outcomes.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Suffix is appended to the run basename to form the record's file name.
const Suffix = ".audit.yaml"

// Record is the persisted summary of a run.
type Record struct {
	RunID             string    `yaml:"run_id"`
	Tool              string    `yaml:"tool"`
	Version           string    `yaml:"version"`
	ConfigurationFile string    `yaml:"configuration_file"`
	Basename          string    `yaml:"basename,omitempty"`
	CycleTime         string    `yaml:"cycle_time,omitempty"`
	ParameterName     string    `yaml:"parameter_name,omitempty"`
	DateOfData        string    `yaml:"date_of_data,omitempty"`
	TimeOfData        string    `yaml:"time_of_data,omitempty"`
	OutputFormat      string    `yaml:"output_format,omitempty"`
	Inputs            []string  `yaml:"inputs,omitempty"`
	Output            string    `yaml:"output,omitempty"`
	OutputBytes       int64     `yaml:"output_bytes,omitempty"`
	Status            string    `yaml:"status"`
	Error             string    `yaml:"error,omitempty"`
	States            []string  `yaml:"states"`
	StartedAt         time.Time `yaml:"started_at"`
	FinishedAt        time.Time `yaml:"finished_at"`
}

// NewRecord starts a record with a fresh random run ID.
func NewRecord(tool, version, configFile string, started time.Time) *Record {
	return &Record{
		RunID:             uuid.NewString(),
		Tool:              tool,
		Version:           version,
		ConfigurationFile: configFile,
		StartedAt:         started,
	}
}

// Path returns the record location for basename inside dir. dir is expected
// to carry a trailing separator, as normalized directories do.
func Path(dir, basename string) string {
	return dir + basename + Suffix
}

// Write marshals r to <dir><basename>.audit.yaml and returns the path.
func (r *Record) Write(dir, basename string) (string, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("marshal audit record: %w", err)
	}
	path := Path(dir, basename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write audit record: %w", err)
	}
	return path, nil
}

// Read loads a record written by [Record.Write].
func Read(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Record
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse audit record %s: %w", path, err)
	}
	return &r, nil
}
