package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// FileConfig is the schema of the YAML defaults file. Absent keys leave the
// built-in defaults untouched.
//
//	op: fibonacci
//	timeout: 30s
//	details: true
//	log_level: info
type FileConfig struct {
	Op       *string        `yaml:"op"`
	Timeout  *time.Duration `yaml:"timeout"`
	Verbose  *bool          `yaml:"verbose"`
	Details  *bool          `yaml:"details"`
	Quiet    *bool          `yaml:"quiet"`
	NoColor  *bool          `yaml:"no_color"`
	LogLevel *string        `yaml:"log_level"`
	Metrics  *bool          `yaml:"metrics"`
}

// LoadFile reads and strictly decodes a YAML defaults file. Unknown keys are
// rejected so that typos do not go unnoticed.
func LoadFile(path string) (FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileConfig{}, fmt.Errorf("reading config file: %w", err)
	}
	return ParseFile(data)
}

// ParseFile decodes YAML defaults from data. Empty input is valid.
func ParseFile(data []byte) (FileConfig, error) {
	var fc FileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return FileConfig{}, fmt.Errorf("parsing config file: %w", err)
	}
	return fc, nil
}

// apply copies the values present in the file into config, skipping any
// setting given explicitly on the command line.
func (fc FileConfig) apply(config *AppConfig, fs *flag.FlagSet) {
	if fc.Op != nil && !isFlagSet(fs, "op") {
		config.Op = *fc.Op
	}
	if fc.Timeout != nil && !isFlagSet(fs, "timeout") {
		config.Timeout = *fc.Timeout
	}
	if fc.LogLevel != nil && !isFlagSet(fs, "log-level") {
		config.LogLevel = *fc.LogLevel
	}
	setBool(&config.Verbose, fc.Verbose, fs, "v", "verbose")
	setBool(&config.Details, fc.Details, fs, "d", "details")
	setBool(&config.Quiet, fc.Quiet, fs, "q", "quiet")
	setBool(&config.NoColor, fc.NoColor, fs, "no-color")
	setBool(&config.Metrics, fc.Metrics, fs, "metrics")
}

func setBool(dst *bool, src *bool, fs *flag.FlagSet, flags ...string) {
	if src != nil && !isFlagSetAny(fs, flags...) {
		*dst = *src
	}
}
