package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".starling"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// DatasetConfig holds per-dataset CSV options. This lets one config file
// describe datasets exported by different clinical systems.
type DatasetConfig struct {
	// VolumeColumn overrides the volume column header for this dataset.
	VolumeColumn string `yaml:"volumeColumn,omitempty"`

	// ResponseColumn overrides the response column header for this dataset.
	ResponseColumn string `yaml:"responseColumn,omitempty"`

	// CommaDecimal accepts comma decimal separators (e.g. "7,5") on import.
	CommaDecimal bool `yaml:"commaDecimal,omitempty"`
}

// File represents the structure of the .starling configuration file.
type File struct {
	// Datasets maps dataset file names (base name or full path) to their
	// CSV options.
	Datasets map[string]DatasetConfig `yaml:"datasets,omitempty"`

	// Defaults contains options applied to every dataset unless overridden
	// in the dataset-specific entry.
	Defaults DatasetConfig `yaml:"defaults,omitempty"`
}

// GetDatasetConfig returns the options for a dataset path, merging the
// dataset-specific entry (matched by full path, then base name) over the
// defaults.
func (cf *File) GetDatasetConfig(path string) DatasetConfig {
	result := cf.Defaults

	entry, ok := cf.Datasets[path]
	if !ok {
		entry, ok = cf.Datasets[filepath.Base(path)]
	}
	if !ok {
		return result
	}

	if entry.VolumeColumn != "" {
		result.VolumeColumn = entry.VolumeColumn
	}
	if entry.ResponseColumn != "" {
		result.ResponseColumn = entry.ResponseColumn
	}
	if entry.CommaDecimal {
		result.CommaDecimal = true
	}
	return result
}

// LoadConfigFile loads dataset configurations from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Callers decide
// how to handle that based on whether the path was explicitly specified.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	if cf.Datasets == nil {
		cf.Datasets = make(map[string]DatasetConfig)
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .starling in the current directory
// 3. Look for .starling in the user's home directory
//
// Returns the path if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
