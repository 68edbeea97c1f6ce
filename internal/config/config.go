// Package config loads the optional reldiff configuration file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileName is the fixed configuration file name looked up in the working
// directory first, then next to the executable.
const FileName = "reldiff.json"

// Config is the root of the configuration file.
type Config struct {
	Compare CompareConfig `json:"compare"`
}

// CompareConfig supplies defaults for the compare subcommand. CLI flags
// override these values.
type CompareConfig struct {
	ProDir      string   `json:"pro_dir"`
	DevDir      string   `json:"dev_dir"`
	IgnoreNames []string `json:"ignore_names"`
}

// DefaultIgnoreNames is the ignore-name list written into the template.
var DefaultIgnoreNames = []string{".git", "__pycache__", ".DS_Store", "node_modules"}

// Load reads the configuration. An explicit path must exist; otherwise the
// lookup order is tried and absence yields an empty configuration, since the
// compare flags can supply everything.
func Load(explicitPath string) (*Config, error) {
	if explicitPath != "" {
		return readFile(explicitPath)
	}

	for _, p := range lookupPaths() {
		cfg, err := readFile(p)
		if err == nil {
			return cfg, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return &Config{}, nil
}

func lookupPaths() []string {
	paths := []string{FileName}
	if exe, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(exe), FileName))
	}
	return paths
}

func readFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- config path is user supplied by design
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// WriteTemplate writes a starter configuration to path. An existing file is
// never overwritten.
func WriteTemplate(path string) error {
	template := &Config{
		Compare: CompareConfig{
			ProDir:      "/path/to/stable",
			DevDir:      "/path/to/development",
			IgnoreNames: DefaultIgnoreNames,
		},
	}
	data, err := json.MarshalIndent(template, "", "  ")
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644) // #nosec G302 G304
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%s already exists, refusing to overwrite", path)
		}
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
