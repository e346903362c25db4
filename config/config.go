// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package config resolves whereproc's default settings from a YAML file and
// WHEREPROC_* environment variables. Command-line flags are applied on top
// by the caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jongio/whereproc/cliout"
	"github.com/jongio/whereproc/env"
	"github.com/jongio/whereproc/security"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "WHEREPROC_"

// ErrInvalidConfig indicates a malformed config file or environment value.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the resolved settings.
type Config struct {
	// Output is the default output format.
	Output cliout.Format

	// Matching
	Cmd   bool
	Exact bool
	Regex bool

	// Presentation
	Cmdline bool
	First   bool
	NoColor bool

	// Logging
	Debug   bool
	LogJSON bool

	// Path is the config file that was loaded, or "" when none was.
	Path string

	// Warnings are non-fatal problems found while loading, for the caller
	// to report once its logger is set up.
	Warnings []string
}

// fileConfig mirrors the YAML document. Pointers distinguish unset keys
// from explicit false values.
type fileConfig struct {
	Output  *string `yaml:"output"`
	Cmd     *bool   `yaml:"cmd"`
	Exact   *bool   `yaml:"exact"`
	Regex   *bool   `yaml:"regex"`
	Cmdline *bool   `yaml:"cmdline"`
	First   *bool   `yaml:"first"`
	NoColor *bool   `yaml:"no_color"`
	Debug   *bool   `yaml:"debug"`
	LogJSON *bool   `yaml:"log_json"`
}

// LoadOptions controls where Load looks for settings.
type LoadOptions struct {
	// Path is an explicit config file. It must exist.
	Path string
	// Environ is the environment in KEY=VALUE form; nil means os.Environ().
	Environ []string
	// DefaultPath overrides DefaultPath() for tests. A missing default file is ignored.
	DefaultPath string
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{Output: cliout.FormatTable}
}

// DefaultPath returns <user config dir>/whereproc/config.yaml, or "" when the
// user config directory cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "whereproc", "config.yaml")
}

// Load resolves settings from, in increasing precedence: built-in defaults,
// the config file, and WHEREPROC_* environment variables.
//
// The config file is opts.Path, else $WHEREPROC_CONFIG, else the default
// path. Only the default path may be missing.
func Load(opts LoadOptions) (*Config, error) {
	environ := opts.Environ
	if environ == nil {
		environ = os.Environ()
	}
	settings := env.Settings(environ, EnvPrefix)

	cfg := Default()

	path, explicit := opts.Path, opts.Path != ""
	if !explicit {
		if p, ok := settings["config"]; ok {
			path, explicit = p, true
		}
	}
	if !explicit {
		path = opts.DefaultPath
		if path == "" {
			path = DefaultPath()
		}
	}

	if path != "" {
		if err := loadFile(cfg, path, explicit); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg, settings); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile merges the YAML file at path into cfg.
func loadFile(cfg *Config, path string, explicit bool) error {
	if explicit {
		if err := security.ValidatePath(path); err != nil {
			return fmt.Errorf("invalid config path: %w", err)
		}
	}

	// #nosec G304 -- Path validated by security.ValidatePath or derived from os.UserConfigDir
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := security.ValidateFilePermissions(path); errors.Is(err, security.ErrInsecureFilePermissions) {
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("config file %s is writable by other users", path))
	}

	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}

	if fc.Output != nil {
		format, err := cliout.ParseFormat(*fc.Output)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
		}
		cfg.Output = format
	}
	setBool(&cfg.Cmd, fc.Cmd)
	setBool(&cfg.Exact, fc.Exact)
	setBool(&cfg.Regex, fc.Regex)
	setBool(&cfg.Cmdline, fc.Cmdline)
	setBool(&cfg.First, fc.First)
	setBool(&cfg.NoColor, fc.NoColor)
	setBool(&cfg.Debug, fc.Debug)
	setBool(&cfg.LogJSON, fc.LogJSON)

	cfg.Path = path
	return nil
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// applyEnv merges WHEREPROC_* settings into cfg. Unknown keys are ignored.
func applyEnv(cfg *Config, settings map[string]string) error {
	if v, ok := settings["output"]; ok {
		format, err := cliout.ParseFormat(v)
		if err != nil {
			return fmt.Errorf("%w: %sOUTPUT: %w", ErrInvalidConfig, EnvPrefix, err)
		}
		cfg.Output = format
	}

	bools := []struct {
		key string
		dst *bool
	}{
		{"cmd", &cfg.Cmd},
		{"exact", &cfg.Exact},
		{"regex", &cfg.Regex},
		{"cmdline", &cfg.Cmdline},
		{"first", &cfg.First},
		{"no_color", &cfg.NoColor},
		{"debug", &cfg.Debug},
		{"log_json", &cfg.LogJSON},
	}
	for _, b := range bools {
		v, ok := settings[b.key]
		if !ok {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q is not a boolean", ErrInvalidConfig, EnvPrefix, strings.ToUpper(b.key), v)
		}
		*b.dst = parsed
	}

	return nil
}
