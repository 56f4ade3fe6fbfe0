// Package config loads sassline.yaml.
package config

import (
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/sassline/internal/core/domain"
	"go.trai.ch/sassline/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load looks for sassline.yaml in cwd and its parents. Without a file the
// defaults are returned with the workspace root set to cwd.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	abs, err := filepath.Abs(cwd)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve working directory"), "cwd", cwd)
	}

	configPath, ok := findConfiguration(abs)
	if !ok {
		l.Logger.Debug("no config file found, using defaults", "cwd", abs)
		cfg := domain.DefaultConfig()
		cfg.Workspace.Root = abs
		return cfg, nil
	}

	return l.LoadFile(configPath)
}

// LoadFile reads the config file at path. A relative workspace root is
// resolved against the directory holding the file.
func (l *Loader) LoadFile(path string) (*domain.Config, error) {
	var file File
	if err := readAndUnmarshalYAML(path, &file); err != nil {
		return nil, zerr.With(err, "path", path)
	}

	cfg, err := apply(domain.DefaultConfig(), &file)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}

	cfg.Workspace.Root = resolveRoot(path, file.Workspace.Root)
	l.Logger.Debug("loaded config", "path", path, "root", cfg.Workspace.Root, "driver", cfg.Store.Driver)

	return cfg, nil
}

func findConfiguration(dir string) (string, bool) {
	for {
		candidate := filepath.Join(dir, domain.ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

//nolint:cyclop // flat field-by-field mapping
func apply(cfg *domain.Config, f *File) (*domain.Config, error) {
	if f.Workspace.ID != "" {
		cfg.Workspace.ID = f.Workspace.ID
	}

	durations := []struct {
		key   string
		raw   string
		field *time.Duration
	}{
		{"cache.evictionWindow", f.Cache.EvictionWindow, &cfg.Cache.EvictionWindow},
		{"cache.sweepInterval", f.Cache.SweepInterval, &cfg.Cache.SweepInterval},
		{"store.timeout", f.Store.Timeout, &cfg.Store.Timeout},
		{"store.retryDelay", f.Store.RetryDelay, &cfg.Store.RetryDelay},
		{"compiler.timeout", f.Compiler.Timeout, &cfg.Compiler.Timeout},
		{"serve.debounce", f.Serve.Debounce, &cfg.Serve.Debounce},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrConfigInvalid, err.Error()), "key", d.key)
		}
		if v <= 0 {
			return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "duration must be positive"), "key", d.key), "value", d.raw)
		}
		*d.field = v
	}

	switch f.Store.Driver {
	case "":
	case domain.StoreDriverFS, domain.StoreDriverNATS:
		cfg.Store.Driver = f.Store.Driver
	default:
		return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "unknown store driver"), "key", "store.driver"), "value", f.Store.Driver)
	}

	if f.Store.Retries != nil {
		if *f.Store.Retries == 0 {
			return nil, zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "retries must be at least 1"), "key", "store.retries")
		}
		cfg.Store.Retries = *f.Store.Retries
	}

	setString(&cfg.NATS.URL, f.NATS.URL)
	setString(&cfg.NATS.ActionSubject, f.NATS.ActionSubject)
	setString(&cfg.NATS.SaveSubject, f.NATS.SaveSubject)
	setString(&cfg.NATS.NotifySubject, f.NATS.NotifySubject)

	if cfg.Store.Driver == domain.StoreDriverNATS && cfg.NATS.URL == "" {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "nats driver requires a url"), "key", "nats.url")
	}

	setString(&cfg.Compiler.Binary, f.Compiler.Binary)
	if f.Compiler.Args != nil {
		cfg.Compiler.Args = f.Compiler.Args
	}

	if f.Serve.Concurrency != nil {
		if *f.Serve.Concurrency < 1 {
			return nil, zerr.With(zerr.Wrap(domain.ErrConfigInvalid, "concurrency must be at least 1"), "key", "serve.concurrency")
		}
		cfg.Serve.Concurrency = *f.Serve.Concurrency
	}

	cfg.Metrics.Listen = f.Metrics.Listen
	cfg.Log.JSON = f.Log.JSON
	cfg.Log.Verbose = f.Log.Verbose

	return cfg, nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func resolveRoot(configPath, configuredRoot string) string {
	configDir := filepath.Dir(configPath)
	if configuredRoot == "" {
		return filepath.Clean(configDir)
	}
	if filepath.IsAbs(configuredRoot) {
		return filepath.Clean(configuredRoot)
	}
	return filepath.Clean(filepath.Join(configDir, configuredRoot))
}

func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is discovered or given on the command line
	data, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
