package domain

import "time"

// Store drivers.
const (
	StoreDriverFS   = "fs"
	StoreDriverNATS = "nats"
)

// Config is the resolved runtime configuration.
type Config struct {
	Workspace WorkspaceConfig
	Cache     CacheConfig
	Store     StoreConfig
	NATS      NATSConfig
	Compiler  CompilerConfig
	Serve     ServeConfig
	Metrics   MetricsConfig
	Log       LogConfig
}

// WorkspaceConfig names the default workspace and its local root.
type WorkspaceConfig struct {
	ID   string
	Root string
}

// CacheConfig controls the remote content cache.
type CacheConfig struct {
	EvictionWindow time.Duration
	SweepInterval  time.Duration
}

// StoreConfig controls workspace store I/O.
type StoreConfig struct {
	Driver     string
	Timeout    time.Duration
	Retries    uint
	RetryDelay time.Duration
}

// NATSConfig addresses the message bus used by the nats store driver.
type NATSConfig struct {
	URL           string
	ActionSubject string
	SaveSubject   string
	NotifySubject string
}

// CompilerConfig describes the external Sass compiler.
type CompilerConfig struct {
	Binary  string
	Args    []string
	Timeout time.Duration
}

// ServeConfig controls the long-running save loop.
type ServeConfig struct {
	Concurrency int
	Debounce    time.Duration
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Listen string
}

// LogConfig controls logger output.
type LogConfig struct {
	JSON    bool
	Verbose bool
}

// Default values.
const (
	DefaultWorkspaceID     = "default"
	DefaultEvictionWindow  = 180 * time.Second
	DefaultSweepInterval   = 10 * time.Second
	DefaultStoreTimeout    = 30 * time.Second
	DefaultStoreRetries    = 3
	DefaultStoreRetryDelay = 100 * time.Millisecond
	DefaultCompilerBinary  = "sass"
	DefaultCompilerTimeout = 60 * time.Second
	DefaultConcurrency     = 4
	DefaultDebounce        = 50 * time.Millisecond
	DefaultActionSubject   = "workspace.action"
	DefaultSaveSubject     = "editor.session.save"
	DefaultNotifySubject   = "notification.open"
)

// DefaultConfig returns the configuration used when no file is found.
func DefaultConfig() *Config {
	return &Config{
		Workspace: WorkspaceConfig{ID: DefaultWorkspaceID, Root: "."},
		Cache: CacheConfig{
			EvictionWindow: DefaultEvictionWindow,
			SweepInterval:  DefaultSweepInterval,
		},
		Store: StoreConfig{
			Driver:     StoreDriverFS,
			Timeout:    DefaultStoreTimeout,
			Retries:    DefaultStoreRetries,
			RetryDelay: DefaultStoreRetryDelay,
		},
		NATS: NATSConfig{
			ActionSubject: DefaultActionSubject,
			SaveSubject:   DefaultSaveSubject,
			NotifySubject: DefaultNotifySubject,
		},
		Compiler: CompilerConfig{
			Binary:  DefaultCompilerBinary,
			Args:    []string{"--no-source-map"},
			Timeout: DefaultCompilerTimeout,
		},
		Serve: ServeConfig{
			Concurrency: DefaultConcurrency,
			Debounce:    DefaultDebounce,
		},
	}
}
