package config

// File is the structure of sassline.yaml. Unset fields keep their defaults.
type File struct {
	Version   string       `yaml:"version"`
	Workspace WorkspaceDTO `yaml:"workspace"`
	Cache     CacheDTO     `yaml:"cache"`
	Store     StoreDTO     `yaml:"store"`
	NATS      NATSDTO      `yaml:"nats"`
	Compiler  CompilerDTO  `yaml:"compiler"`
	Serve     ServeDTO     `yaml:"serve"`
	Metrics   MetricsDTO   `yaml:"metrics"`
	Log       LogDTO       `yaml:"log"`
}

// WorkspaceDTO names the workspace served from the local root.
type WorkspaceDTO struct {
	ID   string `yaml:"id"`
	Root string `yaml:"root"`
}

// CacheDTO holds the eviction settings as duration strings.
type CacheDTO struct {
	EvictionWindow string `yaml:"evictionWindow"`
	SweepInterval  string `yaml:"sweepInterval"`
}

// StoreDTO selects and tunes the workspace store.
type StoreDTO struct {
	Driver     string `yaml:"driver"`
	Timeout    string `yaml:"timeout"`
	Retries    *uint  `yaml:"retries"`
	RetryDelay string `yaml:"retryDelay"`
}

// NATSDTO addresses the message bus.
type NATSDTO struct {
	URL           string `yaml:"url"`
	ActionSubject string `yaml:"actionSubject"`
	SaveSubject   string `yaml:"saveSubject"`
	NotifySubject string `yaml:"notifySubject"`
}

// CompilerDTO describes the compiler process.
type CompilerDTO struct {
	Binary  string   `yaml:"binary"`
	Args    []string `yaml:"args"`
	Timeout string   `yaml:"timeout"`
}

// ServeDTO tunes the save loop.
type ServeDTO struct {
	Concurrency *int   `yaml:"concurrency"`
	Debounce    string `yaml:"debounce"`
}

// MetricsDTO configures the metrics endpoint.
type MetricsDTO struct {
	Listen string `yaml:"listen"`
}

// LogDTO configures logger output.
type LogDTO struct {
	JSON    bool `yaml:"json"`
	Verbose bool `yaml:"verbose"`
}
