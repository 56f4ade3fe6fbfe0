package ports

import "go.trai.ch/sassline/internal/core/domain"

// ConfigLoader defines the interface for loading the runtime configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load discovers the config file from cwd upwards and returns the resolved config.
	// Defaults are returned when no file exists.
	Load(cwd string) (*domain.Config, error)

	// LoadFile reads the config file at path.
	LoadFile(path string) (*domain.Config, error)
}
