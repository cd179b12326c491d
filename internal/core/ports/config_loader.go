package ports

import "go.trai.ch/reel/internal/core/domain"

// ConfigLoader defines the interface for loading the client configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load resolves defaults, the optional config file and the environment.
	Load() (*domain.Config, error)
}
