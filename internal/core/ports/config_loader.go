package ports

import "go.trai.ch/rappelledev/internal/core/domain"

// ConfigLoader defines the interface for reading the persisted configuration file.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration file at path.
	//
	// A missing or empty file yields a zero FileConfig and no error.
	// A file that is not a JSON object yields an error matching domain.ErrConfiguration.
	Load(path string) (domain.FileConfig, error)
}
