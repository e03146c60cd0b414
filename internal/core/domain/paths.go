package domain

import "path/filepath"

const (
	// ConfigDirName is the user-scoped configuration directory, relative to the home directory.
	ConfigDirName = ".config/rappelledev"
	// ConfigFileName is the persisted configuration file inside ConfigDirName.
	ConfigFileName = "config.json"
	// OverrideFileName is the optional user compose layer inside ConfigDirName.
	OverrideFileName = "docker-compose.override.yaml"
	// DefaultDirectoryName is the default project checkout, relative to the home directory.
	DefaultDirectoryName = "rappelledev"
	// ComposeDirName is the subdirectory of the project holding the compose files.
	ComposeDirName = "docker-compose"
	// DefaultComposeBinary is the default orchestration command.
	DefaultComposeBinary = "docker-compose"
)

// Paths are the fixed user-scoped locations derived from a home directory.
type Paths struct {
	ConfigFile       string
	OverrideFile     string
	DefaultDirectory string
}

// NewPaths derives the fixed locations from home.
func NewPaths(home string) Paths {
	configDir := filepath.Join(home, ConfigDirName)
	return Paths{
		ConfigFile:       filepath.Join(configDir, ConfigFileName),
		OverrideFile:     filepath.Join(configDir, OverrideFileName),
		DefaultDirectory: filepath.Join(home, DefaultDirectoryName),
	}
}

// Defaults returns the built-in configuration for these paths.
func (p Paths) Defaults() Configuration {
	return Configuration{
		Directory:            p.DefaultDirectory,
		Environment:          EnvProd,
		OrchestrationCommand: []string{DefaultComposeBinary},
	}
}
