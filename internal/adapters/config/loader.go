// Package config provides the loader for the persisted rappelledev configuration file.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"slices"
	"strings"

	"go.trai.ch/rappelledev/internal/core/domain"
	"go.trai.ch/rappelledev/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	keyDirectory        = "directory"
	keyEnv              = "env"
	keyDockerComposeCmd = "docker-compose-cmd"
)

// Loader implements ports.ConfigLoader for the JSON config file.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new configuration loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads the configuration file at path.
// A missing file, an empty file and a JSON null all yield an empty FileConfig.
func (l *Loader) Load(path string) (domain.FileConfig, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is derived from the user's home directory
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.FileConfig{}, nil
		}
		return domain.FileConfig{}, errors.Join(domain.ErrConfiguration, domain.ErrConfigReadFailed,
			zerr.With(zerr.Wrap(err, "read failed"), "path", path))
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return domain.FileConfig{}, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.FileConfig{}, parseError(path, "", err)
	}
	if raw == nil {
		return domain.FileConfig{}, nil
	}

	var cfg domain.FileConfig
	fields := []struct {
		key  string
		dest any
	}{
		{keyDirectory, &cfg.Directory},
		{keyEnv, &cfg.Env},
		{keyDockerComposeCmd, &cfg.DockerComposeCmd},
	}
	known := make([]string, 0, len(fields))
	for _, f := range fields {
		known = append(known, f.key)
		value, ok := raw[f.key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(value, f.dest); err != nil {
			return domain.FileConfig{}, parseError(path, f.key, err)
		}
	}

	var unknown []string
	for key := range raw {
		if !slices.Contains(known, key) {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		l.logger.Warn("Ignoring unknown keys in " + path + ": " + strings.Join(unknown, ", "))
	}

	return cfg, nil
}

func parseError(path, key string, err error) error {
	wrapped := zerr.With(zerr.Wrap(err, "invalid JSON"), "path", path)
	if key != "" {
		wrapped = zerr.With(wrapped, "key", key)
	}
	return errors.Join(domain.ErrConfiguration, domain.ErrConfigParseFailed, wrapped)
}
