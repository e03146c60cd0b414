package domain

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Configuration is the effective configuration of one invocation.
type Configuration struct {
	// Directory is the project checkout; compose files live in its ComposeDirName subdirectory.
	Directory string
	// Environment selects the environment-specific compose layer.
	Environment Environment
	// OrchestrationCommand is the command prefix used to invoke the orchestrator.
	OrchestrationCommand []string
}

// ComposeDir returns the directory orchestrated commands run in.
func (c Configuration) ComposeDir() string {
	return filepath.Join(c.Directory, ComposeDirName)
}

// FileConfig is the persisted configuration file. Every field is optional.
type FileConfig struct {
	Directory        string   `json:"directory"`
	Env              string   `json:"env"`
	DockerComposeCmd []string `json:"docker-compose-cmd"`
}

// Overrides are the values supplied explicitly on the command line.
// Zero values mean "not supplied".
type Overrides struct {
	Directory        string
	Env              string
	DockerComposeCmd []string
}

// ResolveConfiguration merges the three configuration sources.
// For every field the explicit override wins over the file value, which wins over the default.
func ResolveConfiguration(overrides Overrides, file FileConfig, defaults Configuration) (Configuration, error) {
	envValue := firstNonEmpty(overrides.Env, file.Env, defaults.Environment.String())
	env, err := ParseEnvironment(envValue)
	if err != nil {
		return Configuration{}, err
	}

	cmd := defaults.OrchestrationCommand
	switch {
	case len(overrides.DockerComposeCmd) > 0:
		cmd = overrides.DockerComposeCmd
	case len(file.DockerComposeCmd) > 0:
		cmd = file.DockerComposeCmd
	}

	return Configuration{
		Directory:            firstNonEmpty(overrides.Directory, file.Directory, defaults.Directory),
		Environment:          env,
		OrchestrationCommand: slices.Clone(cmd),
	}, nil
}

// ParseComposeCommand parses the orchestration command given on the command line.
// A value starting with '[' must be a JSON array of strings; anything else is split on whitespace.
func ParseComposeCommand(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if !strings.HasPrefix(raw, "[") {
		return strings.Fields(raw), nil
	}

	var tokens []string
	if err := json.Unmarshal([]byte(raw), &tokens); err != nil {
		return nil, errors.Join(ErrConfiguration, zerr.With(zerr.Wrap(ErrInvalidComposeCommand, err.Error()), "docker_compose_cmd", raw))
	}
	return tokens, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
