// Package domain holds the core types of rappelledev: environments, the
// resolved configuration, compose layers and the error taxonomy.
package domain

import (
	"errors"

	"go.trai.ch/zerr"
)

// Environment is the deployment mode selecting the extra compose layer.
type Environment string

const (
	// EnvProd composes the production layer on top of the base layer.
	EnvProd Environment = "prod"
	// EnvDev composes the development layer on top of the base layer.
	EnvDev Environment = "dev"
)

// Environments returns all known environments.
func Environments() []Environment {
	return []Environment{EnvProd, EnvDev}
}

// ParseEnvironment converts s into an Environment.
func ParseEnvironment(s string) (Environment, error) {
	switch Environment(s) {
	case EnvProd:
		return EnvProd, nil
	case EnvDev:
		return EnvDev, nil
	default:
		return "", errors.Join(ErrConfiguration, zerr.With(zerr.Wrap(ErrInvalidEnvironment, "unsupported env"), "env", s))
	}
}

func (e Environment) String() string {
	return string(e)
}
