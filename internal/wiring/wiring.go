// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/rappelledev/internal/adapters/config"
	_ "go.trai.ch/rappelledev/internal/adapters/logger"
	_ "go.trai.ch/rappelledev/internal/adapters/shell"
	_ "go.trai.ch/rappelledev/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/rappelledev/internal/app"
	_ "go.trai.ch/rappelledev/internal/engine/registry"
)
