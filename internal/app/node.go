package app

import (
	"context"
	"errors"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/rappelledev/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/rappelledev/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/rappelledev/internal/adapters/shell"     //nolint:depguard // Wired in app layer
	"go.trai.ch/rappelledev/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/rappelledev/internal/core/domain"
	"go.trai.ch/rappelledev/internal/core/ports"
	"go.trai.ch/rappelledev/internal/engine/registry"
	"go.trai.ch/zerr"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			shell.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
			registry.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	reg, err := graft.Dep[*registry.Registry](ctx)
	if err != nil {
		return nil, err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, errors.Join(domain.ErrMissingHomeDir, zerr.Wrap(err, "HOME is not set"))
	}

	return New(loader, executor, log, reg, domain.NewPaths(home)).WithTracer(tracer), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	application, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    application,
		Logger: log,
	}, nil
}
