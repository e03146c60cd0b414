// Package app implements the application layer for rappelledev.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"go.trai.ch/rappelledev/internal/adapters/detector"
	"go.trai.ch/rappelledev/internal/core/domain"
	"go.trai.ch/rappelledev/internal/core/ports"
	"go.trai.ch/rappelledev/internal/engine/registry"
	"go.trai.ch/rappelledev/internal/engine/runner"
	"go.trai.ch/zerr"
)

// App resolves the configuration of an invocation and dispatches launcher commands.
type App struct {
	configLoader ports.ConfigLoader
	executor     ports.Executor
	logger       ports.Logger
	tracer       ports.Tracer
	registry     *registry.Registry
	paths        domain.Paths
	stdout       io.Writer
	runnerOpts   []runner.Option
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	executor ports.Executor,
	log ports.Logger,
	reg *registry.Registry,
	paths domain.Paths,
) *App {
	return &App{
		configLoader: loader,
		executor:     executor,
		logger:       log,
		tracer:       ports.NopTracer{},
		registry:     reg,
		paths:        paths,
		stdout:       os.Stdout,
	}
}

// WithStdout replaces the writer commands print their results to.
func (a *App) WithStdout(w io.Writer) *App {
	a.stdout = w
	return a
}

// WithTracer records a span per dispatch and per launched process.
func (a *App) WithTracer(tracer ports.Tracer) *App {
	a.tracer = tracer
	return a
}

// WithRunnerOptions adds options applied to every Runner the App builds.
// This is primarily used for testing to stub the override file check.
func (a *App) WithRunnerOptions(opts ...runner.Option) *App {
	a.runnerOpts = append(a.runnerOpts, opts...)
	return a
}

// Request is one command invocation.
type Request struct {
	Command   string
	Args      []string
	Overrides domain.Overrides
	DryRun    bool
}

// Commands returns the registered launcher commands in registration order.
func (a *App) Commands() []registry.Command {
	return a.registry.Commands()
}

// SetLogFormat switches the log rendering: auto, pretty, text or json.
func (a *App) SetLogFormat(format string) {
	type modeSetter interface {
		SetMode(mode detector.OutputMode)
	}
	if l, ok := a.logger.(modeSetter); ok {
		l.SetMode(detector.ResolveMode(detector.ModeAuto, format))
	}
}

// ResolveConfig merges the overrides with the config file and the defaults,
// and logs the result.
func (a *App) ResolveConfig(_ context.Context, overrides domain.Overrides) (domain.Configuration, error) {
	file, err := a.configLoader.Load(a.paths.ConfigFile)
	if err != nil {
		return domain.Configuration{}, zerr.Wrap(err, "failed to load configuration")
	}

	cfg, err := domain.ResolveConfiguration(overrides, file, a.paths.Defaults())
	if err != nil {
		return domain.Configuration{}, zerr.Wrap(err, "failed to resolve configuration")
	}

	a.logger.Info(fmt.Sprintf("Using directory=%s env=%s docker-compose-cmd=%v",
		cfg.Directory, cfg.Environment, cfg.OrchestrationCommand))
	return cfg, nil
}

// Dispatch resolves the configuration and executes the requested command.
// Nothing is launched when the configuration, the command name or the
// argument count is invalid.
func (a *App) Dispatch(ctx context.Context, req Request) error {
	ctx, span := a.tracer.Start(ctx, "dispatch")
	defer span.End()

	span.SetAttribute("command", req.Command)
	span.SetAttribute("args", req.Args)
	span.SetAttribute("dry_run", req.DryRun)

	if err := a.dispatch(ctx, span, req); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func (a *App) dispatch(ctx context.Context, span ports.Span, req Request) error {
	cfg, err := a.ResolveConfig(ctx, req.Overrides)
	if err != nil {
		return err
	}
	span.SetAttribute("env", cfg.Environment.String())

	cmd, ok := a.registry.Lookup(req.Command)
	if !ok {
		err := zerr.Wrap(domain.ErrUnknownCommand, "no such command: "+req.Command)
		return zerr.With(err, "available", a.commandNames())
	}

	if err := cmd.Args.Validate(req.Args); err != nil {
		return zerr.With(zerr.Wrap(err, "invalid arguments"), "command", cmd.Name)
	}

	execCtx := &registry.Context{
		Runner: a.newRunner(cfg, req.DryRun),
		Args:   slices.Clone(req.Args),
		Stdout: a.stdout,
	}
	if err := cmd.Execute(ctx, execCtx); err != nil {
		return zerr.With(zerr.Wrap(err, "command failed"), "command", cmd.Name)
	}
	return nil
}

// ConfigView is the resolved configuration as shown by print-config.
type ConfigView struct {
	Directory          string   `yaml:"directory"`
	Env                string   `yaml:"env"`
	DockerComposeCmd   []string `yaml:"docker-compose-cmd"`
	ConfigFile         string   `yaml:"config-file"`
	OverrideFile       string   `yaml:"override-file"`
	ComposeDir         string   `yaml:"compose-dir"`
	OrchestratorPrefix []string `yaml:"orchestrator-prefix"`
}

// Describe resolves the configuration and reports it without running anything.
func (a *App) Describe(ctx context.Context, overrides domain.Overrides) (ConfigView, error) {
	cfg, err := a.ResolveConfig(ctx, overrides)
	if err != nil {
		return ConfigView{}, err
	}

	return ConfigView{
		Directory:          cfg.Directory,
		Env:                cfg.Environment.String(),
		DockerComposeCmd:   cfg.OrchestrationCommand,
		ConfigFile:         a.paths.ConfigFile,
		OverrideFile:       a.paths.OverrideFile,
		ComposeDir:         cfg.ComposeDir(),
		OrchestratorPrefix: a.newRunner(cfg, true).OrchestratorPrefix(),
	}, nil
}

func (a *App) newRunner(cfg domain.Configuration, dryRun bool) *runner.Runner {
	opts := []runner.Option{
		runner.WithOverrideFile(a.paths.OverrideFile),
		runner.WithDryRun(dryRun),
		runner.WithTracer(a.tracer),
	}
	return runner.New(cfg, a.executor, a.logger, append(opts, a.runnerOpts...)...)
}

func (a *App) commandNames() string {
	names := make([]string, 0, len(a.registry.Commands()))
	for _, cmd := range a.registry.Commands() {
		names = append(names, cmd.Name)
	}
	return strings.Join(names, ", ")
}
