// Package runner launches external processes for one resolved configuration.
package runner

import (
	"context"
	"fmt"
	"os"
	"slices"

	"go.trai.ch/rappelledev/internal/core/domain"
	"go.trai.ch/rappelledev/internal/core/ports"
)

// Runner executes commands and orchestrator invocations.
// It holds one resolved Configuration and is not shared across invocations.
type Runner struct {
	cfg          domain.Configuration
	executor     ports.Executor
	logger       ports.Logger
	overrideFile string
	fileExists   func(path string) bool
	dryRun       bool
	tracer       ports.Tracer
}

// Option configures a Runner.
type Option func(*Runner)

// WithOverrideFile sets the user compose layer appended when the file exists.
func WithOverrideFile(path string) Option {
	return func(r *Runner) {
		r.overrideFile = path
	}
}

// WithFileExists replaces the existence check used for the override file.
func WithFileExists(fn func(path string) bool) Option {
	return func(r *Runner) {
		r.fileExists = fn
	}
}

// WithDryRun makes the runner log invocations instead of launching them.
func WithDryRun(enabled bool) Option {
	return func(r *Runner) {
		r.dryRun = enabled
	}
}

// WithTracer records one span per launched or dry-run process.
func WithTracer(tracer ports.Tracer) Option {
	return func(r *Runner) {
		r.tracer = tracer
	}
}

// New creates a Runner for cfg.
func New(cfg domain.Configuration, executor ports.Executor, logger ports.Logger, opts ...Option) *Runner {
	r := &Runner{
		cfg:        cfg,
		executor:   executor,
		logger:     logger,
		fileExists: regularFileExists,
		tracer:     ports.NopTracer{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Configuration returns the configuration the runner was built with.
func (r *Runner) Configuration() domain.Configuration {
	cfg := r.cfg
	cfg.OrchestrationCommand = slices.Clone(cfg.OrchestrationCommand)
	return cfg
}

// RunOption configures a single Run or CaptureOutput call.
type RunOption func(*runOptions)

type runOptions struct {
	dir   string
	check bool
}

// InDir runs the command in dir instead of the configured directory.
func InDir(dir string) RunOption {
	return func(o *runOptions) {
		o.dir = dir
	}
}

// NoCheck reports a non-zero exit through the result instead of an error.
func NoCheck() RunOption {
	return func(o *runOptions) {
		o.check = false
	}
}

func (r *Runner) options(opts []RunOption) runOptions {
	o := runOptions{dir: r.cfg.Directory, check: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Run executes tokens and waits for the process to exit.
func (r *Runner) Run(ctx context.Context, tokens []string, opts ...RunOption) (domain.ProcessResult, error) {
	o := r.options(opts)
	inv := domain.Invocation{Tokens: slices.Clone(tokens), Dir: o.dir}

	ctx, span := r.startSpan(ctx, "process.run", inv)
	defer span.End()

	if r.dryRun {
		r.logger.Info(fmt.Sprintf("Would run %v in %s", inv.Tokens, inv.Dir))
		return domain.ProcessResult{}, nil
	}

	r.logger.Info(fmt.Sprintf("Running %v in %s", inv.Tokens, inv.Dir))
	res, err := r.executor.Run(ctx, inv)
	if err != nil {
		span.RecordError(err)
		return res, err
	}
	span.SetAttribute("process.exit_code", res.ExitCode)
	if o.check && !res.Success() {
		err = exitError(inv, res)
		span.RecordError(err)
		return res, err
	}
	return res, nil
}

// RunOrchestrated runs the orchestrator with the layered compose files followed by args.
// The process runs in the compose directory unless InDir overrides it.
func (r *Runner) RunOrchestrated(ctx context.Context, args []string, opts ...RunOption) (domain.ProcessResult, error) {
	return r.Run(ctx, r.orchestrated(args), r.orchestratedOptions(opts)...)
}

// CaptureOutput executes tokens and returns their standard output.
// A non-zero exit is always an error.
func (r *Runner) CaptureOutput(ctx context.Context, tokens []string, opts ...RunOption) ([]byte, error) {
	o := r.options(opts)
	inv := domain.Invocation{Tokens: slices.Clone(tokens), Dir: o.dir}

	ctx, span := r.startSpan(ctx, "process.capture", inv)
	defer span.End()

	if r.dryRun {
		r.logger.Info(fmt.Sprintf("Would capture %v in %s", inv.Tokens, inv.Dir))
		return nil, nil
	}

	r.logger.Info(fmt.Sprintf("Capturing %v in %s", inv.Tokens, inv.Dir))
	out, res, err := r.executor.Output(ctx, inv)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute("process.exit_code", res.ExitCode)
	if !res.Success() {
		err = exitError(inv, res)
		span.RecordError(err)
		return nil, err
	}
	return out, nil
}

// CaptureOrchestrated captures the output of an orchestrator invocation.
func (r *Runner) CaptureOrchestrated(ctx context.Context, args []string, opts ...RunOption) ([]byte, error) {
	return r.CaptureOutput(ctx, r.orchestrated(args), r.orchestratedOptions(opts)...)
}

// OrchestratorPrefix returns the orchestration command followed by the compose layers.
// The override layer is included only if its file exists at call time.
func (r *Runner) OrchestratorPrefix() []string {
	override := ""
	if r.overrideFile != "" && r.fileExists(r.overrideFile) {
		override = r.overrideFile
	}

	prefix := slices.Clone(r.cfg.OrchestrationCommand)
	return append(prefix, domain.LayerArgs(domain.SelectLayers(r.cfg.Environment, override))...)
}

func (r *Runner) orchestrated(args []string) []string {
	return append(r.OrchestratorPrefix(), args...)
}

func (r *Runner) orchestratedOptions(opts []RunOption) []RunOption {
	return append([]RunOption{InDir(r.cfg.ComposeDir())}, opts...)
}

func (r *Runner) startSpan(ctx context.Context, name string, inv domain.Invocation) (context.Context, ports.Span) {
	ctx, span := r.tracer.Start(ctx, name)
	span.SetAttribute("process.tokens", inv.Tokens)
	span.SetAttribute("process.dir", inv.Dir)
	span.SetAttribute("process.dry_run", r.dryRun)
	return ctx, span
}

func exitError(inv domain.Invocation, res domain.ProcessResult) error {
	return &domain.CommandExecutionError{
		Tokens:   inv.Tokens,
		Dir:      inv.Dir,
		ExitCode: res.ExitCode,
	}
}

func regularFileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
