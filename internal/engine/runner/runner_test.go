package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rappelledev/internal/core/domain"
	"go.trai.ch/rappelledev/internal/core/ports"
	"go.trai.ch/rappelledev/internal/core/ports/mocks"
	"go.trai.ch/rappelledev/internal/engine/runner"
	"go.uber.org/mock/gomock"
)

const overrideFile = "/home/dev/.config/rappelledev/docker-compose.override.yaml"

type fixture struct {
	executor *mocks.MockExecutor
	logger   *mocks.MockLogger
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	return fixture{
		executor: mocks.NewMockExecutor(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
	}
}

func (f fixture) runner(cfg domain.Configuration, opts ...runner.Option) *runner.Runner {
	return runner.New(cfg, f.executor, f.logger, opts...)
}

func prodConfig() domain.Configuration {
	return domain.Configuration{
		Directory:            "/home/dev/rappelledev",
		Environment:          domain.EnvProd,
		OrchestrationCommand: []string{"docker-compose"},
	}
}

func exists(want bool) runner.Option {
	return runner.WithFileExists(func(string) bool { return want })
}

func TestRunner_Run(t *testing.T) {
	f := newFixture(t)
	r := f.runner(prodConfig())

	inv := domain.Invocation{Tokens: []string{"git", "status"}, Dir: "/home/dev/rappelledev"}
	gomock.InOrder(
		f.logger.EXPECT().Info("Running [git status] in /home/dev/rappelledev"),
		f.executor.EXPECT().Run(gomock.Any(), inv).Return(domain.ProcessResult{}, nil),
	)

	res, err := r.Run(t.Context(), []string{"git", "status"})

	require.NoError(t, err)
	assert.True(t, res.Success())
}

func TestRunner_Run_InDir(t *testing.T) {
	f := newFixture(t)
	r := f.runner(prodConfig())

	f.logger.EXPECT().Info(gomock.Any())
	f.executor.EXPECT().Run(gomock.Any(), domain.Invocation{Tokens: []string{"ls"}, Dir: "/tmp"}).
		Return(domain.ProcessResult{}, nil)

	_, err := r.Run(t.Context(), []string{"ls"}, runner.InDir("/tmp"))
	require.NoError(t, err)
}

func TestRunner_Run_NonZeroExit(t *testing.T) {
	t.Run("checked", func(t *testing.T) {
		f := newFixture(t)
		r := f.runner(prodConfig())

		f.logger.EXPECT().Info(gomock.Any())
		f.executor.EXPECT().Run(gomock.Any(), gomock.Any()).Return(domain.ProcessResult{ExitCode: 2}, nil)

		res, err := r.Run(t.Context(), []string{"false"})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrCommandExecution)

		var execErr *domain.CommandExecutionError
		require.ErrorAs(t, err, &execErr)
		assert.Equal(t, 2, execErr.ExitCode)
		assert.Equal(t, []string{"false"}, execErr.Tokens)
		assert.Equal(t, "/home/dev/rappelledev", execErr.Dir)
		assert.Equal(t, 2, res.ExitCode)
	})

	t.Run("unchecked", func(t *testing.T) {
		f := newFixture(t)
		r := f.runner(prodConfig())

		f.logger.EXPECT().Info(gomock.Any())
		f.executor.EXPECT().Run(gomock.Any(), gomock.Any()).Return(domain.ProcessResult{ExitCode: 2}, nil)

		res, err := r.Run(t.Context(), []string{"false"}, runner.NoCheck())

		require.NoError(t, err)
		assert.Equal(t, 2, res.ExitCode)
	})
}

func TestRunner_Run_LaunchErrorPassesThrough(t *testing.T) {
	f := newFixture(t)
	r := f.runner(prodConfig())

	launchErr := &domain.LaunchError{Tokens: []string{"missing"}, Dir: "/home/dev/rappelledev", Err: os.ErrNotExist}
	f.logger.EXPECT().Info(gomock.Any())
	f.executor.EXPECT().Run(gomock.Any(), gomock.Any()).Return(domain.ProcessResult{}, launchErr)

	_, err := r.Run(t.Context(), []string{"missing"}, runner.NoCheck())

	assert.ErrorIs(t, err, domain.ErrLaunch)
	assert.NotErrorIs(t, err, domain.ErrCommandExecution)
}

func TestRunner_RunOrchestrated(t *testing.T) {
	tests := []struct {
		name   string
		env    domain.Environment
		exists bool
		want   []string
	}{
		{
			name: "prod without override",
			env:  domain.EnvProd,
			want: []string{
				"docker-compose", "-f", "docker-compose.yaml", "-f", "docker-compose.prod.yaml",
				"up", "--force-recreate", "--build", "rappelle-be",
			},
		},
		{
			name:   "dev with override",
			env:    domain.EnvDev,
			exists: true,
			want: []string{
				"docker-compose", "-f", "docker-compose.yaml", "-f", "docker-compose.dev.yaml", "-f", overrideFile,
				"up", "--force-recreate", "--build", "rappelle-be",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			cfg := prodConfig()
			cfg.Environment = tt.env
			r := f.runner(cfg, runner.WithOverrideFile(overrideFile), exists(tt.exists))

			inv := domain.Invocation{Tokens: tt.want, Dir: "/home/dev/rappelledev/docker-compose"}
			f.logger.EXPECT().Info(gomock.Any())
			f.executor.EXPECT().Run(gomock.Any(), inv).Return(domain.ProcessResult{}, nil)

			_, err := r.RunOrchestrated(t.Context(), []string{"up", "--force-recreate", "--build", "rappelle-be"})
			require.NoError(t, err)
		})
	}
}

func TestRunner_RunOrchestrated_DoesNotMutateCommand(t *testing.T) {
	f := newFixture(t)
	cfg := prodConfig()
	cfg.OrchestrationCommand = make([]string, 1, 8)
	cfg.OrchestrationCommand[0] = "docker-compose"
	r := f.runner(cfg)

	var seen [][]string
	f.logger.EXPECT().Info(gomock.Any()).Times(2)
	f.executor.EXPECT().Run(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inv domain.Invocation) (domain.ProcessResult, error) {
			seen = append(seen, inv.Tokens)
			return domain.ProcessResult{}, nil
		}).Times(2)

	_, err := r.RunOrchestrated(t.Context(), []string{"ps"})
	require.NoError(t, err)
	_, err = r.RunOrchestrated(t.Context(), []string{"logs"})
	require.NoError(t, err)

	require.Len(t, seen, 2)
	assert.Equal(t, "ps", seen[0][len(seen[0])-1])
	assert.Equal(t, "logs", seen[1][len(seen[1])-1])
	assert.Len(t, seen[0], len(seen[1]))
	assert.Equal(t, []string{"docker-compose"}, cfg.OrchestrationCommand)
	assert.Equal(t, []string{"docker-compose"}, r.Configuration().OrchestrationCommand)
}

func TestRunner_OverrideFileCheckedPerCall(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()
	override := filepath.Join(dir, "docker-compose.override.yaml")
	r := f.runner(prodConfig(), runner.WithOverrideFile(override))

	assert.NotContains(t, r.OrchestratorPrefix(), override)

	require.NoError(t, os.WriteFile(override, []byte("services: {}\n"), 0o600))
	assert.Equal(t, override, r.OrchestratorPrefix()[len(r.OrchestratorPrefix())-1])
}

func TestRunner_OverrideDirectoryIgnored(t *testing.T) {
	f := newFixture(t)
	override := t.TempDir()
	r := f.runner(prodConfig(), runner.WithOverrideFile(override))

	assert.NotContains(t, r.OrchestratorPrefix(), override)
}

func TestRunner_CaptureOutput(t *testing.T) {
	f := newFixture(t)
	r := f.runner(prodConfig())

	gomock.InOrder(
		f.logger.EXPECT().Info("Capturing [git rev-parse HEAD] in /home/dev/rappelledev"),
		f.executor.EXPECT().Output(gomock.Any(), gomock.Any()).
			Return([]byte("abc123\n"), domain.ProcessResult{}, nil),
	)

	out, err := r.CaptureOutput(t.Context(), []string{"git", "rev-parse", "HEAD"})

	require.NoError(t, err)
	assert.Equal(t, "abc123\n", string(out))
}

func TestRunner_CaptureOutput_NonZeroExit(t *testing.T) {
	f := newFixture(t)
	r := f.runner(prodConfig())

	f.logger.EXPECT().Info(gomock.Any())
	f.executor.EXPECT().Output(gomock.Any(), gomock.Any()).
		Return([]byte("partial"), domain.ProcessResult{ExitCode: 1}, nil)

	// NoCheck has no effect on capture.
	out, err := r.CaptureOutput(t.Context(), []string{"false"}, runner.NoCheck())

	assert.ErrorIs(t, err, domain.ErrCommandExecution)
	assert.Nil(t, out)
}

func TestRunner_CaptureOrchestrated(t *testing.T) {
	f := newFixture(t)
	r := f.runner(prodConfig(), exists(false))

	want := domain.Invocation{
		Tokens: []string{"docker-compose", "-f", "docker-compose.yaml", "-f", "docker-compose.prod.yaml", "config", "--services"},
		Dir:    "/home/dev/rappelledev/docker-compose",
	}
	f.logger.EXPECT().Info(gomock.Any())
	f.executor.EXPECT().Output(gomock.Any(), want).Return([]byte("postgres\n"), domain.ProcessResult{}, nil)

	out, err := r.CaptureOrchestrated(t.Context(), []string{"config", "--services"})

	require.NoError(t, err)
	assert.Equal(t, "postgres\n", string(out))
}

func TestRunner_DryRun(t *testing.T) {
	f := newFixture(t)
	r := f.runner(prodConfig(), runner.WithDryRun(true), exists(false))

	f.logger.EXPECT().Info("Would run [docker-compose -f docker-compose.yaml -f docker-compose.prod.yaml ps] in /home/dev/rappelledev/docker-compose")
	f.logger.EXPECT().Info("Would capture [docker-compose -f docker-compose.yaml -f docker-compose.prod.yaml config --services] in /home/dev/rappelledev/docker-compose")

	res, err := r.RunOrchestrated(t.Context(), []string{"ps"})
	require.NoError(t, err)
	assert.True(t, res.Success())

	out, err := r.CaptureOrchestrated(t.Context(), []string{"config", "--services"})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRunner_Tracing(t *testing.T) {
	t.Run("records exit code", func(t *testing.T) {
		f := newFixture(t)
		ctrl := gomock.NewController(t)
		tracer := mocks.NewMockTracer(ctrl)
		span := mocks.NewMockSpan(ctrl)
		r := f.runner(prodConfig(), runner.WithTracer(tracer))

		tracer.EXPECT().Start(gomock.Any(), "process.run").
			DoAndReturn(func(ctx context.Context, _ string) (context.Context, ports.Span) { return ctx, span })
		span.EXPECT().SetAttribute("process.tokens", []string{"make"})
		span.EXPECT().SetAttribute("process.dir", "/home/dev/rappelledev")
		span.EXPECT().SetAttribute("process.dry_run", false)
		span.EXPECT().SetAttribute("process.exit_code", 0)
		span.EXPECT().End()
		f.logger.EXPECT().Info(gomock.Any())
		f.executor.EXPECT().Run(gomock.Any(), gomock.Any()).Return(domain.ProcessResult{}, nil)

		_, err := r.Run(t.Context(), []string{"make"})
		require.NoError(t, err)
	})

	t.Run("records failure", func(t *testing.T) {
		f := newFixture(t)
		ctrl := gomock.NewController(t)
		tracer := mocks.NewMockTracer(ctrl)
		span := mocks.NewMockSpan(ctrl)
		r := f.runner(prodConfig(), runner.WithTracer(tracer))

		tracer.EXPECT().Start(gomock.Any(), "process.capture").
			DoAndReturn(func(ctx context.Context, _ string) (context.Context, ports.Span) { return ctx, span })
		span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).Times(3)
		span.EXPECT().SetAttribute("process.exit_code", 4)
		span.EXPECT().RecordError(gomock.Any()).Do(func(err error) {
			assert.ErrorIs(t, err, domain.ErrCommandExecution)
		})
		span.EXPECT().End()
		f.logger.EXPECT().Info(gomock.Any())
		f.executor.EXPECT().Output(gomock.Any(), gomock.Any()).Return(nil, domain.ProcessResult{ExitCode: 4}, nil)

		_, err := r.CaptureOutput(t.Context(), []string{"false"})
		require.Error(t, err)
	})
}
