package registry

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"slices"
	"strings"
)

// Builtin returns the registry of launcher commands.
func Builtin() *Registry {
	r := New()
	r.Register(Command{
		Name:  "run-postgres",
		Short: "Start postgres, forwarding extra arguments to 'up'",
		Args:  ArgSchema{Use: "ARGS...", Min: 1, Max: -1, Passthrough: true},
		Execute: func(ctx context.Context, c *Context) error {
			return orchestrate(ctx, c, upRecreate(nil, c.Args, "postgres"))
		},
	})
	r.Register(Command{
		Name:  "run-rappelle-be",
		Short: "Build and start the rappelle backend",
		Args:  NoArgs,
		Execute: func(ctx context.Context, c *Context) error {
			return orchestrate(ctx, c, upRecreate([]string{"--build"}, nil, "rappelle-be"))
		},
	})
	r.Register(Command{
		Name:  "run-rappelle-web",
		Short: "Build and start the rappelle web frontend",
		Args:  NoArgs,
		Execute: func(ctx context.Context, c *Context) error {
			return orchestrate(ctx, c, upRecreate([]string{"--build"}, nil, "rappelle-web"))
		},
	})
	r.Register(Command{
		Name:  "run-revproxy",
		Short: "Build and start the reverse proxy without its dependencies",
		Args:  NoArgs,
		Execute: func(ctx context.Context, c *Context) error {
			return orchestrate(ctx, c, upRecreate([]string{"--build", "--no-deps"}, nil, "revproxy"))
		},
	})
	r.Register(Command{
		Name:  "docker-compose",
		Short: "Run docker-compose with the configured compose files",
		Args:  ArgSchema{Use: "ARGS...", Min: 1, Max: -1, Passthrough: true},
		Execute: func(ctx context.Context, c *Context) error {
			return orchestrate(ctx, c, slices.Clone(c.Args))
		},
	})
	r.Register(Command{
		Name:  "run-host-revproxy",
		Short: "Build and run the reverse proxy for services running on the host",
		Args:  NoArgs,
		Execute: func(ctx context.Context, c *Context) error {
			if err := orchestrate(ctx, c, []string{"build", "local-revproxy"}); err != nil {
				return err
			}
			return orchestrate(ctx, c, []string{"run", "local-revproxy"})
		},
	})
	r.Register(Command{
		Name:    "list-services",
		Short:   "List the services defined by the configured compose files",
		Args:    NoArgs,
		Execute: listServices,
	})
	return r
}

func upRecreate(flags, extra []string, service string) []string {
	args := []string{"up", "--force-recreate"}
	args = append(args, flags...)
	args = append(args, extra...)
	return append(args, service)
}

func orchestrate(ctx context.Context, c *Context, args []string) error {
	_, err := c.Runner.RunOrchestrated(ctx, args)
	return err
}

func listServices(ctx context.Context, c *Context) error {
	out, err := c.Runner.CaptureOrchestrated(ctx, []string{"config", "--services"})
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		if service := strings.TrimSpace(scanner.Text()); service != "" {
			if _, err := fmt.Fprintln(c.Stdout, service); err != nil {
				return err
			}
		}
	}
	return scanner.Err()
}
