// Package main provides the rojifi-docs command: the documentation HTTP API,
// the MCP server and a handful of offline helpers.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	rojifidocs "github.com/rojifi/rojifi-docs"
	"github.com/rojifi/rojifi-docs/internal/config"
	"github.com/rojifi/rojifi-docs/internal/docs"
	"github.com/rojifi/rojifi-docs/internal/logging"
	"github.com/rojifi/rojifi-docs/internal/metrics"
	"github.com/rojifi/rojifi-docs/internal/runner"
)

//nolint:gochecknoglobals // Allows test override for stdio server.
var serveStdio = server.ServeStdio

func main() {
	//nolint:forbidigo // main must exit with the command status code.
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := newRootCommand(stderr)
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintf(stderr, "rojifi-docs: %v\n", err)
		return 1
	}
	return 0
}

type globalFlags struct {
	configPath string
	dev        bool
	contentDir string
	logLevel   string
}

// app is the wiring shared by every subcommand.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	store    *docs.Store
	resolver *docs.Resolver
	runner   *runner.Runner
}

func newRootCommand(logOut io.Writer) *cobra.Command {
	var (
		flags globalFlags
		a     = &app{}
	)

	cmd := &cobra.Command{
		Use:           "rojifi-docs",
		Short:         "Serve and browse the Rojifi API documentation",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			loaded, err := loadApp(flags, logOut)
			if err != nil {
				return err
			}
			*a = *loaded
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "path to the YAML config file (default config/<ENV>.yaml)")
	pf.BoolVar(&flags.dev, "dev", false, "show DEV-status pages")
	pf.StringVar(&flags.contentDir, "content-dir", "", "load content from a markdown directory instead of the embedded tree")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn or error")

	cmd.AddCommand(
		newServeCommand(a),
		newMCPCommand(a),
		newResolveCommand(a),
		newSearchCommand(a),
		newExportCommand(a),
		newBrowseCommand(a),
	)

	return cmd
}

func loadApp(flags globalFlags, logOut io.Writer) (*app, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}

	if flags.dev {
		cfg.Docs.Env = config.EnvDevelopment
	}
	if flags.contentDir != "" {
		cfg.Docs.ContentDir = flags.contentDir
	}
	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	logger := logging.New(level, cfg.Logging.Format, logOut)
	logging.SetDefault(logger)

	store, err := loadStore(cfg.Docs.ContentDir)
	if err != nil {
		logger.Error("Error loading content", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Debug("Loaded content",
		slog.Int("version_count", store.Len()),
		slog.Int("total_pages", store.PageCount()),
		slog.Bool("dev_mode", cfg.Docs.DevMode()),
		slog.String("content_dir", cfg.Docs.ContentDir))

	metrics.RegisterDocsMetrics()

	return &app{
		cfg:    cfg,
		logger: logger,
		store:  store,
		resolver: docs.NewResolver(store,
			docs.WithDevMode(cfg.Docs.DevMode()),
			docs.WithLogger(logger)),
		runner: runner.New(cfg.Runner.Delay),
	}, nil
}

func loadStore(contentDir string) (*docs.Store, error) {
	if contentDir == "" {
		return docs.LoadYAML(rojifidocs.ContentYAML)
	}
	return docs.LoadDir(os.DirFS(contentDir))
}
