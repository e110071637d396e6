// cli.go holds the testrail-mcp entrypoint (Main), the root command and its
// persistent flags, and the wiring shared by the subcommands.
package gatewaycli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/contenox/testrail-mcp/internal/testrailtools"
	"github.com/contenox/testrail-mcp/libbus"
	"github.com/contenox/testrail-mcp/testrailsdk"
	"github.com/spf13/cobra"
)

// Version is stamped at build time.
var Version = "dev"

// Main runs the testrail-mcp CLI.
func Main() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree. Each call returns an independent tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "testrail-mcp",
		Short: "Expose the TestRail API as schema-validated MCP tools.",
		Long: `testrail-mcp exposes TestRail projects, suites, sections, cases, runs, tests,
results, plans, milestones and shared steps as MCP tools. Every call is
validated against its schema before TestRail is contacted, and every outcome
is returned as a {success, message, data | error} envelope.

  Quickstart:
    export TESTRAIL_URL=https://example.testrail.io
    export TESTRAIL_USERNAME=qa@example.com
    export TESTRAIL_API_KEY=...
    testrail-mcp serve                                   # MCP over stdio
    testrail-mcp tools                                   # list the catalogue
    testrail-mcp call getCase --args '{"caseId": 1}'     # one-shot call

  Settings are read from flags, then TESTRAIL_* variables, then
  ./.testrail-mcp/config.yaml or ~/.testrail-mcp/config.yaml.`,
		SilenceUsage: true,
	}

	f := root.PersistentFlags()
	f.String("config", "", "Path to a config file (default: ./.testrail-mcp/config.yaml, then ~/.testrail-mcp/config.yaml)")
	f.String("url", "", "TestRail base URL, e.g. https://example.testrail.io")
	f.String("username", "", "TestRail user name (email)")
	f.String("api-key", "", "TestRail API key")
	f.Duration("timeout", testrailsdk.DefaultTimeout, "Per-request timeout for TestRail calls")
	f.String("log-level", "info", "Log level: debug, info, warn or error")
	f.String("log-format", "text", "Log format: text or json")
	f.String("audit-nats-url", "", "Publish one event per tool call to this NATS server")
	f.String("audit-subject", testrailtools.DefaultAuditSubject, "Subject prefix of tool call events")

	root.AddCommand(newServeCmd(), newToolsCmd(), newCallCmd())
	root.InitDefaultHelpCmd()
	return root
}

// flagConfig returns only the settings explicitly passed on the command line.
func flagConfig(cmd *cobra.Command) Config {
	f := cmd.Flags()
	var cfg Config
	if f.Changed("url") {
		cfg.URL, _ = f.GetString("url")
	}
	if f.Changed("username") {
		cfg.Username, _ = f.GetString("username")
	}
	if f.Changed("api-key") {
		cfg.APIKey, _ = f.GetString("api-key")
	}
	if f.Changed("timeout") {
		cfg.Timeout, _ = f.GetDuration("timeout")
	}
	if f.Changed("log-level") {
		cfg.LogLevel, _ = f.GetString("log-level")
	}
	if f.Changed("log-format") {
		cfg.LogFormat, _ = f.GetString("log-format")
	}
	if f.Changed("audit-nats-url") {
		cfg.Audit.NATSURL, _ = f.GetString("audit-nats-url")
	}
	if f.Changed("audit-subject") {
		cfg.Audit.Subject, _ = f.GetString("audit-subject")
	}
	return cfg
}

// loadConfig resolves the effective configuration for cmd.
func loadConfig(cmd *cobra.Command) (Config, string, error) {
	path, _ := cmd.Flags().GetString("config")
	file, filePath, err := loadConfigFile(path)
	if err != nil {
		return Config{}, "", fmt.Errorf("load config: %w", err)
	}
	env, err := envConfig(os.Getenv)
	if err != nil {
		return Config{}, "", err
	}
	cfg, err := resolveConfig(file, env, flagConfig(cmd), os.Getenv)
	if err != nil {
		return Config{}, "", fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, filePath, nil
}

// gateway is the wired dispatch layer plus what must be released afterwards.
type gateway struct {
	cfg      Config
	logger   *slog.Logger
	registry *testrailtools.Registry
	closers  []func() error
}

func (g *gateway) Close() {
	for i := len(g.closers) - 1; i >= 0; i-- {
		if err := g.closers[i](); err != nil {
			g.logger.Warn("error during shutdown", "error", err)
		}
	}
}

// newGateway builds the client, the optional audit bus and the registry.
// Logs go to logOut.
func newGateway(ctx context.Context, cmd *cobra.Command, logOut io.Writer) (*gateway, error) {
	cfg, configPath, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := newLogger(logOut, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)
	if configPath != "" {
		logger.Debug("loaded config file", "path", configPath)
	}

	client, err := testrailsdk.NewClient(cfg.clientConfig())
	if err != nil {
		return nil, err
	}
	client.SetHeader("User-Agent", "testrail-mcp/"+Version)

	g := &gateway{cfg: cfg, logger: logger}
	opts := []testrailtools.Option{testrailtools.WithLogger(logger)}
	if cfg.Audit.NATSURL != "" {
		bus, err := libbus.NewPubSub(ctx, &libbus.Config{
			NATSURL:      cfg.Audit.NATSURL,
			NATSUser:     cfg.Audit.NATSUser,
			NATSPassword: cfg.Audit.NATSPassword,
		})
		if err != nil {
			return nil, fmt.Errorf("connect audit bus: %w", err)
		}
		auditor := testrailtools.NewAuditor(bus, cfg.Audit.Subject, logger)
		// closers run in reverse: pending events go out before the bus closes
		g.closers = append(g.closers, bus.Close, func() error {
			auditor.Wait()
			return nil
		})
		opts = append(opts, testrailtools.WithAuditor(auditor))
		logger.Info("auditing tool calls", "nats_url", cfg.Audit.NATSURL, "subject", cfg.Audit.Subject)
	}
	g.registry = testrailtools.New(client, opts...)
	return g, nil
}
