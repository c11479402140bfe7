package cli

import (
	"fmt"

	mcpgo "github.com/felixgeelhaar/mcp-go"
	"github.com/spf13/cobra"

	porkbunmcp "github.com/felixgeelhaar/porkbun-domain-mcp"
	"github.com/felixgeelhaar/porkbun-domain-mcp/infrastructure/config"
	"github.com/felixgeelhaar/porkbun-domain-mcp/infrastructure/logging"
	"github.com/felixgeelhaar/porkbun-domain-mcp/infrastructure/mcp"
	"github.com/felixgeelhaar/porkbun-domain-mcp/infrastructure/porkbun"
	"github.com/felixgeelhaar/porkbun-domain-mcp/infrastructure/storage/memory"
	"github.com/felixgeelhaar/porkbun-domain-mcp/pack/domains"
)

const serverInstructions = `Manage domains registered at Porkbun. Tools cover listing account
domains, fetching details and transfer authorization codes, renewing
registrations, and checking TLD pricing. Every tool answers with a JSON
envelope carrying success, message, data, error, and next_steps fields.`

// serveOptions holds options for the serve command.
type serveOptions struct {
	settingsDir string
	httpMode    bool
}

// newServeCmd creates the serve command.
func (a *App) newServeCmd() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server",
		Long: `Run the MCP server over stdio (default) or HTTP with SSE.

The transport is stdio unless enable_http_transport is set in the
settings or the --http flag is given.

Examples:
  # Serve over stdio for a local MCP client
  porkbun-mcp serve

  # Serve over HTTP on the configured host and port
  porkbun-mcp serve --http`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.settingsDir, "settings-dir", "settings", "Directory holding the settings files")
	cmd.Flags().BoolVar(&opts.httpMode, "http", false, "Serve over HTTP with SSE instead of stdio")

	return cmd
}

// serve loads settings, wires the registrar client and tools, and blocks
// on the chosen transport until the context is canceled.
func (a *App) serve(cmd *cobra.Command, opts *serveOptions) error {
	settings, err := config.NewLoaderWithOptions(config.WithDir(opts.settingsDir)).Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	logging.Init(logging.Config{
		Level:  settings.LogLevel,
		Format: settings.LogFormat,
	})

	if !settings.HasCredentials() {
		logging.Warn().Msg("API credentials are not configured, tool calls will fail")
	}

	client := porkbun.NewClient(settings)
	defer client.Close()

	registry := memory.NewToolRegistry()
	if err := domains.Register(registry, client); err != nil {
		return fmt.Errorf("failed to register tools: %w", err)
	}

	srv := mcp.NewToolServer(mcp.ToolServerConfig{
		Name:         "porkbun-domain-mcp",
		Version:      porkbunmcp.Version,
		Description:  "Porkbun domain management tools",
		Instructions: serverInstructions,
		Registry:     registry,
	})
	srv.Use(mcpgo.Recover(), mcpgo.RequestID())

	ctx := cmd.Context()
	if opts.httpMode || settings.EnableHTTPTransport {
		logging.Info().
			Add(logging.Endpoint(settings.HTTPAddr())).
			Add(logging.Count(registry.Count())).
			Msg("Serving MCP over HTTP")
		return srv.ServeHTTP(ctx, settings.HTTPAddr())
	}

	logging.Info().
		Add(logging.Count(registry.Count())).
		Msg("Serving MCP over stdio")
	return srv.ServeStdio(ctx)
}
