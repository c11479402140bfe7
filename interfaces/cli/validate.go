package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/porkbun-domain-mcp/infrastructure/config"
)

// newValidateCmd creates the validate command.
func (a *App) newValidateCmd() *cobra.Command {
	var settingsDir string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the server configuration",
		Long: `Load and validate the layered server configuration.

This command checks:
  - Settings file syntax (YAML)
  - Value ranges (timeout, max_retries, http_port)
  - Log format and level
  - Environment variable overrides (PORKBUN_DOMAIN_*)

Examples:
  # Validate the default settings directory
  porkbun-mcp validate

  # Validate an alternate settings directory
  porkbun-mcp validate --settings-dir /etc/porkbun-mcp`,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.NewLoaderWithOptions(config.WithDir(settingsDir)).Load()
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			fmt.Fprintf(a.stdout, "✓ Configuration is valid\n")
			fmt.Fprintf(a.stdout, "  API URL: %s\n", settings.BaseURL)
			fmt.Fprintf(a.stdout, "  Timeout: %gs\n", settings.Timeout)
			fmt.Fprintf(a.stdout, "  Max retries: %d\n", settings.MaxRetries)
			fmt.Fprintf(a.stdout, "  Log level: %s (%s)\n", settings.LogLevel, settings.LogFormat)

			if settings.HasCredentials() {
				fmt.Fprintf(a.stdout, "  API key: %s\n", settings.MaskedAPIKey())
			} else {
				fmt.Fprintf(a.stdout, "  API key: not configured\n")
			}

			if settings.EnableHTTPTransport {
				fmt.Fprintf(a.stdout, "  Transport: http (%s)\n", settings.HTTPAddr())
			} else {
				fmt.Fprintf(a.stdout, "  Transport: stdio\n")
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&settingsDir, "settings-dir", "settings", "Directory holding the settings files")

	return cmd
}
