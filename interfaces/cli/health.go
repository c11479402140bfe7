package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	porkbunmcp "github.com/felixgeelhaar/porkbun-domain-mcp"
	"github.com/felixgeelhaar/porkbun-domain-mcp/infrastructure/config"
)

// healthSnapshot is the JSON document printed by the health command.
type healthSnapshot struct {
	ServerName            string `json:"server_name"`
	Status                string `json:"status"`
	Version               string `json:"version"`
	CredentialsConfigured bool   `json:"credentials_configured"`
	APIURL                string `json:"api_url"`
}

// newHealthCmd creates the health command.
func (a *App) newHealthCmd() *cobra.Command {
	var settingsDir string

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Print a health snapshot as JSON",
		Long: `Print a point-in-time health snapshot of the server configuration.

The snapshot reports whether API credentials are configured and which
API endpoint the server would talk to. It does not call the remote API.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.NewLoaderWithOptions(config.WithDir(settingsDir)).Load()
			if err != nil {
				return fmt.Errorf("failed to load settings: %w", err)
			}

			snapshot := healthSnapshot{
				ServerName:            "porkbun-domain-mcp",
				Status:                "healthy",
				Version:               porkbunmcp.Version,
				CredentialsConfigured: settings.HasCredentials(),
				APIURL:                settings.BaseURL,
			}

			out, err := json.MarshalIndent(snapshot, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&settingsDir, "settings-dir", "settings", "Directory holding the settings files")

	return cmd
}
