package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/EduuF/sinaliza-libras/internal/adapters/driving/httpapi"
)

var serveCmd = requiresServices(&cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API used by the Sinaliza front end.

Routes live under /db_queries, prefixed by server.root_path when set.
/metrics exposes Prometheus metrics. The server shuts down gracefully on
SIGINT or SIGTERM.`,
	RunE: runServe,
})

var (
	serveHost string
	servePort int
)

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Listen host (overrides server.host)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Listen port (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	server := settings.Server
	if serveHost != "" {
		server.Host = serveHost
	}
	if servePort > 0 {
		server.Port = servePort
	}

	api, err := httpapi.NewServer(&httpapi.Ports{
		Trechos:      trechoService,
		Assignment:   assignmentService,
		Registration: registrationService,
		Sites:        siteService,
		Snapshots:    snapshotService,
	}, server, nil)
	if err != nil {
		return err
	}

	cmd.Printf("Listening on http://%s%s\n", server.Addr(), server.NormalisedRootPath())
	return api.Run(cmd.Context())
}
