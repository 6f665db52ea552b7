// Package cli implements the sinaliza command line.
//
// Commands read their services from package variables that the root
// command wires before running them. Tests replace those variables with
// in-memory implementations.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/EduuF/sinaliza-libras/internal/adapters/driven/config/file"
	"github.com/EduuF/sinaliza-libras/internal/core/ports/driving"
	"github.com/EduuF/sinaliza-libras/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=v1.2.3".
var version = "dev"

// Persistent flags.
var (
	configDir string
	envFile   string
	verbose   bool
)

// Services used by the commands.
var (
	settingsService       driving.SettingsService
	trechoService         driving.TrechoService
	assignmentService     driving.AssignmentService
	registrationService   driving.RegistrationService
	siteService           driving.SiteService
	importService         driving.ImportService
	snapshotService       driving.SnapshotService
	reconciliationService driving.ReconciliationService

	// configSource reports where a setting's value comes from. Nil when
	// settings are not backed by the environment overlay.
	configSource func(key string) string
)

// wired is true once services are in place, either from wireServices or
// injected by a test.
var wired bool

// closers run after a command finishes.
var closers []func() error

// annotationServices marks commands that need the spreadsheet services.
const annotationServices = "services"

var rootCmd = &cobra.Command{
	Use:   "sinaliza",
	Short: "Backend for the Sinaliza sign-language translation project",
	Long: `Sinaliza serves fragments of Brazilian government web pages to Libras
interpreters and records the translation videos they submit.

Fragments, sites and interpreters live in Google Sheets. Run "sinaliza serve"
to start the HTTP API or "sinaliza mcp serve" for AI assistant integration.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Config directory (default ~/.sinaliza)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Load environment variables from this file (default ./.env if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug output")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if wired {
		return nil
	}

	if settingsService == nil {
		if err := file.LoadDotEnv(envFile); err != nil {
			return err
		}
		store, err := file.NewConfigStore(configDir)
		if err != nil {
			return fmt.Errorf("opening config: %w", err)
		}
		overlay := file.NewEnvOverlay(store)
		settingsService = newSettingsService(overlay)
		configSource = overlay.Source
	}

	if !needsServices(cmd) {
		return nil
	}
	if err := wireServices(cmd.Context()); err != nil {
		return err
	}
	wired = true
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			logger.Warn("closing: %v", err)
		}
	}
	closers = nil
	return nil
}

// needsServices reports whether cmd or one of its parents is annotated.
func needsServices(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if _, ok := c.Annotations[annotationServices]; ok {
			return true
		}
	}
	return false
}

// requiresServices marks a command as needing the spreadsheet services.
func requiresServices(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[annotationServices] = "true"
	return cmd
}
