package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/EduuF/sinaliza-libras/internal/core/domain"
	"github.com/EduuF/sinaliza-libras/internal/core/services"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage application settings",
	Long: `View and change settings stored in the config file.

Environment variables (and a .env file) override the file. Run
"sinaliza config keys" to list every key with the variables that
override it.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Store a setting in the config file",
	Long: `Store a setting in the config file.

When the value is omitted it is read from the terminal without echo, which
keeps secrets such as snapshots.secret_key out of the shell history.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConfigSet,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List setting keys and where their values come from",
	Args:  cobra.NoArgs,
	RunE:  runConfigKeys,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configKeysCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	if path := settingsService.Path(); path != "" {
		cmd.Printf("Config file: %s\n", path)
	}
	cmd.Println()

	cmd.Println("[Sheets]")
	cmd.Printf("  Credentials: %s\n", orNotSet(settings.Sheets.CredentialsFile))
	printLocator(cmd, "Site", settings.Sheets.Site)
	printLocator(cmd, "Trecho", settings.Sheets.Trecho)
	printLocator(cmd, "Interprete", settings.Sheets.Interprete)
	cmd.Printf("  Rate limit: %.2f req/s, burst %d\n", settings.Sheets.RequestsPerSecond, settings.Sheets.Burst)
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Address: %s\n", settings.Server.Addr())
	cmd.Printf("  Root path: %s\n", orNotSet(settings.Server.NormalisedRootPath()))
	cmd.Printf("  Allowed origins: %s\n", orNotSet(strings.Join(settings.Server.AllowedOrigins, ", ")))
	cmd.Println()

	cmd.Println("[Snapshots]")
	if settings.Snapshots.IsConfigured() {
		cmd.Printf("  Endpoint: %s (ssl: %t)\n", settings.Snapshots.Endpoint, settings.Snapshots.UseSSL)
		cmd.Printf("  Bucket: %s (%s)\n", settings.Snapshots.Bucket, settings.Snapshots.Region)
		cmd.Printf("  Access Key: %s\n", maskSecret(settings.Snapshots.AccessKey))
		cmd.Printf("  Secret Key: %s\n", maskSecret(settings.Snapshots.SecretKey))
		cmd.Printf("  Link expiry: %ds\n", settings.Snapshots.URLExpirySeconds)
	} else {
		cmd.Println("  Status: not configured")
	}
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Data dir: %s\n", orNotSet(settings.DataDir))

	if err := settings.Validate(); err != nil {
		cmd.Println()
		cmd.Println("Problems:")
		for _, line := range strings.Split(err.Error(), "\n") {
			cmd.Printf("  - %s\n", line)
		}
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key := args[0]
	var value string
	if len(args) == 2 {
		value = args[1]
	} else {
		cmd.Printf("%s: ", key)
		value = readPassword()
		cmd.Println()
	}

	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to save setting: %w", err)
	}

	shown := value
	if isSecretKey(key) {
		shown = maskSecret(value)
	}
	cmd.Printf("Saved %s = %s\n", key, shown)
	return nil
}

func runConfigKeys(cmd *cobra.Command, _ []string) error {
	for _, key := range services.KnownKeys() {
		source := ""
		if configSource != nil {
			source = configSource(key)
		}
		if source == "" {
			source = "default"
		}
		cmd.Printf("  %-30s %s\n", key, source)
	}
	return nil
}

func printLocator(cmd *cobra.Command, name string, loc domain.SheetLocator) {
	if !loc.IsConfigured() {
		cmd.Printf("  %s: not configured\n", name)
		return
	}
	cmd.Printf("  %s: %s [%s]\n", name, loc.URL, loc.TabName)
}

func isSecretKey(key string) bool {
	return key == services.KeySnapshotsAccessKey || key == services.KeySnapshotsSecretKey
}

func orNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskSecret(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
