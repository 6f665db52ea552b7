package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/EduuF/sinaliza-libras/internal/core/domain"
)

var siteCmd = requiresServices(&cobra.Command{
	Use:   "site",
	Short: "Manage sites",
	Long:  `Register pages and import their paragraphs as fragments.`,
})

var siteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered sites",
	Args:  cobra.NoArgs,
	RunE:  runSiteList,
}

var siteRegisterCmd = &cobra.Command{
	Use:   "register [url]",
	Short: "Register a site",
	Long:  `Appends a site row for the URL unless one already exists.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSiteRegister,
}

var siteImportCmd = &cobra.Command{
	Use:   "import [url]",
	Short: "Import a page's paragraphs as fragments",
	Long: `Fetches the page, extracts its paragraphs and appends one fragment per
paragraph not yet present for the site. The site is registered first when
needed.

With --snapshots, images named highlighted_fragment_<n>.png in the directory
are uploaded to the snapshot store as site<id>_highlighted_fragment_<n>.png
and linked to the n-th paragraph.`,
	Args: cobra.ExactArgs(1),
	RunE: runSiteImport,
}

// Flags for the import command.
var (
	importSnapshotDir string
	importDryRun      bool
)

func init() {
	siteImportCmd.Flags().StringVar(&importSnapshotDir, "snapshots", "", "Directory holding highlighted_fragment_<n>.png images")
	siteImportCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Report what would be written without writing")

	siteCmd.AddCommand(siteListCmd)
	siteCmd.AddCommand(siteRegisterCmd)
	siteCmd.AddCommand(siteImportCmd)
	rootCmd.AddCommand(siteCmd)
}

func runSiteList(cmd *cobra.Command, _ []string) error {
	if siteService == nil {
		return errors.New("site service not configured")
	}

	sites, err := siteService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list sites: %w", err)
	}

	if len(sites) == 0 {
		cmd.Println("No sites registered.")
		return nil
	}

	cmd.Println("Registered sites:")
	cmd.Println()
	for _, site := range sites {
		cmd.Printf("  %d  %s\n", site.SiteID, site.SiteURL)
		cmd.Printf("    Trechos: %d\n", len(site.TrechosIDs))
	}
	return nil
}

func runSiteRegister(cmd *cobra.Command, args []string) error {
	if siteService == nil {
		return errors.New("site service not configured")
	}

	site, created, err := siteService.Register(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to register site: %w", err)
	}

	if created {
		cmd.Printf("Registered site %d: %s\n", site.SiteID, site.SiteURL)
	} else {
		cmd.Printf("Site already registered as %d: %s\n", site.SiteID, site.SiteURL)
	}
	return nil
}

func runSiteImport(cmd *cobra.Command, args []string) error {
	if importService == nil {
		return errors.New("import service not configured")
	}

	cmd.Printf("Importing %s...\n", args[0])

	report, err := importService.Import(cmd.Context(), domain.ImportRequest{
		PageURL:     args[0],
		SnapshotDir: importSnapshotDir,
		DryRun:      importDryRun,
	})
	if report != nil {
		printImportReport(cmd, report, importDryRun)
	}
	if err != nil {
		return fmt.Errorf("failed to import page: %w", err)
	}
	return nil
}

func printImportReport(cmd *cobra.Command, report *domain.ImportReport, dryRun bool) {
	verb := "Created"
	if dryRun {
		verb = "Would create"
	}

	cmd.Println()
	if report.SiteCreated {
		cmd.Printf("  Site:      %d %s (new)\n", report.Site.SiteID, report.Site.SiteURL)
	} else {
		cmd.Printf("  Site:      %d %s\n", report.Site.SiteID, report.Site.SiteURL)
	}
	cmd.Printf("  %s: %d trechos %v\n", verb, len(report.Created), report.Created)
	cmd.Printf("  Skipped:   %d already present\n", report.Skipped)
	if report.Snapshots > 0 {
		cmd.Printf("  Snapshots: %d uploaded\n", report.Snapshots)
	}
}
