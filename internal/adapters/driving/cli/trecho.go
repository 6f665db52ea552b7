package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/EduuF/sinaliza-libras/internal/core/domain"
)

var trechoCmd = requiresServices(&cobra.Command{
	Use:   "trecho",
	Short: "Manage fragments",
	Long:  `View, list, or delete fragments in the trecho sheet.`,
})

var trechoGetCmd = &cobra.Command{
	Use:   "get [trecho-id]",
	Short: "Show a fragment",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrechoGet,
}

var trechoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List fragments",
	Args:  cobra.NoArgs,
	RunE:  runTrechoList,
}

var trechoDeleteCmd = &cobra.Command{
	Use:   "delete [trecho-id]",
	Short: "Delete a fragment row",
	Long: `Deletes the fragment's row from the trecho sheet.

The fragment's id is left in its site's and interpreter's trechos_ids lists.`,
	Args: cobra.ExactArgs(1),
	RunE: runTrechoDelete,
}

// trechoListSite is the --site flag for the list command.
var trechoListSite int

func init() {
	trechoListCmd.Flags().IntVar(&trechoListSite, "site", 0, "Only list fragments of this site")

	trechoCmd.AddCommand(trechoGetCmd)
	trechoCmd.AddCommand(trechoListCmd)
	trechoCmd.AddCommand(trechoDeleteCmd)
	rootCmd.AddCommand(trechoCmd)
}

func runTrechoGet(cmd *cobra.Command, args []string) error {
	if trechoService == nil {
		return errors.New("trecho service not configured")
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	trecho, err := trechoService.Get(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("failed to get trecho: %w", err)
	}

	cmd.Printf("Trecho: %d\n\n", trecho.ID())
	cmd.Printf("  Site:       %s\n", optionalInt(trecho.SiteID))
	cmd.Printf("  Interprete: %s\n", optionalInt(trecho.InterpreteID))
	cmd.Printf("  Snapshot:   %s\n", orDash(domain.Deref(trecho.SnapshotName)))
	cmd.Printf("  Video:      %s\n", orDash(domain.Deref(trecho.VideoURL)))
	cmd.Printf("  Hash:       %s\n", orDash(domain.Deref(trecho.TrechoHash)))
	cmd.Println()
	cmd.Println(trecho.Conteudo)
	return nil
}

func runTrechoList(cmd *cobra.Command, _ []string) error {
	if trechoService == nil {
		return errors.New("trecho service not configured")
	}

	var siteID *int
	if cmd.Flags().Changed("site") {
		siteID = domain.IntPtr(trechoListSite)
	}

	trechos, err := trechoService.List(cmd.Context(), siteID)
	if err != nil {
		return fmt.Errorf("failed to list trechos: %w", err)
	}

	if len(trechos) == 0 {
		cmd.Println("No trechos found.")
		return nil
	}

	for i := range trechos {
		t := &trechos[i]
		status := "available"
		if !t.IsAvailable() {
			status = "interprete " + optionalInt(t.InterpreteID)
		}
		cmd.Printf("  %-6d site %-6s %-16s %s\n", t.ID(), optionalInt(t.SiteID), status, truncate(t.Conteudo, 60))
	}

	cmd.Printf("\nTotal: %d trechos\n", len(trechos))
	return nil
}

func runTrechoDelete(cmd *cobra.Command, args []string) error {
	if trechoService == nil {
		return errors.New("trecho service not configured")
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if err := trechoService.Delete(cmd.Context(), id); err != nil {
		return fmt.Errorf("failed to delete trecho: %w", err)
	}

	cmd.Printf("Deleted trecho %d.\n", id)
	return nil
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer id", domain.ErrInvalidInput, arg)
	}
	return id, nil
}

func optionalInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
