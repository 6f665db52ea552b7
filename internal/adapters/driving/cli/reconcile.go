package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/EduuF/sinaliza-libras/internal/core/domain"
	"github.com/EduuF/sinaliza-libras/internal/core/ports/driving"
)

var reconcileCmd = requiresServices(&cobra.Command{
	Use:   "reconcile",
	Short: "Repair video registrations that stopped partway",
	Long: `A video registration writes the fragment row and then the interpreter row.
When a later write fails, a marker is recorded locally. Replaying it runs
the whole registration again, which is safe because registration is
idempotent.`,
})

var reconcileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pending markers",
	Args:  cobra.NoArgs,
	RunE:  runReconcileList,
}

var reconcileRetryCmd = &cobra.Command{
	Use:   "retry [marker-id]",
	Short: "Replay one marker, or every pending marker",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runReconcileRetry,
}

// reconcileListAll is the --all flag for the list command.
var reconcileListAll bool

func init() {
	reconcileListCmd.Flags().BoolVarP(&reconcileListAll, "all", "a", false, "Include resolved markers")

	reconcileCmd.AddCommand(reconcileListCmd)
	reconcileCmd.AddCommand(reconcileRetryCmd)
	rootCmd.AddCommand(reconcileCmd)
}

func runReconcileList(cmd *cobra.Command, _ []string) error {
	if reconciliationService == nil {
		return errors.New("reconciliation service not configured")
	}

	markers, err := reconciliationService.List(cmd.Context(), reconcileListAll)
	if err != nil {
		return fmt.Errorf("failed to list markers: %w", err)
	}

	if len(markers) == 0 {
		cmd.Println("Nothing to reconcile.")
		return nil
	}

	for i := range markers {
		printMarker(cmd, &markers[i])
	}
	cmd.Printf("Total: %d markers\n", len(markers))
	return nil
}

func runReconcileRetry(cmd *cobra.Command, args []string) error {
	if reconciliationService == nil {
		return errors.New("reconciliation service not configured")
	}

	var results []driving.RetryResult
	if len(args) == 1 {
		res, err := reconciliationService.Retry(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to retry marker: %w", err)
		}
		results = append(results, *res)
	} else {
		all, err := reconciliationService.RetryAll(cmd.Context())
		results = all
		if err != nil {
			printRetryResults(cmd, results)
			return fmt.Errorf("failed to retry markers: %w", err)
		}
	}

	if len(results) == 0 {
		cmd.Println("Nothing to reconcile.")
		return nil
	}
	printRetryResults(cmd, results)

	for _, res := range results {
		if !res.Reconciliation.IsResolved() {
			return errors.New("some markers are still pending")
		}
	}
	return nil
}

func printRetryResults(cmd *cobra.Command, results []driving.RetryResult) {
	for _, res := range results {
		r := res.Reconciliation
		if r.IsResolved() {
			cmd.Printf("  %s  resolved (trecho %d, interprete %d)\n", r.ID, r.TrechoID, r.InterpreteID)
			continue
		}
		cmd.Printf("  %s  still failing at %s: %s\n", r.ID, r.FailedStep, r.Error)
	}
}

func printMarker(cmd *cobra.Command, r *domain.Reconciliation) {
	done := make([]string, len(r.Completed))
	for i, s := range r.Completed {
		done[i] = string(s)
	}

	cmd.Printf("%s\n", r.ID)
	cmd.Printf("  Trecho:     %d\n", r.TrechoID)
	cmd.Printf("  Interprete: %d\n", r.InterpreteID)
	cmd.Printf("  Video:      %s\n", r.VideoURL)
	cmd.Printf("  Completed:  [%s]\n", strings.Join(done, ", "))
	cmd.Printf("  Failed at:  %s\n", r.FailedStep)
	cmd.Printf("  Error:      %s\n", r.Error)
	cmd.Printf("  Attempts:   %d\n", r.Attempts)
	cmd.Printf("  Created:    %s\n", r.CreatedAt.Format("2006-01-02 15:04:05"))
	if r.ResolvedAt != nil {
		cmd.Printf("  Resolved:   %s\n", r.ResolvedAt.Format("2006-01-02 15:04:05"))
	}
	cmd.Println()
}
