// Package main runs the one-off reconciliation that fills missing registration ids
// (column L) in the tracking spreadsheet.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mediaarise/backend/config"
	"github.com/mediaarise/backend/internal/app"
	"github.com/mediaarise/backend/internal/registrations"
	"github.com/mediaarise/backend/internal/sheetsync"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "backfill",
		Short: "Write missing registration ids into the tracking spreadsheet",
		Long: `Matches spreadsheet rows without a registration id to registrations in the content
store by email, first name and last name, and writes the id into column L.
Rows that already carry an id are left alone, so the command can be re-run safely.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := app.NewLogger(cfg.LogLevel)
			defer logger.Sync()

			ctx := cmd.Context()
			store := app.NewSanityClient(cfg, logger)
			sheet := app.NewSheetSync(ctx, cfg, logger)
			report, err := sheet.Backfill(ctx, registrations.NewRepository(store), dryRun)
			if err != nil {
				logger.Error("backfill failed", zap.Error(err))
				return err
			}
			printReport(cmd.OutOrStdout(), report, dryRun)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report matches without writing to the sheet")
	return cmd
}

func printReport(w io.Writer, r *sheetsync.BackfillReport, dryRun bool) {
	if dryRun {
		fmt.Fprintln(w, "Dry run: no cells were written.")
	}
	fmt.Fprintf(w, "Rows scanned:        %d\n", r.Scanned)
	fmt.Fprintf(w, "Already had an id:   %d\n", r.Skipped)
	fmt.Fprintf(w, "Matched:             %d\n", r.Matched)
	fmt.Fprintf(w, "Written:             %d\n", r.Written)
	fmt.Fprintf(w, "Unmatched:           %d\n", len(r.Unmatched))
	for _, row := range r.Unmatched {
		fmt.Fprintf(w, "  row %d\n", row)
	}
}
