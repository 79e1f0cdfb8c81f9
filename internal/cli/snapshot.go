package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/hydrocard/internal/sqlite"
)

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <dir>",
		Short: "Write a JSONL snapshot of the store",
		Long:  "Export writes " + sqlite.NetworksFile + " and " + sqlite.DatasetsFile + " to <dir>, one stored graph per line.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Detach()

			if err := store.Export(args[0]); err != nil {
				return fmt.Errorf("export: %w", err)
			}
			a.log.Info("store exported", zap.String("dir", args[0]))
			fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", args[0])
			return nil
		},
	}
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <dir>",
		Short: "Load a JSONL snapshot into the store",
		Long:  "Import reads a snapshot written by export. Files already in the store are left alone and malformed lines are skipped.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Detach()

			stats, err := store.Import(args[0])
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}
			if stats.Skipped > 0 {
				a.log.Warn("skipped malformed snapshot records", zap.Int("skipped", stats.Skipped))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d, existing %d, skipped %d\n", stats.Imported, stats.Existing, stats.Skipped)
			return nil
		},
	}
}
