package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newWriteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "write <id> <path>",
		Short: "Encode a stored graph to a file",
		Long: `Write loads the graph stored under <id> and encodes it to <path>.

Datasets with time steps that carry their own status raster need the mask
grid they were read with (--mask or config "mask").`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, path := args[0], args[1]
			dsOpts, err := a.datasetOptions()
			if err != nil {
				return err
			}
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Detach()

			rec, g, err := loadGraph(store, id)
			if err != nil {
				return fmt.Errorf("load %s: %w", id, err)
			}
			if err := writeGraph(path, g, dsOpts); err != nil {
				return err
			}
			a.log.Info("file written", zap.String("id", id), zap.String("kind", rec.Kind), zap.String("path", path))
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", id, rec.Kind, path)
			return nil
		},
	}
}
