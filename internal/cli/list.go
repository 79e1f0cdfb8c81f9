package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	var (
		kind     string
		jsonMode bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored files",
		Long: `List prints one line per stored file: <id> <kind> <name> <created>.

Example:
  hydrocard list
  hydrocard list --kind network
  hydrocard list --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Detach()

			files, err := store.ListFiles(kind)
			if err != nil {
				return fmt.Errorf("list files: %w", err)
			}
			out := cmd.OutOrStdout()
			if jsonMode {
				data, err := json.MarshalIndent(files, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal files: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}
			for _, f := range files {
				fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", f.FileID, f.Kind, f.Name, f.CreatedAt.Format(time.RFC3339))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "only list files of this kind (network or dataset)")
	cmd.Flags().BoolVar(&jsonMode, "json", false, "output in JSON format")
	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Detach()

			if err := store.DeleteFile(args[0]); err != nil {
				return fmt.Errorf("delete %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}
