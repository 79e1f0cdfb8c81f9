package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mesh-intelligence/hydrocard/pkg/types"
)

const defaultJobs = 4

func newReadCmd(a *app) *cobra.Command {
	var (
		kind string
		jobs int
	)
	cmd := &cobra.Command{
		Use:   "read <file>...",
		Short: "Decode files and save them to the store",
		Long: `Read decodes each file and saves the resulting graph to the store.

Files ending in .spn are read as storm pipe networks; every other file is
read as a WMS dataset, which needs a mask grid (--mask or config "mask").
One line is printed per file: <id> <kind> <name>.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRead(cmd.Context(), cmd.OutOrStdout(), args, kind, jobs)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", kindAuto, "grammar to use: auto, network or dataset")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", defaultJobs, "number of files decoded in parallel")
	return cmd
}

type readResult struct {
	id      string
	kind    string
	name    string
	skipped bool
}

func (a *app) runRead(ctx context.Context, out io.Writer, files []string, kind string, jobs int) error {
	kinds := make([]string, len(files))
	for i, path := range files {
		k, err := kindForPath(path, kind)
		if err != nil {
			return err
		}
		kinds[i] = k
	}
	if jobs < 1 {
		jobs = 1
	}

	dsOpts, err := a.datasetOptions()
	if err != nil {
		return err
	}
	store, err := a.openStore()
	if err != nil {
		return err
	}
	defer store.Detach()

	results := make([]readResult, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			name := filepath.Base(path)
			res := readResult{kind: kinds[i], name: name}

			decoded, err := a.decodeFile(path, kinds[i], dsOpts)
			if err != nil {
				if a.cfg.SkipMissingMask && errors.Is(err, types.ErrMissingCollaborator) {
					a.log.Warn("skipping file", zap.String("file", path), zap.Error(err))
					res.skipped = true
					results[i] = res
					return nil
				}
				return fmt.Errorf("%s: %w", path, err)
			}

			res.id, err = saveGraph(store, name, decoded)
			if err != nil {
				return fmt.Errorf("%s: save: %w", path, err)
			}
			a.log.Info("file stored", zap.String("file", path), zap.String("kind", res.kind), zap.String("id", res.id))
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, r := range results {
		if r.skipped {
			fmt.Fprintf(out, "-\t%s\t%s\tskipped\n", r.kind, r.name)
			continue
		}
		fmt.Fprintf(out, "%s\t%s\t%s\n", r.id, r.kind, r.name)
	}
	return nil
}
