package cli

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/hydrocard/pkg/types"
)

var errRoundTripMismatch = errors.New("round trip changed at least one file")

func newRoundTripCmd(a *app) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "roundtrip <file>...",
		Short: "Decode and re-encode files in memory and compare the bytes",
		Long: `Roundtrip decodes each file, encodes the result again and compares it with
the original. Nothing is stored. The command fails if any file differs.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dsOpts, err := a.datasetOptions()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			mismatch := false
			for _, path := range args {
				k, err := kindForPath(path, kind)
				if err != nil {
					return err
				}
				original, err := readOriginal(path)
				if err != nil {
					return err
				}
				g, err := a.decodeFile(path, k, dsOpts)
				if err != nil {
					if a.cfg.SkipMissingMask && errors.Is(err, types.ErrMissingCollaborator) {
						a.log.Warn("skipping file", zap.String("file", path), zap.Error(err))
						fmt.Fprintf(out, "skipped\t%s\n", path)
						continue
					}
					return fmt.Errorf("%s: %w", path, err)
				}
				encoded, err := encodeGraph(g, dsOpts)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				if bytes.Equal(original, encoded) {
					fmt.Fprintf(out, "ok\t%s\n", path)
					continue
				}
				mismatch = true
				line := firstDiff(original, encoded)
				a.log.Debug("round trip mismatch", zap.String("file", path), zap.Int("line", line))
				fmt.Fprintf(out, "differs\t%s\tline %d\n", path, line)
			}
			if mismatch {
				return errRoundTripMismatch
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", kindAuto, "grammar to use: auto, network or dataset")
	return cmd
}
