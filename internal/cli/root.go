// Package cli implements the hydrocard command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mesh-intelligence/hydrocard/internal/paths"
	"github.com/mesh-intelligence/hydrocard/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir       string
	dataDir         string
	mask            string
	spatial         bool
	strict          bool
	skipMissingMask bool
	verbose         bool
}

// app is the state shared by one command invocation.
type app struct {
	flags     rootFlags
	configDir string
	cfg       types.Config
	log       *zap.Logger
}

// NewRootCmd creates the top-level "hydrocard" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{})
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "hydrocard",
		Short: "Read and write GSSHA storm pipe network and WMS dataset files",
		Long: "hydrocard decodes storm pipe network (.spn) and WMS dataset files into\n" +
			"a local store and writes them back byte for byte.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $"+paths.EnvConfigDir+" or platform config dir)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: config data_dir, $"+paths.EnvDataDir+" or platform data dir)")
	pf.StringVar(&a.flags.mask, "mask", "", "GRASS ASCII mask grid (.msk) for dataset files")
	pf.BoolVar(&a.flags.spatial, "spatial", false, "store dataset time steps as encoded rasters")
	pf.BoolVar(&a.flags.strict, "strict", false, "reject SLINK records whose pipe count differs from the declared count")
	pf.BoolVar(&a.flags.skipMissingMask, "skip-missing-mask", false, "warn and skip dataset files when no mask is configured")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newReadCmd(a))
	root.AddCommand(newWriteCmd(a))
	root.AddCommand(newRoundTripCmd(a))
	root.AddCommand(newListCmd(a))
	root.AddCommand(newDeleteCmd(a))
	root.AddCommand(newExportCmd(a))
	root.AddCommand(newImportCmd(a))

	return root
}

// setup resolves directories, loads config.yaml and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	dir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	a.configDir = dir

	v, err := loadConfig(dir)
	if err != nil {
		return err
	}
	if err := bindFlags(v, cmd.Root()); err != nil {
		return err
	}
	cfg, err := buildConfig(v, a.flags.dataDir)
	if err != nil {
		return err
	}
	if a.flags.verbose {
		cfg.LogLevel = "debug"
	}
	a.cfg = cfg

	if a.log == nil {
		log, err := newLogger(cfg.LogLevel, cmd.ErrOrStderr())
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		a.log = log
	}
	a.log.Debug("configuration loaded",
		zap.String("config_dir", dir),
		zap.String("data_dir", cfg.DataDir),
		zap.String("mask", cfg.MaskPath),
		zap.Bool("strict_counts", cfg.StrictCounts),
		zap.Bool("spatial", cfg.Spatial))
	return nil
}

// newLogger builds a production zap logger at level writing to w.
func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, err
		}
		config.Level = zap.NewAtomicLevelAt(lvl)
	}
	if w == os.Stderr {
		return config.Build()
	}
	enc := zapcore.NewJSONEncoder(config.EncoderConfig)
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), config.Level)), nil
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
	os.Exit(exitSuccess)
}

// exitCode maps an error to a process exit code: file and storage
// failures are system errors, everything else is a user error.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, types.ErrIO):
		return exitSysError
	default:
		return exitUserError
	}
}
