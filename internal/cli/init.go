package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/hydrocard/internal/sqlite"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize hydrocard storage",
		Long:  "Create the configuration and data directories, record the data directory in config.yaml, then initialize the store.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(cmd)
		},
	}
}

func (a *app) runInit(cmd *cobra.Command) error {
	path := filepath.Join(a.configDir, configFileExt)
	if err := pinDataDir(path, a.cfg.DataDir); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	store := sqlite.NewBackend()
	if err := store.Attach(a.cfg); err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}
	if err := store.Detach(); err != nil {
		return fmt.Errorf("finalize storage: %w", err)
	}

	a.log.Info("store initialized", zap.String("config", path), zap.String("data_dir", a.cfg.DataDir))
	fmt.Fprintln(cmd.OutOrStdout(), "hydrocard initialized successfully")
	return nil
}

// pinDataDir records dataDir in config.yaml when the file does not name
// one yet. Other settings are kept as they are.
func pinDataDir(path, dataDir string) error {
	cfg, err := readConfigFile(path)
	if err != nil {
		return err
	}
	if cfg.DataDir != "" {
		return nil
	}
	cfg.DataDir = dataDir
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, append([]byte(configHeader), data...), 0o644)
}
