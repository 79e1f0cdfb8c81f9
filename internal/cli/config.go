package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/hydrocard/internal/paths"
	"github.com/mesh-intelligence/hydrocard/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// Config keys; they match the yaml tags of types.Config.
	cfgKeyBackend         = "backend"
	cfgKeyDataDir         = "data_dir"
	cfgKeyStrictCounts    = "strict_counts"
	cfgKeySpatial         = "spatial"
	cfgKeySkipMissingMask = "skip_missing_mask"
	cfgKeyMask            = "mask"
	cfgKeyStartDate       = "start_date"
	cfgKeyStartTime       = "start_time"
	cfgKeyLogLevel        = "log_level"

	defaultLogLevel = "info"
)

const configHeader = "# hydrocard configuration\n# Flags override these values for a single run.\n\n"

// loadConfig reads config.yaml from configDir using Viper. It creates the
// config directory and a default config.yaml on first run.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, types.IOError("create", configDir, err)
	}
	if err := writeConfigIfMissing(filepath.Join(configDir, configFileExt), ""); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// bindFlags lets explicitly set global flags override config.yaml.
func bindFlags(v *viper.Viper, root *cobra.Command) error {
	pf := root.PersistentFlags()
	for key, flag := range map[string]string{
		cfgKeyStrictCounts:    "strict",
		cfgKeySpatial:         "spatial",
		cfgKeySkipMissingMask: "skip-missing-mask",
		cfgKeyMask:            "mask",
	} {
		if err := v.BindPFlag(key, pf.Lookup(flag)); err != nil {
			return fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}
	return nil
}

// buildConfig turns viper settings into a validated types.Config.
func buildConfig(v *viper.Viper, dataDirFlag string) (types.Config, error) {
	dataDir, err := paths.ResolveDataDir(dataDirFlag, v.GetString(cfgKeyDataDir))
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}
	cfg := types.Config{
		Backend:         v.GetString(cfgKeyBackend),
		DataDir:         dataDir,
		StrictCounts:    v.GetBool(cfgKeyStrictCounts),
		Spatial:         v.GetBool(cfgKeySpatial),
		SkipMissingMask: v.GetBool(cfgKeySkipMissingMask),
		MaskPath:        v.GetString(cfgKeyMask),
		StartDate:       v.GetString(cfgKeyStartDate),
		StartTime:       v.GetString(cfgKeyStartTime),
		LogLevel:        v.GetString(cfgKeyLogLevel),
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist. If it already exists, the function returns nil.
func writeConfigIfMissing(path, dataDir string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	cfg := types.Config{
		Backend:  types.BackendSQLite,
		DataDir:  dataDir,
		LogLevel: defaultLogLevel,
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, append([]byte(configHeader), data...), 0o644)
}

// readConfigFile decodes config.yaml directly, without viper defaults.
func readConfigFile(path string) (types.Config, error) {
	var cfg types.Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}
