package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/larder/internal/paths"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	cfgKeyLogLevel = "log_level"
	cfgKeyFormat   = "format"

	defaultLogLevel = "info"
	defaultFormat   = formatText
)

// configFile is the structure written to config.yaml.
type configFile struct {
	LogLevel string `yaml:"log_level"`
	Format   string `yaml:"format"`
}

// loadConfig reads config.yaml from configDir. Flags that were set on the
// command line override file values. A missing config.yaml is not an error.
func loadConfig(configDir string, flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetDefault(cfgKeyFormat, defaultFormat)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		if err := bindFlag(v, cfgKeyLogLevel, flags.Lookup("log-level")); err != nil {
			return nil, err
		}
		if err := bindFlag(v, cfgKeyFormat, flags.Lookup("format")); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// bindFlag lets an explicitly set flag win over the config file.
func bindFlag(v *viper.Viper, key string, flag *pflag.Flag) error {
	if flag == nil || !flag.Changed {
		return nil
	}
	if err := v.BindPFlag(key, flag); err != nil {
		return fmt.Errorf("bind flag %s: %w", flag.Name, err)
	}
	return nil
}

// writeConfigIfMissing creates config.yaml with default values. An existing
// file is left alone. Reports whether a file was written.
func writeConfigIfMissing(configDir string) (string, bool, error) {
	path := paths.ConfigFile(configDir)
	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return path, false, fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(&configFile{
		LogLevel: defaultLogLevel,
		Format:   defaultFormat,
	})
	if err != nil {
		return path, false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return path, false, fmt.Errorf("write config: %w", err)
	}
	return path, true, nil
}
