package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	configName     = ".polyloc"
	configType     = "yaml"
	envPrefix      = "POLYLOC"
	envKeySeparator = "_"
)

// LoadConfig loads configuration from defaults, file, and environment
// variables, in that increasing order of precedence. If configPath is
// non-empty it names an explicit config file; otherwise ".polyloc.yaml" is
// searched for in the current directory and the user's home directory. A
// missing config file is not an error.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	applyDefaults(v)

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("workers", DefaultWorkers)
	v.SetDefault("excludes", []string{})
	v.SetDefault("language_overrides", map[string]string{})
	v.SetDefault("disable_probe", false)
	v.SetDefault("header_window_bytes", DefaultHeaderWindowBytes)
	v.SetDefault("observability.log_json", false)
	v.SetDefault("observability.log_level", "info")
}
