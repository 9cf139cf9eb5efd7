// Package config loads blueprints settings from defaults, a config file,
// BLUEPRINTS_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. BLUEPRINTS_STATE_DIR.
const EnvPrefix = "BLUEPRINTS"

// Config holds all configuration for blueprints.
type Config struct {
	// Extension is the file suffix of blueprint documents.
	Extension string `mapstructure:"extension"`
	// Root is the rules directory scanned by check.
	Root string `mapstructure:"root"`
	// Jobs is the number of documents processed in parallel.
	Jobs int `mapstructure:"jobs"`
	// StateDir keeps the last run report; empty disables it.
	StateDir string `mapstructure:"state_dir"`
	// Format is the report format: text, markdown or json.
	Format string `mapstructure:"format"`
	// Tables names a file replacing the built-in metadata tables.
	Tables string `mapstructure:"tables"`

	SchemaVersion string `mapstructure:"schema_version"`
	License       string `mapstructure:"license"`
	RepositoryURL string `mapstructure:"repository_url"`

	Log LogConfig `mapstructure:"log"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// LogConfig selects the diagnostic logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var defaultConfig = Config{
	Extension: ".mdc",
	Root:      ".ai/rules",
	Jobs:      1,
	Format:    "text",
	Log: LogConfig{
		Level:  "info",
		Format: "text",
	},
}

// flagKeys maps config keys to the flag names that override them.
var flagKeys = map[string]string{
	"extension":  "ext",
	"root":       "root",
	"jobs":       "jobs",
	"state_dir":  "state-dir",
	"format":     "format",
	"tables":     "tables",
	"log.format": "log-format",
}

// Load reads the configuration. When file is empty, .blueprints.yaml is
// looked up in the working directory and then in $HOME, and a missing file
// is not an error. Flags present in flags and set by the user win over
// every other source.
func Load(file string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("extension", defaultConfig.Extension)
	v.SetDefault("root", defaultConfig.Root)
	v.SetDefault("jobs", defaultConfig.Jobs)
	v.SetDefault("state_dir", defaultConfig.StateDir)
	v.SetDefault("format", defaultConfig.Format)
	v.SetDefault("tables", defaultConfig.Tables)
	v.SetDefault("schema_version", "")
	v.SetDefault("license", "")
	v.SetDefault("repository_url", "")
	v.SetDefault("log.level", defaultConfig.Log.Level)
	v.SetDefault("log.format", defaultConfig.Log.Format)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(".blueprints")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if flags != nil {
		for key, name := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding flag --%s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that cannot be used as given.
func (c *Config) Validate() error {
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", c.Jobs)
	}
	if c.Extension != "" && !strings.HasPrefix(c.Extension, ".") {
		return fmt.Errorf("extension %q must start with a dot", c.Extension)
	}
	return nil
}
