// Package config provides configuration management for the doublecheck CLI
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment variables, e.g. DOUBLECHECK_IDLELABEL.
const EnvPrefix = "DOUBLECHECK"

// Config holds the configuration for the doublecheck CLI
type Config struct {
	IdleLabel  string `yaml:"idleLabel" mapstructure:"idleLabel"`
	ArmedLabel string `yaml:"armedLabel" mapstructure:"armedLabel"`

	// Key names as reported by Bubble Tea ("enter", " ", "esc", "ctrl+x").
	ActivateKeys []string `yaml:"activateKeys" mapstructure:"activateKeys"`
	CancelKeys   []string `yaml:"cancelKeys" mapstructure:"cancelKeys"`

	Mouse   bool   `yaml:"mouse" mapstructure:"mouse"`
	Verbose bool   `yaml:"verbose" mapstructure:"verbose"`
	Debug   bool   `yaml:"debug" mapstructure:"debug"`
	LogFile string `yaml:"logFile" mapstructure:"logFile"`
}

// LoadConfig loads the configuration from various sources in the following order of precedence:
// 1. Command-line flags (highest priority)
// 2. Environment variables
// 3. Configuration file
// 4. Default values (lowest priority)
//
// If a config file is not found, it falls back to using defaults and flags.
func LoadConfig(stderr io.Writer, flagSet *pflag.FlagSet) (*Config, error) {
	if flagSet == nil {
		flagSet = pflag.CommandLine
	}
	if stderr == nil {
		stderr = io.Discard
	}
	cfg := &Config{}
	v := viper.New()

	SetupViper(v, flagSet)
	SetupFlagNormalization(flagSet)

	if err := HandleConfigFile(v, stderr, flagSet); err != nil {
		return nil, err
	}

	// Then bind flags (so they override config)
	if err := v.BindPFlags(flagSet); err != nil {
		return nil, fmt.Errorf("unable to bind flags: %w", err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}

	if verbose(flagSet) {
		LogConfigSources(v, stderr)
		fmt.Fprintln(stderr, "doublecheck-config:")
		if err := Dump(stderr, cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// SetupViper configures viper with default values and settings
func SetupViper(v *viper.Viper, flagSet *pflag.FlagSet) {
	v.SetDefault("idleLabel", "Click me")
	v.SetDefault("armedLabel", "You sure?")
	v.SetDefault("activateKeys", []string{"enter", " "})
	v.SetDefault("cancelKeys", []string{"esc"})
	v.SetDefault("mouse", true)

	v.AddConfigPath("/etc/doublecheck/")
	v.AddConfigPath("$HOME/.doublecheck")
	v.AddConfigPath(".")
	v.SetConfigName("config")

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if f := flagSet.Lookup("config"); f != nil && f.Changed {
		v.SetConfigFile(f.Value.String())
	}
}

// SetupFlagNormalization maps dashed flag names onto config keys,
// so --idle-label binds to idleLabel.
func SetupFlagNormalization(flagSet *pflag.FlagSet) {
	normalizeFunc := flagSet.GetNormalizeFunc()
	flagSet.SetNormalizeFunc(func(fs *pflag.FlagSet, name string) pflag.NormalizedName {
		result := normalizeFunc(fs, name)
		name = strings.ReplaceAll(string(result), "-", "")
		return pflag.NormalizedName(name)
	})
}

// HandleConfigFile handles loading the configuration file
func HandleConfigFile(v *viper.Viper, stderr io.Writer, flagSet *pflag.FlagSet) error {
	if configFlag := flagSet.Lookup("config"); configFlag != nil && configFlag.Changed {
		configFile := configFlag.Value.String()
		if _, err := os.Stat(configFile); err != nil {
			return fmt.Errorf("config file %s not accessible: %w", configFile, err)
		}
		v.SetConfigFile(configFile)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if verbose(flagSet) {
				fmt.Fprintln(stderr, "doublecheck: config file not found, using defaults")
			}
			return nil
		}
		return fmt.Errorf("unable to read config file: %w", err)
	}

	if verbose(flagSet) {
		fmt.Fprintf(stderr, "doublecheck: read config from %s\n", v.ConfigFileUsed())
	}
	return nil
}

// LogConfigSources logs where each label came from
func LogConfigSources(v *viper.Viper, stderr io.Writer) {
	for _, key := range []string{"idleLabel", "armedLabel"} {
		var source string
		switch {
		case os.Getenv(EnvPrefix+"_"+strings.ToUpper(key)) != "":
			source = "environment"
		case v.InConfig(key):
			source = "config file"
		default:
			source = "default or flag"
		}
		fmt.Fprintf(stderr, "doublecheck: using %s from %s: %q\n", key, source, v.GetString(key))
	}
}

// Dump writes cfg as YAML.
func Dump(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return enc.Close()
}

func verbose(flagSet *pflag.FlagSet) bool {
	v, _ := flagSet.GetBool("verbose")
	return v
}
