package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader handles configuration loading using Viper.
//
// Create with [NewLoader], then call [Loader.Load] to resolve the full
// priority chain, or [Loader.LoadFromFile] to read one specific file.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	return &Loader{v: viper.New()}
}

// Load resolves configuration from the standard locations: environment
// variables, the file named by POPPER_CONFIG_PATH, the user config
// directory, and ./popper.yaml, falling back to [DefaultConfig] values for
// anything unset. A missing config file is not an error unless it was named
// explicitly via POPPER_CONFIG_PATH.
func (l *Loader) Load() (*Config, error) {
	l.setDefaults()
	l.bindEnv()

	if path := os.Getenv("POPPER_CONFIG_PATH"); path != "" {
		l.v.SetConfigFile(path)
	} else {
		l.v.SetConfigName("popper")
		l.v.SetConfigType("yaml")
		if dir, err := os.UserConfigDir(); err == nil {
			l.v.AddConfigPath(filepath.Join(dir, "popper"))
		}
		l.v.AddConfigPath(".")
	}

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No config file anywhere in the search path; defaults and
		// environment overrides still apply.
	}

	return l.unmarshal()
}

// LoadFromFile loads configuration from a specific file path. Unlike
// [Loader.Load], the file must exist and parse.
func (l *Loader) LoadFromFile(path string) (*Config, error) {
	l.setDefaults()
	l.bindEnv()
	l.v.SetConfigFile(path)

	if err := l.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	return l.unmarshal()
}

func (l *Loader) unmarshal() (*Config, error) {
	cfg := DefaultConfig()
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return cfg, nil
}

func (l *Loader) setDefaults() {
	def := DefaultConfig()
	l.v.SetDefault("engine.binary_path", def.Engine.BinaryPath)
	l.v.SetDefault("pre_workflow_path", def.PreWorkflowPath)
	l.v.SetDefault("post_workflow_path", def.PostWorkflowPath)
}

func (l *Loader) bindEnv() {
	l.v.SetEnvPrefix("POPPER")
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()

	// Canonical override names, matching what CI setups export.
	l.v.BindEnv("engine.binary_path", "POPPER_ENGINE_PATH")
	l.v.BindEnv("pre_workflow_path", "POPPER_PRE_WORKFLOW_PATH")
	l.v.BindEnv("post_workflow_path", "POPPER_POST_WORKFLOW_PATH")
}
