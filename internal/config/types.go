// Package config provides configuration loading and management for popper.
//
// Configuration is loaded using Viper, supporting YAML config files and
// environment variable overrides. The defaults work out of the box: the
// execution engine is looked up on PATH and no pre- or post-workflow is
// injected.
//
// Key types:
//   - [Config] is the root configuration container with all settings
//   - [Loader] handles Viper-based configuration loading
//   - [EngineConfig] contains execution engine binary settings
//
// Configuration priority (highest to lowest):
//  1. Environment variables (POPPER_ prefix)
//  2. Config file specified by POPPER_CONFIG_PATH
//  3. User config directory (platform-standard):
//     - Linux: ~/.config/popper/popper.yaml
//     - macOS: ~/Library/Application Support/popper/popper.yaml
//     - Windows: %APPDATA%\popper\popper.yaml
//  4. ./popper.yaml
//  5. [DefaultConfig] defaults
package config

// Config represents the root configuration structure.
//
// This is the main configuration container loaded by [Loader] and shared by
// the command layer. Use [DefaultConfig] to get the built-in defaults.
type Config struct {
	// Engine contains execution engine binary settings.
	Engine EngineConfig `mapstructure:"engine"`

	// PreWorkflowPath is the path to a workflow executed in full before the
	// main workflow of every run. Empty means no pre-workflow. CI setups
	// inject this via the POPPER_PRE_WORKFLOW_PATH environment variable.
	PreWorkflowPath string `mapstructure:"pre_workflow_path"`

	// PostWorkflowPath is the path to a workflow executed in full after the
	// main workflow succeeds. Empty means no post-workflow. CI setups
	// inject this via the POPPER_POST_WORKFLOW_PATH environment variable.
	PostWorkflowPath string `mapstructure:"post_workflow_path"`
}

// EngineConfig contains execution engine configuration.
//
// These settings control how the workflow execution engine binary is
// invoked.
type EngineConfig struct {
	// BinaryPath is the path to the execution engine binary.
	// Default: "popper-engine" (assumes the engine is in PATH).
	// Can be overridden with the POPPER_ENGINE_PATH environment variable.
	BinaryPath string `mapstructure:"binary_path"`
}

// DefaultConfig returns a new [Config] with the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			BinaryPath: "popper-engine",
		},
	}
}
