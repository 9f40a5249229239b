package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "popper-engine", cfg.Engine.BinaryPath)
	assert.Empty(t, cfg.PreWorkflowPath)
	assert.Empty(t, cfg.PostWorkflowPath)
}

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	assert.NotNil(t, loader)
	assert.NotNil(t, loader.v)
}

func TestLoader_LoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.yaml")

	configContent := `
engine:
  binary_path: /custom/path/popper-engine
pre_workflow_path: /ci/setup.workflow
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	loader := NewLoader()
	cfg, err := loader.LoadFromFile(configPath)

	require.NoError(t, err)
	assert.Equal(t, "/custom/path/popper-engine", cfg.Engine.BinaryPath)
	assert.Equal(t, "/ci/setup.workflow", cfg.PreWorkflowPath)
	assert.Empty(t, cfg.PostWorkflowPath)
}

func TestLoader_LoadFromFile_NonExistent(t *testing.T) {
	loader := NewLoader()
	_, err := loader.LoadFromFile("/nonexistent/path/config.yaml")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoader_LoadFromFile_InvalidStructure(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	// engine must be a mapping, not a list
	invalidContent := `
engine:
  - binary_path
  - something else
`
	err := os.WriteFile(configPath, []byte(invalidContent), 0644)
	require.NoError(t, err)

	loader := NewLoader()
	_, err = loader.LoadFromFile(configPath)

	assert.Error(t, err)
}

func TestLoader_LoadFromFile_DifferentExtension(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	jsonContent := `{
		"engine": {
			"binary_path": "/json/path/popper-engine"
		}
	}`
	err := os.WriteFile(configPath, []byte(jsonContent), 0644)
	require.NoError(t, err)

	loader := NewLoader()
	cfg, err := loader.LoadFromFile(configPath)

	require.NoError(t, err)
	assert.Equal(t, "/json/path/popper-engine", cfg.Engine.BinaryPath)
}

func TestLoader_Load_DefaultsWithNoConfigFile(t *testing.T) {
	// Load() from an empty directory should fall back to defaults.
	tmpDir := t.TempDir()
	originalWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(originalWd)

	os.Unsetenv("POPPER_CONFIG_PATH")
	os.Unsetenv("POPPER_ENGINE_PATH")
	os.Unsetenv("POPPER_PRE_WORKFLOW_PATH")
	os.Unsetenv("POPPER_POST_WORKFLOW_PATH")

	loader := NewLoader()
	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, "popper-engine", cfg.Engine.BinaryPath)
}

func TestLoader_Load_WithConfigPathEnv(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "custom-config.yaml")

	configContent := `
engine:
  binary_path: /from/env/path/popper-engine
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	os.Setenv("POPPER_CONFIG_PATH", configPath)
	defer os.Unsetenv("POPPER_CONFIG_PATH")

	loader := NewLoader()
	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, "/from/env/path/popper-engine", cfg.Engine.BinaryPath)
}

func TestLoader_Load_MissingExplicitConfigFile(t *testing.T) {
	os.Setenv("POPPER_CONFIG_PATH", "/nonexistent/popper.yaml")
	defer os.Unsetenv("POPPER_CONFIG_PATH")

	loader := NewLoader()
	_, err := loader.Load()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoader_Load_EnvOverridesTakePrecedence(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	// Config file sets one path
	configContent := `
engine:
  binary_path: /from/file/popper-engine
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	os.Setenv("POPPER_CONFIG_PATH", configPath)
	os.Setenv("POPPER_ENGINE_PATH", "/from/env/override/popper-engine")
	defer os.Unsetenv("POPPER_CONFIG_PATH")
	defer os.Unsetenv("POPPER_ENGINE_PATH")

	loader := NewLoader()
	cfg, err := loader.Load()

	require.NoError(t, err)
	// Env var should take precedence
	assert.Equal(t, "/from/env/override/popper-engine", cfg.Engine.BinaryPath)
}

func TestLoader_Load_WorkflowInjectionEnv(t *testing.T) {
	tmpDir := t.TempDir()
	originalWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(originalWd)

	os.Unsetenv("POPPER_CONFIG_PATH")
	os.Setenv("POPPER_PRE_WORKFLOW_PATH", "/ci/pre.workflow")
	os.Setenv("POPPER_POST_WORKFLOW_PATH", "/ci/post.workflow")
	defer os.Unsetenv("POPPER_PRE_WORKFLOW_PATH")
	defer os.Unsetenv("POPPER_POST_WORKFLOW_PATH")

	loader := NewLoader()
	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, "/ci/pre.workflow", cfg.PreWorkflowPath)
	assert.Equal(t, "/ci/post.workflow", cfg.PostWorkflowPath)
}
