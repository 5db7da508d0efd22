package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:     AppConfig{Environment: "development"},
		Logger:  LoggerConfig{Level: "info"},
		Library: LibraryConfig{ExportPath: "/books/export.csv"},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_LogLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "WARN"} {
		cfg := validConfig()
		cfg.Logger.Level = level
		assert.NoError(t, cfg.Validate(), "level %s should be valid", level)
	}

	cfg := validConfig()
	cfg.Logger.Level = "verbose"
	assert.Error(t, cfg.Validate())
}

func TestValidate_MissingExportPath(t *testing.T) {
	cfg := validConfig()
	cfg.Library.ExportPath = ""
	assert.Error(t, cfg.Validate())
}

func TestExpandExportPath_RelativePath(t *testing.T) {
	cfg := validConfig()
	cfg.Library.ExportPath = "export.csv"

	require.NoError(t, cfg.expandExportPath())
	assert.True(t, filepath.IsAbs(cfg.Library.ExportPath))
}

func TestGetConfigValue_Precedence(t *testing.T) {
	t.Setenv("SHELFPICK_TEST_VALUE", "from-env")

	// Flag wins over env.
	assert.Equal(t, "from-flag", getConfigValue("from-flag", "SHELFPICK_TEST_VALUE", "default"))
	// Env wins over default.
	assert.Equal(t, "from-env", getConfigValue("", "SHELFPICK_TEST_VALUE", "default"))
	// Default as fallback.
	assert.Equal(t, "default", getConfigValue("", "SHELFPICK_TEST_UNSET", "default"))
}

func TestGetBoolConfigValue(t *testing.T) {
	assert.True(t, getBoolConfigValue("true", "SHELFPICK_TEST_UNSET", false))
	assert.True(t, getBoolConfigValue("YES", "SHELFPICK_TEST_UNSET", false))
	assert.True(t, getBoolConfigValue("1", "SHELFPICK_TEST_UNSET", false))
	assert.False(t, getBoolConfigValue("no", "SHELFPICK_TEST_UNSET", true))
	assert.True(t, getBoolConfigValue("", "SHELFPICK_TEST_UNSET", true))
}

func TestParseDurationValue(t *testing.T) {
	d, err := parseDurationValue("30s", "SHELFPICK_TEST_UNSET", "15s")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, d)

	_, err = parseDurationValue("not-a-duration", "SHELFPICK_TEST_UNSET", "15s")
	assert.Error(t, err)
}

func TestLoadEnvFile_ValidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# comment\nSHELFPICK_ENVFILE_KEY=value\n\nSHELFPICK_ENVFILE_QUOTED=\"quoted\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Cleanup(func() {
		os.Unsetenv("SHELFPICK_ENVFILE_KEY")
		os.Unsetenv("SHELFPICK_ENVFILE_QUOTED")
	})

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "value", os.Getenv("SHELFPICK_ENVFILE_KEY"))
	assert.Equal(t, "quoted", os.Getenv("SHELFPICK_ENVFILE_QUOTED"))
}

func TestLoadEnvFile_ExistingEnvVarsNotOverwritten(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("SHELFPICK_ENVFILE_KEEP=file\n"), 0o600))

	t.Setenv("SHELFPICK_ENVFILE_KEEP", "env")

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "env", os.Getenv("SHELFPICK_ENVFILE_KEEP"))
}

func TestLoadEnvFile_NonExistentFile(t *testing.T) {
	assert.Error(t, loadEnvFile("/nonexistent/.env"))
}
