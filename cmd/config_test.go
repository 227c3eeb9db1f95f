package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joescharf/lnr/internal/config"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	p := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestConfigPath_DefaultsToConfigDir(t *testing.T) {
	dir, _ := testEnv(t)

	p, err := configPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.json"), p)
}

func TestConfigPath_FlagOverride(t *testing.T) {
	testEnv(t)
	viper.Set("config_file", "/tmp/elsewhere.json")

	p, err := configPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/elsewhere.json", p)
}

func TestLoadApp_NoConfig(t *testing.T) {
	testEnv(t)

	_, err := loadApp()
	assert.ErrorIs(t, err, errNoConfig)
	assert.Contains(t, err.Error(), "lnr auth login")
}

func TestLoadApp_FromFile(t *testing.T) {
	dir, _ := testEnv(t)
	writeConfig(t, dir, `{"schemaVersion":1,"apiKey":"lin_api_file","editor":"vim"}`)

	a, err := loadApp()
	require.NoError(t, err)
	assert.Equal(t, "lin_api_file", a.cfg.APIKey)
	assert.Equal(t, "vim", a.cfg.EditorCommand())
	assert.NotNil(t, a.client)
	assert.NotNil(t, a.prompter)
}

func TestLoadApp_EnvOnly(t *testing.T) {
	testEnv(t)
	t.Setenv(config.EnvAPIKey, "lin_api_env")

	a, err := loadApp()
	require.NoError(t, err)
	assert.Equal(t, "lin_api_env", a.cfg.APIKey)
}

func TestLoadApp_InvalidFile(t *testing.T) {
	dir, _ := testEnv(t)
	writeConfig(t, dir, `{"schemaVersion":7,"apiKey":"k"}`)

	_, err := loadApp()
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestConfigShow_NoFile(t *testing.T) {
	_, out := testEnv(t)

	require.NoError(t, configShowRun())
	assert.Contains(t, out.String(), "(none)")
}

func TestConfigShow_MasksKeyAndReportsSources(t *testing.T) {
	dir, out := testEnv(t)
	writeConfig(t, dir, `{"schemaVersion":1,"apiKey":"lin_api_secret1234","editor":null}`)
	t.Setenv(config.EnvEditor, "nano")

	require.NoError(t, configShowRun())

	s := out.String()
	assert.NotContains(t, s, "lin_api_secret1234")
	assert.Contains(t, s, "1234")
	assert.Contains(t, s, "apiKey")
	assert.Contains(t, s, "(file)")
	assert.Contains(t, s, "nano")
	assert.Contains(t, s, "(env: LNR_EDITOR)")
}

func TestConfigEdit_NoEditor(t *testing.T) {
	dir, _ := testEnv(t)
	writeConfig(t, dir, `{"schemaVersion":1,"apiKey":"k","editor":null}`)

	err := configEditRun()
	assert.ErrorIs(t, err, errNoEditor)
}

func TestConfigEdit_NoConfigFile(t *testing.T) {
	testEnv(t)
	t.Setenv("EDITOR", "echo")

	err := configEditRun()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestConfigEdit_DryRun(t *testing.T) {
	dir, out := testEnv(t)
	writeConfig(t, dir, `{"schemaVersion":1,"apiKey":"k","editor":"code --wait"}`)
	setDryRun()

	require.NoError(t, configEditRun())
	assert.Empty(t, out.String())
	assert.Contains(t, errOut(), "code --wait")
}

func TestDetectSource(t *testing.T) {
	fileValues := map[string]bool{"apiKey": true}

	t.Setenv("LNR_TEST_KEY", "val")
	assert.Contains(t, detectSource("test_key", "LNR_TEST_KEY", fileValues), "env")
	assert.Contains(t, detectSource("apiKey", "LNR_KEY_A_NONEXISTENT", fileValues), "file")
	assert.Contains(t, detectSource("schemaVersion", "", fileValues), "default")
}

func TestFlattenKeys(t *testing.T) {
	input := map[string]any{
		"top": "val",
		"nested": map[string]any{
			"a": "1",
			"b": "2",
		},
	}

	result := make(map[string]bool)
	flattenKeys("", input, result)

	assert.True(t, result["top"])
	assert.True(t, result["nested.a"])
	assert.True(t, result["nested.b"])
	assert.False(t, result["nested"])
}

func TestReadConfigFileValues_JSON(t *testing.T) {
	dir, _ := testEnv(t)
	p := writeConfig(t, dir, `{"schemaVersion":1,"apiKey":"k"}`)

	values := readConfigFileValues(p)
	assert.True(t, values["schemaVersion"])
	assert.True(t, values["apiKey"])
	assert.False(t, values["editor"])
}
