package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvAPIKey, EnvEditor} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_Missing(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "config.json"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `{"schemaVersion":1,"apiKey":"lin_api_abc","editor":"vim -n"}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.SchemaVersion)
	assert.Equal(t, "lin_api_abc", cfg.APIKey)
	assert.Equal(t, "vim -n", cfg.EditorCommand())
}

func TestLoad_NullEditor(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `{"schemaVersion":1,"apiKey":"lin_api_abc","editor":null}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Nil(t, cfg.Editor)
	assert.Equal(t, "", cfg.EditorCommand())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `{"schemaVersion":1,"apiKey":"from-file","editor":"nano"}`)
	t.Setenv(EnvAPIKey, "from-env")
	t.Setenv(EnvEditor, "code --wait")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.APIKey)
	assert.Equal(t, "code --wait", cfg.EditorCommand())
}

func TestLoad_EnvOnly(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIKey, "from-env")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.APIKey)
	assert.Equal(t, SchemaVersion, cfg.SchemaVersion)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "wrong schema version", content: `{"schemaVersion":2,"apiKey":"k"}`},
		{name: "missing schema version", content: `{"apiKey":"k"}`},
		{name: "empty api key", content: `{"schemaVersion":1,"apiKey":""}`},
		{name: "not json", content: `{schemaVersion`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			_, err := Load(writeFile(t, tt.content))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestResolveEditor(t *testing.T) {
	t.Setenv("EDITOR", "hx")

	ptr := func(s string) *string { return &s }

	assert.Nil(t, ResolveEditor(nil))
	assert.Nil(t, ResolveEditor(ptr("   ")))
	assert.Equal(t, "hx", *ResolveEditor(ptr("$EDITOR")))
	assert.Equal(t, "emacs", *ResolveEditor(ptr(" emacs ")))

	t.Setenv("EDITOR", "")
	assert.Nil(t, ResolveEditor(ptr("$EDITOR")))
}

func TestSave_RoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	editor := "vim"

	require.NoError(t, Save(path, &Config{APIKey: "lin_api_xyz", Editor: &editor}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"schemaVersion":1,"apiKey":"lin_api_xyz","editor":"vim"}`, string(data))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "lin_api_xyz", cfg.APIKey)
	assert.Equal(t, "vim", cfg.EditorCommand())
}

func TestSave_RejectsEmptyKey(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "config.json"), &Config{})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "*******c123", MaskKey("lin_apic123"))
	assert.Equal(t, "***", MaskKey("abc"))
}
