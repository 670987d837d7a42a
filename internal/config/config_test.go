package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultFormat, cfg.Format)
	assert.Equal(t, DefaultConcurrency, cfg.Concurrency)
	assert.False(t, cfg.ShowEmpty)
	assert.Empty(t, cfg.DisabledProviders)
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "buildlens.yaml", `
format: json
show_empty: true
concurrency: 2
disabled_providers:
  - GarbageCollectionProvider
critical_path:
  max_entries: 5
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)
	assert.True(t, cfg.ShowEmpty)
	assert.Equal(t, 2, cfg.Concurrency)
	assert.Equal(t, []string{"GarbageCollectionProvider"}, cfg.DisabledProviders)
	assert.Equal(t, 5, cfg.CriticalPath.MaxEntries)
	assert.Equal(t, 5, cfg.ProviderOptions().CriticalPathMaxEntries)
}

func TestLoad_YAMLKeepsDefaultsForMissingFields(t *testing.T) {
	cfg, err := Load(writeConfig(t, "partial.yml", "show_empty: true\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultFormat, cfg.Format)
	assert.Equal(t, DefaultConcurrency, cfg.Concurrency)
}

func TestLoad_CUE(t *testing.T) {
	path := writeConfig(t, "buildlens.cue", `
format: "prom"
used_only: true
critical_path: max_entries: 3
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "prom", cfg.Format)
	assert.True(t, cfg.UsedOnly)
	assert.Equal(t, 3, cfg.CriticalPath.MaxEntries)
	assert.Equal(t, DefaultConcurrency, cfg.Concurrency)
}

func TestLoad_CUEErrors(t *testing.T) {
	_, err := Load(writeConfig(t, "bad.cue", `format: `))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "open.cue", `format: string`))
	assert.Error(t, err)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("BUILDLENS_FORMAT", "json")
	t.Setenv("BUILDLENS_SHOW_EMPTY", "true")
	t.Setenv("BUILDLENS_CONCURRENCY", "16")
	t.Setenv("BUILDLENS_DISABLED_PROVIDERS", "ActionStatsProvider, EstimatedCoresProvider")

	cfg, err := Load(writeConfig(t, "c.yaml", "format: text\nconcurrency: 1\n"))
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)
	assert.True(t, cfg.ShowEmpty)
	assert.Equal(t, 16, cfg.Concurrency)
	assert.Equal(t, []string{"ActionStatsProvider", "EstimatedCoresProvider"}, cfg.DisabledProviders)
}

func TestLoad_EnvErrors(t *testing.T) {
	t.Setenv("BUILDLENS_CONCURRENCY", "many")
	_, err := Load("")
	assert.ErrorContains(t, err, "BUILDLENS_CONCURRENCY")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad format", "format: xml\n", "invalid format"},
		{"zero concurrency", "concurrency: 0\n", "concurrency must be positive"},
		{"negative entries", "critical_path:\n  max_entries: -1\n", "max_entries"},
		{"unknown provider", "disabled_providers: [NopeProvider]\n", "unknown provider"},
		{"bad yaml", "format: [\n", "parse yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, "c.yaml", tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	_, err := Load(writeConfig(t, "c.toml", "format = 'json'"))
	assert.ErrorContains(t, err, "unsupported file type")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
