package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/buildlens/internal/report"
	"github.com/roach88/buildlens/internal/tef"
	"github.com/roach88/buildlens/internal/testutil"
)

func sampleProfile(t *testing.T, name string) string {
	t.Helper()
	return testutil.SampleBuild().WriteFile(t, t.TempDir(), name)
}

// decodeDocument extracts the report document from a JSON CLI response.
func decodeDocument(t *testing.T, out string) (CLIResponse, report.Document) {
	t.Helper()
	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))

	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var doc report.Document
	require.NoError(t, json.Unmarshal(raw, &doc))
	return resp, doc
}

func TestAnalyze_Text(t *testing.T) {
	out, _, err := execute(t, "analyze", sampleProfile(t, "profile.json"))
	require.NoError(t, err)

	assert.Contains(t, out, "BazelPhasesProvider\n  BazelPhases: total")
	assert.Contains(t, out, "EstimatedCoresProvider\n  EstimatedCores: 4\n")
	assert.Contains(t, out, "BazelVersionProvider\n  BazelVersion: 7.1.0\n")
	assert.Contains(t, out, "7 facts (0 empty, 0 failed) from 7 providers\n")
}

func TestAnalyze_Gzip(t *testing.T) {
	out, _, err := execute(t, "analyze", sampleProfile(t, "profile.json.gz"))
	require.NoError(t, err)
	assert.Contains(t, out, "7 facts")
}

func TestAnalyze_JSON(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "analyze", sampleProfile(t, "profile.json"))
	require.NoError(t, err)

	resp, doc := decodeDocument(t, out)
	assert.Equal(t, "ok", resp.Status)

	id, err := uuid.Parse(resp.TraceID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())

	assert.Len(t, doc.Facts, 7)
	assert.Equal(t, "4", doc.Facts["EstimatedCoresProvider"]["EstimatedCores"].Summary)
	assert.Empty(t, doc.Errors)
}

func TestAnalyze_Prometheus(t *testing.T) {
	out, _, err := execute(t, "--format", "prom", "analyze", sampleProfile(t, "profile.json"))
	require.NoError(t, err)

	assert.Contains(t, out, "# TYPE buildlens_fact_available gauge")
	assert.Contains(t, out, "buildlens_estimated_cores 4\n")
	assert.Contains(t, out, `buildlens_phase_duration_seconds{phase="Execution"} 60`)
}

func TestAnalyze_UsedOnlyWithFact(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "analyze",
		"--fact", "EstimatedCores", "--used-only", sampleProfile(t, "profile.json"))
	require.NoError(t, err)

	_, doc := decodeDocument(t, out)
	assert.Len(t, doc.Facts, 2)
	assert.Contains(t, doc.Facts, "EstimatedCoresProvider")
	assert.Contains(t, doc.Facts, "BazelProfileProvider")
}

func TestAnalyze_UnknownFact(t *testing.T) {
	_, stderr, err := execute(t, "analyze", "--fact", "Nope", sampleProfile(t, "profile.json"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stderr, "E202")
}

func TestAnalyze_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "buildlens.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
format: json
disabled_providers:
  - GarbageCollectionProvider
`), 0o644))
	profilePath := testutil.SampleBuild().WriteFile(t, dir, "profile.json")

	out, _, err := execute(t, "analyze", "--config", cfgPath, profilePath)
	require.NoError(t, err)

	_, doc := decodeDocument(t, out)
	assert.Len(t, doc.Facts, 6)
	assert.NotContains(t, doc.Facts, "GarbageCollectionProvider")

	// An explicit --format beats the file.
	out, _, err = execute(t, "--format", "text", "analyze", "--config", cfgPath, profilePath)
	require.NoError(t, err)
	assert.Contains(t, out, "6 facts (0 empty, 0 failed) from 6 providers")
}

func TestAnalyze_InvalidConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("concurrency: 0\n"), 0o644))

	_, stderr, err := execute(t, "analyze", "--config", cfgPath, sampleProfile(t, "profile.json"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stderr, "E010")
}

func TestAnalyze_ShowEmpty(t *testing.T) {
	path := testutil.NewTrace().
		ThreadName(1, 0, "Main Thread").
		Complete(1, 0, "general information", "Finishing", 0, 10).
		WriteFile(t, t.TempDir(), "tiny.json")

	out, _, err := execute(t, "analyze", path)
	require.NoError(t, err)
	assert.NotContains(t, out, "(empty)")

	out, _, err = execute(t, "analyze", "--show-empty", path)
	require.NoError(t, err)
	assert.Contains(t, out, "CriticalPath: (empty)")
	assert.Contains(t, out, "BazelVersion: (empty) The profile does not record a Bazel version.")
}

func TestAnalyze_MissingProfile(t *testing.T) {
	_, stderr, err := execute(t, "analyze", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stderr, "Error [E005]")
}

func TestAnalyze_MalformedEvent(t *testing.T) {
	path := testutil.NewTrace().
		Raw(tef.Raw{"ph": "X", "name": "broken", "ts": 1, "pid": 1, "tid": 1}).
		WriteFile(t, t.TempDir(), "broken.json")

	_, stderr, err := execute(t, "analyze", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stderr, "E201")
	assert.True(t, tef.IsInvalidInput(err))
}

func TestAnalyze_NotJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.json")
	require.NoError(t, os.WriteFile(path, []byte("not a profile"), 0o644))

	_, _, err := execute(t, "analyze", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestAnalyze_WatchRejectsStdin(t *testing.T) {
	_, _, err := execute(t, "analyze", "--watch", "-")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
