package loader

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/buildlens/internal/tef"
	"github.com/roach88/buildlens/internal/testutil"
)

func TestLoad_PlainJSON(t *testing.T) {
	b := testutil.SampleBuild()
	path := b.WriteFile(t, t.TempDir(), "command.profile")

	tr, err := Load(path)
	require.NoError(t, err)

	assert.Len(t, tr.Events, len(b.Build().Events))
	v, ok := tr.OtherDataString("bazel_version")
	assert.True(t, ok)
	assert.Equal(t, "release 7.1.0", v)
}

func TestLoad_Gzip(t *testing.T) {
	b := testutil.SampleBuild()
	path := b.WriteFile(t, t.TempDir(), "command.profile.gz")

	tr, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, tr.Events, len(b.Build().Events))
}

func TestLoad_GzipDetectedByContent(t *testing.T) {
	dir := t.TempDir()
	gz := testutil.SampleBuild().WriteFile(t, dir, "profile.gz")
	renamed := filepath.Join(dir, "profile.json")
	require.NoError(t, os.Rename(gz, renamed))

	_, err := Load(renamed)
	require.NoError(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRead_Errors(t *testing.T) {
	_, err := Read(bytes.NewReader(nil))
	assert.Error(t, err)

	_, err = Read(bytes.NewReader([]byte{0x1f, 0x8b, 0x00}))
	assert.Error(t, err)

	_, err = Read(bytes.NewBufferString(`{"otherData":{}}`))
	assert.True(t, tef.IsInvalidInput(err))
}
