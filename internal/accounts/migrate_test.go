package accounts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyProfiles(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "new")

	require.NoError(t, os.WriteFile(filepath.Join(src, "alice.json"), []byte(`{"a":1}`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(src, "bob.json"), []byte(`{"b":2}`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(src, "notes.txt"), []byte("skip"), 0o600))

	copied, err := CopyProfiles(src, dst)
	require.NoError(t, err)
	assert.Equal(t, 2, copied)
	assert.FileExists(t, filepath.Join(dst, "alice.json"))
	assert.NoFileExists(t, filepath.Join(dst, "notes.txt"))

	// existing targets are left alone
	require.NoError(t, os.WriteFile(filepath.Join(dst, "alice.json"), []byte(`{"kept":true}`), 0o600))
	copied, err = CopyProfiles(src, dst)
	require.NoError(t, err)
	assert.Zero(t, copied)
	data, err := os.ReadFile(filepath.Join(dst, "alice.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"kept":true}`, string(data))
}

func TestCopyProfiles_MissingSource(t *testing.T) {
	copied, err := CopyProfiles(filepath.Join(t.TempDir(), "nope"), t.TempDir())
	require.NoError(t, err)
	assert.Zero(t, copied)
}
