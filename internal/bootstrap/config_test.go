package bootstrap

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureConfigPresent(t *testing.T) {
	fsys := fstest.MapFS{"example.yaml": {Data: []byte("output_dir: out\n")}}
	dst := filepath.Join(t.TempDir(), "conf", "ytxml.yaml")

	created, err := EnsureConfigPresent(dst, fsys, "example.yaml")
	require.NoError(t, err)
	assert.True(t, created)

	// fichier modifié par l'utilisateur : jamais écrasé
	require.NoError(t, os.WriteFile(dst, []byte("output_dir: mine\n"), 0o644))
	created, err = EnsureConfigPresent(dst, fsys, "example.yaml")
	require.NoError(t, err)
	assert.False(t, created)

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "output_dir: mine\n", string(got))
}

func TestEnsureConfigPresentMissingAsset(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "ytxml.yaml")
	_, err := EnsureConfigPresent(dst, fstest.MapFS{}, "missing.yaml")
	assert.Error(t, err)
}
