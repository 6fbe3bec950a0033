package tokenstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempStorePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "nested", "credentials.json")
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	path := tempStorePath(t)

	first := NewFileStore(path, nil)
	first.SetAccessToken("acc")
	first.SetRefreshToken("ref")

	second := NewFileStore(path, nil)
	assert.Equal(t, "acc", second.AccessToken())
	assert.Equal(t, "ref", second.RefreshToken())
}

func TestFileStoreObservesExternalWrites(t *testing.T) {
	path := tempStorePath(t)

	reader := NewFileStore(path, nil)
	assert.Empty(t, reader.AccessToken())

	writer := NewFileStore(path, nil)
	writer.SetAccessToken("from-elsewhere")

	// Reads reload the file, so the other instance's write is visible
	// without any notification crossing between them.
	assert.Equal(t, "from-elsewhere", reader.AccessToken())
}

func TestFileStoreRemovesFileWhenEmpty(t *testing.T) {
	path := tempStorePath(t)

	store := NewFileStore(path, nil)
	store.SetAccessToken("acc")
	store.SetRefreshToken("ref")
	_, err := os.Stat(path)
	require.NoError(t, err)

	store.ClearAccessToken()
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "file should be removed once both tokens are gone")
	assert.Empty(t, store.AccessToken())
}

func TestFileStoreCorruptFileReadsEmpty(t *testing.T) {
	path := tempStorePath(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := NewFileStore(path, nil)
	assert.Empty(t, store.AccessToken())
	assert.Empty(t, store.RefreshToken())
}

func TestFileStoreFilePermissions(t *testing.T) {
	path := tempStorePath(t)

	store := NewFileStore(path, nil)
	store.SetAccessToken("acc")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStoreNotifiesOnMutation(t *testing.T) {
	store := NewFileStore(tempStorePath(t), nil)

	var count int
	store.Subscribe(func() { count++ })

	store.SetAccessToken("acc")
	store.ClearAccessToken()
	assert.Equal(t, 2, count)
}
