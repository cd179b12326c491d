package tokenstore_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/reel/internal/adapters/tokenstore"
	"go.trai.ch/reel/internal/core/domain"
	"go.trai.ch/reel/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newFileStore(t *testing.T) (*tokenstore.FileStore, string) {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Error(gomock.Any()).AnyTimes()

	path := filepath.Join(t.TempDir(), ".reel", "auth_token")
	return tokenstore.NewFileStore(path, log), path
}

func TestFileStore_EmptyWhenMissing(t *testing.T) {
	store, _ := newFileStore(t)

	token, err := store.Token()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestFileStore_SetAndRead(t *testing.T) {
	store, path := newFileStore(t)

	require.NoError(t, store.SetToken("abc123"))

	token, err := store.Token()
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(domain.PrivateFilePerm), info.Mode().Perm())
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileStore_TrimsWhitespace(t *testing.T) {
	store, path := newFileStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("  tok\n"), 0o600))

	token, err := store.Token()
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
}

func TestFileStore_Clear(t *testing.T) {
	store, path := newFileStore(t)
	require.NoError(t, store.SetToken("abc123"))

	require.NoError(t, store.Clear())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, store.Clear(), "clearing an empty store is not an error")
}

func TestFileStore_ReadError(t *testing.T) {
	store, path := newFileStore(t)
	// A directory at the token path cannot be read as a file.
	require.NoError(t, os.MkdirAll(path, 0o750))

	_, err := store.Token()
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrTokenReadFailed.Error())
}

func TestFileStore_WatchSeesExternalChange(t *testing.T) {
	store, path := newFileStore(t)
	require.NoError(t, store.SetToken("first"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var seen []string
	require.NoError(t, store.Watch(ctx, func(token string) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, token)
	}))

	other := tokenstore.NewFileStore(path, nil)
	require.NoError(t, other.SetToken("second"))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) > 0 && seen[len(seen)-1] == "second"
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, other.Clear())

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return seen[len(seen)-1] == ""
	}, 2*time.Second, 10*time.Millisecond)
}

func TestMemoryStore(t *testing.T) {
	store := tokenstore.NewMemoryStore("abc123")

	token, err := store.Token()
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	require.NoError(t, store.Clear())
	token, err = store.Token()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.Watch(context.Background(), func(string) {
		t.Fatal("memory store never reports changes")
	}))
}
