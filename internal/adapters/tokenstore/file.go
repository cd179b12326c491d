// Package tokenstore persists the bearer token shared by every request.
package tokenstore

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/reel/internal/core/domain"
	"go.trai.ch/reel/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.TokenStore = (*FileStore)(nil)

// DefaultDebounce is the quiet period after a file event before the token is re-read.
const DefaultDebounce = 50 * time.Millisecond

// FileStore keeps the token in a private file so separate invocations share a session.
type FileStore struct {
	path     string
	logger   ports.Logger
	debounce time.Duration
	mu       sync.Mutex
}

// NewFileStore creates a store backed by the file at path.
func NewFileStore(path string, logger ports.Logger) *FileStore {
	return &FileStore{
		path:     filepath.Clean(path),
		logger:   logger,
		debounce: DefaultDebounce,
	}
}

// Path returns the token file location.
func (s *FileStore) Path() string {
	return s.path
}

// Token returns the stored token, or "" when the file does not exist.
func (s *FileStore) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *FileStore) read() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", zerr.With(domain.Wrap(err, domain.ErrTokenReadFailed), "path", s.path)
	}
	return strings.TrimSpace(string(data)), nil
}

// SetToken writes the token atomically with owner-only permissions.
func (s *FileStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := atomicWriteFile(s.path, []byte(token)); err != nil {
		return zerr.With(domain.Wrap(err, domain.ErrTokenWriteFailed), "path", s.path)
	}
	return nil
}

// Clear removes the token file.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(domain.Wrap(err, domain.ErrTokenWriteFailed), "path", s.path)
	}
	return nil
}

// Watch observes the token file for changes made by other processes.
//
// The parent directory is watched rather than the file itself: atomic writes
// replace the inode, which silently ends a watch on the file.
func (s *FileStore) Watch(ctx context.Context, fn func(token string)) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return domain.Wrap(err, domain.ErrTokenWatchFailed)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return domain.Wrap(err, domain.ErrTokenWatchFailed)
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return zerr.With(domain.Wrap(err, domain.ErrTokenWatchFailed), "path", dir)
	}

	last, err := s.Token()
	if err != nil {
		_ = w.Close()
		return err
	}

	var lastMu sync.Mutex
	deb := newDebouncer(s.debounce, func() {
		current, err := s.Token()
		if err != nil {
			s.logger.Error(err)
			return
		}
		lastMu.Lock()
		changed := current != last
		last = current
		lastMu.Unlock()
		if changed {
			fn(current)
		}
	})

	go s.processEvents(ctx, w, deb)
	return nil
}

func (s *FileStore) processEvents(ctx context.Context, w *fsnotify.Watcher, deb *debouncer) {
	defer func() {
		deb.Stop()
		_ = w.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != s.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				deb.Trigger()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			s.logger.Error(domain.Wrap(err, domain.ErrTokenWatchFailed))
		}
	}
}

// atomicWriteFile writes data to a temp file in the target directory and renames it into place.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, ".auth-token-*")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if err := tmpFile.Chmod(domain.PrivateFilePerm); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
