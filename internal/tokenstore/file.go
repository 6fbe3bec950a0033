package tokenstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// FileStore persists the token pair as a small JSON document on disk, the
// CLI equivalent of browser local storage. Reads always reload the file so
// a token written by another process is observed on the next access. I/O
// failures degrade to an empty store rather than surfacing errors.
type FileStore struct {
	path   string
	logger *zap.Logger
	mu     sync.Mutex
	events *notifier
}

type credentialsFile struct {
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// NewFileStore builds a store backed by the JSON file at path.
func NewFileStore(path string, logger *zap.Logger) *FileStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStore{path: path, logger: logger, events: newNotifier()}
}

func (s *FileStore) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().AccessToken
}

func (s *FileStore) SetAccessToken(token string) {
	s.update(func(c *credentialsFile) { c.AccessToken = token })
}

func (s *FileStore) ClearAccessToken() {
	s.update(func(c *credentialsFile) {
		c.AccessToken = ""
		c.RefreshToken = ""
	})
}

func (s *FileStore) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().RefreshToken
}

func (s *FileStore) SetRefreshToken(token string) {
	s.update(func(c *credentialsFile) { c.RefreshToken = token })
}

func (s *FileStore) ClearRefreshToken() {
	s.update(func(c *credentialsFile) { c.RefreshToken = "" })
}

func (s *FileStore) Subscribe(fn func()) func() {
	return s.events.subscribe(fn)
}

// update applies one mutation under the lock and emits a single change
// notification regardless of how many slots the mutation touched.
func (s *FileStore) update(mutate func(*credentialsFile)) {
	s.mu.Lock()
	creds := s.load()
	mutate(&creds)
	s.save(creds)
	s.mu.Unlock()
	s.events.publish()
}

func (s *FileStore) load() credentialsFile {
	var creds credentialsFile
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("failed to read credentials file", zap.String("path", s.path), zap.Error(err))
		}
		return creds
	}
	if err := json.Unmarshal(raw, &creds); err != nil {
		s.logger.Warn("corrupt credentials file", zap.String("path", s.path), zap.Error(err))
		return credentialsFile{}
	}
	return creds
}

func (s *FileStore) save(creds credentialsFile) {
	if creds.AccessToken == "" && creds.RefreshToken == "" {
		if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("failed to remove credentials file", zap.String("path", s.path), zap.Error(err))
		}
		return
	}

	raw, err := json.Marshal(creds)
	if err != nil {
		s.logger.Warn("failed to encode credentials", zap.Error(err))
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		s.logger.Warn("failed to create credentials directory", zap.String("path", s.path), zap.Error(err))
		return
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		s.logger.Warn("failed to write credentials file", zap.String("path", s.path), zap.Error(err))
	}
}
