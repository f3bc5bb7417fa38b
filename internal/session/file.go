package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// FileBackend stores the session as one AES-GCM sealed JSON file under the
// user's home, scoped to the installation.
type FileBackend struct {
	path   string
	key    []byte
	logger *zap.Logger
}

// NewFileBackend derives the sealing key and returns a file backend. The
// file need not exist yet.
func NewFileBackend(path, secret string, logger *zap.Logger) (*FileBackend, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	key, err := deriveKey(secret)
	if err != nil {
		return nil, fmt.Errorf("derive session key: %w", err)
	}
	return &FileBackend{path: path, key: key, logger: logger}, nil
}

// Load reads and unseals the session file. A missing, unreadable, tampered
// or unparseable file loads as the logged-out session so a corrupt store
// never locks the user out.
func (b *FileBackend) Load(_ context.Context) (Session, error) {
	raw, err := os.ReadFile(b.path)
	if err != nil {
		if !os.IsNotExist(err) {
			b.logger.Warn("session file unreadable", zap.Error(err))
		}
		return Session{}, nil
	}

	plaintext, err := unseal(b.key, raw)
	if err != nil {
		b.logger.Warn("session file corrupt, discarding", zap.Error(err))
		return Session{}, nil
	}

	var s Session
	if err := json.Unmarshal(plaintext, &s); err != nil {
		b.logger.Warn("session file undecodable, discarding", zap.Error(err))
		return Session{}, nil
	}
	if s.Token == "" || s.User == nil {
		// Token and user only ever travel together.
		return Session{}, nil
	}
	return s, nil
}

// Store seals and writes the session, creating parent directories as
// needed.
func (b *FileBackend) Store(_ context.Context, s Session) error {
	plaintext, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	sealed, err := seal(b.key, plaintext)
	if err != nil {
		return fmt.Errorf("seal session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(b.path), 0o700); err != nil {
		return fmt.Errorf("prepare session directory: %w", err)
	}
	if err := os.WriteFile(b.path, sealed, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// Clear removes the session file. An already-absent file is not an error.
func (b *FileBackend) Clear(_ context.Context) error {
	if err := os.Remove(b.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
