package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/stylegenie/stylegenie-go/internal/domain/auth"
)

// FileStore keeps the session record in a single JSON file. Writes go
// through a temp file and rename so a crash mid-write cannot leave a
// half-written record behind.
type FileStore struct {
	path   string
	logger *slog.Logger
}

// NewFileStore creates a file-backed store at path.
func NewFileStore(path string, logger *slog.Logger) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("state: file path is required")
	}
	if logger == nil {
		return nil, errors.New("state: logger is required")
	}
	return &FileStore{path: path, logger: logger}, nil
}

// Path returns the location of the session file.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Load(ctx context.Context) (auth.State, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return auth.State{}, nil
		}
		return auth.State{}, fmt.Errorf("state: read %s: %w", s.path, err)
	}

	var loaded auth.State
	if err := json.Unmarshal(raw, &loaded); err != nil {
		s.logger.WarnContext(ctx, "session file is corrupt, starting logged out",
			"path", s.path, "error", err)
		return auth.State{}, nil
	}
	return loaded, nil
}

func (s *FileStore) Save(_ context.Context, st auth.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("state: marshal session: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("state: create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*.json")
	if err != nil {
		return fmt.Errorf("state: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("state: write session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("state: close temp file: %w", err)
	}
	// The record holds credentials; keep it private to the user.
	if err := os.Chmod(tmpName, 0o600); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("state: chmod session file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("state: replace session file: %w", err)
	}
	return nil
}

func (s *FileStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("state: remove %s: %w", s.path, err)
	}
	return nil
}
