// Package looks keeps the user's saved outfits. The backend has no
// endpoint for them, so they live next to the session record in a local
// JSON file.
package looks

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a look id does not exist in the store.
var ErrNotFound = errors.New("looks: look not found")

// Look is one saved outfit: a named set of wardrobe item references.
type Look struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Notes     string    `json:"notes,omitempty"`
	ItemIDs   []string  `json:"item_ids"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is a file-backed collection of saved looks. Writes replace the
// whole file atomically, same as the session record.
type Store struct {
	path string

	mu sync.Mutex
}

// NewStore creates a store at path.
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("looks: file path is required")
	}
	return &Store{path: path}, nil
}

// Path returns the location of the looks file.
func (s *Store) Path() string { return s.path }

// Save adds a look and returns it with its generated id.
func (s *Store) Save(name, notes string, itemIDs []string) (Look, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Look{}, errors.New("looks: name is required")
	}
	if len(itemIDs) == 0 {
		return Look{}, errors.New("looks: at least one item is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return Look{}, err
	}

	look := Look{
		ID:        uuid.NewString(),
		Name:      name,
		Notes:     strings.TrimSpace(notes),
		ItemIDs:   append([]string(nil), itemIDs...),
		CreatedAt: time.Now().UTC(),
	}
	all = append(all, look)
	if err := s.write(all); err != nil {
		return Look{}, err
	}
	return look, nil
}

// List returns every saved look, newest first.
func (s *Store) List() ([]Look, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all, nil
}

// Get returns one look by id.
func (s *Store) Get(id string) (Look, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return Look{}, err
	}
	for _, look := range all {
		if look.ID == id {
			return look, nil
		}
	}
	return Look{}, ErrNotFound
}

// Remove deletes a look by id.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return err
	}
	kept := all[:0]
	for _, look := range all {
		if look.ID != id {
			kept = append(kept, look)
		}
	}
	if len(kept) == len(all) {
		return ErrNotFound
	}
	return s.write(kept)
}

func (s *Store) load() ([]Look, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("looks: read %s: %w", s.path, err)
	}

	var all []Look
	if err := json.Unmarshal(raw, &all); err != nil {
		return nil, fmt.Errorf("looks: parse %s: %w", s.path, err)
	}
	return all, nil
}

func (s *Store) write(all []Look) error {
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("looks: marshal: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("looks: create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".looks-*.json")
	if err != nil {
		return fmt.Errorf("looks: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("looks: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("looks: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("looks: replace looks file: %w", err)
	}
	return nil
}
