package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tala/internal/caption"
)

// Session identifies who is saving. It is passed in explicitly; the engine
// holds no ambient reference to a logged-in user.
type Session struct {
	UserID string
}

// Record is the persisted shape of one project.
type Record struct {
	UserID     string          `json:"userId"`
	Events     []caption.Event `json:"events"`
	LastEdited time.Time       `json:"lastEdited"`
	MediaName  string          `json:"mediaName,omitempty"`
}

// Store keeps one JSON record per project under a root directory. Saves are
// whole-record writes; callers must tolerate the stored copy trailing the
// in-memory one by a write cycle.
type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

func (s *Store) path(name string) string {
	return filepath.Join(s.root, name+".json")
}

func (s *Store) Save(sess Session, name string, events []caption.Event, mediaName string) error {
	if name == "" {
		return fmt.Errorf("project name is required")
	}

	record := Record{
		UserID:     sess.UserID,
		Events:     events,
		LastEdited: time.Now().UTC(),
		MediaName:  mediaName,
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode project record: %w", err)
	}

	if err := os.MkdirAll(s.root, 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	if err := os.WriteFile(s.path(name), data, 0644); err != nil {
		return fmt.Errorf("failed to write project record: %w", err)
	}

	return nil
}

func (s *Store) Load(name string) (*Record, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return nil, fmt.Errorf("failed to read project record: %w", err)
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to parse project record: %w", err)
	}

	return &record, nil
}
