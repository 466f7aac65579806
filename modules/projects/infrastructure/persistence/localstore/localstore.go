// Package localstore persists projects and tasks in a single JSON file.
// It backs deployments that run without PostgreSQL (TASKS_BACKEND=local)
// and mirrors the browser-storage layout the data originally lived in,
// so exported files can be dropped in as seed data.
package localstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-faster/errors"
)

type taskRecord struct {
	ID                  string  `json:"id"`
	ProjectID           string  `json:"project_id"`
	Title               string  `json:"title"`
	Description         string  `json:"description,omitempty"`
	Status              string  `json:"status"`
	Priority            string  `json:"priority"`
	AssigneeName        string  `json:"assignee_name,omitempty"`
	StartDate           *string `json:"start_date,omitempty"`
	DueDate             *string `json:"due_date,omitempty"`
	CompletedAt         *string `json:"completed_at,omitempty"`
	DurationDays        *int    `json:"duration_days,omitempty"`
	PercentComplete     *int    `json:"percent_complete,omitempty"`
	ExternalReferenceID string  `json:"external_reference_id,omitempty"`
	Notes               string  `json:"notes,omitempty"`
	CreatedAt           string  `json:"created_at"`
	UpdatedAt           string  `json:"updated_at"`
}

type projectRecord struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type document struct {
	Projects []projectRecord `json:"projects"`
	Tasks    []taskRecord    `json:"tasks"`
}

// Store owns the JSON file. All repositories sharing a Store serialize
// their reads and writes through its mutex.
type Store struct {
	mu   sync.Mutex
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) read() (*document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &document{}, nil
		}
		return nil, errors.Wrap(err, "failed to read local store")
	}
	if len(data) == 0 {
		return &document{}, nil
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode local store")
	}
	return &doc, nil
}

// write replaces the file atomically: encode to a temp file in the same
// directory, then rename over the target.
func (s *Store) write(doc *document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode local store")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "failed to create local store directory")
	}

	tmp, err := os.CreateTemp(dir, ".localstore-*.json")
	if err != nil {
		return errors.Wrap(err, "failed to create temp file")
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errors.Wrap(err, "failed to write temp file")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrap(err, "failed to close temp file")
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrap(err, "failed to replace local store")
	}
	return nil
}
