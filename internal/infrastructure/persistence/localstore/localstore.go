package localstore

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/lexnotes/storefront-service/internal/domain/cart"
)

// Store persists cart lines to a JSON file, the server-side stand-in for the
// browser's local storage. Writes go through a temp file and rename so a
// crash never leaves a torn cart behind.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Save(lines []cart.Line) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *Store) Load() ([]cart.Line, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var lines []cart.Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}
