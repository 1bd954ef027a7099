package cursor

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
)

// FileStore persists the cursor as a small JSON file, the same
// {"lastRecordId": "..."} shape the service has always written. Note that
// concurrent writers race on the file; there is no locking here.
type FileStore struct {
	path string
}

type cursorState struct {
	LastRecordID string `json:"lastRecordId"`
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load returns "" for a missing or corrupt file. A broken cursor must never
// fail a pass; it just means resyncing from the start.
func (s *FileStore) Load(ctx context.Context) (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("⚠️ Cursor: could not read %s: %v", s.path, err)
		}
		return "", nil
	}

	var state cursorState
	if err := json.Unmarshal(data, &state); err != nil {
		log.Printf("⚠️ Cursor: corrupt state in %s, treating as empty: %v", s.path, err)
		return "", nil
	}
	return state.LastRecordID, nil
}

func (s *FileStore) Save(ctx context.Context, recordID string) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(cursorState{LastRecordID: recordID}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}
