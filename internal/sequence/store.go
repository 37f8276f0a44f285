package sequence

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Baseline is the counter value assumed when no prior state exists.
// The first allocated receipt number is Baseline+1.
const Baseline = 1000

// Counter is the persisted sequencer state.
type Counter struct {
	LastReceiptNumber int `json:"lastReceiptNumber"`
}

// Store persists the receipt counter. Implementations own their backing
// resource exclusively; nothing else reads or writes it.
type Store interface {
	// Load returns the current counter. Absent or unreadable state resets
	// to the baseline rather than surfacing an error.
	Load() (Counter, error)

	// Save durably writes the full counter state.
	Save(Counter) error
}

// FileStore keeps the counter as a small JSON object at a fixed path.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore at the given path. The file is created
// on first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the counter file. A missing file and corrupt contents are
// treated identically: the baseline counter is returned.
func (f *FileStore) Load() (Counter, error) {
	c := Counter{LastReceiptNumber: Baseline}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return c, nil
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return Counter{LastReceiptNumber: Baseline}, nil
	}
	return c, nil
}

// Save writes the counter file, creating parent directories as needed.
func (f *FileStore) Save(c Counter) error {
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0644)
}
