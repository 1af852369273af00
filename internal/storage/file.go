package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/igusev/sitesearch/internal/logger"
)

// FileStore keeps all keys in a single JSON object file
// The file is read on every Get so that several processes see each other's writes.
type FileStore struct {
	mu       sync.Mutex
	filePath string
}

// NewFileStore creates a FileStore backed by path; the file is created on first write
func NewFileStore(path string) *FileStore {
	return &FileStore{filePath: filepath.Clean(path)}
}

// Path returns the backing file path
func (f *FileStore) Path() string {
	return f.filePath
}

func (f *FileStore) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

func (f *FileStore) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return err
	}
	values[key] = value
	return f.write(values)
}

func (f *FileStore) Remove(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.read()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return f.write(values)
}

func (f *FileStore) Close() error {
	return nil
}

// CorruptSuffix is appended to a storage file that could not be decoded
const CorruptSuffix = ".corrupt"

// read loads the whole file; a missing file is an empty store
// A file that does not decode is moved aside and treated as empty, so the
// next write starts a fresh store.
func (f *FileStore) read() (map[string]string, error) {
	data, err := os.ReadFile(f.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("failed to read storage file: %w", err)
	}

	values := make(map[string]string)
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		f.quarantine(err)
		return make(map[string]string), nil
	}
	return values, nil
}

// quarantine moves an undecodable file out of the way, keeping it for inspection
func (f *FileStore) quarantine(cause error) {
	aside := f.filePath + CorruptSuffix
	if err := os.Rename(f.filePath, aside); err != nil {
		logger.Warn("Storage file %s is corrupt (%v) and could not be moved aside: %v", f.filePath, cause, err)
		return
	}
	logger.Warn("Storage file %s is corrupt (%v), moved to %s", f.filePath, cause, aside)
}

// write replaces the file atomically (temp file + rename)
func (f *FileStore) write(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(f.filePath), 0750); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode storage file: %w", err)
	}

	tempPath := f.filePath + ".tmp"
	// #nosec G306 -- user-owned state file
	if err := os.WriteFile(tempPath, data, 0600); err != nil {
		_ = os.Remove(tempPath) //nolint:errcheck // Cleanup temp file; ignore Remove error
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tempPath, f.filePath); err != nil {
		_ = os.Remove(tempPath) //nolint:errcheck // Cleanup temp file; ignore Remove error
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
