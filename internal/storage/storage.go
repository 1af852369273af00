// Package storage provides the durable key-value store behind recent searches
package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnknownDriver is returned by Open for an unsupported driver name
var ErrUnknownDriver = errors.New("unknown storage driver")

// Store is a small string key-value store, in the spirit of browser local storage
type Store interface {
	// Get returns the value for key; ok is false when the key is absent
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
	Close() error
}

// Driver names accepted by Open
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Config selects and locates a store
type Config struct {
	Driver string // file, sqlite or memory; empty means file
	Path   string // file path for file and sqlite drivers
}

// DefaultPath returns the store location inside dir for the given driver
func DefaultPath(dir, driver string) string {
	if strings.EqualFold(driver, DriverSQLite) {
		return filepath.Join(dir, "storage.db")
	}
	return filepath.Join(dir, "storage.json")
}

// Open creates the store described by cfg
func Open(cfg Config) (Store, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver == "" {
		driver = DriverFile
	}

	switch driver {
	case DriverMemory:
		return NewMemoryStore(), nil
	case DriverFile:
		if cfg.Path == "" {
			return nil, fmt.Errorf("file storage requires a path")
		}
		return NewFileStore(cfg.Path), nil
	case DriverSQLite:
		if cfg.Path == "" {
			return nil, fmt.Errorf("sqlite storage requires a path")
		}
		return NewSQLiteStore(cfg.Path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}
