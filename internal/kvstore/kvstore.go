// Package kvstore persists serialized blobs under string keys. It stands in
// for the browser's local storage: each well-known key holds one whole
// structure, written after every mutation.
package kvstore

import (
	"errors"
	"fmt"
	"strings"
)

// Well-known keys.
const (
	KeyPages         = "ogevents_pages"
	KeyMediaLibrary  = "mediaLibrary"
	KeyAdminSession  = "adminAuthenticated"
	DriverSQLite     = "sqlite"
	DriverBadger     = "badger"
	maxKeyLength     = 100
	defaultBadgerDir = "data/kv"
)

// ErrNotFound is returned by Get when the key has never been written or was deleted.
var ErrNotFound = errors.New("kv: key not found")

// Store is a minimal key-value store.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Driver       string
	DatabasePath string
	BadgerDir    string
}

// Open returns the backend named by opts.Driver.
func Open(opts Options) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Driver)) {
	case "", DriverSQLite:
		return OpenGorm(opts.DatabasePath)
	case DriverBadger:
		dir := strings.TrimSpace(opts.BadgerDir)
		if dir == "" {
			dir = defaultBadgerDir
		}
		return OpenBadger(dir)
	default:
		return nil, fmt.Errorf("kv: unknown driver %q", opts.Driver)
	}
}

func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("kv: empty key")
	}
	if len(key) > maxKeyLength {
		return fmt.Errorf("kv: key longer than %d bytes", maxKeyLength)
	}
	return nil
}
