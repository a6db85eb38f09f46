// Package storage provides the persistence layer for dayaim: a collection
// store over a durable key/value substrate.
package storage

import (
	"path/filepath"

	"github.com/adrg/xdg"
	badger "github.com/dgraph-io/badger/v4"
)

const (
	// AppName is the application name used for data directories.
	AppName = "dayaim"
)

// DB is a Substrate backed by a Badger database.
type DB struct {
	db   *badger.DB
	path string
	lock *FileLock
}

// Options configures the database connection.
type Options struct {
	// Path is the database directory path. Empty string uses in-memory mode.
	Path string
	// InMemory forces in-memory mode regardless of Path.
	InMemory bool
	// MinFreeSpace is the free disk space required to open an on-disk database.
	// Zero uses MinFreeSpace.
	MinFreeSpace uint64
}

// DefaultPath returns the default database path under the XDG data home.
func DefaultPath() string {
	return filepath.Join(xdg.DataHome, AppName, "db")
}

// Open opens or creates a database at the given path.
func Open(opts Options) (*DB, error) {
	var badgerOpts badger.Options
	var lock *FileLock

	if opts.InMemory || opts.Path == "" {
		badgerOpts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := EnsureDirectory(opts.Path, opts.MinFreeSpace); err != nil {
			return nil, err
		}

		lock = NewFileLock(opts.Path)
		if err := lock.Acquire(); err != nil {
			return nil, err
		}
		badgerOpts = badger.DefaultOptions(opts.Path)
	}

	// Reduce logging noise
	badgerOpts = badgerOpts.WithLoggingLevel(badger.ERROR)

	db, err := badger.Open(badgerOpts)
	if err != nil {
		if lock != nil {
			_ = lock.Release()
		}
		return nil, err
	}

	d := &DB{db: db, lock: lock}
	if !opts.InMemory {
		d.path = opts.Path
	}
	return d, nil
}

// Close closes the database and releases the directory lock.
func (d *DB) Close() error {
	err := d.db.Close()
	if d.lock != nil {
		if lerr := d.lock.Release(); lerr != nil && err == nil {
			err = lerr
		}
		d.lock = nil
	}
	return err
}

// Path returns the database directory, or "" for an in-memory database.
func (d *DB) Path() string {
	return d.path
}

// Badger returns the underlying Badger database for advanced operations.
func (d *DB) Badger() *badger.DB {
	return d.db
}
