package storage

import (
	badger "github.com/dgraph-io/badger/v4"

	"github.com/manav03panchal/dayaim/internal/errors"
)

var (
	// ErrKeyNotFound is returned by a Substrate when a key is absent.
	ErrKeyNotFound = errors.New("key not found")
)

// Substrate is the durable key/value storage the Store is built on.
// Each call is atomic for the key it touches; nothing is atomic across keys
// unless an implementation says so.
type Substrate interface {
	// Get returns the bytes stored under key, or ErrKeyNotFound.
	Get(key string) ([]byte, error)
	// Set stores data under key, replacing any previous value.
	Set(key string, data []byte) error
	// RemoveMany deletes the given keys. Absent keys are ignored.
	RemoveMany(keys ...string) error
	// Clear deletes every key.
	Clear() error
}

// IsErrKeyNotFound returns true if the error is a key not found error.
func IsErrKeyNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound) || errors.Is(err, badger.ErrKeyNotFound)
}

// IsNotFound reports whether err means a requested record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, errors.ErrGoalNotFound) ||
		errors.Is(err, errors.ErrTaskNotFound) ||
		errors.Is(err, errors.ErrHabitNotFound) ||
		errors.Is(err, errors.ErrPlanNotFound)
}

// KeyLister is implemented by substrates that can enumerate their keys.
type KeyLister interface {
	Keys() ([]string, error)
}
