//go:build windows

package storage

import (
	"os"
)

// flockAcquire is a no-op on Windows; the PID check in cleanStaleLock and
// Badger's own directory lock stand in for flock.
func flockAcquire(file *os.File) error {
	return nil
}

// flockRelease is a no-op on Windows; closing the file releases it.
func flockRelease(file *os.File) error {
	return nil
}
