package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/manav03panchal/dayaim/internal/errors"
)

const (
	// MinFreeSpace is the minimum free space required for write operations (10MB).
	MinFreeSpace = 10 * 1024 * 1024
	// MinFreeSpaceWarning is the threshold for warning about low disk space (50MB).
	MinFreeSpaceWarning = 50 * 1024 * 1024
)

// DiskSpaceInfo contains information about available disk space.
type DiskSpaceInfo struct {
	Path       string
	TotalBytes uint64
	FreeBytes  uint64
	UsedBytes  uint64
}

// FreePercent returns the percentage of free space.
func (d *DiskSpaceInfo) FreePercent() float64 {
	if d.TotalBytes == 0 {
		return 0
	}
	return float64(d.FreeBytes) / float64(d.TotalBytes) * 100
}

// CheckDiskSpace returns ErrDiskFull (as a SystemError) if the filesystem
// holding path has less than minFree bytes available. A zero minFree uses
// MinFreeSpace. When free space cannot be determined the check passes.
func CheckDiskSpace(path string, minFree uint64) error {
	if minFree == 0 {
		minFree = MinFreeSpace
	}

	info, err := GetDiskSpace(path)
	if err != nil {
		return nil
	}

	if info.FreeBytes < minFree {
		return errors.NewSystemError(
			fmt.Sprintf("insufficient disk space: %d MB free, need at least %d MB",
				info.FreeBytes/(1024*1024),
				minFree/(1024*1024)),
			errors.ErrDiskFull,
		)
	}

	return nil
}

// CheckDiskSpaceWarning returns a warning message if free space is low.
// Returns empty string if disk space is adequate.
func CheckDiskSpaceWarning(path string, threshold uint64) string {
	if threshold == 0 {
		threshold = MinFreeSpaceWarning
	}

	info, err := GetDiskSpace(path)
	if err != nil {
		return ""
	}

	if info.FreeBytes < threshold {
		return fmt.Sprintf("Warning: Low disk space (%d MB free)", info.FreeBytes/(1024*1024))
	}
	return ""
}

// existingAncestor walks up from path until it finds something that exists.
func existingAncestor(path string) string {
	for {
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(path)
		if parent == path {
			return path
		}
		path = parent
	}
}

// SafeWrite writes data to path atomically after a disk space check.
// The data goes to a temp file in the same directory which is then renamed
// over path.
func SafeWrite(path string, data []byte, perm os.FileMode, minFree uint64) error {
	dir := filepath.Dir(path)
	if err := CheckDiskSpace(dir, minFree); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, ".dayaim-*.tmp")
	if err != nil {
		if isDiskFullError(err) {
			return errors.NewSystemErrorWithOp("create temp file", "disk full", errors.ErrDiskFull)
		}
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		if isDiskFullError(err) {
			return errors.NewSystemErrorWithOp("write", "disk full", errors.ErrDiskFull)
		}
		return fmt.Errorf("failed to write data: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		if isDiskFullError(err) {
			return errors.NewSystemErrorWithOp("sync", "disk full", errors.ErrDiskFull)
		}
		return fmt.Errorf("failed to sync data: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}

// EnsureDirectory creates a directory with owner-only permissions if it
// doesn't exist, after checking the parent has minFree bytes available.
func EnsureDirectory(path string, minFree uint64) error {
	if err := CheckDiskSpace(filepath.Dir(path), minFree); err != nil {
		return err
	}

	if err := os.MkdirAll(path, 0700); err != nil {
		if isDiskFullError(err) {
			return errors.NewSystemErrorWithOp("mkdir", "disk full", errors.ErrDiskFull)
		}
		if os.IsPermission(err) {
			return errors.NewSystemErrorWithOp("mkdir", "cannot create data directory", errors.ErrPermissionDenied)
		}
		return fmt.Errorf("failed to create directory: %w", err)
	}

	return nil
}
