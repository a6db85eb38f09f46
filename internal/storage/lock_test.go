package storage

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	ps "github.com/mitchellh/go-ps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProcesses makes findProcess report only the given PIDs as running.
func stubProcesses(t *testing.T, running ...int) {
	orig := findProcess
	t.Cleanup(func() { findProcess = orig })

	alive := make(map[int]bool, len(running))
	for _, pid := range running {
		alive[pid] = true
	}
	findProcess = func(pid int) (ps.Process, error) {
		if alive[pid] {
			return orig(os.Getpid())
		}
		return nil, nil
	}
}

func TestFileLock_AcquireRelease(t *testing.T) {
	t.Run("writes pid and removes file on release", func(t *testing.T) {
		dir := t.TempDir()
		lock := NewFileLock(dir)
		require.NoError(t, lock.Acquire())

		data, err := os.ReadFile(filepath.Join(dir, LockFileName))
		require.NoError(t, err)
		assert.Equal(t, strconv.Itoa(os.Getpid()), string(data))
		assert.Equal(t, filepath.Join(dir, LockFileName), lock.Path())

		require.NoError(t, lock.Release())
		_, err = os.Stat(lock.Path())
		assert.True(t, os.IsNotExist(err), "lock file should be removed after release")
	})

	t.Run("second lock fails while first is held", func(t *testing.T) {
		dir := t.TempDir()
		lock1 := NewFileLock(dir)
		require.NoError(t, lock1.Acquire())
		defer lock1.Release()

		err := NewFileLock(dir).Acquire()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrLockAlreadyHeld)

		var lockErr *LockError
		require.ErrorAs(t, err, &lockErr)
		assert.Equal(t, os.Getpid(), lockErr.PID)
	})

	t.Run("reacquire after release", func(t *testing.T) {
		dir := t.TempDir()
		lock1 := NewFileLock(dir)
		require.NoError(t, lock1.Acquire())
		require.NoError(t, lock1.Release())

		lock2 := NewFileLock(dir)
		require.NoError(t, lock2.Acquire())
		defer lock2.Release()
	})

	t.Run("release is idempotent", func(t *testing.T) {
		lock := NewFileLock(t.TempDir())
		require.NoError(t, lock.Acquire())
		require.NoError(t, lock.Release())
		assert.NoError(t, lock.Release())
	})
}

func TestFileLock_StaleLockCleanup(t *testing.T) {
	t.Run("dead pid is cleaned up", func(t *testing.T) {
		stubProcesses(t)
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, LockFileName), []byte("424242"), 0600))

		lock := NewFileLock(dir)
		require.NoError(t, lock.Acquire())
		defer lock.Release()

		assert.Equal(t, os.Getpid(), lock.readPID())
	})

	t.Run("live pid without flock is left alone", func(t *testing.T) {
		stubProcesses(t, 424242)
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, LockFileName), []byte("424242"), 0600))

		require.NoError(t, NewFileLock(dir).cleanStaleLock())
		_, err := os.Stat(filepath.Join(dir, LockFileName))
		assert.NoError(t, err)
	})
}

func TestFileLock_ReadPID(t *testing.T) {
	tests := []struct {
		name    string
		content *string
		want    int
	}{
		{"valid", strPtr("12345"), 12345},
		{"whitespace", strPtr(" 77\n"), 77},
		{"invalid", strPtr("not-a-number"), 0},
		{"missing", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.content != nil {
				require.NoError(t, os.WriteFile(filepath.Join(dir, LockFileName), []byte(*tt.content), 0600))
			}
			assert.Equal(t, tt.want, NewFileLock(dir).readPID())
		})
	}
}

func TestIsProcessRunning(t *testing.T) {
	assert.True(t, isProcessRunning(os.Getpid()))
}

func TestLockError(t *testing.T) {
	withPID := &LockError{Err: ErrLockAlreadyHeld, PID: 99}
	assert.Equal(t, "cannot access database: another dayaim instance (PID 99) is running", withPID.Error())
	assert.ErrorIs(t, withPID, ErrLockAlreadyHeld)

	noPID := &LockError{Err: ErrLockAlreadyHeld}
	assert.Contains(t, noPID.Error(), "cannot access database")
}

func TestDB_OpenWithLock(t *testing.T) {
	t.Run("on-disk open holds the lock until close", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "db")

		db, err := Open(Options{Path: dbPath, MinFreeSpace: 1})
		require.NoError(t, err)
		assert.NotNil(t, db.lock)

		lockPath := filepath.Join(dbPath, LockFileName)
		_, err = os.Stat(lockPath)
		assert.NoError(t, err)

		require.NoError(t, db.Close())
		_, err = os.Stat(lockPath)
		assert.True(t, os.IsNotExist(err))

		db2, err := Open(Options{Path: dbPath, MinFreeSpace: 1})
		require.NoError(t, err)
		defer db2.Close()
	})

	t.Run("no lock for in-memory database", func(t *testing.T) {
		db, err := Open(Options{InMemory: true})
		require.NoError(t, err)
		defer db.Close()
		assert.Nil(t, db.lock)
	})
}

func strPtr(s string) *string {
	return &s
}
