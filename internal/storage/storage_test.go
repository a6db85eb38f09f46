package storage

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/dayaim/internal/errors"
)

// closableSubstrate is what both backends provide.
type closableSubstrate interface {
	Substrate
	KeyLister
	Close() error
}

// substrateFactories opens each real backend in memory.
var substrateFactories = map[string]func(t *testing.T) closableSubstrate{
	"badger": func(t *testing.T) closableSubstrate {
		db, err := Open(Options{InMemory: true})
		require.NoError(t, err)
		return db
	},
	"sqlite": func(t *testing.T) closableSubstrate {
		db, err := OpenSQLite("")
		require.NoError(t, err)
		return db
	},
}

// forEachSubstrate runs fn once per backend.
func forEachSubstrate(t *testing.T, fn func(t *testing.T, sub closableSubstrate)) {
	for name, open := range substrateFactories {
		t.Run(name, func(t *testing.T) {
			sub := open(t)
			t.Cleanup(func() { sub.Close() })
			fn(t, sub)
		})
	}
}

// faultySubstrate is an in-memory Substrate with injectable failures.
type faultySubstrate struct {
	mu        sync.Mutex
	data      map[string][]byte
	getErr    error
	setErr    error
	removeErr error
	sets      int
}

func newFaultySubstrate() *faultySubstrate {
	return &faultySubstrate{data: make(map[string][]byte)}
}

func (f *faultySubstrate) Get(key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	v, ok := f.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

func (f *faultySubstrate) Set(key string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.sets++
	f.data[key] = append([]byte(nil), data...)
	return nil
}

func (f *faultySubstrate) RemoveMany(keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.removeErr != nil {
		return f.removeErr
	}
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

func (f *faultySubstrate) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data = make(map[string][]byte)
	return nil
}

func (f *faultySubstrate) raw(key string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok
}

// =============================================================================
// DB Tests
// =============================================================================

func TestOpenClose(t *testing.T) {
	t.Run("in_memory", func(t *testing.T) {
		db, err := Open(Options{InMemory: true})
		require.NoError(t, err)
		assert.Equal(t, "", db.Path())
		assert.NotNil(t, db.Badger())
		assert.NoError(t, db.Close())
	})

	t.Run("empty_path_uses_in_memory", func(t *testing.T) {
		db, err := Open(Options{Path: ""})
		require.NoError(t, err)
		assert.Equal(t, "", db.Path())
		db.Close()
	})

	t.Run("on_disk_persists", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "db")

		db, err := Open(Options{Path: dir, MinFreeSpace: 1})
		require.NoError(t, err)
		assert.Equal(t, dir, db.Path())
		require.NoError(t, db.Set("goals_v1", []byte(`[]`)))
		require.NoError(t, db.Close())

		db, err = Open(Options{Path: dir, MinFreeSpace: 1})
		require.NoError(t, err)
		defer db.Close()

		data, err := db.Get("goals_v1")
		require.NoError(t, err)
		assert.Equal(t, `[]`, string(data))
	})

	t.Run("second_open_is_locked_out", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "db")

		db, err := Open(Options{Path: dir, MinFreeSpace: 1})
		require.NoError(t, err)
		defer db.Close()

		_, err = Open(Options{Path: dir, MinFreeSpace: 1})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrLockAlreadyHeld)
	})
}

func TestDefaultPath(t *testing.T) {
	path := DefaultPath()
	assert.Contains(t, path, "dayaim")
	assert.Equal(t, "db", filepath.Base(path))

	assert.Equal(t, "dayaim.sqlite", filepath.Base(DefaultSQLitePath()))
}

// =============================================================================
// Substrate Tests
// =============================================================================

func TestSubstrateContract(t *testing.T) {
	forEachSubstrate(t, func(t *testing.T, sub closableSubstrate) {
		_, err := sub.Get("missing")
		assert.True(t, IsErrKeyNotFound(err))

		require.NoError(t, sub.Set("a", []byte("1")))
		require.NoError(t, sub.Set("b", []byte("2")))
		require.NoError(t, sub.Set("a", []byte("3")))

		data, err := sub.Get("a")
		require.NoError(t, err)
		assert.Equal(t, "3", string(data))

		keys, err := sub.Keys()
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, keys)

		require.NoError(t, sub.RemoveMany("a", "never-set"))
		_, err = sub.Get("a")
		assert.True(t, IsErrKeyNotFound(err))
		_, err = sub.Get("b")
		assert.NoError(t, err)

		require.NoError(t, sub.RemoveMany())

		require.NoError(t, sub.Clear())
		keys, err = sub.Keys()
		require.NoError(t, err)
		assert.Empty(t, keys)
	})
}

func TestBadgerGetReturnsCopy(t *testing.T) {
	db, err := Open(Options{InMemory: true})
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Set("k", []byte("abc")))
	data, err := db.Get("k")
	require.NoError(t, err)
	data[0] = 'z'

	again, err := db.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))

	ok, err := db.Exists("k")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = db.Exists("nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dayaim.sqlite")

	db, err := OpenSQLite(path)
	require.NoError(t, err)
	assert.Equal(t, path, db.Path())
	require.NoError(t, db.Set("tasks_v1", []byte(`[]`)))
	require.NoError(t, db.Close())

	db, err = OpenSQLite(path)
	require.NoError(t, err)
	defer db.Close()

	data, err := db.Get("tasks_v1")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(errors.ErrGoalNotFound))
	assert.True(t, IsNotFound(errors.Wrap(errors.ErrPlanNotFound, "today")))
	assert.False(t, IsNotFound(ErrKeyNotFound))
	assert.False(t, IsNotFound(nil))
}

// =============================================================================
// Safety Tests
// =============================================================================

func TestCheckDiskSpace(t *testing.T) {
	dir := t.TempDir()

	assert.NoError(t, CheckDiskSpace(dir, 1))

	err := CheckDiskSpace(dir, ^uint64(0))
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrDiskFull)
	assert.True(t, errors.IsSystemError(err))
}

func TestGetDiskSpaceWalksToExistingParent(t *testing.T) {
	dir := t.TempDir()
	info, err := GetDiskSpace(filepath.Join(dir, "not", "yet", "created"))
	require.NoError(t, err)
	assert.Equal(t, dir, info.Path)
	assert.Greater(t, info.TotalBytes, uint64(0))
	assert.GreaterOrEqual(t, info.FreePercent(), float64(0))
}

func TestCheckDiskSpaceWarning(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, "", CheckDiskSpaceWarning(dir, 1))
	assert.Contains(t, CheckDiskSpaceWarning(dir, ^uint64(0)), "Low disk space")
}

func TestSafeWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	require.NoError(t, SafeWrite(path, []byte("first"), 0600, 1))
	require.NoError(t, SafeWrite(path, []byte("second"), 0600, 1))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")

	err = SafeWrite(filepath.Join(dir, "big.json"), []byte("x"), 0600, ^uint64(0))
	assert.ErrorIs(t, err, errors.ErrDiskFull)
	_, statErr := os.Stat(filepath.Join(dir, "big.json"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestEnsureDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, EnsureDirectory(dir, 1))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
