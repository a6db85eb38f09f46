// Package runtime provides the per-command application context for dayaim.
package runtime

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/manav03panchal/dayaim/internal/config"
	"github.com/manav03panchal/dayaim/internal/errors"
	"github.com/manav03panchal/dayaim/internal/logging"
	"github.com/manav03panchal/dayaim/internal/model"
	"github.com/manav03panchal/dayaim/internal/output"
	"github.com/manav03panchal/dayaim/internal/planner"
	"github.com/manav03panchal/dayaim/internal/storage"
)

// MemoryPath selects an in-memory database.
const MemoryPath = ":memory:"

// Substrate is a storage substrate that holds resources until closed.
type Substrate interface {
	storage.Substrate
	Close() error
}

// Context holds the application runtime context. It owns the Store for
// the lifetime of one command.
type Context struct {
	Config    *config.Config
	Substrate Substrate
	Store     *storage.Store
	Planner   *planner.Planner
	Formatter *output.Formatter

	// Now and NewID supply timestamps and record ids.
	Now   func() time.Time
	NewID func() string

	Debug bool

	ctx context.Context
}

// Options configures the runtime context.
type Options struct {
	// Config is the loaded configuration. Nil uses config.Default().
	Config *config.Config
	// InMemory forces an in-memory database regardless of the config.
	InMemory bool
	Debug    bool
	// Writer receives command output. Nil uses stdout.
	Writer io.Writer
	// Now overrides the clock.
	Now func() time.Time
}

// New opens the configured substrate and builds the Store on it.
func New(opts Options) (*Context, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	inMemory := opts.InMemory || cfg.Storage.Path == MemoryPath
	sub, err := openSubstrate(cfg, inMemory)
	if err != nil {
		return nil, err
	}

	ctx := logging.NewRequestContext(context.Background())
	logger := logging.LoggerFromContext(ctx)
	store := storage.NewStore(sub, storage.WithLogger(logger))

	formatter := output.NewFormatter()
	formatter.Format = output.Format(cfg.Output.Format)
	formatter.ColorMode = output.ColorMode(cfg.Output.Color)
	if opts.Writer != nil {
		formatter.Writer = opts.Writer
	}

	newID := func() string { return uuid.NewString() }

	return &Context{
		Config:    cfg,
		Substrate: sub,
		Store:     store,
		Planner:   planner.New(store, now, newID),
		Formatter: formatter,
		Now:       now,
		NewID:     newID,
		Debug:     opts.Debug,
		ctx:       ctx,
	}, nil
}

func openSubstrate(cfg *config.Config, inMemory bool) (Substrate, error) {
	path := cfg.Storage.Path
	if inMemory {
		path = ""
	}

	var (
		sub Substrate
		err error
	)
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		if !inMemory && path == "" {
			path = storage.DefaultSQLitePath()
		}
		if !inMemory {
			if err := storage.CheckDiskSpace(filepath.Dir(path), cfg.Storage.MinFreeSpace); err != nil {
				return nil, err
			}
		}
		sub, err = storage.OpenSQLite(path)
	default:
		if !inMemory && path == "" {
			path = storage.DefaultPath()
		}
		sub, err = storage.Open(storage.Options{
			Path:         path,
			InMemory:     inMemory,
			MinFreeSpace: cfg.Storage.MinFreeSpace,
		})
	}
	if err != nil {
		if storage.IsDatabaseCorrupted(err) {
			return nil, errors.NewSystemErrorWithOp("open database", "database is corrupted", errors.ErrDatabaseCorrupted)
		}
		return nil, err
	}

	if !inMemory {
		if warning := storage.CheckDiskSpaceWarning(path, cfg.Storage.MinFreeSpaceWarning); warning != "" {
			logging.Warn(warning, "path", path)
		}
	}
	return sub, nil
}

// Close releases the substrate.
func (c *Context) Close() error {
	if c.Substrate != nil {
		return c.Substrate.Close()
	}
	return nil
}

// Context returns the request-scoped context carrying this run's request id.
func (c *Context) Context() context.Context {
	return c.ctx
}

// Today returns the current planning date.
func (c *Context) Today() model.Date {
	return c.Config.Today(c.Now())
}

// DefaultSource is the planned source for tasks added without one.
func (c *Context) DefaultSource() model.PlannedSource {
	return model.PlannedSource(c.Config.Planner.DefaultSource)
}

// DataPath returns the on-disk database location, or MemoryPath.
func (c *Context) DataPath() string {
	type pather interface{ Path() string }
	if p, ok := c.Substrate.(pather); ok && p.Path() != "" {
		return p.Path()
	}
	return MemoryPath
}

// CLIFormatter returns a CLI formatter.
func (c *Context) CLIFormatter() *output.CLIFormatter {
	return output.NewCLIFormatter(c.Formatter)
}

// JSONFormatter returns a JSON formatter.
func (c *Context) JSONFormatter() *output.JSONFormatter {
	return output.NewJSONFormatter(c.Formatter)
}

// IsJSON returns true if output format is JSON.
func (c *Context) IsJSON() bool {
	return c.Formatter.IsJSON()
}

// IsInteractive reports whether stdin is a terminal.
func IsInteractive() bool {
	return isTerminal(os.Stdin)
}

// Debugf logs a debug message tagged with the run's request id.
func (c *Context) Debugf(format string, args ...any) {
	if c.Debug {
		logging.LoggerFromContext(c.ctx).Debug(fmt.Sprintf(format, args...))
	}
}
