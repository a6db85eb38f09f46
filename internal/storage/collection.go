package storage

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/manav03panchal/dayaim/internal/errors"
	"github.com/manav03panchal/dayaim/internal/logging"
	"github.com/manav03panchal/dayaim/internal/model"
)

// QuarantineSuffix is appended to a collection key to hold a payload that
// failed to decode before the collection was rewritten.
const QuarantineSuffix = ".corrupt"

// QuarantineKey returns the key a corrupt payload of key is copied to.
func QuarantineKey(key string) string {
	return key + QuarantineSuffix
}

// collection is one entity kind stored as a JSON array under a single key.
// mu is held across every load/modify/save cycle.
type collection[T any] struct {
	mu     sync.Mutex
	key    string
	sub    Substrate
	logger *slog.Logger
}

func newCollection[T any](sub Substrate, kind model.Kind, logger *slog.Logger) *collection[T] {
	key := kind.CollectionKey()
	return &collection[T]{
		key:    key,
		sub:    sub,
		logger: logger.With(logging.KeyCollection, key),
	}
}

// load returns every record, or an empty slice when the key is absent,
// the read fails, or the payload does not decode.
func (c *collection[T]) load() []T {
	data, err := c.sub.Get(c.key)
	if err != nil {
		if !IsErrKeyNotFound(err) {
			c.logger.Error("failed to read collection", logging.KeyError, err)
		}
		return []T{}
	}

	records, err := decode[T](data)
	if err != nil {
		c.logger.Warn("collection payload does not decode, treating as empty", logging.KeyError, err)
		return []T{}
	}
	return records
}

// loadForWrite is load for a mutation. Read failures are returned so that
// a failed read is never turned into an overwrite. A payload that does not
// decode is copied to its quarantine key first.
func (c *collection[T]) loadForWrite() ([]T, error) {
	data, err := c.sub.Get(c.key)
	if err != nil {
		if IsErrKeyNotFound(err) {
			return []T{}, nil
		}
		return nil, errors.NewSystemErrorWithOp("load "+c.key, "failed to read collection", err)
	}

	records, err := decode[T](data)
	if err == nil {
		return records, nil
	}

	qkey := QuarantineKey(c.key)
	if qerr := c.sub.Set(qkey, data); qerr != nil {
		return nil, errors.NewSystemErrorWithOp("quarantine "+c.key, "failed to preserve unreadable collection", qerr)
	}
	c.logger.Warn("collection payload does not decode, quarantined before rewrite",
		"quarantine_key", qkey,
		logging.KeyError, err)
	return []T{}, nil
}

// save replaces the stored collection with records in one write.
func (c *collection[T]) save(records []T) error {
	start := time.Now()
	if records == nil {
		records = []T{}
	}

	data, err := json.Marshal(records)
	if err != nil {
		return errors.NewSystemErrorWithOp("save "+c.key, "failed to encode collection", err)
	}
	if err := c.sub.Set(c.key, data); err != nil {
		return errors.NewSystemErrorWithOp("save "+c.key, "failed to save collection", err)
	}

	logging.LogOperation(c.logger, "save", start, logging.KeyCount, len(records))
	return nil
}

// mutate runs one locked read-modify-write cycle. fn reports whether it
// changed anything; when it did not, nothing is written.
func (c *collection[T]) mutate(fn func([]T) ([]T, bool)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.loadForWrite()
	if err != nil {
		return err
	}

	updated, changed := fn(records)
	if !changed {
		return nil
	}
	return c.save(updated)
}

func decode[T any](data []byte) ([]T, error) {
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// upsertByKey replaces the record sharing rec's primary key, or appends rec.
// Later records with the same key are dropped so the key stays unique.
func upsertByKey[T model.Keyed](records []T, rec T) []T {
	return upsertBy(records, rec, func(r T) string { return r.PrimaryKey() })
}

// upsertByComposite replaces the record whose composite key matches rec's,
// whatever its primary key, or appends rec.
func upsertByComposite[T any](records []T, rec T, key func(T) string) []T {
	return upsertBy(records, rec, key)
}

func upsertBy[T any](records []T, rec T, key func(T) string) []T {
	want := key(rec)
	out := records[:0:0]
	replaced := false
	for _, r := range records {
		if key(r) != want {
			out = append(out, r)
			continue
		}
		if !replaced {
			out = append(out, rec)
			replaced = true
		}
	}
	if !replaced {
		out = append(out, rec)
	}
	return out
}

// removeByKey drops every record whose primary key is id.
func removeByKey[T model.Keyed](records []T, id string) ([]T, bool) {
	out := records[:0:0]
	for _, r := range records {
		if r.PrimaryKey() != id {
			out = append(out, r)
		}
	}
	return out, len(out) != len(records)
}

// findByKey returns a copy of the first record whose primary key is id.
func findByKey[T model.Keyed](records []T, id string) (*T, bool) {
	for i := range records {
		if records[i].PrimaryKey() == id {
			r := records[i]
			return &r, true
		}
	}
	return nil, false
}

// filter returns copies of the records matching keep, in stored order.
func filter[T any](records []T, keep func(*T) bool) []*T {
	out := make([]*T, 0, len(records))
	for i := range records {
		r := records[i]
		if keep == nil || keep(&r) {
			out = append(out, &r)
		}
	}
	return out
}
