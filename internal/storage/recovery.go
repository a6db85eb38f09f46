package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/manav03panchal/dayaim/internal/errors"
	"github.com/manav03panchal/dayaim/internal/logging"
	"github.com/manav03panchal/dayaim/internal/model"
)

// SnapshotVersion is the format version written by Export.
const SnapshotVersion = 1

// CollectionReport describes the stored state of one collection.
type CollectionReport struct {
	Kind        model.Kind `json:"kind"`
	Key         string     `json:"key"`
	Present     bool       `json:"present"`
	Decodes     bool       `json:"decodes"`
	Count       int        `json:"count"`
	Duplicates  []string   `json:"duplicates,omitempty"`
	Quarantined bool       `json:"quarantined"`
	Error       string     `json:"error,omitempty"`
}

// Healthy reports whether the collection can be read without loss.
func (r CollectionReport) Healthy() bool {
	return r.Error == "" && r.Decodes && len(r.Duplicates) == 0
}

// IntegrityReport is the result of CheckIntegrity.
type IntegrityReport struct {
	CheckedAt   time.Time          `json:"checkedAt"`
	Healthy     bool               `json:"healthy"`
	Collections []CollectionReport `json:"collections"`
	// DanglingRefs counts weak references whose target no longer exists.
	// They are valid state and do not make the report unhealthy.
	DanglingRefs int `json:"danglingRefs"`
}

// CheckIntegrity reads every collection straight from the substrate and
// reports presence, decode status and uniqueness violations.
func CheckIntegrity(s *Store, now time.Time) *IntegrityReport {
	sub := s.Substrate()

	goals, goalRep := inspect(sub, model.KindGoal, model.Goal.PrimaryKey)
	tasks, taskRep := inspect(sub, model.KindTask, model.Task.PrimaryKey)
	habits, habitRep := inspect(sub, model.KindHabit, model.Habit.PrimaryKey)
	plans, planRep := inspect(sub, model.KindPlan, model.DailyPlan.PrimaryKey)
	logs, logRep := inspect(sub, model.KindHabitLog, model.HabitLog.CompositeKey)

	report := &IntegrityReport{
		CheckedAt:   now,
		Healthy:     true,
		Collections: []CollectionReport{goalRep, taskRep, habitRep, planRep, logRep},
	}
	for _, c := range report.Collections {
		if !c.Healthy() {
			report.Healthy = false
		}
	}

	goalIDs := make(map[string]bool, len(goals))
	for _, g := range goals {
		goalIDs[g.ID] = true
	}
	for _, t := range tasks {
		if t.LinkedGoalID != "" && !goalIDs[t.LinkedGoalID] {
			report.DanglingRefs++
		}
	}
	for _, p := range plans {
		if p.FocusGoalID != "" && !goalIDs[p.FocusGoalID] {
			report.DanglingRefs++
		}
	}
	habitIDs := make(map[string]bool, len(habits))
	for _, h := range habits {
		habitIDs[h.ID] = true
	}
	for _, l := range logs {
		if !habitIDs[l.HabitID] {
			report.DanglingRefs++
		}
	}

	return report
}

func inspect[T any](sub Substrate, kind model.Kind, key func(T) string) ([]T, CollectionReport) {
	rep := CollectionReport{Kind: kind, Key: kind.CollectionKey()}

	if _, err := sub.Get(QuarantineKey(rep.Key)); err == nil {
		rep.Quarantined = true
	}

	data, err := sub.Get(rep.Key)
	if err != nil {
		if IsErrKeyNotFound(err) {
			rep.Decodes = true
			return nil, rep
		}
		rep.Error = err.Error()
		return nil, rep
	}
	rep.Present = true

	records, err := decode[T](data)
	if err != nil {
		rep.Error = err.Error()
		return nil, rep
	}
	rep.Decodes = true
	rep.Count = len(records)
	rep.Duplicates = duplicateKeys(records, key)
	return records, rep
}

func duplicateKeys[T any](records []T, key func(T) string) []string {
	seen := make(map[string]int, len(records))
	var dups []string
	for _, r := range records {
		k := key(r)
		seen[k]++
		if seen[k] == 2 {
			dups = append(dups, k)
		}
	}
	return dups
}

// Snapshot is a portable copy of every collection.
type Snapshot struct {
	Version    int               `json:"version"`
	ExportedAt time.Time         `json:"exportedAt"`
	Goals      []model.Goal      `json:"goals"`
	Tasks      []model.Task      `json:"tasks"`
	Habits     []model.Habit     `json:"habits"`
	DailyPlans []model.DailyPlan `json:"dailyPlans"`
	HabitLogs  []model.HabitLog  `json:"habitLogs"`
}

// Count returns the total number of records in the snapshot.
func (s *Snapshot) Count() int {
	return len(s.Goals) + len(s.Tasks) + len(s.Habits) + len(s.DailyPlans) + len(s.HabitLogs)
}

// Validate checks every record and the uniqueness rule of each collection.
func (s *Snapshot) Validate() error {
	if s.Version != SnapshotVersion {
		return fmt.Errorf("unsupported snapshot version %d", s.Version)
	}
	for i := range s.Goals {
		if err := s.Goals[i].Validate(); err != nil {
			return fmt.Errorf("goal %d: %w", i, err)
		}
	}
	for i := range s.Tasks {
		if err := s.Tasks[i].Validate(); err != nil {
			return fmt.Errorf("task %d: %w", i, err)
		}
	}
	for i := range s.Habits {
		if err := s.Habits[i].Validate(); err != nil {
			return fmt.Errorf("habit %d: %w", i, err)
		}
	}
	for i := range s.DailyPlans {
		if err := s.DailyPlans[i].Validate(); err != nil {
			return fmt.Errorf("daily plan %d: %w", i, err)
		}
	}
	for i := range s.HabitLogs {
		if err := s.HabitLogs[i].Validate(); err != nil {
			return fmt.Errorf("habit log %d: %w", i, err)
		}
	}

	checks := []struct {
		name string
		dups []string
	}{
		{"goal id", duplicateKeys(s.Goals, model.Goal.PrimaryKey)},
		{"task id", duplicateKeys(s.Tasks, model.Task.PrimaryKey)},
		{"habit id", duplicateKeys(s.Habits, model.Habit.PrimaryKey)},
		{"plan date", duplicateKeys(s.DailyPlans, model.DailyPlan.PrimaryKey)},
		{"habit log (habit, date)", duplicateKeys(s.HabitLogs, model.HabitLog.CompositeKey)},
	}
	for _, c := range checks {
		if len(c.dups) > 0 {
			return fmt.Errorf("duplicate %s: %s", c.name, strings.Join(c.dups, ", "))
		}
	}
	return nil
}

// TakeSnapshot copies every collection out of s.
func TakeSnapshot(s *Store, now time.Time) *Snapshot {
	return &Snapshot{
		Version:    SnapshotVersion,
		ExportedAt: now,
		Goals:      s.goals.load(),
		Tasks:      s.tasks.load(),
		Habits:     s.habits.load(),
		DailyPlans: s.plans.load(),
		HabitLogs:  s.habitLogs.load(),
	}
}

// Export writes a snapshot of s to path as indented JSON. The file is
// replaced atomically once minFree bytes are confirmed available.
func Export(s *Store, path string, now time.Time, minFree uint64) (*Snapshot, error) {
	snap := TakeSnapshot(s, now)

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, errors.NewSystemErrorWithOp("export", "failed to encode snapshot", err)
	}
	if err := SafeWrite(path, data, 0600, minFree); err != nil {
		return nil, err
	}

	logging.Info("snapshot exported", logging.KeyCount, snap.Count(), "path", path)
	return snap, nil
}

// ReadSnapshot reads and validates a snapshot file.
func ReadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewUserErrorWithField("file", path, "Snapshot file not found",
				"Check the path passed to 'dayaim import'")
		}
		return nil, errors.NewSystemErrorWithOp("import", "failed to read snapshot", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, &errors.UserError{
			Message:    fmt.Sprintf("Snapshot is not valid JSON: %v", err),
			Suggestion: "Import a file written by 'dayaim export'",
			Cause:      errors.ErrDatabaseCorrupted,
		}
	}
	if err := snap.Validate(); err != nil {
		return nil, errors.NewUserError(fmt.Sprintf("Snapshot rejected: %v", err),
			"Fix the file or export a fresh one with 'dayaim export'")
	}
	return &snap, nil
}

// Restore replaces every collection in s with the snapshot's records and
// drops any quarantined payloads. Each collection is written once; the
// writes are not atomic together.
func Restore(s *Store, snap *Snapshot) error {
	unlock := s.lockAll()
	defer unlock()

	if err := s.goals.save(snap.Goals); err != nil {
		return err
	}
	if err := s.tasks.save(snap.Tasks); err != nil {
		return err
	}
	if err := s.habits.save(snap.Habits); err != nil {
		return err
	}
	if err := s.plans.save(snap.DailyPlans); err != nil {
		return err
	}
	if err := s.habitLogs.save(snap.HabitLogs); err != nil {
		return err
	}

	qkeys := make([]string, 0, len(model.CollectionKeys()))
	for _, k := range model.CollectionKeys() {
		qkeys = append(qkeys, QuarantineKey(k))
	}
	if err := s.sub.RemoveMany(qkeys...); err != nil {
		return errors.NewSystemErrorWithOp("restore", "failed to remove quarantined payloads", err)
	}

	logging.Info("snapshot restored", logging.KeyCount, snap.Count())
	return nil
}

// Import reads the snapshot at path and restores it into s.
func Import(s *Store, path string) (*Snapshot, error) {
	snap, err := ReadSnapshot(path)
	if err != nil {
		return nil, err
	}
	if err := Restore(s, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// IsDatabaseCorrupted checks if the given error indicates database corruption.
func IsDatabaseCorrupted(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, errors.ErrDatabaseCorrupted) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	for _, pattern := range []string{
		"checksum mismatch",
		"corrupt",
		"unexpected eof",
		"bad magic",
		"truncated",
		"malformed",
	} {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}
