package storage

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/manav03panchal/dayaim/internal/errors"
	"github.com/manav03panchal/dayaim/internal/logging"
	"github.com/manav03panchal/dayaim/internal/model"
)

var t0 = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

func newTestStore(sub Substrate) *Store {
	return NewStore(sub, WithLogger(logging.Discard()))
}

// forEachStore runs fn against a fresh Store on each backend.
func forEachStore(t *testing.T, fn func(t *testing.T, s *Store)) {
	forEachSubstrate(t, func(t *testing.T, sub closableSubstrate) {
		fn(t, newTestStore(sub))
	})
}

func goalIDs(goals []*model.Goal) []string {
	ids := make([]string, len(goals))
	for i, g := range goals {
		ids[i] = g.ID
	}
	return ids
}

func focusedGoal(id string, pinned bool, focused *time.Time) *model.Goal {
	g := model.NewGoal(id, "Goal "+id, "", t0)
	g.IsPinned = pinned
	g.LastFocusedAt = focused
	return g
}

func at(d time.Duration) *time.Time {
	v := t0.Add(d)
	return &v
}

// =============================================================================
// Goal Tests
// =============================================================================

func TestGoalUpsertAndGet(t *testing.T) {
	forEachStore(t, func(t *testing.T, s *Store) {
		g := model.NewGoal("g1", "Ship v1", "users are waiting", t0)
		require.NoError(t, s.Goals.Upsert(g))

		got, err := s.Goals.GetByID("g1")
		require.NoError(t, err)
		if diff := cmp.Diff(g, got); diff != "" {
			t.Errorf("goal mismatch (-want +got):\n%s", diff)
		}

		g.Title = "Ship v1.1"
		g.Touch(t0.Add(time.Hour))
		require.NoError(t, s.Goals.Upsert(g))

		all := s.Goals.ListAll()
		require.Len(t, all, 1)
		assert.Equal(t, "Ship v1.1", all[0].Title)
	})
}

func TestGoalUpsertIdempotent(t *testing.T) {
	forEachStore(t, func(t *testing.T, s *Store) {
		require.NoError(t, s.Goals.Upsert(model.NewGoal("g0", "First", "", t0)))
		g := model.NewGoal("g1", "Ship v1", "", t0)

		require.NoError(t, s.Goals.Upsert(g))
		once := s.Goals.ListAll()
		require.NoError(t, s.Goals.Upsert(g))
		twice := s.Goals.ListAll()

		assert.Empty(t, cmp.Diff(once, twice))
	})
}

func TestGoalUpsertPreservesPosition(t *testing.T) {
	forEachStore(t, func(t *testing.T, s *Store) {
		for _, id := range []string{"a", "b", "c"} {
			require.NoError(t, s.Goals.Upsert(model.NewGoal(id, id, "", t0)))
		}

		b, err := s.Goals.GetByID("b")
		require.NoError(t, err)
		b.Status = model.GoalStatusPaused
		require.NoError(t, s.Goals.Upsert(b))

		assert.Equal(t, []string{"a", "b", "c"}, goalIDs(s.Goals.ListAll()))
	})
}

func TestGoalGetNotFound(t *testing.T) {
	forEachStore(t, func(t *testing.T, s *Store) {
		_, err := s.Goals.GetByID("nope")
		assert.ErrorIs(t, err, errors.ErrGoalNotFound)
		assert.True(t, IsNotFound(err))
	})
}

func TestGoalDeleteThenGet(t *testing.T) {
	forEachStore(t, func(t *testing.T, s *Store) {
		require.NoError(t, s.Goals.Upsert(model.NewGoal("g1", "x", "", t0)))
		require.NoError(t, s.Goals.Upsert(model.NewGoal("g2", "y", "", t0)))

		require.NoError(t, s.Goals.DeleteByID("g1"))
		_, err := s.Goals.GetByID("g1")
		assert.ErrorIs(t, err, errors.ErrGoalNotFound)
		assert.Equal(t, []string{"g2"}, goalIDs(s.Goals.ListAll()))

		require.NoError(t, s.Goals.DeleteByID("never-inserted"))
		_, err = s.Goals.GetByID("never-inserted")
		assert.ErrorIs(t, err, errors.ErrGoalNotFound)
	})
}

func TestListActiveOrdering(t *testing.T) {
	forEachStore(t, func(t *testing.T, s *Store) {
		// A pinned at T1, B unpinned at T2 > T1, C pinned at T0 < T1.
		require.NoError(t, s.Goals.Upsert(focusedGoal("B", false, at(2*time.Hour))))
		require.NoError(t, s.Goals.Upsert(focusedGoal("C", true, at(0))))
		require.NoError(t, s.Goals.Upsert(focusedGoal("A", true, at(time.Hour))))

		assert.Equal(t, []string{"A", "C", "B"}, goalIDs(s.Goals.ListActive()))
	})
}

func TestListActiveNeverFocusedSortsLast(t *testing.T) {
	forEachStore(t, func(t *testing.T, s *Store) {
		require.NoError(t, s.Goals.Upsert(focusedGoal("never-pinned", true, nil)))
		require.NoError(t, s.Goals.Upsert(focusedGoal("never", false, nil)))
		require.NoError(t, s.Goals.Upsert(focusedGoal("recent", false, at(time.Hour))))
		require.NoError(t, s.Goals.Upsert(focusedGoal("old-pinned", true, at(-time.Hour))))

		paused := focusedGoal("paused", true, at(5*time.Hour))
		paused.Status = model.GoalStatusPaused
		require.NoError(t, s.Goals.Upsert(paused))

		done := focusedGoal("done", false, at(6*time.Hour))
		done.Status = model.GoalStatusCompleted
		require.NoError(t, s.Goals.Upsert(done))

		assert.Equal(t,
			[]string{"old-pinned", "never-pinned", "recent", "never"},
			goalIDs(s.Goals.ListActive()))
	})
}

func TestListActiveStableOnTies(t *testing.T) {
	forEachStore(t, func(t *testing.T, s *Store) {
		for _, id := range []string{"x", "y", "z"} {
			require.NoError(t, s.Goals.Upsert(focusedGoal(id, false, nil)))
		}
		assert.Equal(t, []string{"x", "y", "z"}, goalIDs(s.Goals.ListActive()))
	})
}

func TestGoalStoreAllowsAnyTransition(t *testing.T) {
	forEachStore(t, func(t *testing.T, s *Store) {
		g := model.NewGoal("g1", "x", "", t0)
		g.Status = model.GoalStatusCompleted
		require.NoError(t, s.Goals.Upsert(g))

		g.Status = model.GoalStatusActive
		require.NoError(t, s.Goals.Upsert(g))

		got, err := s.Goals.GetByID("g1")
		require.NoError(t, err)
		assert.Equal(t, model.GoalStatusActive, got.Status)
	})
}

func TestReturnedRecordsAreCopies(t *testing.T) {
	forEachStore(t, func(t *testing.T, s *Store) {
		require.NoError(t, s.Goals.Upsert(model.NewGoal("g1", "original", "", t0)))

		got, err := s.Goals.GetByID("g1")
		require.NoError(t, err)
		got.Title = "mutated"

		again, err := s.Goals.GetByID("g1")
		require.NoError(t, err)
		assert.Equal(t, "original", again.Title)
	})
}

// =============================================================================
// Task Tests
// =============================================================================

func TestTaskListForDatePartitions(t *testing.T) {
	forEachStore(t, func(t *testing.T, s *Store) {
		target := model.Date("2024-06-01")
		var want []string
		for i := 0; i < 300; i++ {
			due := model.Date("2024-06-01").AddDays(i%7 - 3)
			task := model.NewTask(fmt.Sprintf("t%03d", i), "task", due, model.PlannedSourceManual, t0)
			require.NoError(t, s.Tasks.Upsert(task))
			if due == target {
				want = append(want, task.ID)
			}
		}

		got := s.Tasks.ListForDate(target)
		ids := make([]string, len(got))
		for i, task := range got {
			assert.Equal(t, target, task.DueDate)
			ids[i] = task.ID
		}
		assert.Equal(t, want, ids, "insertion order among matches")
		assert.Empty(t, s.Tasks.ListForDate("1999-01-01"))
	})
}

func TestTaskCRUD(t *testing.T) {
	forEachStore(t, func(t *testing.T, s *Store) {
		task := model.NewTask("t1", "Write tests", "2024-06-01", model.PlannedSourceMorning, t0)
		task.LinkedGoalID = "g1"
		require.NoError(t, s.Tasks.Upsert(task))
		require.NoError(t, s.Tasks.Upsert(model.NewTask("t2", "Other", "2024-06-01", model.PlannedSourceManual, t0)))

		task.SetDone(true, t0.Add(time.Minute))
		require.NoError(t, s.Tasks.Upsert(task))

		got, err := s.Tasks.GetByID("t1")
		require.NoError(t, err)
		assert.True(t, got.IsDone)
		assert.Len(t, s.Tasks.ListAll(), 2)

		linked := s.Tasks.ListForGoal("g1")
		require.Len(t, linked, 1)
		assert.Equal(t, "t1", linked[0].ID)
		assert.Empty(t, s.Tasks.ListForGoal(""))

		require.NoError(t, s.Tasks.DeleteByID("t1"))
		_, err = s.Tasks.GetByID("t1")
		assert.ErrorIs(t, err, errors.ErrTaskNotFound)
		require.NoError(t, s.Tasks.DeleteByID("t1"))
	})
}

func TestDanglingGoalReferenceSurvivesDelete(t *testing.T) {
	forEachStore(t, func(t *testing.T, s *Store) {
		require.NoError(t, s.Goals.Upsert(model.NewGoal("g1", "x", "", t0)))
		task := model.NewTask("t1", "linked", "2024-06-01", model.PlannedSourceManual, t0)
		task.LinkedGoalID = "g1"
		require.NoError(t, s.Tasks.Upsert(task))

		require.NoError(t, s.Goals.DeleteByID("g1"))

		got, err := s.Tasks.GetByID("t1")
		require.NoError(t, err)
		assert.Equal(t, "g1", got.LinkedGoalID)
	})
}

// =============================================================================
// DailyPlan Tests
// =============================================================================

func TestPlanUpsertByDate(t *testing.T) {
	forEachStore(t, func(t *testing.T, s *Store) {
		_, err := s.Plans.GetByDate("2024-06-01")
		assert.ErrorIs(t, err, errors.ErrPlanNotFound)

		p := model.NewDailyPlan("2024-06-01")
		p.FocusGoalID = "g1"
		require.NoError(t, s.Plans.Upsert(p))
		require.NoError(t, s.Plans.Upsert(model.NewDailyPlan("2024-06-02")))

		replacement := model.NewDailyPlan("2024-06-01")
		replacement.Close(t0, "done")
		require.NoError(t, s.Plans.Upsert(replacement))

		all := s.Plans.ListAll()
		require.Len(t, all, 2)
		assert.Equal(t, model.Date("2024-06-01"), all[0].Date)

		got, err := s.Plans.GetByDate("2024-06-01")
		require.NoError(t, err)
		assert.Equal(t, model.ClosedStatusClosed, got.ClosedStatus)
		assert.Equal(t, "", got.FocusGoalID, "upsert replaces the whole record")

		require.NoError(t, s.Plans.DeleteByDate("2024-06-01"))
		_, err = s.Plans.GetByDate("2024-06-01")
		assert.ErrorIs(t, err, errors.ErrPlanNotFound)
		require.NoError(t, s.Plans.DeleteByDate("2030-01-01"))
	})
}

// =============================================================================
// Habit Tests
// =============================================================================

func TestHabitCRUD(t *testing.T) {
	forEachStore(t, func(t *testing.T, s *Store) {
		h := model.NewHabit("h1", "Read", model.ScheduleDaily, nil, t0)
		require.NoError(t, s.Habits.Upsert(h))
		require.NoError(t, s.Habits.Upsert(h))
		assert.Len(t, s.Habits.ListAll(), 1)

		got, err := s.Habits.GetByID("h1")
		require.NoError(t, err)
		assert.Equal(t, []int{}, got.ScheduleDays)

		require.NoError(t, s.Habits.DeleteByID("h1"))
		_, err = s.Habits.GetByID("h1")
		assert.ErrorIs(t, err, errors.ErrHabitNotFound)
		require.NoError(t, s.Habits.DeleteByID("h1"))
	})
}

func TestHabitListDueOn(t *testing.T) {
	forEachStore(t, func(t *testing.T, s *Store) {
		require.NoError(t, s.Habits.Upsert(model.NewHabit("daily", "Read", model.ScheduleDaily, nil, t0)))
		require.NoError(t, s.Habits.Upsert(model.NewHabit("weekdays", "Run", model.ScheduleWeekdays, nil, t0)))
		require.NoError(t, s.Habits.Upsert(model.NewHabit("sat", "Swim", model.ScheduleCustom, []int{6}, t0)))

		paused := model.NewHabit("paused", "Stretch", model.ScheduleDaily, nil, t0)
		paused.Status = model.HabitStatusPaused
		require.NoError(t, s.Habits.Upsert(paused))

		ids := func(hs []*model.Habit) []string {
			out := make([]string, len(hs))
			for i, h := range hs {
				out[i] = h.ID
			}
			return out
		}

		assert.Equal(t, []string{"daily", "sat"}, ids(s.Habits.ListDueOn("2024-06-01")))
		assert.Equal(t, []string{"daily", "weekdays"}, ids(s.Habits.ListDueOn("2024-06-03")))
	})
}

// =============================================================================
// HabitLog Tests
// =============================================================================

func TestLogHabitCompositeUpsert(t *testing.T) {
	forEachStore(t, func(t *testing.T, s *Store) {
		require.NoError(t, s.HabitLogs.LogHabit(model.NewHabitLog("L1", "H", "2024-06-01", model.HabitLogDone)))
		require.NoError(t, s.HabitLogs.LogHabit(model.NewHabitLog("L0", "H", "2024-05-31", model.HabitLogDone)))
		require.NoError(t, s.HabitLogs.LogHabit(model.NewHabitLog("L2", "H", "2024-06-01", model.HabitLogMissed)))

		logs := s.HabitLogs.ListForDate("2024-06-01")
		require.Len(t, logs, 1)
		assert.Equal(t, "L2", logs[0].ID)
		assert.Equal(t, model.HabitLogMissed, logs[0].Status)

		for _, l := range s.HabitLogs.ListAll() {
			assert.NotEqual(t, "L1", l.ID)
		}
		assert.Len(t, s.HabitLogs.ListForHabit("H"), 2)
	})
}

func TestLogHabitDistinctHabitsSameDate(t *testing.T) {
	forEachStore(t, func(t *testing.T, s *Store) {
		require.NoError(t, s.HabitLogs.LogHabit(model.NewHabitLog("L1", "H1", "2024-06-01", model.HabitLogDone)))
		require.NoError(t, s.HabitLogs.LogHabit(model.NewHabitLog("L2", "H2", "2024-06-01", model.HabitLogDone)))

		assert.Len(t, s.HabitLogs.ListForDate("2024-06-01"), 2)

		require.NoError(t, s.HabitLogs.DeleteByID("L1"))
		logs := s.HabitLogs.ListForDate("2024-06-01")
		require.Len(t, logs, 1)
		assert.Equal(t, "H2", logs[0].HabitID)
		require.NoError(t, s.HabitLogs.DeleteByID("L1"))
	})
}

// =============================================================================
// Uniqueness Tests
// =============================================================================

func TestUpsertHealsDuplicateKeys(t *testing.T) {
	sub := newFaultySubstrate()
	require.NoError(t, sub.Set(model.KeyGoals,
		[]byte(`[{"id":"g1","title":"a","status":"ACTIVE"},{"id":"g2","title":"b","status":"ACTIVE"},{"id":"g1","title":"c","status":"ACTIVE"}]`)))
	s := newTestStore(sub)

	require.NoError(t, s.Goals.Upsert(model.NewGoal("g1", "fresh", "", t0)))

	all := s.Goals.ListAll()
	assert.Equal(t, []string{"g1", "g2"}, goalIDs(all))
	assert.Equal(t, "fresh", all[0].Title)
}

func TestUpsertHelpers(t *testing.T) {
	goals := []model.Goal{{ID: "a"}, {ID: "b"}}

	out := upsertByKey(goals, model.Goal{ID: "b", Title: "new"})
	require.Len(t, out, 2)
	assert.Equal(t, "new", out[1].Title)
	assert.Equal(t, "", goals[1].Title, "input slice is not modified")

	out = upsertByKey(goals, model.Goal{ID: "c"})
	assert.Len(t, out, 3)

	out, changed := removeByKey(goals, "zzz")
	assert.False(t, changed)
	assert.Len(t, out, 2)

	_, ok := findByKey(goals, "zzz")
	assert.False(t, ok)
}

// =============================================================================
// Clear All Tests
// =============================================================================

func TestClearAll(t *testing.T) {
	forEachStore(t, func(t *testing.T, s *Store) {
		require.NoError(t, s.Goals.Upsert(model.NewGoal("g1", "x", "", t0)))
		require.NoError(t, s.Tasks.Upsert(model.NewTask("t1", "x", "2024-06-01", model.PlannedSourceManual, t0)))
		require.NoError(t, s.Habits.Upsert(model.NewHabit("h1", "x", model.ScheduleDaily, nil, t0)))
		require.NoError(t, s.Plans.Upsert(model.NewDailyPlan("2024-06-01")))
		require.NoError(t, s.HabitLogs.LogHabit(model.NewHabitLog("l1", "h1", "2024-06-01", model.HabitLogDone)))

		require.NoError(t, s.ClearAll())

		assert.Empty(t, s.Goals.ListAll())
		assert.Empty(t, s.Goals.ListActive())
		assert.Empty(t, s.Tasks.ListAll())
		assert.Empty(t, s.Tasks.ListForDate("2024-06-01"))
		assert.Empty(t, s.Habits.ListAll())
		assert.Empty(t, s.Plans.ListAll())
		assert.Empty(t, s.HabitLogs.ListForDate("2024-06-01"))

		_, err := s.Goals.GetByID("g1")
		assert.True(t, IsNotFound(err))
		_, err = s.Tasks.GetByID("t1")
		assert.True(t, IsNotFound(err))
		_, err = s.Habits.GetByID("h1")
		assert.True(t, IsNotFound(err))
		_, err = s.Plans.GetByDate("2024-06-01")
		assert.True(t, IsNotFound(err))

		require.NoError(t, s.Goals.Upsert(model.NewGoal("g2", "after", "", t0)))
		got, err := s.Goals.GetByID("g2")
		require.NoError(t, err)
		assert.Equal(t, "after", got.Title)

		require.NoError(t, s.Plans.Upsert(model.NewDailyPlan("2024-06-02")))
		_, err = s.Plans.GetByDate("2024-06-02")
		assert.NoError(t, err)
	})
}

func TestClearAllLeavesOtherKeys(t *testing.T) {
	forEachSubstrate(t, func(t *testing.T, sub closableSubstrate) {
		require.NoError(t, sub.Set("unrelated", []byte("keep")))
		s := newTestStore(sub)
		require.NoError(t, s.Goals.Upsert(model.NewGoal("g1", "x", "", t0)))

		require.NoError(t, s.ClearAll())

		keys, err := sub.Keys()
		require.NoError(t, err)
		assert.Equal(t, []string{"unrelated"}, keys)
	})
}

func TestClearAllFailureSurfaces(t *testing.T) {
	sub := newFaultySubstrate()
	sub.removeErr = errors.New("storage unavailable")
	s := newTestStore(sub)

	err := s.ClearAll()
	require.Error(t, err)
	assert.True(t, errors.IsSystemError(err))
}

// =============================================================================
// Wire Format Tests
// =============================================================================

func TestCollectionWireFormat(t *testing.T) {
	forEachSubstrate(t, func(t *testing.T, sub closableSubstrate) {
		s := newTestStore(sub)
		require.NoError(t, s.Tasks.Upsert(model.NewTask("t1", "x", "2024-06-01", model.PlannedSourceEvening, t0)))

		data, err := sub.Get(model.KeyTasks)
		require.NoError(t, err)

		var raw []map[string]any
		require.NoError(t, json.Unmarshal(data, &raw))
		require.Len(t, raw, 1)
		assert.Equal(t, "2024-06-01", raw[0]["dueDate"])
		assert.Equal(t, "EVENING", raw[0]["plannedSource"])
		assert.Equal(t, "2024-06-01T08:00:00Z", raw[0]["createdAt"])
	})
}

func TestDeleteLastRecordWritesEmptyArray(t *testing.T) {
	sub := newFaultySubstrate()
	s := newTestStore(sub)
	require.NoError(t, s.Goals.Upsert(model.NewGoal("g1", "x", "", t0)))
	require.NoError(t, s.Goals.DeleteByID("g1"))

	raw, ok := sub.raw(model.KeyGoals)
	require.True(t, ok)
	assert.Equal(t, "[]", string(raw))
}

// =============================================================================
// Error Handling Tests
// =============================================================================

func TestCorruptCollectionLoadsEmpty(t *testing.T) {
	forEachSubstrate(t, func(t *testing.T, sub closableSubstrate) {
		require.NoError(t, sub.Set(model.KeyGoals, []byte("{not json")))
		s := newTestStore(sub)

		assert.Empty(t, s.Goals.ListAll())
		assert.Empty(t, s.Goals.ListActive())
		_, err := s.Goals.GetByID("g1")
		assert.ErrorIs(t, err, errors.ErrGoalNotFound)
	})
}

func TestCorruptCollectionQuarantinedOnWrite(t *testing.T) {
	forEachSubstrate(t, func(t *testing.T, sub closableSubstrate) {
		corrupt := []byte(`[{"id": 42}]`)
		require.NoError(t, sub.Set(model.KeyHabits, corrupt))
		s := newTestStore(sub)

		require.NoError(t, s.Habits.Upsert(model.NewHabit("h1", "Read", model.ScheduleDaily, nil, t0)))

		saved, err := sub.Get(QuarantineKey(model.KeyHabits))
		require.NoError(t, err)
		assert.Equal(t, corrupt, saved)

		habits := s.Habits.ListAll()
		require.Len(t, habits, 1)
		assert.Equal(t, "h1", habits[0].ID)
	})
}

func TestQuarantineFailureBlocksWrite(t *testing.T) {
	sub := newFaultySubstrate()
	sub.data[model.KeyGoals] = []byte("garbage")
	sub.setErr = errors.New("read-only")
	s := newTestStore(sub)

	err := s.Goals.Upsert(model.NewGoal("g1", "x", "", t0))
	require.Error(t, err)
	assert.True(t, errors.IsSystemError(err))

	raw, _ := sub.raw(model.KeyGoals)
	assert.Equal(t, "garbage", string(raw))
}

func TestReadFailureNeverOverwrites(t *testing.T) {
	sub := newFaultySubstrate()
	s := newTestStore(sub)
	require.NoError(t, s.Goals.Upsert(model.NewGoal("g1", "x", "", t0)))
	before, _ := sub.raw(model.KeyGoals)
	sets := sub.sets

	sub.getErr = errors.New("storage unavailable")

	assert.Empty(t, s.Goals.ListAll(), "plain reads degrade to empty")
	err := s.Goals.Upsert(model.NewGoal("g2", "y", "", t0))
	require.Error(t, err)
	assert.True(t, errors.IsSystemError(err))
	assert.Error(t, s.Goals.DeleteByID("g1"))

	assert.Equal(t, sets, sub.sets)
	after, _ := sub.raw(model.KeyGoals)
	assert.Equal(t, before, after)
}

func TestWriteFailureSurfaces(t *testing.T) {
	sub := newFaultySubstrate()
	s := newTestStore(sub)
	require.NoError(t, s.Tasks.Upsert(model.NewTask("t1", "x", "2024-06-01", model.PlannedSourceManual, t0)))

	cause := errors.New("disk unplugged")
	sub.setErr = cause

	err := s.Tasks.Upsert(model.NewTask("t2", "y", "2024-06-01", model.PlannedSourceManual, t0))
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)

	se, ok := errors.AsSystemError(err)
	require.True(t, ok)
	assert.Equal(t, "save tasks_v1", se.Op)

	sub.setErr = nil
	tasks := s.Tasks.ListAll()
	require.Len(t, tasks, 1)
	assert.Equal(t, "t1", tasks[0].ID)
}

func TestDeleteAbsentSkipsWrite(t *testing.T) {
	sub := newFaultySubstrate()
	s := newTestStore(sub)

	require.NoError(t, s.Goals.DeleteByID("nope"))
	require.NoError(t, s.Plans.DeleteByDate("2024-06-01"))
	assert.Equal(t, 0, sub.sets)
}

func TestNilRecordsRejected(t *testing.T) {
	s := newTestStore(newFaultySubstrate())
	assert.Error(t, s.Goals.Upsert(nil))
	assert.Error(t, s.Tasks.Upsert(nil))
	assert.Error(t, s.Habits.Upsert(nil))
	assert.Error(t, s.Plans.Upsert(nil))
	assert.Error(t, s.HabitLogs.LogHabit(nil))
}

// =============================================================================
// Concurrency Tests
// =============================================================================

func TestConcurrentUpsertsLoseNothing(t *testing.T) {
	forEachStore(t, func(t *testing.T, s *Store) {
		const n = 40

		var g errgroup.Group
		for i := 0; i < n; i++ {
			g.Go(func() error {
				return s.Goals.Upsert(model.NewGoal(fmt.Sprintf("g%02d", i), "x", "", t0))
			})
			g.Go(func() error {
				return s.HabitLogs.LogHabit(model.NewHabitLog(fmt.Sprintf("l%02d", i), "h1", "2024-06-01", model.HabitLogDone))
			})
		}
		require.NoError(t, g.Wait())

		assert.Len(t, s.Goals.ListAll(), n)
		assert.Len(t, s.HabitLogs.ListForDate("2024-06-01"), 1)
	})
}
