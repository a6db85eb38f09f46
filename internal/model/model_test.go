package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

// =============================================================================
// Date Tests
// =============================================================================

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"2024-06-01", true},
		{"2024-02-29", true},
		{"2023-02-29", false},
		{"2024-6-1", false},
		{"06/01/2024", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := ParseDate(tt.input)
			if tt.valid {
				require.NoError(t, err)
				assert.Equal(t, Date(tt.input), d)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestDateOf(t *testing.T) {
	assert.Equal(t, Date("2024-06-01"), DateOf(testNow))
}

func TestDateWeekdayAndAddDays(t *testing.T) {
	d := Date("2024-06-01")
	assert.Equal(t, time.Saturday, d.Weekday())
	assert.Equal(t, Date("2024-06-02"), d.AddDays(1))
	assert.Equal(t, Date("2024-05-31"), d.AddDays(-1))
	assert.Equal(t, Date("2024-07-01"), d.AddDays(30))

	bad := Date("nope")
	assert.Equal(t, bad, bad.AddDays(3))
}

func TestDateBefore(t *testing.T) {
	assert.True(t, Date("2024-05-31").Before("2024-06-01"))
	assert.False(t, Date("2024-06-01").Before("2024-06-01"))
}

// =============================================================================
// Goal Tests
// =============================================================================

func TestNewGoal(t *testing.T) {
	g := NewGoal("g1", "Ship v1", "users are waiting", testNow)

	assert.Equal(t, "g1", g.PrimaryKey())
	assert.Equal(t, GoalStatusActive, g.Status)
	assert.False(t, g.IsPinned)
	assert.Nil(t, g.LastFocusedAt)
	assert.Equal(t, testNow, g.CreatedAt)
	assert.Equal(t, testNow, g.UpdatedAt)
	assert.True(t, g.IsActive())
	assert.NoError(t, g.Validate())
}

func TestGoalFocus(t *testing.T) {
	g := NewGoal("g1", "Ship v1", "", testNow)
	later := testNow.Add(time.Hour)
	g.Focus(later)

	require.NotNil(t, g.LastFocusedAt)
	assert.Equal(t, later, *g.LastFocusedAt)
	assert.Equal(t, later, g.UpdatedAt)
}

func TestGoalTouchNeverPrecedesCreatedAt(t *testing.T) {
	g := NewGoal("g1", "Ship v1", "", testNow)
	g.Touch(testNow.Add(-time.Hour))
	assert.Equal(t, testNow, g.UpdatedAt)
}

func TestGoalValidate(t *testing.T) {
	t.Run("missing_id", func(t *testing.T) {
		g := NewGoal("", "x", "", testNow)
		assert.Error(t, g.Validate())
	})

	t.Run("bad_status", func(t *testing.T) {
		g := NewGoal("g1", "x", "", testNow)
		g.Status = "DONE"
		assert.Error(t, g.Validate())
	})

	t.Run("updated_before_created", func(t *testing.T) {
		g := NewGoal("g1", "x", "", testNow)
		g.UpdatedAt = testNow.Add(-time.Minute)
		assert.Error(t, g.Validate())
	})
}

func TestGoalJSONFieldNames(t *testing.T) {
	g := NewGoal("g1", "Ship v1", "", testNow)
	g.IsPinned = true

	data, err := json.Marshal(g)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "g1", raw["id"])
	assert.Equal(t, true, raw["isPinned"])
	assert.Equal(t, "ACTIVE", raw["status"])
	assert.Equal(t, "2024-06-01T09:30:00Z", raw["createdAt"])
	assert.NotContains(t, raw, "why")
	assert.NotContains(t, raw, "lastFocusedAt")
}

// =============================================================================
// Task Tests
// =============================================================================

func TestNewTask(t *testing.T) {
	task := NewTask("t1", "Write tests", "2024-06-01", PlannedSourceMorning, testNow)

	assert.Equal(t, "t1", task.PrimaryKey())
	assert.False(t, task.IsDone)
	assert.NoError(t, task.Validate())

	task.SetDone(true, testNow.Add(time.Minute))
	assert.True(t, task.IsDone)
	assert.Equal(t, testNow.Add(time.Minute), task.UpdatedAt)
}

func TestTaskValidate(t *testing.T) {
	task := NewTask("t1", "Write tests", "2024-13-01", PlannedSourceManual, testNow)
	assert.Error(t, task.Validate())

	task = NewTask("t1", "Write tests", "2024-06-01", "LATER", testNow)
	assert.Error(t, task.Validate())
}

func TestTaskDueDateWireFormat(t *testing.T) {
	task := NewTask("t1", "Write tests", "2024-06-01", PlannedSourceEvening, testNow)
	data, err := json.Marshal(task)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"dueDate":"2024-06-01"`)
	assert.Contains(t, string(data), `"plannedSource":"EVENING"`)
	assert.NotContains(t, string(data), "linkedGoalId")
}

// =============================================================================
// Habit Tests
// =============================================================================

func TestHabitIsScheduledOn(t *testing.T) {
	daily := NewHabit("h1", "Read", ScheduleDaily, nil, testNow)
	weekdays := NewHabit("h2", "Run", ScheduleWeekdays, nil, testNow)
	custom := NewHabit("h3", "Swim", ScheduleCustom, []int{1, 3, 5}, testNow)

	for day := time.Sunday; day <= time.Saturday; day++ {
		assert.True(t, daily.IsScheduledOn(day), "daily on %s", day)
	}

	assert.False(t, weekdays.IsScheduledOn(time.Sunday))
	assert.True(t, weekdays.IsScheduledOn(time.Monday))
	assert.True(t, weekdays.IsScheduledOn(time.Friday))
	assert.False(t, weekdays.IsScheduledOn(time.Saturday))

	assert.True(t, custom.IsScheduledOn(time.Monday))
	assert.False(t, custom.IsScheduledOn(time.Tuesday))
	assert.True(t, custom.IsScheduledOn(time.Wednesday))
}

func TestHabitIsDueOn(t *testing.T) {
	h := NewHabit("h1", "Run", ScheduleWeekdays, nil, testNow)
	assert.True(t, h.IsDueOn("2024-06-03"))  // Monday
	assert.False(t, h.IsDueOn("2024-06-01")) // Saturday

	h.Status = HabitStatusPaused
	assert.False(t, h.IsDueOn("2024-06-03"))
}

func TestHabitValidate(t *testing.T) {
	h := NewHabit("h1", "Swim", ScheduleCustom, nil, testNow)
	assert.Error(t, h.Validate())

	h.ScheduleDays = []int{7}
	assert.Error(t, h.Validate())

	h.ScheduleDays = []int{0, 6}
	assert.NoError(t, h.Validate())
}

func TestNewHabitEncodesEmptyDays(t *testing.T) {
	h := NewHabit("h1", "Read", ScheduleDaily, nil, testNow)
	data, err := json.Marshal(h)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"scheduleDays":[]`)
}

// =============================================================================
// DailyPlan Tests
// =============================================================================

func TestDailyPlanLifecycle(t *testing.T) {
	p := NewDailyPlan("2024-06-01")
	assert.Equal(t, "2024-06-01", p.PrimaryKey())
	assert.Equal(t, ClosedStatusOpen, p.ClosedStatus)
	assert.False(t, p.IsClosed())
	assert.NoError(t, p.Validate())

	p.Close(testNow, "good day")
	assert.True(t, p.IsClosed())
	assert.Equal(t, ClosedStatusClosed, p.ClosedStatus)
	require.NotNil(t, p.ClosedAt)
	assert.Equal(t, "good day", p.Note)

	skipped := NewDailyPlan("2024-06-02")
	skipped.SkipClose(testNow)
	assert.True(t, skipped.IsClosed())
	assert.Equal(t, ClosedStatusSkippedClose, skipped.ClosedStatus)
}

// =============================================================================
// HabitLog Tests
// =============================================================================

func TestHabitLogKeys(t *testing.T) {
	l := NewHabitLog("l1", "h1", "2024-06-01", HabitLogDone)
	assert.Equal(t, "l1", l.PrimaryKey())
	assert.Equal(t, "h1|2024-06-01", l.CompositeKey())
	assert.NoError(t, l.Validate())

	l.Status = "SKIPPED"
	assert.Error(t, l.Validate())
}

// =============================================================================
// Kind Tests
// =============================================================================

func TestCollectionKeys(t *testing.T) {
	assert.Equal(t, []string{
		"goals_v1", "tasks_v1", "habits_v1", "daily_plans_v1", "habit_logs_v1",
	}, CollectionKeys())
	assert.Equal(t, "", Kind("other").CollectionKey())
}

func TestKeyedInterface(t *testing.T) {
	var _ Keyed = Goal{}
	var _ Keyed = Task{}
	var _ Keyed = Habit{}
	var _ Keyed = DailyPlan{}
	var _ Keyed = HabitLog{}
}
