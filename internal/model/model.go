// Package model defines the domain models for dayaim.
package model

// Keyed is implemented by records stored under a primary key.
type Keyed interface {
	// PrimaryKey returns the value that identifies the record within its collection.
	PrimaryKey() string
}

// Kind names one of the five entity collections.
type Kind string

const (
	KindGoal     Kind = "goal"
	KindTask     Kind = "task"
	KindHabit    Kind = "habit"
	KindPlan     Kind = "plan"
	KindHabitLog Kind = "habit_log"
)

// Collection key constants. The version lives in the key name so a future
// format change can move to a new key without touching the old one.
const (
	KeyGoals     = "goals_v1"
	KeyTasks     = "tasks_v1"
	KeyHabits    = "habits_v1"
	KeyPlans     = "daily_plans_v1"
	KeyHabitLogs = "habit_logs_v1"
)

// Kinds lists every entity kind in a fixed order.
func Kinds() []Kind {
	return []Kind{KindGoal, KindTask, KindHabit, KindPlan, KindHabitLog}
}

// CollectionKey returns the substrate key holding the collection for k.
func (k Kind) CollectionKey() string {
	switch k {
	case KindGoal:
		return KeyGoals
	case KindTask:
		return KeyTasks
	case KindHabit:
		return KeyHabits
	case KindPlan:
		return KeyPlans
	case KindHabitLog:
		return KeyHabitLogs
	}
	return ""
}

// CollectionKeys returns the substrate keys of all collections.
func CollectionKeys() []string {
	kinds := Kinds()
	keys := make([]string, 0, len(kinds))
	for _, k := range kinds {
		keys = append(keys, k.CollectionKey())
	}
	return keys
}
