package models

import (
	"math"
	"strings"
	"time"
)

// DefaultCategory is used when a task is added without one
const DefaultCategory = "Personal"

// DueDateLayout is the format the task form submits due dates in
const DueDateLayout = "2006-01-02"

// Task is a to-do item owned by a user email
// OwnerEmail is a plain value, not an enforced reference to users
type Task struct {
	ID         int64  `json:"id" db:"id"`
	OwnerEmail string `json:"user_email" db:"user_email"`
	Name       string `json:"name" db:"name"`
	Category   string `json:"category" db:"category"`
	DueDate    string `json:"due_date" db:"due_date"` // free text, usually YYYY-MM-DD
	Completed  bool   `json:"completed" db:"completed"`
}

// Progress is the derived completion view of a task list
type Progress struct {
	Total     int
	Completed int
	Pending   int
	Percent   int
}

// Summarize counts completed and pending tasks. Percent is 0 for an empty list.
func Summarize(tasks []Task) Progress {
	p := Progress{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			p.Completed++
		}
	}
	p.Pending = p.Total - p.Completed
	if p.Total > 0 {
		p.Percent = int(math.Round(float64(p.Completed) / float64(p.Total) * 100))
	}
	return p
}

// TaskView narrows the profile list by due date
type TaskView string

const (
	ViewAll     TaskView = "all"
	ViewDaily   TaskView = "daily"
	ViewWeekly  TaskView = "weekly"
	ViewMonthly TaskView = "monthly"
)

// ParseTaskView maps a query value to a view; anything unknown means all.
func ParseTaskView(raw string) TaskView {
	switch v := TaskView(strings.ToLower(strings.TrimSpace(raw))); v {
	case ViewDaily, ViewWeekly, ViewMonthly:
		return v
	default:
		return ViewAll
	}
}

func (v TaskView) horizonDays() int {
	switch v {
	case ViewDaily:
		return 1
	case ViewWeekly:
		return 7
	case ViewMonthly:
		return 30
	default:
		return 0
	}
}

// FilterTasks keeps tasks due within the view's horizon of now, overdue
// tasks included. Tasks without a parseable due date only show in ViewAll.
func FilterTasks(tasks []Task, view TaskView, now time.Time) []Task {
	horizon := view.horizonDays()
	if horizon == 0 {
		return tasks
	}
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		days, ok := daysUntil(t.DueDate, now)
		if ok && days <= horizon {
			out = append(out, t)
		}
	}
	return out
}

// daysUntil rounds the distance to the due date up to whole days.
func daysUntil(dueDate string, now time.Time) (int, bool) {
	due, err := time.Parse(DueDateLayout, strings.TrimSpace(dueDate))
	if err != nil {
		return 0, false
	}
	return int(math.Ceil(due.Sub(now).Hours() / 24)), true
}
