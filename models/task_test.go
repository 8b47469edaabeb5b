package models

import (
	"testing"
	"time"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name  string
		tasks []Task
		want  Progress
	}{
		{"empty", nil, Progress{}},
		{"all done", []Task{{Completed: true}, {Completed: true}}, Progress{Total: 2, Completed: 2, Percent: 100}},
		{"half", []Task{{Completed: true}, {}}, Progress{Total: 2, Completed: 1, Pending: 1, Percent: 50}},
		{"third", []Task{{Completed: true}, {}, {}}, Progress{Total: 3, Completed: 1, Pending: 2, Percent: 33}},
		{"two thirds", []Task{{Completed: true}, {Completed: true}, {}}, Progress{Total: 3, Completed: 2, Pending: 1, Percent: 67}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Summarize(tt.tasks); got != tt.want {
				t.Fatalf("Summarize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseTaskView(t *testing.T) {
	cases := map[string]TaskView{
		"":         ViewAll,
		"all":      ViewAll,
		"Daily":    ViewDaily,
		" weekly ": ViewWeekly,
		"monthly":  ViewMonthly,
		"yearly":   ViewAll,
	}
	for raw, want := range cases {
		if got := ParseTaskView(raw); got != want {
			t.Fatalf("ParseTaskView(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestFilterTasks(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	tasks := []Task{
		{ID: 1, Name: "overdue", DueDate: "2026-03-01"},
		{ID: 2, Name: "tomorrow", DueDate: "2026-03-11"},
		{ID: 3, Name: "next week", DueDate: "2026-03-16"},
		{ID: 4, Name: "next month", DueDate: "2026-04-05"},
		{ID: 5, Name: "far", DueDate: "2026-06-01"},
		{ID: 6, Name: "no date", DueDate: ""},
		{ID: 7, Name: "free text", DueDate: "someday"},
	}

	ids := func(in []Task) []int64 {
		out := make([]int64, 0, len(in))
		for _, t := range in {
			out = append(out, t.ID)
		}
		return out
	}

	tests := []struct {
		view TaskView
		want []int64
	}{
		{ViewAll, []int64{1, 2, 3, 4, 5, 6, 7}},
		{ViewDaily, []int64{1, 2}},
		{ViewWeekly, []int64{1, 2, 3}},
		{ViewMonthly, []int64{1, 2, 3, 4}},
	}
	for _, tt := range tests {
		t.Run(string(tt.view), func(t *testing.T) {
			got := ids(FilterTasks(tasks, tt.view, now))
			if len(got) != len(tt.want) {
				t.Fatalf("FilterTasks(%s) = %v, want %v", tt.view, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("FilterTasks(%s) = %v, want %v", tt.view, got, tt.want)
				}
			}
		})
	}
}

func TestHolidayFor(t *testing.T) {
	if name, ok := HolidayFor("2026-12-25"); !ok || name != "Christmas Day" {
		t.Fatalf("expected Christmas Day, got %q %v", name, ok)
	}
	if _, ok := HolidayFor("2026-12-24"); ok {
		t.Fatal("12-24 is not a holiday")
	}
	if _, ok := HolidayFor("bad"); ok {
		t.Fatal("short input should not match")
	}
}

func TestDisplayName(t *testing.T) {
	if got := (User{Fullname: "Ann", Email: "ann@x.com"}).DisplayName(); got != "Ann" {
		t.Fatalf("DisplayName() = %q", got)
	}
	if got := (User{Email: "ann@x.com"}).DisplayName(); got != "ann@x.com" {
		t.Fatalf("DisplayName() fallback = %q", got)
	}
}
