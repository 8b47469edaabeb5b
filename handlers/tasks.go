package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"kalma/models"
	"kalma/store"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// TaskHandler serves the per-user to-do list on /profile
type TaskHandler struct {
	store *store.Store
	now   func() time.Time
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(st *store.Store) *TaskHandler {
	return &TaskHandler{
		store: st,
		now:   time.Now,
	}
}

type profileData struct {
	Tasks    []models.Task
	Progress models.Progress
	View     models.TaskView
	Views    []models.TaskView
}

// Profile handles GET /profile - lists tasks with progress, optionally ?view=daily|weekly|monthly
func (h *TaskHandler) Profile(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	email, _ := Identity(ctx)

	tasks, err := h.store.ListTasks(ctx, email)
	if err != nil {
		serverError(ctx, w, "Failed to list tasks", err)
		return
	}

	view := models.ParseTaskView(r.URL.Query().Get("view"))
	data := profileData{
		// progress always covers the whole list, the view only narrows what is shown
		Progress: models.Summarize(tasks),
		Tasks:    models.FilterTasks(tasks, view, h.now()),
		View:     view,
		Views:    []models.TaskView{models.ViewAll, models.ViewDaily, models.ViewWeekly, models.ViewMonthly},
	}

	logRequest(ctx, "debug", "Tasks listed", zap.Int("count", len(tasks)), zap.String("view", string(view)))
	render(ctx, w, r, "profile", "Profile", data)
}

// AddTask handles POST /profile - adds a task unless the name is blank
func (h *TaskHandler) AddTask(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	email, _ := Identity(ctx)
	if err := r.ParseForm(); err != nil {
		logRequest(ctx, "error", "Invalid task form", zap.Error(err))
		http.Redirect(w, r, "/profile", http.StatusFound)
		return
	}

	added, err := h.store.AddTask(ctx, email,
		r.PostFormValue("task"),
		r.PostFormValue("category"),
		r.PostFormValue("due_date"),
	)
	if err != nil {
		serverError(ctx, w, "Failed to add task", err)
		return
	}
	if !added {
		logRequest(ctx, "debug", "Blank task ignored")
		http.Redirect(w, r, "/profile", http.StatusFound)
		return
	}

	logRequest(ctx, "info", "Task added")
	redirectWithFlash(w, r, "Task added successfully!", "/profile")
}

// CompleteTask handles GET /complete_task/{id}
func (h *TaskHandler) CompleteTask(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(ctx, w, r)
	if !ok {
		return
	}
	email, _ := Identity(ctx)

	done, err := h.store.CompleteTask(ctx, id, email)
	if err != nil {
		serverError(ctx, w, "Failed to complete task", err)
		return
	}

	logRequest(ctx, "info", "Task completed", zap.Int64("task_id", id), zap.Bool("changed", done))
	redirectWithFlash(w, r, "Task marked as completed!", "/profile")
}

// DeleteTask handles GET /delete_task/{id}
func (h *TaskHandler) DeleteTask(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(ctx, w, r)
	if !ok {
		return
	}
	email, _ := Identity(ctx)

	removed, err := h.store.DeleteTask(ctx, id, email)
	if err != nil {
		serverError(ctx, w, "Failed to delete task", err)
		return
	}

	logRequest(ctx, "info", "Task deleted", zap.Int64("task_id", id), zap.Bool("changed", removed))
	redirectWithFlash(w, r, "Task deleted successfully!", "/profile")
}

func taskID(ctx context.Context, w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		logRequest(ctx, "error", "Invalid task ID", zap.String("id", idStr))
		http.NotFound(w, r)
		return 0, false
	}
	return id, true
}
