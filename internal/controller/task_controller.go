package controller

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/smarteval/smarteval-go/internal/models"
	"github.com/smarteval/smarteval-go/internal/repository"
	"github.com/smarteval/smarteval-go/pkg/dateutil"
)

// TaskState backs the task planner screen.
type TaskState struct {
	Tasks     []models.Task
	Stats     *models.TaskStats
	IsLoading bool
	Error     string
}

// TaskController reduces task repository results into screen state. The
// overdue flag is recomputed locally so stale server snapshots still render
// correctly.
type TaskController struct {
	repo   *repository.TaskRepository
	logger *zap.Logger

	mu    sync.Mutex
	state TaskState

	*notifier
}

// NewTaskController constructs a TaskController.
func NewTaskController(repo *repository.TaskRepository, logger *zap.Logger) *TaskController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskController{repo: repo, logger: logger, notifier: newNotifier()}
}

// State returns a snapshot of the current state.
func (c *TaskController) State() TaskState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// refreshOverdue recomputes the derived overdue flag without a round-trip.
// Completed tasks are never overdue.
func refreshOverdue(tasks []models.Task) []models.Task {
	out := make([]models.Task, len(tasks))
	for i, t := range tasks {
		if t.Status != models.TaskCompleted {
			t.IsOverdue = dateutil.IsOverdue(t.EndDateTime)
		}
		out[i] = t
	}
	return out
}

// Load lists every task for a student.
func (c *TaskController) Load(ctx context.Context, studentID string) {
	c.begin()
	for res := range c.repo.List(ctx, studentID) {
		switch {
		case res.IsSuccess():
			c.update(func(s *TaskState) { s.Tasks = refreshOverdue(res.Value()) })
		case res.IsError():
			c.fail(res.Message())
		}
	}
}

// LoadByStatus filters tasks by lifecycle status.
func (c *TaskController) LoadByStatus(ctx context.Context, studentID string, status models.TaskStatus) {
	c.begin()
	for res := range c.repo.ListByStatus(ctx, studentID, status) {
		switch {
		case res.IsSuccess():
			c.update(func(s *TaskState) { s.Tasks = refreshOverdue(res.Value()) })
		case res.IsError():
			c.fail(res.Message())
		}
	}
}

// LoadOverdue lists tasks past their deadline.
func (c *TaskController) LoadOverdue(ctx context.Context, studentID string) {
	c.begin()
	for res := range c.repo.Overdue(ctx, studentID) {
		switch {
		case res.IsSuccess():
			c.update(func(s *TaskState) { s.Tasks = refreshOverdue(res.Value()) })
		case res.IsError():
			c.fail(res.Message())
		}
	}
}

// LoadDueSoon lists tasks approaching their deadline.
func (c *TaskController) LoadDueSoon(ctx context.Context, studentID string) {
	c.begin()
	for res := range c.repo.DueSoon(ctx, studentID) {
		switch {
		case res.IsSuccess():
			c.update(func(s *TaskState) { s.Tasks = refreshOverdue(res.Value()) })
		case res.IsError():
			c.fail(res.Message())
		}
	}
}

// LoadStats summarises the student's task counts.
func (c *TaskController) LoadStats(ctx context.Context, studentID string) {
	c.begin()
	for res := range c.repo.Stats(ctx, studentID) {
		switch {
		case res.IsSuccess():
			c.update(func(s *TaskState) { s.Stats = res.Value() })
		case res.IsError():
			c.fail(res.Message())
		}
	}
}

// Create adds a task and reloads the list on success.
func (c *TaskController) Create(ctx context.Context, studentID string, req models.CreateTaskRequest) {
	c.begin()
	for res := range c.repo.Create(ctx, studentID, req) {
		switch {
		case res.IsSuccess():
			c.Load(ctx, studentID)
		case res.IsError():
			c.fail(res.Message())
		}
	}
}

// Update replaces a task and reloads the list on success.
func (c *TaskController) Update(ctx context.Context, taskID, studentID string, req models.CreateTaskRequest) {
	c.begin()
	for res := range c.repo.Update(ctx, taskID, studentID, req) {
		switch {
		case res.IsSuccess():
			c.Load(ctx, studentID)
		case res.IsError():
			c.fail(res.Message())
		}
	}
}

// Delete removes a task and reloads the list on success.
func (c *TaskController) Delete(ctx context.Context, taskID, studentID string) {
	c.begin()
	for res := range c.repo.Delete(ctx, taskID, studentID) {
		switch {
		case res.IsSuccess():
			c.Load(ctx, studentID)
		case res.IsError():
			c.fail(res.Message())
		}
	}
}

// Complete marks a task done and reloads the list on success.
func (c *TaskController) Complete(ctx context.Context, taskID, studentID string) {
	c.begin()
	for res := range c.repo.Complete(ctx, taskID, studentID) {
		switch {
		case res.IsSuccess():
			c.Load(ctx, studentID)
		case res.IsError():
			c.fail(res.Message())
		}
	}
}

// SetStatus moves a task to another lifecycle status and reloads.
func (c *TaskController) SetStatus(ctx context.Context, taskID, studentID string, status models.TaskStatus) {
	c.begin()
	for res := range c.repo.SetStatus(ctx, taskID, studentID, status) {
		switch {
		case res.IsSuccess():
			c.Load(ctx, studentID)
		case res.IsError():
			c.fail(res.Message())
		}
	}
}

// ClearError resets the error field.
func (c *TaskController) ClearError() {
	c.update(func(s *TaskState) { s.Error = "" })
}

func (c *TaskController) begin() {
	c.mu.Lock()
	c.state.IsLoading = true
	c.state.Error = ""
	c.mu.Unlock()
	c.notify()
}

func (c *TaskController) update(apply func(*TaskState)) {
	c.mu.Lock()
	apply(&c.state)
	c.state.IsLoading = false
	c.mu.Unlock()
	c.notify()
}

func (c *TaskController) fail(message string) {
	c.mu.Lock()
	c.state.IsLoading = false
	c.state.Error = message
	c.mu.Unlock()
	c.notify()
}
