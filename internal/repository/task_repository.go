package repository

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/smarteval/smarteval-go/internal/api"
	"github.com/smarteval/smarteval-go/internal/models"
)

// TaskRepository wraps the task endpoints.
type TaskRepository struct {
	client   *api.Client
	validate *validator.Validate
}

// NewTaskRepository constructs a TaskRepository.
func NewTaskRepository(client *api.Client, validate *validator.Validate) *TaskRepository {
	if validate == nil {
		validate = validator.New()
	}
	return &TaskRepository{client: client, validate: validate}
}

// Create adds a task.
func (r *TaskRepository) Create(ctx context.Context, studentID string, req models.CreateTaskRequest) <-chan Resource[*models.Task] {
	return emit(ctx, "Failed to create task", func(ctx context.Context) (*models.Task, error) {
		if err := r.validate.Struct(req); err != nil {
			return nil, validationError(err)
		}
		return r.client.CreateTask(ctx, studentID, req)
	})
}

// List returns all of a student's tasks.
func (r *TaskRepository) List(ctx context.Context, studentID string) <-chan Resource[[]models.Task] {
	return emit(ctx, "Failed to load tasks", func(ctx context.Context) ([]models.Task, error) {
		return r.client.Tasks(ctx, studentID)
	})
}

// ListByStatus filters tasks by lifecycle status.
func (r *TaskRepository) ListByStatus(ctx context.Context, studentID string, status models.TaskStatus) <-chan Resource[[]models.Task] {
	return emit(ctx, "Failed to load tasks", func(ctx context.Context) ([]models.Task, error) {
		return r.client.TasksByStatus(ctx, studentID, status)
	})
}

// Get fetches one task.
func (r *TaskRepository) Get(ctx context.Context, taskID, studentID string) <-chan Resource[*models.Task] {
	return emit(ctx, "Failed to load task", func(ctx context.Context) (*models.Task, error) {
		return r.client.Task(ctx, taskID, studentID)
	})
}

// Update fully replaces a task.
func (r *TaskRepository) Update(ctx context.Context, taskID, studentID string, req models.CreateTaskRequest) <-chan Resource[*models.Task] {
	return emit(ctx, "Failed to update task", func(ctx context.Context) (*models.Task, error) {
		if err := r.validate.Struct(req); err != nil {
			return nil, validationError(err)
		}
		return r.client.UpdateTask(ctx, taskID, studentID, req)
	})
}

// Delete removes a task.
func (r *TaskRepository) Delete(ctx context.Context, taskID, studentID string) <-chan Resource[*models.ApiResponse] {
	return emit(ctx, "Failed to delete task", func(ctx context.Context) (*models.ApiResponse, error) {
		return r.client.DeleteTask(ctx, taskID, studentID)
	})
}

// Complete marks a task done.
func (r *TaskRepository) Complete(ctx context.Context, taskID, studentID string) <-chan Resource[*models.Task] {
	return emit(ctx, "Failed to complete task", func(ctx context.Context) (*models.Task, error) {
		return r.client.CompleteTask(ctx, taskID, studentID)
	})
}

// SetStatus moves a task to another lifecycle status.
func (r *TaskRepository) SetStatus(ctx context.Context, taskID, studentID string, status models.TaskStatus) <-chan Resource[*models.Task] {
	return emit(ctx, "Failed to update task status", func(ctx context.Context) (*models.Task, error) {
		return r.client.UpdateTaskStatus(ctx, taskID, studentID, status)
	})
}

// Stats summarises a student's task counts.
func (r *TaskRepository) Stats(ctx context.Context, studentID string) <-chan Resource[*models.TaskStats] {
	return emit(ctx, "Failed to load task stats", func(ctx context.Context) (*models.TaskStats, error) {
		return r.client.TaskStats(ctx, studentID)
	})
}

// Overdue lists tasks past their end time.
func (r *TaskRepository) Overdue(ctx context.Context, studentID string) <-chan Resource[[]models.Task] {
	return emit(ctx, "Failed to load overdue tasks", func(ctx context.Context) ([]models.Task, error) {
		return r.client.OverdueTasks(ctx, studentID)
	})
}

// DueSoon lists tasks approaching their end time.
func (r *TaskRepository) DueSoon(ctx context.Context, studentID string) <-chan Resource[[]models.Task] {
	return emit(ctx, "Failed to load upcoming tasks", func(ctx context.Context) ([]models.Task, error) {
		return r.client.TasksDueSoon(ctx, studentID)
	})
}
