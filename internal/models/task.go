package models

// TaskStatus tracks a task through its lifecycle.
type TaskStatus string

const (
	TaskPending   TaskStatus = "PENDING"
	TaskOngoing   TaskStatus = "ONGOING"
	TaskCompleted TaskStatus = "COMPLETED"
)

// TaskPriority orders tasks for display.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
)

// Task mirrors the backend task schema. IsOverdue is derived from
// EndDateTime and may be recomputed client-side for display.
type Task struct {
	ID            string       `json:"id"`
	StudentID     string       `json:"studentId"`
	Title         string       `json:"title"`
	Description   string       `json:"description,omitempty"`
	StartDateTime string       `json:"startDateTime"`
	EndDateTime   string       `json:"endDateTime"`
	Status        TaskStatus   `json:"status"`
	Priority      TaskPriority `json:"priority"`
	CreatedAt     string       `json:"createdAt"`
	UpdatedAt     string       `json:"updatedAt"`
	CompletedAt   string       `json:"completedAt,omitempty"`
	IsOverdue     bool         `json:"isOverdue"`
}

// TaskStats summarises a student's task counts.
type TaskStats struct {
	Pending   int `json:"pending"`
	Ongoing   int `json:"ongoing"`
	Completed int `json:"completed"`
	Overdue   int `json:"overdue"`
}

// CreateTaskRequest creates or fully replaces a task.
type CreateTaskRequest struct {
	Title         string `json:"title" validate:"required"`
	Description   string `json:"description,omitempty"`
	StartDateTime string `json:"startDateTime" validate:"required"`
	EndDateTime   string `json:"endDateTime" validate:"required"`
	Priority      string `json:"priority" validate:"required,oneof=LOW MEDIUM HIGH"`
}
