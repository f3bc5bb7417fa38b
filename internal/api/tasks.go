package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/smarteval/smarteval-go/internal/models"
)

func studentQuery(studentID string) url.Values {
	return url.Values{"studentId": []string{studentID}}
}

// CreateTask adds a task for a student.
func (c *Client) CreateTask(ctx context.Context, studentID string, req models.CreateTaskRequest) (*models.Task, error) {
	var out models.Task
	err := c.do(ctx, call{
		method:   http.MethodPost,
		endpoint: "tasks",
		path:     "tasks",
		query:    studentQuery(studentID),
		body:     req,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Tasks lists every task for a student.
func (c *Client) Tasks(ctx context.Context, studentID string) ([]models.Task, error) {
	var out []models.Task
	err := c.do(ctx, call{
		method:   http.MethodGet,
		endpoint: "tasks/student/{studentId}",
		path:     "tasks/student/" + studentID,
	}, &out)
	return out, err
}

// TasksByStatus filters a student's tasks by lifecycle status.
func (c *Client) TasksByStatus(ctx context.Context, studentID string, status models.TaskStatus) ([]models.Task, error) {
	var out []models.Task
	err := c.do(ctx, call{
		method:   http.MethodGet,
		endpoint: "tasks/student/{studentId}/status/{status}",
		path:     "tasks/student/" + studentID + "/status/" + string(status),
	}, &out)
	return out, err
}

// Task fetches one task by ID.
func (c *Client) Task(ctx context.Context, taskID, studentID string) (*models.Task, error) {
	var out models.Task
	err := c.do(ctx, call{
		method:   http.MethodGet,
		endpoint: "tasks/{taskId}",
		path:     "tasks/" + taskID,
		query:    studentQuery(studentID),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTask fully replaces a task.
func (c *Client) UpdateTask(ctx context.Context, taskID, studentID string, req models.CreateTaskRequest) (*models.Task, error) {
	var out models.Task
	err := c.do(ctx, call{
		method:   http.MethodPut,
		endpoint: "tasks/{taskId}",
		path:     "tasks/" + taskID,
		query:    studentQuery(studentID),
		body:     req,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, taskID, studentID string) (*models.ApiResponse, error) {
	var out models.ApiResponse
	err := c.do(ctx, call{
		method:   http.MethodDelete,
		endpoint: "tasks/{taskId}",
		path:     "tasks/" + taskID,
		query:    studentQuery(studentID),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CompleteTask marks a task done.
func (c *Client) CompleteTask(ctx context.Context, taskID, studentID string) (*models.Task, error) {
	var out models.Task
	err := c.do(ctx, call{
		method:   http.MethodPut,
		endpoint: "tasks/{taskId}/complete",
		path:     "tasks/" + taskID + "/complete",
		query:    studentQuery(studentID),
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTaskStatus moves a task to another lifecycle status.
func (c *Client) UpdateTaskStatus(ctx context.Context, taskID, studentID string, status models.TaskStatus) (*models.Task, error) {
	query := studentQuery(studentID)
	query.Set("status", string(status))
	var out models.Task
	err := c.do(ctx, call{
		method:   http.MethodPut,
		endpoint: "tasks/{taskId}/status",
		path:     "tasks/" + taskID + "/status",
		query:    query,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// TaskStats summarises a student's task counts.
func (c *Client) TaskStats(ctx context.Context, studentID string) (*models.TaskStats, error) {
	var out models.TaskStats
	err := c.do(ctx, call{
		method:   http.MethodGet,
		endpoint: "tasks/student/{studentId}/stats",
		path:     "tasks/student/" + studentID + "/stats",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// OverdueTasks lists tasks past their end time.
func (c *Client) OverdueTasks(ctx context.Context, studentID string) ([]models.Task, error) {
	var out []models.Task
	err := c.do(ctx, call{
		method:   http.MethodGet,
		endpoint: "tasks/student/{studentId}/overdue",
		path:     "tasks/student/" + studentID + "/overdue",
	}, &out)
	return out, err
}

// TasksDueSoon lists tasks approaching their end time.
func (c *Client) TasksDueSoon(ctx context.Context, studentID string) ([]models.Task, error) {
	var out []models.Task
	err := c.do(ctx, call{
		method:   http.MethodGet,
		endpoint: "tasks/student/{studentId}/due-soon",
		path:     "tasks/student/" + studentID + "/due-soon",
	}, &out)
	return out, err
}
