package controller

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/smarteval/smarteval-go/internal/models"
	"github.com/smarteval/smarteval-go/internal/repository"
)

// AlumniState backs the professor's alumni approval screen.
type AlumniState struct {
	Pending   []models.AlumniRequest
	IsLoading bool
	Error     string
}

// AlumniController reduces alumni repository results into screen state.
// Approve and reject are terminal transitions; the list is reloaded after
// each so the state reflects what the server committed.
type AlumniController struct {
	repo   *repository.AlumniRepository
	logger *zap.Logger

	mu    sync.Mutex
	state AlumniState

	*notifier
}

// NewAlumniController constructs an AlumniController.
func NewAlumniController(repo *repository.AlumniRepository, logger *zap.Logger) *AlumniController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AlumniController{repo: repo, logger: logger, notifier: newNotifier()}
}

// State returns a snapshot of the current state.
func (c *AlumniController) State() AlumniState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LoadPending lists sign-ups waiting on the professor.
func (c *AlumniController) LoadPending(ctx context.Context, professorID string) {
	c.begin()
	for res := range c.repo.Pending(ctx, professorID) {
		switch {
		case res.IsSuccess():
			c.update(func(s *AlumniState) { s.Pending = res.Value() })
		case res.IsError():
			c.fail(res.Message())
		}
	}
}

// Approve approves one request and reloads the pending list.
func (c *AlumniController) Approve(ctx context.Context, requestID, professorID string) {
	c.begin()
	for res := range c.repo.Approve(ctx, requestID) {
		switch {
		case res.IsSuccess():
			c.LoadPending(ctx, professorID)
		case res.IsError():
			c.fail(res.Message())
		}
	}
}

// Reject rejects one request and reloads the pending list.
func (c *AlumniController) Reject(ctx context.Context, requestID, professorID string) {
	c.begin()
	for res := range c.repo.Reject(ctx, requestID) {
		switch {
		case res.IsSuccess():
			c.LoadPending(ctx, professorID)
		case res.IsError():
			c.fail(res.Message())
		}
	}
}

// ClearError resets the error field.
func (c *AlumniController) ClearError() {
	c.update(func(s *AlumniState) { s.Error = "" })
}

func (c *AlumniController) begin() {
	c.mu.Lock()
	c.state.IsLoading = true
	c.state.Error = ""
	c.mu.Unlock()
	c.notify()
}

func (c *AlumniController) update(apply func(*AlumniState)) {
	c.mu.Lock()
	apply(&c.state)
	c.state.IsLoading = false
	c.mu.Unlock()
	c.notify()
}

func (c *AlumniController) fail(message string) {
	c.mu.Lock()
	c.state.IsLoading = false
	c.state.Error = message
	c.mu.Unlock()
	c.notify()
}
