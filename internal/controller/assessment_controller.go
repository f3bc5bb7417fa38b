package controller

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/smarteval/smarteval-go/internal/models"
	"github.com/smarteval/smarteval-go/internal/repository"
)

// AssessmentState backs both the professor and student assessment screens.
type AssessmentState struct {
	Assessments      []models.Assessment
	Selected         *models.Assessment
	Results          []models.AssessmentResult
	Created          *models.Assessment
	AlreadySubmitted bool
	Submitted        bool
	IsLoading        bool
	Error            string
}

// AssessmentController reduces assessment repository results into screen
// state.
type AssessmentController struct {
	repo   *repository.AssessmentRepository
	logger *zap.Logger

	mu    sync.Mutex
	state AssessmentState

	*notifier
}

// NewAssessmentController constructs an AssessmentController.
func NewAssessmentController(repo *repository.AssessmentRepository, logger *zap.Logger) *AssessmentController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssessmentController{repo: repo, logger: logger, notifier: newNotifier()}
}

// State returns a snapshot of the current state.
func (c *AssessmentController) State() AssessmentState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Create schedules an assessment. Validation failures surface in Error
// without any network call.
func (c *AssessmentController) Create(ctx context.Context, req models.CreateAssessmentRequest) {
	c.begin()
	for res := range c.repo.Create(ctx, req) {
		switch {
		case res.IsSuccess():
			c.update(func(s *AssessmentState) { s.Created = res.Value() })
		case res.IsError():
			c.fail(res.Message())
		}
	}
}

// LoadForStudent lists a student's assigned assessments.
func (c *AssessmentController) LoadForStudent(ctx context.Context, studentID string) {
	c.begin()
	for res := range c.repo.ForStudent(ctx, studentID) {
		switch {
		case res.IsSuccess():
			c.update(func(s *AssessmentState) { s.Assessments = res.Value() })
		case res.IsError():
			c.fail(res.Message())
		}
	}
}

// LoadForProfessor lists a professor's created assessments.
func (c *AssessmentController) LoadForProfessor(ctx context.Context, professorID string) {
	c.begin()
	for res := range c.repo.ForProfessor(ctx, professorID) {
		switch {
		case res.IsSuccess():
			c.update(func(s *AssessmentState) { s.Assessments = res.Value() })
		case res.IsError():
			c.fail(res.Message())
		}
	}
}

// Select fetches one assessment and whether the student already submitted,
// so the screen can block a second attempt up front.
func (c *AssessmentController) Select(ctx context.Context, assessmentID, studentID string) {
	c.begin()
	for res := range c.repo.Get(ctx, assessmentID) {
		switch {
		case res.IsSuccess():
			c.update(func(s *AssessmentState) { s.Selected = res.Value() })
		case res.IsError():
			c.fail(res.Message())
			return
		}
	}

	if studentID == "" {
		return
	}
	for res := range c.repo.CheckSubmission(ctx, assessmentID, studentID) {
		switch {
		case res.IsSuccess():
			c.update(func(s *AssessmentState) { s.AlreadySubmitted = res.Value().Submitted })
		case res.IsError():
			c.fail(res.Message())
		}
	}
}

// Submit sends a student's answers unless a prior submission exists.
func (c *AssessmentController) Submit(ctx context.Context, assessmentID string, req models.SubmitAssessmentRequest) {
	c.mu.Lock()
	blocked := c.state.AlreadySubmitted
	c.mu.Unlock()
	if blocked {
		c.fail("You have already submitted this assessment")
		return
	}

	c.begin()
	for res := range c.repo.Submit(ctx, assessmentID, req) {
		switch {
		case res.IsSuccess():
			c.update(func(s *AssessmentState) {
				s.Submitted = true
				s.AlreadySubmitted = true
			})
		case res.IsError():
			c.fail(res.Message())
		}
	}
}

// LoadResults lists submissions for one assessment (professor view).
func (c *AssessmentController) LoadResults(ctx context.Context, assessmentID string) {
	c.begin()
	for res := range c.repo.Results(ctx, assessmentID) {
		switch {
		case res.IsSuccess():
			c.update(func(s *AssessmentState) { s.Results = res.Value() })
		case res.IsError():
			c.fail(res.Message())
		}
	}
}

// LoadStudentResults lists a student's results across assessments.
func (c *AssessmentController) LoadStudentResults(ctx context.Context, studentID string) {
	c.begin()
	for res := range c.repo.StudentResults(ctx, studentID) {
		switch {
		case res.IsSuccess():
			c.update(func(s *AssessmentState) { s.Results = res.Value() })
		case res.IsError():
			c.fail(res.Message())
		}
	}
}

// ClearError resets the error field.
func (c *AssessmentController) ClearError() {
	c.update(func(s *AssessmentState) { s.Error = "" })
}

func (c *AssessmentController) begin() {
	c.mu.Lock()
	c.state.IsLoading = true
	c.state.Error = ""
	c.mu.Unlock()
	c.notify()
}

func (c *AssessmentController) update(apply func(*AssessmentState)) {
	c.mu.Lock()
	apply(&c.state)
	c.state.IsLoading = false
	c.mu.Unlock()
	c.notify()
}

func (c *AssessmentController) fail(message string) {
	c.mu.Lock()
	c.state.IsLoading = false
	c.state.Error = message
	c.mu.Unlock()
	c.notify()
}
