package repository

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/smarteval/smarteval-go/internal/api"
	"github.com/smarteval/smarteval-go/internal/models"
	"github.com/smarteval/smarteval-go/internal/validation"
)

// AssessmentRepository wraps the assessment endpoints.
type AssessmentRepository struct {
	client   *api.Client
	validate *validator.Validate
}

// NewAssessmentRepository constructs an AssessmentRepository.
func NewAssessmentRepository(client *api.Client, validate *validator.Validate) *AssessmentRepository {
	if validate == nil {
		validate = validator.New()
	}
	return &AssessmentRepository{client: client, validate: validate}
}

// Create schedules an assessment after the full client-side rule check. The
// first failing rule blocks the call with its own message; nothing is sent.
func (r *AssessmentRepository) Create(ctx context.Context, req models.CreateAssessmentRequest) <-chan Resource[*models.Assessment] {
	return emit(ctx, "Failed to create assessment", func(ctx context.Context) (*models.Assessment, error) {
		if err := r.validate.Struct(req); err != nil {
			return nil, validationError(err)
		}
		if err := validation.CheckAssessmentCreation(req); err != nil {
			return nil, err
		}
		return r.client.CreateAssessment(ctx, req)
	})
}

// ForStudent lists assessments assigned to a student.
func (r *AssessmentRepository) ForStudent(ctx context.Context, studentID string) <-chan Resource[[]models.Assessment] {
	return emit(ctx, "Failed to load assessments", func(ctx context.Context) ([]models.Assessment, error) {
		return r.client.StudentAssessments(ctx, studentID)
	})
}

// ForProfessor lists assessments created by a professor.
func (r *AssessmentRepository) ForProfessor(ctx context.Context, professorID string) <-chan Resource[[]models.Assessment] {
	return emit(ctx, "Failed to load assessments", func(ctx context.Context) ([]models.Assessment, error) {
		return r.client.ProfessorAssessments(ctx, professorID)
	})
}

// Get fetches one assessment with its questions.
func (r *AssessmentRepository) Get(ctx context.Context, assessmentID string) <-chan Resource[*models.Assessment] {
	return emit(ctx, "Failed to load assessment", func(ctx context.Context) (*models.Assessment, error) {
		return r.client.Assessment(ctx, assessmentID)
	})
}

// Submit records a student's answers.
func (r *AssessmentRepository) Submit(ctx context.Context, assessmentID string, req models.SubmitAssessmentRequest) <-chan Resource[*models.ApiResponse] {
	return emit(ctx, "Failed to submit assessment", func(ctx context.Context) (*models.ApiResponse, error) {
		if err := r.validate.Struct(req); err != nil {
			return nil, validationError(err)
		}
		return r.client.SubmitAssessment(ctx, assessmentID, req)
	})
}

// Results lists all submissions for one assessment.
func (r *AssessmentRepository) Results(ctx context.Context, assessmentID string) <-chan Resource[[]models.AssessmentResult] {
	return emit(ctx, "Failed to load results", func(ctx context.Context) ([]models.AssessmentResult, error) {
		return r.client.AssessmentResults(ctx, assessmentID)
	})
}

// StudentResults lists a student's results across assessments.
func (r *AssessmentRepository) StudentResults(ctx context.Context, studentID string) <-chan Resource[[]models.AssessmentResult] {
	return emit(ctx, "Failed to load results", func(ctx context.Context) ([]models.AssessmentResult, error) {
		return r.client.StudentResults(ctx, studentID)
	})
}

// CheckSubmission reports whether a student already submitted.
func (r *AssessmentRepository) CheckSubmission(ctx context.Context, assessmentID, studentID string) <-chan Resource[*models.SubmissionCheck] {
	return emit(ctx, "Failed to check submission", func(ctx context.Context) (*models.SubmissionCheck, error) {
		return r.client.CheckSubmission(ctx, assessmentID, studentID)
	})
}
