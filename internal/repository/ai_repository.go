package repository

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/smarteval/smarteval-go/internal/api"
	"github.com/smarteval/smarteval-go/internal/models"
)

// AIRepository wraps the AI generation endpoints, pass-throughs to the
// generation service.
type AIRepository struct {
	client   *api.Client
	validate *validator.Validate
}

// NewAIRepository constructs an AIRepository.
func NewAIRepository(client *api.Client, validate *validator.Validate) *AIRepository {
	if validate == nil {
		validate = validator.New()
	}
	return &AIRepository{client: client, validate: validate}
}

// GenerateRoadmap requests a learning roadmap.
func (r *AIRepository) GenerateRoadmap(ctx context.Context, req models.GenerateRoadmapRequest) <-chan Resource[*models.RoadmapResponse] {
	return emit(ctx, "Failed to generate roadmap", func(ctx context.Context) (*models.RoadmapResponse, error) {
		if err := r.validate.Struct(req); err != nil {
			return nil, validationError(err)
		}
		return r.client.GenerateRoadmap(ctx, req)
	})
}

// GenerateAssessment requests practice questions.
func (r *AIRepository) GenerateAssessment(ctx context.Context, req models.GenerateAssessmentRequest) <-chan Resource[*models.AIAssessmentResponse] {
	return emit(ctx, "Failed to generate assessment", func(ctx context.Context) (*models.AIAssessmentResponse, error) {
		if err := r.validate.Struct(req); err != nil {
			return nil, validationError(err)
		}
		return r.client.GenerateAssessment(ctx, req)
	})
}

// ExplainAnswer requests an explanation of a correct answer.
func (r *AIRepository) ExplainAnswer(ctx context.Context, req models.ExplainAnswerRequest) <-chan Resource[*models.ExplanationResponse] {
	return emit(ctx, "Failed to load explanation", func(ctx context.Context) (*models.ExplanationResponse, error) {
		if err := r.validate.Struct(req); err != nil {
			return nil, validationError(err)
		}
		return r.client.ExplainAnswer(ctx, req)
	})
}

// EvaluateAnswers scores a practice run.
func (r *AIRepository) EvaluateAnswers(ctx context.Context, req models.EvaluateAnswersRequest) <-chan Resource[*models.EvaluationResponse] {
	return emit(ctx, "Failed to evaluate answers", func(ctx context.Context) (*models.EvaluationResponse, error) {
		if err := r.validate.Struct(req); err != nil {
			return nil, validationError(err)
		}
		return r.client.EvaluateAnswers(ctx, req)
	})
}
