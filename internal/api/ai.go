package api

import (
	"context"
	"net/http"

	"github.com/smarteval/smarteval-go/internal/models"
)

// GenerateRoadmap asks the AI service for a learning roadmap.
func (c *Client) GenerateRoadmap(ctx context.Context, req models.GenerateRoadmapRequest) (*models.RoadmapResponse, error) {
	var out models.RoadmapResponse
	err := c.do(ctx, call{
		method:   http.MethodPost,
		endpoint: "ai/roadmap",
		path:     "ai/roadmap",
		body:     req,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateAssessment asks the AI service for practice questions.
func (c *Client) GenerateAssessment(ctx context.Context, req models.GenerateAssessmentRequest) (*models.AIAssessmentResponse, error) {
	var out models.AIAssessmentResponse
	err := c.do(ctx, call{
		method:   http.MethodPost,
		endpoint: "ai/assessment",
		path:     "ai/assessment",
		body:     req,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ExplainAnswer asks the AI service to explain a correct answer.
func (c *Client) ExplainAnswer(ctx context.Context, req models.ExplainAnswerRequest) (*models.ExplanationResponse, error) {
	var out models.ExplanationResponse
	err := c.do(ctx, call{
		method:   http.MethodPost,
		endpoint: "ai/explain",
		path:     "ai/explain",
		body:     req,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// EvaluateAnswers scores a practice run and returns feedback.
func (c *Client) EvaluateAnswers(ctx context.Context, req models.EvaluateAnswersRequest) (*models.EvaluationResponse, error) {
	var out models.EvaluationResponse
	err := c.do(ctx, call{
		method:   http.MethodPost,
		endpoint: "ai/evaluate",
		path:     "ai/evaluate",
		body:     req,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
