package controller

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/smarteval/smarteval-go/internal/models"
	"github.com/smarteval/smarteval-go/internal/repository"
)

// AIState backs the AI learning screen.
type AIState struct {
	Roadmap     []string
	Questions   []models.AIQuestion
	Explanation string
	Evaluation  *models.EvaluationResponse
	IsLoading   bool
	Error       string
}

// AIController reduces AI repository results into screen state.
type AIController struct {
	repo   *repository.AIRepository
	logger *zap.Logger

	mu    sync.Mutex
	state AIState

	*notifier
}

// NewAIController constructs an AIController.
func NewAIController(repo *repository.AIRepository, logger *zap.Logger) *AIController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AIController{repo: repo, logger: logger, notifier: newNotifier()}
}

// State returns a snapshot of the current state.
func (c *AIController) State() AIState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// GenerateRoadmap requests a learning roadmap.
func (c *AIController) GenerateRoadmap(ctx context.Context, domain, timeframe, difficulty string) {
	c.begin()
	req := models.GenerateRoadmapRequest{Domain: domain, Timeframe: timeframe, Difficulty: difficulty}
	for res := range c.repo.GenerateRoadmap(ctx, req) {
		switch {
		case res.IsSuccess():
			c.update(func(s *AIState) { s.Roadmap = res.Value().Roadmap })
		case res.IsError():
			c.fail(res.Message())
		}
	}
}

// GeneratePractice requests practice questions.
func (c *AIController) GeneratePractice(ctx context.Context, domain, difficulty string, count int) {
	c.begin()
	req := models.GenerateAssessmentRequest{Domain: domain, Difficulty: difficulty, NumberOfQuestions: count}
	for res := range c.repo.GenerateAssessment(ctx, req) {
		switch {
		case res.IsSuccess():
			c.update(func(s *AIState) {
				s.Questions = res.Value().Questions
				s.Evaluation = nil
			})
		case res.IsError():
			c.fail(res.Message())
		}
	}
}

// Explain requests an explanation for a correct answer.
func (c *AIController) Explain(ctx context.Context, question, correctAnswer string) {
	c.begin()
	req := models.ExplainAnswerRequest{Question: question, CorrectAnswer: correctAnswer}
	for res := range c.repo.ExplainAnswer(ctx, req) {
		switch {
		case res.IsSuccess():
			c.update(func(s *AIState) { s.Explanation = res.Value().Explanation })
		case res.IsError():
			c.fail(res.Message())
		}
	}
}

// Evaluate scores the practice answers against the generated questions.
func (c *AIController) Evaluate(ctx context.Context, domain, difficulty string, answers []int) {
	c.mu.Lock()
	questions := c.state.Questions
	c.mu.Unlock()
	if len(questions) == 0 {
		c.fail("Generate a practice assessment first")
		return
	}

	c.begin()
	req := models.EvaluateAnswersRequest{
		Domain:     domain,
		Difficulty: difficulty,
		Questions:  questions,
		Answers:    answers,
	}
	for res := range c.repo.EvaluateAnswers(ctx, req) {
		switch {
		case res.IsSuccess():
			c.update(func(s *AIState) { s.Evaluation = res.Value() })
		case res.IsError():
			c.fail(res.Message())
		}
	}
}

// ClearError resets the error field.
func (c *AIController) ClearError() {
	c.update(func(s *AIState) { s.Error = "" })
}

func (c *AIController) begin() {
	c.mu.Lock()
	c.state.IsLoading = true
	c.state.Error = ""
	c.mu.Unlock()
	c.notify()
}

func (c *AIController) update(apply func(*AIState)) {
	c.mu.Lock()
	apply(&c.state)
	c.state.IsLoading = false
	c.mu.Unlock()
	c.notify()
}

func (c *AIController) fail(message string) {
	c.mu.Lock()
	c.state.IsLoading = false
	c.state.Error = message
	c.mu.Unlock()
	c.notify()
}
