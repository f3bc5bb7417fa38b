package models

// GenerateRoadmapRequest asks the AI service for a learning roadmap.
type GenerateRoadmapRequest struct {
	Domain     string `json:"domain" validate:"required"`
	Timeframe  string `json:"timeframe" validate:"required"`
	Difficulty string `json:"difficulty" validate:"required"`
}

// RoadmapResponse lists roadmap steps in order.
type RoadmapResponse struct {
	Roadmap []string `json:"roadmap"`
}

// GenerateAssessmentRequest asks the AI service for practice questions.
type GenerateAssessmentRequest struct {
	Domain            string `json:"domain" validate:"required"`
	Difficulty        string `json:"difficulty" validate:"required"`
	NumberOfQuestions int    `json:"numberOfQuestions" validate:"required,min=1"`
}

// AIQuestion is a generated practice question; unlike Question it has no
// server-assigned ID.
type AIQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

// AIAssessmentResponse wraps generated practice questions.
type AIAssessmentResponse struct {
	Questions []AIQuestion `json:"questions"`
}

// ExplainAnswerRequest asks for an explanation of a correct answer.
type ExplainAnswerRequest struct {
	Question      string `json:"question" validate:"required"`
	CorrectAnswer string `json:"correctAnswer" validate:"required"`
}

// ExplanationResponse carries the generated explanation.
type ExplanationResponse struct {
	Explanation string `json:"explanation"`
}

// EvaluateAnswersRequest scores practice answers against the generated
// questions.
type EvaluateAnswersRequest struct {
	Domain     string       `json:"domain" validate:"required"`
	Difficulty string       `json:"difficulty" validate:"required"`
	Questions  []AIQuestion `json:"questions" validate:"required,min=1"`
	Answers    []int        `json:"answers" validate:"required"`
}

// WrongAnswer details one missed question in an evaluation.
type WrongAnswer struct {
	Question      string `json:"question"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	Explanation   string `json:"explanation"`
}

// EvaluationResponse is the AI feedback for a practice run.
type EvaluationResponse struct {
	Score            int           `json:"score"`
	TotalQuestions   int           `json:"totalQuestions"`
	Feedback         string        `json:"feedback"`
	DetailedFeedback string        `json:"detailedFeedback"`
	WrongAnswers     []WrongAnswer `json:"wrongAnswers"`
	Strengths        []string      `json:"strengths"`
	Improvements     []string      `json:"improvements"`
}
