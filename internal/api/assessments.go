package api

import (
	"context"
	"net/http"

	"github.com/smarteval/smarteval-go/internal/models"
)

// CreateAssessment schedules a new assessment.
func (c *Client) CreateAssessment(ctx context.Context, req models.CreateAssessmentRequest) (*models.Assessment, error) {
	var out models.Assessment
	err := c.do(ctx, call{
		method:   http.MethodPost,
		endpoint: "assessments",
		path:     "assessments",
		body:     req,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// StudentAssessments lists assessments assigned to a student.
func (c *Client) StudentAssessments(ctx context.Context, studentID string) ([]models.Assessment, error) {
	var out []models.Assessment
	err := c.do(ctx, call{
		method:   http.MethodGet,
		endpoint: "assessments/student/{studentId}",
		path:     "assessments/student/" + studentID,
	}, &out)
	return out, err
}

// ProfessorAssessments lists assessments created by a professor.
func (c *Client) ProfessorAssessments(ctx context.Context, professorID string) ([]models.Assessment, error) {
	var out []models.Assessment
	err := c.do(ctx, call{
		method:   http.MethodGet,
		endpoint: "assessments/professor/{professorId}",
		path:     "assessments/professor/" + professorID,
	}, &out)
	return out, err
}

// Assessment fetches one assessment with its questions.
func (c *Client) Assessment(ctx context.Context, assessmentID string) (*models.Assessment, error) {
	var out models.Assessment
	err := c.do(ctx, call{
		method:   http.MethodGet,
		endpoint: "assessments/{assessmentId}",
		path:     "assessments/" + assessmentID,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitAssessment records a student's answers. The backend rejects a
// second submission for the same pair.
func (c *Client) SubmitAssessment(ctx context.Context, assessmentID string, req models.SubmitAssessmentRequest) (*models.ApiResponse, error) {
	var out models.ApiResponse
	err := c.do(ctx, call{
		method:   http.MethodPost,
		endpoint: "assessments/{assessmentId}/submit",
		path:     "assessments/" + assessmentID + "/submit",
		body:     req,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AssessmentResults lists all submissions for one assessment.
func (c *Client) AssessmentResults(ctx context.Context, assessmentID string) ([]models.AssessmentResult, error) {
	var out []models.AssessmentResult
	err := c.do(ctx, call{
		method:   http.MethodGet,
		endpoint: "assessments/{assessmentId}/results",
		path:     "assessments/" + assessmentID + "/results",
	}, &out)
	return out, err
}

// StudentResults lists a student's results across assessments.
func (c *Client) StudentResults(ctx context.Context, studentID string) ([]models.AssessmentResult, error) {
	var out []models.AssessmentResult
	err := c.do(ctx, call{
		method:   http.MethodGet,
		endpoint: "assessments/results/student/{studentId}",
		path:     "assessments/results/student/" + studentID,
	}, &out)
	return out, err
}

// CheckSubmission reports whether a student already submitted.
func (c *Client) CheckSubmission(ctx context.Context, assessmentID, studentID string) (*models.SubmissionCheck, error) {
	var out models.SubmissionCheck
	err := c.do(ctx, call{
		method:   http.MethodGet,
		endpoint: "assessments/{assessmentId}/submission/{studentId}",
		path:     "assessments/" + assessmentID + "/submission/" + studentID,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
