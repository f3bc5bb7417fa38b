package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smarteval/smarteval-go/internal/api"
	"github.com/smarteval/smarteval-go/internal/models"
	"github.com/smarteval/smarteval-go/internal/repository"
	"github.com/smarteval/smarteval-go/pkg/dateutil"
)

func assessmentController(t *testing.T, handler http.Handler) *AssessmentController {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := api.NewClient(api.Options{BaseURL: server.URL + "/api"})
	return NewAssessmentController(repository.NewAssessmentRepository(client, nil), nil)
}

func TestLoadForStudent(t *testing.T) {
	c := assessmentController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/assessments/student/s-1", r.URL.Path)
		json.NewEncoder(w).Encode([]models.Assessment{{ID: "a-1", Title: "Midterm"}})
	}))

	c.LoadForStudent(context.Background(), "s-1")

	state := c.State()
	require.Len(t, state.Assessments, 1)
	assert.Equal(t, "Midterm", state.Assessments[0].Title)
	assert.False(t, state.IsLoading)
	assert.Empty(t, state.Error)
}

func TestCreateBlockedByScheduleRules(t *testing.T) {
	called := false
	c := assessmentController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	// Starts too soon; the rule fires before any request goes out.
	now := time.Now()
	c.Create(context.Background(), models.CreateAssessmentRequest{
		Title:            "Quiz",
		StartTime:        now.Add(time.Minute).Format(dateutil.WireFormat),
		EndTime:          now.Add(time.Hour).Format(dateutil.WireFormat),
		AssignedStudents: []string{"s-1"},
		Questions: []models.Question{{
			QuestionText:  "Q?",
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: 0,
		}},
		CreatedBy: "p-1",
	})

	state := c.State()
	assert.Equal(t, "Start time must be at least 5 minutes in the future", state.Error)
	assert.Nil(t, state.Created)
	assert.False(t, called)
}

func TestSelectChecksExistingSubmission(t *testing.T) {
	c := assessmentController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/submission/s-1"):
			json.NewEncoder(w).Encode(models.SubmissionCheck{Submitted: true})
		default:
			json.NewEncoder(w).Encode(models.Assessment{ID: "a-1", Title: "Midterm"})
		}
	}))

	c.Select(context.Background(), "a-1", "s-1")

	state := c.State()
	require.NotNil(t, state.Selected)
	assert.True(t, state.AlreadySubmitted)
}

func TestSubmitBlockedAfterPriorSubmission(t *testing.T) {
	c := assessmentController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/submission/s-1"):
			json.NewEncoder(w).Encode(models.SubmissionCheck{Submitted: true})
		default:
			json.NewEncoder(w).Encode(models.Assessment{ID: "a-1"})
		}
	}))

	c.Select(context.Background(), "a-1", "s-1")
	c.Submit(context.Background(), "a-1", models.SubmitAssessmentRequest{
		StudentID: "s-1",
		Answers:   []int{0},
	})

	state := c.State()
	assert.Equal(t, "You have already submitted this assessment", state.Error)
	assert.False(t, state.Submitted)
}

func TestSubmitSuccess(t *testing.T) {
	c := assessmentController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.ApiResponse{Success: true, Message: "submitted"})
	}))

	c.Submit(context.Background(), "a-1", models.SubmitAssessmentRequest{
		StudentID: "s-1",
		Answers:   []int{0, 1, 2},
	})

	state := c.State()
	assert.True(t, state.Submitted)
	assert.True(t, state.AlreadySubmitted)
	assert.Empty(t, state.Error)
}

func TestLoadResultsErrorUsesFallback(t *testing.T) {
	c := assessmentController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	c.LoadResults(context.Background(), "a-1")

	state := c.State()
	assert.Equal(t, "Failed to load results", state.Error)
	assert.Empty(t, state.Results)
}
