// Package validation holds the pure, synchronous pre-submission checks.
// Every rule is independent and the first failure blocks the action with
// its own inline message; nothing is ever partially submitted.
package validation

import (
	"strings"
	"time"

	"github.com/smarteval/smarteval-go/internal/models"
	"github.com/smarteval/smarteval-go/pkg/dateutil"

	appErrors "github.com/smarteval/smarteval-go/pkg/errors"
)

const (
	minStartLead = 5 * time.Minute
	minDuration  = 10 * time.Minute
)

// CheckAssessmentCreation validates a creation payload against the
// scheduling rules at the current wall clock.
func CheckAssessmentCreation(req models.CreateAssessmentRequest) error {
	return checkAssessmentCreationAt(req, time.Now())
}

func checkAssessmentCreationAt(req models.CreateAssessmentRequest, now time.Time) error {
	if strings.TrimSpace(req.Title) == "" {
		return appErrors.Validation("Please enter a title")
	}

	if req.StartTime == "" || req.EndTime == "" {
		return appErrors.Validation("Please select start and end times")
	}
	start, err := dateutil.Parse(req.StartTime)
	if err != nil {
		return appErrors.Validation("Start time is not a valid date")
	}
	end, err := dateutil.Parse(req.EndTime)
	if err != nil {
		return appErrors.Validation("End time is not a valid date")
	}

	if start.Before(now.Add(minStartLead)) {
		return appErrors.Validation("Start time must be at least 5 minutes in the future")
	}
	if !end.After(start) {
		return appErrors.Validation("End time must be after start time")
	}
	if end.Sub(start) < minDuration {
		return appErrors.Validation("Assessment duration must be at least 10 minutes")
	}

	if len(req.AssignedStudents) == 0 {
		return appErrors.Validation("Please assign at least one student")
	}
	if len(req.Questions) == 0 {
		return appErrors.Validation("Please add at least one question")
	}

	for _, q := range req.Questions {
		if err := checkQuestion(q); err != nil {
			return err
		}
	}
	return nil
}

func checkQuestion(q models.Question) error {
	if strings.TrimSpace(q.QuestionText) == "" {
		return appErrors.Validation("Every question needs text")
	}
	if len(q.Options) != 4 {
		return appErrors.Validation("Every question needs exactly four options")
	}
	for _, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return appErrors.Validation("Every option must be filled in")
		}
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
		return appErrors.Validation("Every question needs a correct answer selected")
	}
	return nil
}
