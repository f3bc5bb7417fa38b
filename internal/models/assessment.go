package models

// AssessmentStatus is derived server-side from the scheduling window.
type AssessmentStatus string

const (
	AssessmentScheduled AssessmentStatus = "SCHEDULED"
	AssessmentOngoing   AssessmentStatus = "ONGOING"
	AssessmentCompleted AssessmentStatus = "COMPLETED"
)

// Assessment mirrors the backend assessment schema.
type Assessment struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	Questions        []Question       `json:"questions"`
	StartTime        string           `json:"startTime"`
	EndTime          string           `json:"endTime"`
	CreatedBy        string           `json:"createdBy"`
	AssignedStudents []string         `json:"assignedStudents"`
	Status           AssessmentStatus `json:"status"`
	CreatedAt        string           `json:"createdAt"`
}

// Question is a four-option multiple-choice item. CorrectAnswer indexes
// into Options.
type Question struct {
	ID            string   `json:"id"`
	QuestionText  string   `json:"questionText"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

// AssessmentResult records one student's submission. The backend enforces
// one result per (assessment, student) pair.
type AssessmentResult struct {
	ID           string `json:"id"`
	AssessmentID string `json:"assessmentId"`
	StudentID    string `json:"studentId"`
	Answers      []int  `json:"answers"`
	Score        int    `json:"score"`
	CompletedAt  string `json:"completedAt"`
}

// CreateAssessmentRequest is the professor-authored creation payload.
type CreateAssessmentRequest struct {
	Title            string     `json:"title" validate:"required"`
	Description      string     `json:"description"`
	Questions        []Question `json:"questions" validate:"required,min=1"`
	StartTime        string     `json:"startTime" validate:"required"`
	EndTime          string     `json:"endTime" validate:"required"`
	AssignedStudents []string   `json:"assignedStudents" validate:"required,min=1"`
	CreatedBy        string     `json:"createdBy" validate:"required"`
}

// SubmitAssessmentRequest carries answers parallel to the assessment's
// question order.
type SubmitAssessmentRequest struct {
	StudentID string `json:"studentId" validate:"required"`
	Answers   []int  `json:"answers" validate:"required"`
}

// SubmissionCheck reports whether a student already submitted.
type SubmissionCheck struct {
	Submitted bool `json:"submitted"`
}
