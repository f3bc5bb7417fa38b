// Package export renders assessment result reports for offline review and
// writes them under the configured export directory.
package export

import (
	"fmt"
	"strconv"

	"github.com/smarteval/smarteval-go/internal/models"
	"github.com/smarteval/smarteval-go/pkg/dateutil"
)

// Report is a renderable results table with a summary header.
type Report struct {
	Title   string
	Summary []string
	Headers []string
	Rows    [][]string
}

// ResultsReport tabulates every submission for one assessment, including
// average score and completion count.
func ResultsReport(assessment models.Assessment, results []models.AssessmentResult) Report {
	total := 0
	for _, r := range results {
		total += r.Score
	}
	average := "n/a"
	if len(results) > 0 {
		average = fmt.Sprintf("%.1f", float64(total)/float64(len(results)))
	}

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			r.StudentID,
			strconv.Itoa(r.Score),
			dateutil.FormatDateTime(r.CompletedAt),
		})
	}

	return Report{
		Title: assessment.Title,
		Summary: []string{
			fmt.Sprintf("Questions: %d", len(assessment.Questions)),
			fmt.Sprintf("Assigned students: %d", len(assessment.AssignedStudents)),
			fmt.Sprintf("Submissions: %d", len(results)),
			fmt.Sprintf("Average score: %s", average),
			fmt.Sprintf("Window: %s - %s", dateutil.FormatDateTime(assessment.StartTime), dateutil.FormatDateTime(assessment.EndTime)),
		},
		Headers: []string{"Student", "Score", "Completed"},
		Rows:    rows,
	}
}

// StudentResultsReport tabulates one student's results across assessments.
func StudentResultsReport(studentID string, results []models.AssessmentResult) Report {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			r.AssessmentID,
			strconv.Itoa(r.Score),
			dateutil.FormatDateTime(r.CompletedAt),
		})
	}

	return Report{
		Title:   "Results for " + studentID,
		Summary: []string{fmt.Sprintf("Submissions: %d", len(results))},
		Headers: []string{"Assessment", "Score", "Completed"},
		Rows:    rows,
	}
}
