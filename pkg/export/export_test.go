package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smarteval/smarteval-go/internal/models"
)

func sampleReport() Report {
	return Report{
		Title:   "Midterm",
		Summary: []string{"Submissions: 2"},
		Headers: []string{"Student", "Score", "Completed"},
		Rows: [][]string{
			{"s-1", "8", "Mar 15, 2026 10:00"},
			{"s-2", "6", "Mar 15, 2026 10:12"},
		},
	}
}

func TestResultsReport(t *testing.T) {
	assessment := models.Assessment{
		Title:            "Midterm",
		Questions:        []models.Question{{}, {}, {}},
		AssignedStudents: []string{"s-1", "s-2", "s-3"},
		StartTime:        "2026-03-15T09:00:00",
		EndTime:          "2026-03-15T11:00:00",
	}
	results := []models.AssessmentResult{
		{StudentID: "s-1", Score: 8, CompletedAt: "2026-03-15T10:00:00"},
		{StudentID: "s-2", Score: 6, CompletedAt: "2026-03-15T10:12:00"},
	}

	report := ResultsReport(assessment, results)

	assert.Equal(t, "Midterm", report.Title)
	assert.Contains(t, report.Summary, "Questions: 3")
	assert.Contains(t, report.Summary, "Submissions: 2")
	assert.Contains(t, report.Summary, "Average score: 7.0")
	require.Len(t, report.Rows, 2)
	assert.Equal(t, []string{"s-1", "8", "Mar 15, 2026 10:00"}, report.Rows[0])
}

func TestResultsReportNoSubmissions(t *testing.T) {
	report := ResultsReport(models.Assessment{Title: "Quiz"}, nil)
	assert.Contains(t, report.Summary, "Average score: n/a")
	assert.Empty(t, report.Rows)
}

func TestCSVRender(t *testing.T) {
	data, err := NewCSVExporter().Render(sampleReport())
	require.NoError(t, err)

	want := "Student,Score,Completed\n" +
		"s-1,8,\"Mar 15, 2026 10:00\"\n" +
		"s-2,6,\"Mar 15, 2026 10:12\"\n"
	assert.Equal(t, want, string(data))
}

func TestCSVRenderRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Report{})
	assert.Error(t, err)
}

func TestPDFRender(t *testing.T) {
	data, err := NewPDFExporter().Render(sampleReport())
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestPDFRenderRequiresHeaders(t *testing.T) {
	_, err := NewPDFExporter().Render(Report{})
	assert.Error(t, err)
}

func TestSaverWritesUnderBaseDir(t *testing.T) {
	dir := t.TempDir()
	saver, err := NewSaver(dir)
	require.NoError(t, err)

	path, err := saver.Save("midterm.csv", []byte("a,b\n"))
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(data))
}
