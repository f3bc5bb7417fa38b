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

func taskController(t *testing.T, handler http.Handler) *TaskController {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := api.NewClient(api.Options{BaseURL: server.URL + "/api"})
	return NewTaskController(repository.NewTaskRepository(client, nil), nil)
}

func TestLoadRecomputesOverdue(t *testing.T) {
	past := time.Now().Add(-time.Hour).Format(dateutil.WireFormat)
	future := time.Now().Add(time.Hour).Format(dateutil.WireFormat)

	c := taskController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// A stale server snapshot: none flagged overdue.
		json.NewEncoder(w).Encode([]models.Task{
			{ID: "t-1", Status: models.TaskPending, EndDateTime: past},
			{ID: "t-2", Status: models.TaskPending, EndDateTime: future},
			{ID: "t-3", Status: models.TaskCompleted, EndDateTime: past},
		})
	}))

	c.Load(context.Background(), "s-1")

	state := c.State()
	require.Len(t, state.Tasks, 3)
	assert.True(t, state.Tasks[0].IsOverdue, "pending task past its deadline")
	assert.False(t, state.Tasks[1].IsOverdue, "pending task before its deadline")
	assert.False(t, state.Tasks[2].IsOverdue, "completed tasks are never overdue")
}

func TestCompleteReloadsList(t *testing.T) {
	listCalls := 0
	c := taskController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/complete"):
			json.NewEncoder(w).Encode(models.Task{ID: "t-1", Status: models.TaskCompleted})
		case strings.Contains(r.URL.Path, "/student/"):
			listCalls++
			json.NewEncoder(w).Encode([]models.Task{{ID: "t-1", Status: models.TaskCompleted}})
		default:
			http.NotFound(w, r)
		}
	}))

	c.Complete(context.Background(), "t-1", "s-1")

	assert.Equal(t, 1, listCalls, "completion must refresh the list")
	state := c.State()
	require.Len(t, state.Tasks, 1)
	assert.Equal(t, models.TaskCompleted, state.Tasks[0].Status)
}

func TestCreateValidationBlocksNetwork(t *testing.T) {
	called := false
	c := taskController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	c.Create(context.Background(), "s-1", models.CreateTaskRequest{
		Title:         "Revise",
		StartDateTime: dateutil.CurrentDateTime(),
		EndDateTime:   dateutil.CurrentDateTime(),
		Priority:      "URGENT", // not a known priority
	})

	state := c.State()
	assert.Equal(t, "priority has an unsupported value", state.Error)
	assert.False(t, called)
}

func TestLoadStats(t *testing.T) {
	c := taskController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.TaskStats{Pending: 2, Ongoing: 1, Completed: 4, Overdue: 1})
	}))

	c.LoadStats(context.Background(), "s-1")

	state := c.State()
	require.NotNil(t, state.Stats)
	assert.Equal(t, 4, state.Stats.Completed)
}

func TestLoadFailureKeepsPreviousTasks(t *testing.T) {
	fail := false
	c := taskController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode([]models.Task{{ID: "t-1"}})
	}))

	c.Load(context.Background(), "s-1")
	require.Len(t, c.State().Tasks, 1)

	fail = true
	c.Load(context.Background(), "s-1")

	state := c.State()
	assert.Equal(t, "Failed to load tasks", state.Error)
	assert.Len(t, state.Tasks, 1, "stale data stays visible alongside the error")
}
