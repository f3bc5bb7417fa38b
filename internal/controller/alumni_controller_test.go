package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smarteval/smarteval-go/internal/api"
	"github.com/smarteval/smarteval-go/internal/models"
	"github.com/smarteval/smarteval-go/internal/repository"
)

func alumniController(t *testing.T, handler http.Handler) *AlumniController {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := api.NewClient(api.Options{BaseURL: server.URL + "/api"})
	return NewAlumniController(repository.NewAlumniRepository(client), nil)
}

func TestApproveReloadsPendingList(t *testing.T) {
	approved := false
	c := alumniController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "/alumni/approve/"):
			assert.Equal(t, http.MethodPut, r.Method)
			approved = true
			json.NewEncoder(w).Encode(models.ApiResponse{Success: true})
		case strings.Contains(r.URL.Path, "/alumni/pending-requests/"):
			pending := []models.AlumniRequest{{ID: "req-2", Status: models.AlumniPending}}
			if !approved {
				pending = append(pending, models.AlumniRequest{ID: "req-1", Status: models.AlumniPending})
			}
			json.NewEncoder(w).Encode(pending)
		default:
			http.NotFound(w, r)
		}
	}))

	c.LoadPending(context.Background(), "p-1")
	require.Len(t, c.State().Pending, 2)

	c.Approve(context.Background(), "req-1", "p-1")

	state := c.State()
	require.Len(t, state.Pending, 1)
	assert.Equal(t, "req-2", state.Pending[0].ID)
	assert.Empty(t, state.Error)
}

func TestRejectFailureSurfaces(t *testing.T) {
	c := alumniController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"message": "Request already processed"})
	}))

	c.Reject(context.Background(), "req-1", "p-1")

	assert.Equal(t, "Request already processed", c.State().Error)
}
