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

func chatController(t *testing.T, handler http.Handler) *ChatController {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := api.NewClient(api.Options{BaseURL: server.URL + "/api"})
	return NewChatController(repository.NewChatRepository(client, nil), nil)
}

func TestOpenThreadSortsOldestFirst(t *testing.T) {
	c := chatController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.ChatMessage{
			{ID: "m-2", Message: "second", Timestamp: "2026-03-15T10:05:00"},
			{ID: "m-1", Message: "first", Timestamp: "2026-03-15T10:00:00"},
			{ID: "m-3", Message: "third", Timestamp: "2026-03-15T10:10:00"},
		})
	}))

	c.OpenThread(context.Background(), "u-1", "u-2")

	state := c.State()
	assert.Equal(t, "u-2", state.PeerID)
	require.Len(t, state.Messages, 3)
	assert.Equal(t, "first", state.Messages[0].Message)
	assert.Equal(t, "third", state.Messages[2].Message)
}

func TestSendReloadsThread(t *testing.T) {
	var sent models.SendMessageRequest
	c := chatController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/chat/send"):
			require.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
			json.NewEncoder(w).Encode(models.ApiResponse{Success: true})
		default:
			json.NewEncoder(w).Encode([]models.ChatMessage{
				{ID: "m-1", SenderID: "u-1", Message: "hello", Timestamp: "2026-03-15T10:00:00"},
			})
		}
	}))

	c.Send(context.Background(), "u-1", "u-2", "hello")

	assert.Equal(t, "u-1", sent.SenderID)
	assert.Equal(t, "u-2", sent.ReceiverID)

	state := c.State()
	require.Len(t, state.Messages, 1)
	assert.Equal(t, "hello", state.Messages[0].Message)
}

func TestSendEmptyMessageBlocked(t *testing.T) {
	called := false
	c := chatController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	c.Send(context.Background(), "u-1", "u-2", "")

	assert.Equal(t, "message is required", c.State().Error)
	assert.False(t, called)
}

func TestSearch(t *testing.T) {
	c := chatController(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "amara", r.URL.Query().Get("q"))
		json.NewEncoder(w).Encode([]models.User{{ID: "u-2", Username: "amara"}})
	}))

	c.Search(context.Background(), "amara")

	state := c.State()
	require.Len(t, state.SearchResults, 1)
	assert.Equal(t, "amara", state.SearchResults[0].Username)
}
