package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/smarteval/smarteval-go/internal/models"
)

// SendMessage posts one chat message.
func (c *Client) SendMessage(ctx context.Context, req models.SendMessageRequest) (*models.ApiResponse, error) {
	var out models.ApiResponse
	err := c.do(ctx, call{
		method:   http.MethodPost,
		endpoint: "chat/send",
		path:     "chat/send",
		body:     req,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Messages returns the thread between two users, oldest first.
func (c *Client) Messages(ctx context.Context, userID1, userID2 string) ([]models.ChatMessage, error) {
	var out []models.ChatMessage
	err := c.do(ctx, call{
		method:   http.MethodGet,
		endpoint: "chat/messages/{userId1}/{userId2}",
		path:     "chat/messages/" + userID1 + "/" + userID2,
	}, &out)
	return out, err
}

// Conversations lists a user's conversation summaries.
func (c *Client) Conversations(ctx context.Context, userID string) ([]models.ChatConversation, error) {
	var out []models.ChatConversation
	err := c.do(ctx, call{
		method:   http.MethodGet,
		endpoint: "chat/conversations/{userId}",
		path:     "chat/conversations/" + userID,
	}, &out)
	return out, err
}

// SearchUsers finds chat peers by name or email.
func (c *Client) SearchUsers(ctx context.Context, query string) ([]models.User, error) {
	var out []models.User
	err := c.do(ctx, call{
		method:   http.MethodGet,
		endpoint: "users/search",
		path:     "users/search",
		query:    url.Values{"q": []string{query}},
	}, &out)
	return out, err
}
