package controller

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/smarteval/smarteval-go/internal/models"
	"github.com/smarteval/smarteval-go/internal/repository"
)

// ChatState backs the chat screen: conversation list plus the open thread.
type ChatState struct {
	Conversations []models.ChatConversation
	Messages      []models.ChatMessage
	SearchResults []models.User
	PeerID        string
	IsLoading     bool
	Error         string
}

// ChatController reduces chat repository results into screen state.
type ChatController struct {
	repo   *repository.ChatRepository
	logger *zap.Logger

	mu    sync.Mutex
	state ChatState

	*notifier
}

// NewChatController constructs a ChatController.
func NewChatController(repo *repository.ChatRepository, logger *zap.Logger) *ChatController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatController{repo: repo, logger: logger, notifier: newNotifier()}
}

// State returns a snapshot of the current state.
func (c *ChatController) State() ChatState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LoadConversations lists the user's conversation summaries.
func (c *ChatController) LoadConversations(ctx context.Context, userID string) {
	c.begin()
	for res := range c.repo.Conversations(ctx, userID) {
		switch {
		case res.IsSuccess():
			c.update(func(s *ChatState) { s.Conversations = res.Value() })
		case res.IsError():
			c.fail(res.Message())
		}
	}
}

// OpenThread loads the message history with a peer, oldest first.
func (c *ChatController) OpenThread(ctx context.Context, userID, peerID string) {
	c.begin()
	for res := range c.repo.Messages(ctx, userID, peerID) {
		switch {
		case res.IsSuccess():
			messages := res.Value()
			sort.SliceStable(messages, func(i, j int) bool {
				return messages[i].Timestamp < messages[j].Timestamp
			})
			c.update(func(s *ChatState) {
				s.PeerID = peerID
				s.Messages = messages
			})
		case res.IsError():
			c.fail(res.Message())
		}
	}
}

// Send posts a message to the open thread and reloads it so the server
// echo, with its assigned ID and timestamp, replaces the local draft.
func (c *ChatController) Send(ctx context.Context, userID, peerID, message string) {
	c.begin()
	req := models.SendMessageRequest{SenderID: userID, ReceiverID: peerID, Message: message}
	for res := range c.repo.Send(ctx, req) {
		switch {
		case res.IsSuccess():
			c.OpenThread(ctx, userID, peerID)
		case res.IsError():
			c.fail(res.Message())
		}
	}
}

// Search finds chat peers by name or email.
func (c *ChatController) Search(ctx context.Context, query string) {
	c.begin()
	for res := range c.repo.SearchUsers(ctx, query) {
		switch {
		case res.IsSuccess():
			c.update(func(s *ChatState) { s.SearchResults = res.Value() })
		case res.IsError():
			c.fail(res.Message())
		}
	}
}

// ClearError resets the error field.
func (c *ChatController) ClearError() {
	c.update(func(s *ChatState) { s.Error = "" })
}

func (c *ChatController) begin() {
	c.mu.Lock()
	c.state.IsLoading = true
	c.state.Error = ""
	c.mu.Unlock()
	c.notify()
}

func (c *ChatController) update(apply func(*ChatState)) {
	c.mu.Lock()
	apply(&c.state)
	c.state.IsLoading = false
	c.mu.Unlock()
	c.notify()
}

func (c *ChatController) fail(message string) {
	c.mu.Lock()
	c.state.IsLoading = false
	c.state.Error = message
	c.mu.Unlock()
	c.notify()
}
