package repository

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/smarteval/smarteval-go/internal/api"
	"github.com/smarteval/smarteval-go/internal/models"
)

// ChatRepository wraps the chat endpoints.
type ChatRepository struct {
	client   *api.Client
	validate *validator.Validate
}

// NewChatRepository constructs a ChatRepository.
func NewChatRepository(client *api.Client, validate *validator.Validate) *ChatRepository {
	if validate == nil {
		validate = validator.New()
	}
	return &ChatRepository{client: client, validate: validate}
}

// Send posts one message.
func (r *ChatRepository) Send(ctx context.Context, req models.SendMessageRequest) <-chan Resource[*models.ApiResponse] {
	return emit(ctx, "Failed to send message", func(ctx context.Context) (*models.ApiResponse, error) {
		if err := r.validate.Struct(req); err != nil {
			return nil, validationError(err)
		}
		return r.client.SendMessage(ctx, req)
	})
}

// Messages returns the thread between two users, oldest first.
func (r *ChatRepository) Messages(ctx context.Context, userID1, userID2 string) <-chan Resource[[]models.ChatMessage] {
	return emit(ctx, "Failed to load messages", func(ctx context.Context) ([]models.ChatMessage, error) {
		return r.client.Messages(ctx, userID1, userID2)
	})
}

// Conversations lists a user's conversation summaries.
func (r *ChatRepository) Conversations(ctx context.Context, userID string) <-chan Resource[[]models.ChatConversation] {
	return emit(ctx, "Failed to load conversations", func(ctx context.Context) ([]models.ChatConversation, error) {
		return r.client.Conversations(ctx, userID)
	})
}

// SearchUsers finds chat peers by name or email.
func (r *ChatRepository) SearchUsers(ctx context.Context, query string) <-chan Resource[[]models.User] {
	return emit(ctx, "Failed to search users", func(ctx context.Context) ([]models.User, error) {
		return r.client.SearchUsers(ctx, query)
	})
}
