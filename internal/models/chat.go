package models

// ChatMessage is append-only from the client's perspective, ordered by
// timestamp ascending.
type ChatMessage struct {
	ID         string `json:"id"`
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	Message    string `json:"message"`
	Timestamp  string `json:"timestamp"`
}

// ChatConversation is a server-computed summary of one peer thread.
type ChatConversation struct {
	ID                  string `json:"id"`
	Username            string `json:"username"`
	Email               string `json:"email"`
	Role                string `json:"role"`
	LastMessage         string `json:"lastMessage,omitempty"`
	LastMessageTime     string `json:"lastMessageTime,omitempty"`
	UnreadCount         int    `json:"unreadCount"`
	IsLastMessageFromMe bool   `json:"isLastMessageFromMe"`
}

// SendMessageRequest posts one message to a peer.
type SendMessageRequest struct {
	SenderID   string `json:"senderId" validate:"required"`
	ReceiverID string `json:"receiverId" validate:"required"`
	Message    string `json:"message" validate:"required"`
}
