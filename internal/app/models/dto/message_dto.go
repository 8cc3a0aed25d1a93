package dto

import (
	"time"

	"github.com/yigit/clubhub/internal/app/models"
)

// PostMessageRequest is a new message board post
type PostMessageRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000" example:"Meeting moved to 6pm"`
}

// MessageResponse is the public view of a message
type MessageResponse struct {
	ID             int64     `json:"id"`
	ClubID         int64     `json:"clubId"`
	SenderID       int64     `json:"senderId"`
	SenderUsername string    `json:"senderUsername,omitempty"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
	IsRead         bool      `json:"isRead"`
}

// NewMessageResponseFromModel maps a message model
func NewMessageResponseFromModel(m *models.Message) MessageResponse {
	return MessageResponse{
		ID:             m.ID,
		ClubID:         m.ClubID,
		SenderID:       m.SenderID,
		SenderUsername: m.SenderUsername,
		Content:        m.Content,
		CreatedAt:      m.CreatedAt,
		IsRead:         m.IsRead,
	}
}

// NewMessageResponses maps a list of message models
func NewMessageResponses(messages []*models.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, NewMessageResponseFromModel(m))
	}
	return out
}

// MessageListResponse is one page of a club's message board, newest first
type MessageListResponse struct {
	Messages   []MessageResponse `json:"messages"`
	Pagination PaginationInfo    `json:"pagination"`
}
