package models

import "time"

// Message is a post on a club's message board
type Message struct {
	ID        int64     `json:"id" db:"id"`
	SenderID  int64     `json:"senderId" db:"sender_id"`
	ClubID    int64     `json:"clubId" db:"club_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	IsRead    bool      `json:"isRead" db:"is_read"`

	SenderUsername string `json:"senderUsername,omitempty" db:"sender_username"`
}
