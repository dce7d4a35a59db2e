package entity

import "time"

type ChatMessage struct {
	ID         string
	SenderID   string
	ReceiverID string
	ListingID  string
	Message    string
	IsRead     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
