package entity

import "time"

// Chat is a room grouping a set of member users for real-time messaging.
type Chat struct {
	ID        int64     `json:"id"`
	Users     []*User   `json:"users,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ChatMessage is a persisted message inside a chat room.
type ChatMessage struct {
	ID        int64     `json:"id"`
	ChatID    int64     `json:"chatId"`
	AuthorID  int64     `json:"authorId"`
	Author    *User     `json:"author,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
