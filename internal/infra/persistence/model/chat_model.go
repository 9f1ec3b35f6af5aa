package model

import (
	"time"
)

// ChatModel mirrors the 'chats' table. Membership lives in the
// chat_members join table.
type ChatModel struct {
	ID        int64        `gorm:"primaryKey;autoIncrement"`
	Users     []*UserModel `gorm:"many2many:chat_members;joinForeignKey:ChatID;joinReferences:UserID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ChatModel) TableName() string {
	return "chats"
}

// ChatMessageModel mirrors the 'chat_messages' table.
type ChatMessageModel struct {
	ID        int64      `gorm:"primaryKey;autoIncrement"`
	ChatID    int64      `gorm:"not null;index"`
	AuthorID  int64      `gorm:"not null"`
	Author    *UserModel `gorm:"foreignKey:AuthorID"`
	Message   string     `gorm:"type:text;not null"`
	CreatedAt time.Time  `gorm:"index"`
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ChatMessageModel) TableName() string {
	return "chat_messages"
}
