// Package model contains the GORM table mappings for the postgres schema.
package model

import (
	"time"
)

// UserModel mirrors the 'users' table.
type UserModel struct {
	ID            int64  `gorm:"primaryKey;autoIncrement"`
	Nickname      string `gorm:"type:varchar(20);unique;not null"`
	Email         string `gorm:"type:varchar(255);unique;not null"`
	PasswordHash  string `gorm:"type:varchar(255);not null"`
	Role          string `gorm:"type:varchar(16);not null;default:user"`
	FollowerCount int    `gorm:"not null;default:0"`
	FolloweeCount int    `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Posts    []PostModel    `gorm:"foreignKey:AuthorID"`
	Comments []CommentModel `gorm:"foreignKey:AuthorID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// FollowEdgeModel mirrors the 'follow_edges' table. The composite unique
// index enforces at most one edge per ordered (follower, followee) pair.
type FollowEdgeModel struct {
	ID          int64      `gorm:"primaryKey;autoIncrement"`
	FollowerID  int64      `gorm:"not null;uniqueIndex:idx_follow_pair"`
	FolloweeID  int64      `gorm:"not null;uniqueIndex:idx_follow_pair"`
	Follower    *UserModel `gorm:"foreignKey:FollowerID"`
	Followee    *UserModel `gorm:"foreignKey:FolloweeID"`
	IsConfirmed bool       `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (FollowEdgeModel) TableName() string {
	return "follow_edges"
}
