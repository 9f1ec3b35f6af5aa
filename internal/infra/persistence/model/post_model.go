package model

import (
	"time"
)

// PostModel mirrors the 'posts' table.
type PostModel struct {
	ID           int64      `gorm:"primaryKey;autoIncrement"`
	AuthorID     int64      `gorm:"not null;index"`
	Author       *UserModel `gorm:"foreignKey:AuthorID"`
	Title        string     `gorm:"type:varchar(255);not null"`
	Content      string     `gorm:"type:text;not null"`
	LikeCount    int        `gorm:"not null;default:0"`
	CommentCount int        `gorm:"not null;default:0"`
	CreatedAt    time.Time  `gorm:"index"`
	UpdatedAt    time.Time

	Images []ImageModel `gorm:"foreignKey:PostID"`
}

// TableName explicitly sets the table name for GORM.
func (PostModel) TableName() string {
	return "posts"
}

// CommentModel mirrors the 'comments' table.
type CommentModel struct {
	ID        int64      `gorm:"primaryKey;autoIncrement"`
	PostID    int64      `gorm:"not null;index"`
	AuthorID  int64      `gorm:"not null;index"`
	Author    *UserModel `gorm:"foreignKey:AuthorID"`
	Comment   string     `gorm:"type:text;not null"`
	LikeCount int        `gorm:"not null;default:0"`
	CreatedAt time.Time  `gorm:"index"`
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CommentModel) TableName() string {
	return "comments"
}

// ImageModel mirrors the 'images' table. Path stores the file name relative
// to the image store root.
type ImageModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	PostID    int64  `gorm:"not null;index"`
	Order     int    `gorm:"column:display_order;not null;default:0"`
	Type      string `gorm:"type:varchar(16);not null"`
	Path      string `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ImageModel) TableName() string {
	return "images"
}
