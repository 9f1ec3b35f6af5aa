package entity

import "time"

// Post is a piece of content authored by a single user. The comment counter is
// only ever changed through atomic increment/decrement operations paired with
// comment creation and deletion; it is never recomputed by scanning.
type Post struct {
	ID           int64     `json:"id"`
	AuthorID     int64     `json:"authorId"`
	Author       *User     `json:"author,omitempty"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	LikeCount    int       `json:"likeCount"`
	CommentCount int       `json:"commentCount"`
	Images       []*Image  `json:"images"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Comment belongs to exactly one post and one author.
type Comment struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"postId"`
	AuthorID  int64     `json:"authorId"`
	Author    *User     `json:"author,omitempty"`
	Comment   string    `json:"comment"`
	LikeCount int       `json:"likeCount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
