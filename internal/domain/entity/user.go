// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"
)

// User is the core identity of the system. A user authors posts and comments,
// follows other users and participates in chats.
type User struct {
	ID            int64     `json:"id"`
	Nickname      string    `json:"nickname"` // Unique display name, at most 20 characters.
	Email         string    `json:"email"`    // Unique login identifier.
	PasswordHash  string    `json:"-"`        // bcrypt hash; never serialized.
	Role          Role      `json:"role"`
	FollowerCount int       `json:"followerCount"` // Confirmed followers; maintained by atomic counter updates.
	FolloweeCount int       `json:"followeeCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// FollowEdge is a directed follow relation between two users.
// At most one edge exists per ordered (follower, followee) pair.
type FollowEdge struct {
	ID          int64     `json:"id"`
	FollowerID  int64     `json:"followerId"`
	FolloweeID  int64     `json:"followeeId"`
	Follower    *User     `json:"follower,omitempty"`
	Followee    *User     `json:"followee,omitempty"`
	IsConfirmed bool      `json:"isConfirmed"` // False until the followee confirms the request.
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
