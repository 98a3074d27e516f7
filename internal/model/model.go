package model

import (
	"time"
)

type User struct {
	ID       string   `json:"_id"`
	Username string   `json:"username"`
	Role     UserRole `json:"role"`
}

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// Session is the per-browser identity record: the API bearer token plus the
// user it was issued to. It lives in the session cache, keyed by the cookie.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.User.Role == RoleAdmin
}

// Vote is a per-user preference on a movie. The client only ever sends
// VoteUp, VoteDown or VoteNone.
type Vote int

const (
	VoteDown Vote = -1
	VoteNone Vote = 0
	VoteUp   Vote = 1
)

type Movie struct {
	ID          string
	Title       string
	Description string
	Likes       int
	Dislikes    int
	Author      string
	UserVote    Vote
	Comments    []Comment
}

type Comment struct {
	ID     string
	Text   string
	Author string
}

// Profile is the identity record behind GET /api/user/profile.
type Profile struct {
	Name      string
	Email     string
	CreatedAt time.Time
}
