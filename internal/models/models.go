package models

import "time"

type User struct {
	ID           int64
	Email        string
	Username     string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}

// Principal is the authenticated identity attached to a request.
type Principal struct {
	ID       int64
	Username string
	Email    string
	IsAdmin  bool
}

type Session struct {
	ID        string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

type Post struct {
	ID         int64
	UserID     int64
	Title      string
	Content    string
	Image      string
	IsBlocked  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Author     User
	Tags       []Tag
	TotalVotes int
}

type Tag struct {
	ID   int64
	Name string
}

type AssignedTag struct {
	ID     int64
	PostID int64
	Tag    Tag
}

type Comment struct {
	ID        int64
	PostID    int64
	PostTitle string
	UserID    int64
	ParentID  *int64
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
	Author    User
	Replies   []Comment
}

// IsParent reports whether c is a top-level comment.
func (c Comment) IsParent() bool { return c.ParentID == nil }

type Report struct {
	ID         int64
	Type       ReportType
	Status     ReportStatus
	PostID     int64
	PostTitle  string
	ReportedBy User
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Vote struct {
	ID        int64
	Up        bool
	UserID    int64
	Username  string
	PostID    int64
	PostTitle string
	CreatedAt time.Time
	UpdatedAt time.Time
}
