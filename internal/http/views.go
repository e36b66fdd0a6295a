package httpx

import (
	"time"

	"blog/internal/models"
)

// JSON representations returned to clients.

type userRef struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

type postRef struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type tagView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type userView struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	IsAdmin    bool      `json:"is_admin"`
	DateJoined time.Time `json:"date_joined"`
}

func newUserView(u models.User) userView {
	return userView{ID: u.ID, Username: u.Username, Email: u.Email, IsAdmin: u.IsAdmin, DateJoined: u.CreatedAt}
}

type postView struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Image        string    `json:"image"`
	Content      string    `json:"content"`
	PostedBy     userRef   `json:"posted_by"`
	AssignedTags []tagView `json:"assigned_tags"`
	TotalVotes   int       `json:"total_votes"`
	IsBlocked    bool      `json:"is_blocked"`
	Created      time.Time `json:"created"`
	Modified     time.Time `json:"modified"`
}

func newPostView(p models.Post) postView {
	tags := make([]tagView, 0, len(p.Tags))
	for _, t := range p.Tags {
		tags = append(tags, tagView{ID: t.ID, Name: t.Name})
	}
	return postView{
		ID:           p.ID,
		Title:        p.Title,
		Image:        p.Image,
		Content:      p.Content,
		PostedBy:     userRef{ID: p.Author.ID, Username: p.Author.Username, Email: p.Author.Email},
		AssignedTags: tags,
		TotalVotes:   p.TotalVotes,
		IsBlocked:    p.IsBlocked,
		Created:      p.CreatedAt,
		Modified:     p.UpdatedAt,
	}
}

func newPostViews(ps []models.Post) []postView {
	out := make([]postView, 0, len(ps))
	for _, p := range ps {
		out = append(out, newPostView(p))
	}
	return out
}

type replyView struct {
	Parent   *int64    `json:"parent"`
	ID       int64     `json:"id"`
	Content  string    `json:"content"`
	Owner    userRef   `json:"owner"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`
}

type commentView struct {
	Parent   *int64      `json:"parent"`
	ID       int64       `json:"id"`
	Post     postRef     `json:"post"`
	Content  string      `json:"content"`
	Created  time.Time   `json:"created"`
	Modified time.Time   `json:"modified"`
	Owner    userRef     `json:"owner"`
	Reply    []replyView `json:"reply"` // null for replies
}

func newCommentView(c models.Comment) commentView {
	v := commentView{
		Parent:   c.ParentID,
		ID:       c.ID,
		Post:     postRef{ID: c.PostID, Title: c.PostTitle},
		Content:  c.Content,
		Created:  c.CreatedAt,
		Modified: c.UpdatedAt,
		Owner:    userRef{ID: c.Author.ID, Username: c.Author.Username, Email: c.Author.Email},
	}
	if c.IsParent() {
		v.Reply = make([]replyView, 0, len(c.Replies))
		for _, r := range c.Replies {
			v.Reply = append(v.Reply, replyView{
				Parent:   r.ParentID,
				ID:       r.ID,
				Content:  r.Content,
				Owner:    userRef{ID: r.Author.ID, Username: r.Author.Username, Email: r.Author.Email},
				Created:  r.CreatedAt,
				Modified: r.UpdatedAt,
			})
		}
	}
	return v
}

func newCommentViews(cs []models.Comment) []commentView {
	out := make([]commentView, 0, len(cs))
	for _, c := range cs {
		out = append(out, newCommentView(c))
	}
	return out
}

type reportView struct {
	ID         int64     `json:"id"`
	Type       string    `json:"type"`
	Post       postRef   `json:"post"`
	ReportedBy userRef   `json:"reported_by"`
	Status     string    `json:"status"`
	Created    time.Time `json:"created"`
	Modified   time.Time `json:"modified"`
}

func newReportView(r models.Report) reportView {
	return reportView{
		ID:         r.ID,
		Type:       r.Type.Label(),
		Post:       postRef{ID: r.PostID, Title: r.PostTitle},
		ReportedBy: userRef{ID: r.ReportedBy.ID, Username: r.ReportedBy.Username, Email: r.ReportedBy.Email},
		Status:     string(r.Status),
		Created:    r.CreatedAt,
		Modified:   r.UpdatedAt,
	}
}

type voteView struct {
	ID       int64     `json:"id"`
	User     userRef   `json:"user"`
	Post     postRef   `json:"post"`
	Upvote   bool      `json:"upvote"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`
}

func newVoteView(v models.Vote) voteView {
	return voteView{
		ID:       v.ID,
		User:     userRef{ID: v.UserID, Username: v.Username},
		Post:     postRef{ID: v.PostID, Title: v.PostTitle},
		Upvote:   v.Up,
		Created:  v.CreatedAt,
		Modified: v.UpdatedAt,
	}
}
