package blog

import (
	"context"
	"testing"

	"blog/internal/db"
	"blog/internal/models"
	"blog/internal/store"
)

func setup(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	d, err := db.Open(db.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { d.Close() })
	if err := db.Migrate(d, db.DriverSQLite); err != nil {
		t.Fatal(err)
	}
	st := store.New(d)
	return New(st), st
}

func principal(t *testing.T, st *store.Store, name string, admin bool) models.Principal {
	t.Helper()
	u := models.User{Email: name + "@example.com", Username: name, PasswordHash: "x", IsAdmin: admin}
	if err := st.CreateUser(context.Background(), &u); err != nil {
		t.Fatal(err)
	}
	return models.Principal{ID: u.ID, Username: u.Username, Email: u.Email, IsAdmin: admin}
}

func str(s string) *string { return &s }

func newPost(t *testing.T, svc *Service, who models.Principal, title, tags string) models.Post {
	t.Helper()
	in := PostInput{Title: str(title), Content: str("Test Content")}
	if tags != "" {
		in.Tags = str(tags)
	}
	p, err := svc.CreatePost(context.Background(), who, in)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func tagNames(p models.Post) []string {
	names := make([]string, 0, len(p.Tags))
	for _, tg := range p.Tags {
		names = append(names, tg.Name)
	}
	return names
}
