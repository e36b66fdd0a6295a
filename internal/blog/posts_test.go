package blog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"blog/internal/store"
)

func TestCreatePostValidation(t *testing.T) {
	svc, st := setup(t)
	alice := principal(t, st, "alice", false)

	tests := []struct {
		name   string
		in     PostInput
		fields []string
	}{
		{"missing fields", PostInput{}, []string{"title", "content"}},
		{"blank title", PostInput{Title: str("  "), Content: str("x")}, []string{"title"}},
		{"long title", PostInput{Title: str(strings.Repeat("a", maxTitleLen+1)), Content: str("x")}, []string{"title"}},
		{"blank content", PostInput{Title: str("t"), Content: str("")}, []string{"content"}},
		{"blank tag", PostInput{Title: str("t"), Content: str("x"), Tags: str("a,,b")}, []string{"tags"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePost(context.Background(), alice, tt.in)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			for _, f := range tt.fields {
				if _, ok := verr.Fields[f]; !ok {
					t.Errorf("missing %q in %v", f, verr.Fields)
				}
			}
		})
	}
}

func TestUpdatePostOwnerOnly(t *testing.T) {
	svc, st := setup(t)
	ctx := context.Background()
	alice := principal(t, st, "alice", false)
	bob := principal(t, st, "bob", false)
	p := newPost(t, svc, alice, "Test Title", "")

	if _, err := svc.UpdatePost(ctx, bob, p.ID, PostInput{Title: str("mine")}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.UpdatePost(ctx, alice, 404, PostInput{Title: str("x")}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.UpdatePost(ctx, alice, p.ID, PostInput{Title: str("")}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	got, err := svc.Post(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "Test Title" {
		t.Fatalf("failed update leaked: %q", got.Title)
	}
}

func TestListPostsFilters(t *testing.T) {
	svc, st := setup(t)
	ctx := context.Background()
	alice := principal(t, st, "alice", false)
	bob := principal(t, st, "bob", false)

	golang := newPost(t, svc, alice, "Learning Go", "go,programming")
	newPost(t, svc, bob, "Cooking", "food")
	if _, err := svc.Vote(ctx, bob, golang.ID, Upvote); err != nil {
		t.Fatal(err)
	}

	byTag, err := svc.ListPosts(ctx, store.PostFilter{Tag: "food"})
	if err != nil || len(byTag) != 1 || byTag[0].Title != "Cooking" {
		t.Fatalf("by tag = %v, %v", byTag, err)
	}
	bySearch, err := svc.ListPosts(ctx, store.PostFilter{Search: "PROGRAM"})
	if err != nil || len(bySearch) != 1 || bySearch[0].ID != golang.ID {
		t.Fatalf("by search = %v, %v", bySearch, err)
	}
	popular, err := svc.ListPosts(ctx, store.PostFilter{Popular: true})
	if err != nil || len(popular) != 2 || popular[0].ID != golang.ID {
		t.Fatalf("popular = %v, %v", popular, err)
	}
}
