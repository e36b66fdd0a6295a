package blog

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"strings"
	"testing"

	"blog/internal/models"
)

func TestParseTags(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []string
		wantErr bool
	}{
		{"empty", "", []string{}, false},
		{"single", "news", []string{"news"}, false},
		{"trimmed", " news , sports ", []string{"news", "sports"}, false},
		{"duplicates", "news,sports,news", []string{"news", "sports"}, false},
		{"blank segment", "news,,sports", nil, true},
		{"too long", strings.Repeat("x", maxTagLen+1), nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTags(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func assigned(id int64, name string) models.AssignedTag {
	return models.AssignedTag{ID: id, Tag: models.Tag{ID: id * 10, Name: name}}
}

func TestPlanTags(t *testing.T) {
	current := []models.AssignedTag{assigned(1, "news"), assigned(2, "sports"), assigned(3, "news")}
	plan := PlanTags(current, []string{"sports", "tech"})

	if !reflect.DeepEqual(plan.Add, []string{"tech"}) {
		t.Errorf("add = %v", plan.Add)
	}
	var removed []int64
	for _, at := range plan.Remove {
		removed = append(removed, at.ID)
	}
	if !reflect.DeepEqual(removed, []int64{1, 3}) {
		t.Errorf("remove = %v", removed)
	}

	if plan := PlanTags(current[:2], []string{"news", "sports"}); len(plan.Add)+len(plan.Remove) != 0 {
		t.Errorf("expected empty plan, got %+v", plan)
	}
}

// memTags is an in-memory TagStore.
type memTags struct {
	tags   map[string]int64
	links  []models.AssignedTag
	nextID int64
}

func newMemTags() *memTags { return &memTags{tags: map[string]int64{}} }

func (m *memTags) id() int64 { m.nextID++; return m.nextID }

func (m *memTags) EnsureTag(_ context.Context, name string) (models.Tag, error) {
	if id, ok := m.tags[name]; ok {
		return models.Tag{ID: id, Name: name}, nil
	}
	id := m.id()
	m.tags[name] = id
	return models.Tag{ID: id, Name: name}, nil
}

func (m *memTags) AssignedTags(_ context.Context, postID int64) ([]models.AssignedTag, error) {
	var out []models.AssignedTag
	for _, at := range m.links {
		if at.PostID == postID {
			out = append(out, at)
		}
	}
	return out, nil
}

func (m *memTags) AssignTag(_ context.Context, postID, tagID int64) error {
	for name, id := range m.tags {
		if id == tagID {
			m.links = append(m.links, models.AssignedTag{ID: m.id(), PostID: postID, Tag: models.Tag{ID: id, Name: name}})
			return nil
		}
	}
	return errors.New("no such tag")
}

func (m *memTags) UnassignTag(_ context.Context, assignedID int64) error {
	for i, at := range m.links {
		if at.ID == assignedID {
			m.links = append(m.links[:i], m.links[i+1:]...)
			return nil
		}
	}
	return errors.New("no such link")
}

func (m *memTags) ClearTags(_ context.Context, postID int64) error {
	kept := m.links[:0]
	for _, at := range m.links {
		if at.PostID != postID {
			kept = append(kept, at)
		}
	}
	m.links = kept
	return nil
}

func (m *memTags) names(postID int64) []string {
	var out []string
	for _, at := range m.links {
		if at.PostID == postID {
			out = append(out, at.Tag.Name)
		}
	}
	sort.Strings(out)
	return out
}

func TestReconcileTags(t *testing.T) {
	ctx := context.Background()
	m := newMemTags()

	if err := ReconcileTags(ctx, m, 1, []string{"news", "sports"}); err != nil {
		t.Fatal(err)
	}
	if got := m.names(1); !reflect.DeepEqual(got, []string{"news", "sports"}) {
		t.Fatalf("tags = %v", got)
	}

	// same set again changes nothing
	before := append([]models.AssignedTag(nil), m.links...)
	if err := ReconcileTags(ctx, m, 1, []string{"sports", "news"}); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(before, m.links) {
		t.Fatalf("links changed: %v -> %v", before, m.links)
	}

	if err := ReconcileTags(ctx, m, 1, []string{"sports"}); err != nil {
		t.Fatal(err)
	}
	if got := m.names(1); !reflect.DeepEqual(got, []string{"sports"}) {
		t.Fatalf("tags = %v", got)
	}
	if _, ok := m.tags["news"]; !ok {
		t.Fatal("unlinked tag row must survive")
	}

	if err := ReconcileTags(ctx, m, 1, []string{}); err != nil {
		t.Fatal(err)
	}
	if got := m.names(1); len(got) != 0 {
		t.Fatalf("expected no tags, got %v", got)
	}
}

func TestUpdatePostTags(t *testing.T) {
	svc, st := setup(t)
	ctx := context.Background()
	alice := principal(t, st, "alice", false)

	p := newPost(t, svc, alice, "Test Title", "news,sports")
	if got := tagNames(p); !reflect.DeepEqual(got, []string{"news", "sports"}) {
		t.Fatalf("tags = %v", got)
	}

	// omitted tags are left alone
	p, err := svc.UpdatePost(ctx, alice, p.ID, PostInput{Title: str("Renamed")})
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Tags) != 2 || p.Title != "Renamed" {
		t.Fatalf("unexpected post %+v", p)
	}

	p, err = svc.UpdatePost(ctx, alice, p.ID, PostInput{Tags: str("sports")})
	if err != nil {
		t.Fatal(err)
	}
	if got := tagNames(p); !reflect.DeepEqual(got, []string{"sports"}) {
		t.Fatalf("tags = %v", got)
	}

	p, err = svc.UpdatePost(ctx, alice, p.ID, PostInput{Tags: str("")})
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Tags) != 0 {
		t.Fatalf("expected cleared tags, got %v", tagNames(p))
	}

	all, err := st.ListTags(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("tag rows = %d, want 2", len(all))
	}
}
