package blog

import (
	"context"
	"fmt"
	"strings"

	"blog/internal/models"
)

const maxTagLen = 20

// ParseTags splits a comma separated tag list. The empty string yields an
// empty, non-nil list which clears every tag of a post.
func ParseTags(raw string) ([]string, error) {
	names := []string{}
	if raw == "" {
		return names, nil
	}
	seen := map[string]bool{}
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			return nil, invalid("tags", "Tag names must not be blank.")
		}
		if countRunes(name) > maxTagLen {
			return nil, invalid("tags", fmt.Sprintf("Tag %q is longer than %d characters.", name, maxTagLen))
		}
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names, nil
}

// TagPlan lists the changes that turn a post's assigned tags into the
// desired set.
type TagPlan struct {
	Add    []string
	Remove []models.AssignedTag
}

// PlanTags computes the set difference between the assigned tags and the
// desired names. Links whose name repeats an earlier link are removed.
func PlanTags(current []models.AssignedTag, desired []string) TagPlan {
	want := make(map[string]bool, len(desired))
	for _, name := range desired {
		want[name] = true
	}

	var plan TagPlan
	have := map[string]bool{}
	for _, at := range current {
		if !want[at.Tag.Name] || have[at.Tag.Name] {
			plan.Remove = append(plan.Remove, at)
			continue
		}
		have[at.Tag.Name] = true
	}
	for _, name := range desired {
		if !have[name] {
			plan.Add = append(plan.Add, name)
		}
	}
	return plan
}

// TagStore is the storage the reconciler works against.
type TagStore interface {
	EnsureTag(ctx context.Context, name string) (models.Tag, error)
	AssignedTags(ctx context.Context, postID int64) ([]models.AssignedTag, error)
	AssignTag(ctx context.Context, postID, tagID int64) error
	UnassignTag(ctx context.Context, assignedID int64) error
	ClearTags(ctx context.Context, postID int64) error
}

// ReconcileTags makes the assigned tags of postID exactly match desired.
// Tags are shared between posts: missing ones are created, and unlinking
// never deletes a tag row.
func ReconcileTags(ctx context.Context, ts TagStore, postID int64, desired []string) error {
	if len(desired) == 0 {
		return ts.ClearTags(ctx, postID)
	}

	ids := make(map[string]int64, len(desired))
	for _, name := range desired {
		t, err := ts.EnsureTag(ctx, name)
		if err != nil {
			return err
		}
		ids[name] = t.ID
	}

	current, err := ts.AssignedTags(ctx, postID)
	if err != nil {
		return err
	}
	plan := PlanTags(current, desired)
	for _, at := range plan.Remove {
		if err := ts.UnassignTag(ctx, at.ID); err != nil {
			return fmt.Errorf("unassign %q: %w", at.Tag.Name, err)
		}
	}
	for _, name := range plan.Add {
		if err := ts.AssignTag(ctx, postID, ids[name]); err != nil {
			return fmt.Errorf("assign %q: %w", name, err)
		}
	}
	return nil
}
