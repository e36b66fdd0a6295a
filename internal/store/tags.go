package store

import (
	"context"
	"errors"
	"fmt"

	"blog/internal/models"
)

// EnsureTag returns the tag called name, creating it when missing.
func (s *Store) EnsureTag(ctx context.Context, name string) (models.Tag, error) {
	t := models.Tag{Name: name}
	err := s.q.QueryRowContext(ctx, `
		INSERT INTO tags (name)
		VALUES ($1)
		ON CONFLICT (name) DO NOTHING
		RETURNING id
	`, name).Scan(&t.ID)
	if err == nil {
		return t, nil
	}
	if err = translate(err); !errors.Is(err, ErrNotFound) {
		return models.Tag{}, fmt.Errorf("insert tag %q: %w", name, err)
	}

	// already existed: nothing was returned
	if err := s.q.QueryRowContext(ctx, `SELECT id FROM tags WHERE name = $1`, name).Scan(&t.ID); err != nil {
		return models.Tag{}, fmt.Errorf("tag %q: %w", name, translate(err))
	}
	return t, nil
}

func (s *Store) ListTags(ctx context.Context) ([]models.Tag, error) {
	rows, err := s.q.QueryContext(ctx, `SELECT id, name FROM tags ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("list tags scan: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// AssignedTags lists the tag links of a post in assignment order.
func (s *Store) AssignedTags(ctx context.Context, postID int64) ([]models.AssignedTag, error) {
	rows, err := s.q.QueryContext(ctx, `
SELECT at.id, at.post_id, t.id, t.name
  FROM assigned_tags at
  JOIN tags t ON t.id = at.tag_id
 WHERE at.post_id = $1
 ORDER BY at.id
`, postID)
	if err != nil {
		return nil, fmt.Errorf("assigned tags of post %d: %w", postID, err)
	}
	defer rows.Close()

	var out []models.AssignedTag
	for rows.Next() {
		var at models.AssignedTag
		if err := rows.Scan(&at.ID, &at.PostID, &at.Tag.ID, &at.Tag.Name); err != nil {
			return nil, fmt.Errorf("assigned tags scan: %w", err)
		}
		out = append(out, at)
	}
	return out, rows.Err()
}

// AssignTag links a post to a tag. An existing link is left as is.
func (s *Store) AssignTag(ctx context.Context, postID, tagID int64) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO assigned_tags (post_id, tag_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, postID, tagID)
	if err != nil {
		return fmt.Errorf("assign tag %d to post %d: %w", tagID, postID, translate(err))
	}
	return nil
}

// UnassignTag deletes one link. The tag row itself is kept.
func (s *Store) UnassignTag(ctx context.Context, assignedID int64) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM assigned_tags WHERE id = $1`, assignedID)
	if err != nil {
		return fmt.Errorf("unassign tag %d: %w", assignedID, err)
	}
	return affected(res)
}

func (s *Store) ClearTags(ctx context.Context, postID int64) error {
	if _, err := s.q.ExecContext(ctx, `DELETE FROM assigned_tags WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("clear tags of post %d: %w", postID, err)
	}
	return nil
}
