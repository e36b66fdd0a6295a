package store

import (
	"context"
	"database/sql"
	"fmt"

	"blog/internal/models"
)

const commentSelect = `
SELECT c.id, c.post_id, p.title, c.user_id, c.parent_id, c.content, c.created_at, c.updated_at,
       u.username, u.email
  FROM comments c
  JOIN users u ON u.id = c.user_id
  JOIN posts p ON p.id = c.post_id
`

func scanComment(row scanner) (models.Comment, error) {
	var (
		c      models.Comment
		parent sql.NullInt64
	)
	err := row.Scan(&c.ID, &c.PostID, &c.PostTitle, &c.UserID, &parent, &c.Content, &c.CreatedAt, &c.UpdatedAt,
		&c.Author.Username, &c.Author.Email)
	if parent.Valid {
		id := parent.Int64
		c.ParentID = &id
	}
	c.Author.ID = c.UserID
	return c, err
}

func (s *Store) CreateComment(ctx context.Context, c *models.Comment) error {
	now := s.now()
	err := s.q.QueryRowContext(ctx,
		`INSERT INTO comments (post_id, user_id, parent_id, content, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		c.PostID, c.UserID, nullableID(c.ParentID), c.Content, now, now,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("create comment: %w", translate(err))
	}
	c.CreatedAt, c.UpdatedAt = now, now
	return nil
}

func (s *Store) CommentByID(ctx context.Context, id int64) (models.Comment, error) {
	c, err := scanComment(s.q.QueryRowContext(ctx, commentSelect+` WHERE c.id = $1`, id))
	if err != nil {
		return models.Comment{}, fmt.Errorf("comment %d: %w", id, translate(err))
	}
	return c, nil
}

// CommentFilter narrows ListComments. PostID 0 means every post.
type CommentFilter struct {
	PostID   int64
	TopLevel bool
}

func (s *Store) ListComments(ctx context.Context, f CommentFilter) ([]models.Comment, error) {
	query := commentSelect + ` WHERE 1=1`
	var args []any
	if f.PostID != 0 {
		args = append(args, f.PostID)
		query += fmt.Sprintf(` AND c.post_id = $%d`, len(args))
	}
	if f.TopLevel {
		query += ` AND c.parent_id IS NULL`
	}
	query += ` ORDER BY c.created_at ASC, c.id ASC`
	return s.queryComments(ctx, query, args...)
}

// CommentChildren returns the direct replies of a comment. It does not
// descend further.
func (s *Store) CommentChildren(ctx context.Context, parentID int64) ([]models.Comment, error) {
	return s.queryComments(ctx, commentSelect+` WHERE c.parent_id = $1 ORDER BY c.created_at ASC, c.id ASC`, parentID)
}

func (s *Store) queryComments(ctx context.Context, query string, args ...any) ([]models.Comment, error) {
	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var out []models.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("list comments scan: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) UpdateCommentContent(ctx context.Context, c *models.Comment) error {
	c.UpdatedAt = s.now()
	res, err := s.q.ExecContext(ctx,
		`UPDATE comments SET content = $1, updated_at = $2 WHERE id = $3`, c.Content, c.UpdatedAt, c.ID)
	if err != nil {
		return fmt.Errorf("update comment %d: %w", c.ID, err)
	}
	if err := affected(res); err != nil {
		return fmt.Errorf("update comment %d: %w", c.ID, err)
	}
	return nil
}

// DeleteComment removes a comment and, through the foreign key, its replies.
func (s *Store) DeleteComment(ctx context.Context, id int64) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comment %d: %w", id, err)
	}
	if err := affected(res); err != nil {
		return fmt.Errorf("delete comment %d: %w", id, err)
	}
	return nil
}
