package store

import (
	"context"
	"fmt"
	"strings"

	"blog/internal/models"
)

const postSelect = `
SELECT
  p.id, p.user_id, p.title, p.content, p.image, p.is_blocked, p.created_at, p.updated_at,
  u.username, u.email,
  COALESCE((SELECT SUM(CASE WHEN v.up THEN 1 ELSE -1 END) FROM votes v WHERE v.post_id = p.id), 0) AS total_votes
FROM posts p
JOIN users u ON u.id = p.user_id
`

// PostFilter narrows ListPosts. Zero value lists every post newest-first.
type PostFilter struct {
	Search  string // free text over author, title, content and tag names
	Tag     string // exact tag name
	Popular bool   // order by total votes first
}

func scanPost(row scanner) (models.Post, error) {
	var p models.Post
	err := row.Scan(
		&p.ID, &p.UserID, &p.Title, &p.Content, &p.Image, &p.IsBlocked, &p.CreatedAt, &p.UpdatedAt,
		&p.Author.Username, &p.Author.Email, &p.TotalVotes,
	)
	p.Author.ID = p.UserID
	return p, err
}

func (s *Store) CreatePost(ctx context.Context, p *models.Post) error {
	now := s.now()
	err := s.q.QueryRowContext(ctx,
		`INSERT INTO posts (user_id, title, content, image, is_blocked, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		p.UserID, p.Title, p.Content, p.Image, false, now, now,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("create post: %w", translate(err))
	}
	p.CreatedAt, p.UpdatedAt = now, now
	return nil
}

// PostByID returns the post with its author, assigned tags and vote total.
func (s *Store) PostByID(ctx context.Context, id int64) (models.Post, error) {
	p, err := scanPost(s.q.QueryRowContext(ctx, postSelect+`WHERE p.id = $1`, id))
	if err != nil {
		return models.Post{}, fmt.Errorf("post %d: %w", id, translate(err))
	}
	if err := s.loadTags(ctx, &p); err != nil {
		return models.Post{}, err
	}
	return p, nil
}

func (s *Store) ListPosts(ctx context.Context, f PostFilter) ([]models.Post, error) {
	var (
		args []any
		sb   strings.Builder
	)
	nextArg := func() string { return fmt.Sprintf("$%d", len(args)+1) }

	sb.WriteString(postSelect)
	sb.WriteString("WHERE 1=1\n")
	if q := strings.TrimSpace(f.Search); q != "" {
		n := nextArg()
		sb.WriteString(`
  AND (LOWER(p.title) LIKE ` + n + `
    OR LOWER(p.content) LIKE ` + n + `
    OR LOWER(u.username) LIKE ` + n + `
    OR EXISTS (
        SELECT 1
          FROM assigned_tags at
          JOIN tags t ON t.id = at.tag_id
         WHERE at.post_id = p.id
           AND LOWER(t.name) LIKE ` + n + `
    ))
`)
		args = append(args, "%"+strings.ToLower(q)+"%")
	}
	if f.Tag != "" {
		sb.WriteString(`
  AND EXISTS (
        SELECT 1
          FROM assigned_tags at
          JOIN tags t ON t.id = at.tag_id
         WHERE at.post_id = p.id
           AND t.name = ` + nextArg() + `
    )
`)
		args = append(args, f.Tag)
	}
	if f.Popular {
		sb.WriteString("ORDER BY total_votes DESC, p.created_at DESC, p.id DESC")
	} else {
		sb.WriteString("ORDER BY p.created_at DESC, p.id DESC")
	}

	rows, err := s.q.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	var posts []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("list posts scan: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// tags are loaded after the cursor is closed: SQLite runs on one connection
	for i := range posts {
		if err := s.loadTags(ctx, &posts[i]); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

// UpdatePost writes the mutable columns. Owner and creation time never change.
func (s *Store) UpdatePost(ctx context.Context, p *models.Post) error {
	p.UpdatedAt = s.now()
	res, err := s.q.ExecContext(ctx,
		`UPDATE posts SET title = $1, content = $2, image = $3, updated_at = $4 WHERE id = $5`,
		p.Title, p.Content, p.Image, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update post %d: %w", p.ID, translate(err))
	}
	if err := affected(res); err != nil {
		return fmt.Errorf("update post %d: %w", p.ID, err)
	}
	return nil
}

func (s *Store) SetPostBlocked(ctx context.Context, id int64, blocked bool) error {
	res, err := s.q.ExecContext(ctx,
		`UPDATE posts SET is_blocked = $1, updated_at = $2 WHERE id = $3`, blocked, s.now(), id)
	if err != nil {
		return fmt.Errorf("block post %d: %w", id, err)
	}
	if err := affected(res); err != nil {
		return fmt.Errorf("block post %d: %w", id, err)
	}
	return nil
}

// DeletePost removes the post; tags links, comments, reports and votes cascade.
func (s *Store) DeletePost(ctx context.Context, id int64) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post %d: %w", id, err)
	}
	if err := affected(res); err != nil {
		return fmt.Errorf("delete post %d: %w", id, err)
	}
	return nil
}

func (s *Store) loadTags(ctx context.Context, p *models.Post) error {
	assigned, err := s.AssignedTags(ctx, p.ID)
	if err != nil {
		return err
	}
	p.Tags = make([]models.Tag, 0, len(assigned))
	for _, at := range assigned {
		p.Tags = append(p.Tags, at.Tag)
	}
	return nil
}
