package store

import (
	"context"
	"fmt"

	"blog/internal/models"
)

const voteSelect = `
SELECT v.id, v.up, v.user_id, u.username, v.post_id, p.title, v.created_at, v.updated_at
  FROM votes v
  JOIN users u ON u.id = v.user_id
  JOIN posts p ON p.id = v.post_id
`

func scanVote(row scanner) (models.Vote, error) {
	var v models.Vote
	err := row.Scan(&v.ID, &v.Up, &v.UserID, &v.Username, &v.PostID, &v.PostTitle, &v.CreatedAt, &v.UpdatedAt)
	return v, err
}

// VoteFor returns the vote of userID on postID, or ErrNotFound.
func (s *Store) VoteFor(ctx context.Context, userID, postID int64) (models.Vote, error) {
	v, err := scanVote(s.q.QueryRowContext(ctx, voteSelect+` WHERE v.user_id = $1 AND v.post_id = $2`, userID, postID))
	if err != nil {
		return models.Vote{}, fmt.Errorf("vote user=%d post=%d: %w", userID, postID, translate(err))
	}
	return v, nil
}

// InsertVote creates the vote record. A racing duplicate fails with
// ErrDuplicate.
func (s *Store) InsertVote(ctx context.Context, v *models.Vote) error {
	now := s.now()
	err := s.q.QueryRowContext(ctx,
		`INSERT INTO votes (up, user_id, post_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		v.Up, v.UserID, v.PostID, now, now,
	).Scan(&v.ID)
	if err != nil {
		return fmt.Errorf("insert vote: %w", translate(err))
	}
	v.CreatedAt, v.UpdatedAt = now, now
	return nil
}

func (s *Store) SetVoteDirection(ctx context.Context, id int64, up bool) error {
	res, err := s.q.ExecContext(ctx, `UPDATE votes SET up = $1, updated_at = $2 WHERE id = $3`, up, s.now(), id)
	if err != nil {
		return fmt.Errorf("set vote %d: %w", id, err)
	}
	return affected(res)
}

func (s *Store) DeleteVote(ctx context.Context, id int64) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM votes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete vote %d: %w", id, err)
	}
	return affected(res)
}

// ListVotes lists the votes on postID, or every vote when it is 0.
func (s *Store) ListVotes(ctx context.Context, postID int64) ([]models.Vote, error) {
	query := voteSelect
	var args []any
	if postID != 0 {
		query += ` WHERE v.post_id = $1`
		args = append(args, postID)
	}
	query += ` ORDER BY v.id`

	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list votes: %w", err)
	}
	defer rows.Close()

	var out []models.Vote
	for rows.Next() {
		v, err := scanVote(rows)
		if err != nil {
			return nil, fmt.Errorf("list votes scan: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// VoteCounts returns the number of up and down votes on a post.
func (s *Store) VoteCounts(ctx context.Context, postID int64) (up, down int, err error) {
	err = s.q.QueryRowContext(ctx, `
SELECT
  COUNT(*) FILTER (WHERE up),
  COUNT(*) FILTER (WHERE NOT up)
FROM votes
WHERE post_id = $1
`, postID).Scan(&up, &down)
	if err != nil {
		return 0, 0, fmt.Errorf("vote counts of post %d: %w", postID, err)
	}
	return up, down, nil
}
