package store

import (
	"context"
	"fmt"
	"time"

	"blog/internal/models"
)

const userColumns = `id, email, username, password_hash, is_admin, created_at`

func scanUser(row scanner) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt)
	return u, err
}

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	u.CreatedAt = s.now()
	err := s.q.QueryRowContext(ctx,
		`INSERT INTO users (email, username, password_hash, is_admin, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		u.Email, u.Username, u.PasswordHash, u.IsAdmin, u.CreatedAt,
	).Scan(&u.ID)
	if err != nil {
		return fmt.Errorf("create user: %w", translate(err))
	}
	return nil
}

func (s *Store) UserByID(ctx context.Context, id int64) (models.User, error) {
	u, err := scanUser(s.q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return models.User{}, fmt.Errorf("user %d: %w", id, translate(err))
	}
	return u, nil
}

// UserByLogin finds a user by email or username.
func (s *Store) UserByLogin(ctx context.Context, login string) (models.User, error) {
	u, err := scanUser(s.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1 OR username = $1`, login))
	if err != nil {
		return models.User{}, fmt.Errorf("user %q: %w", login, translate(err))
	}
	return u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.q.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("list users scan: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *Store) SetAdmin(ctx context.Context, username string, admin bool) error {
	res, err := s.q.ExecContext(ctx, `UPDATE users SET is_admin = $1 WHERE username = $2`, admin, username)
	if err != nil {
		return fmt.Errorf("set admin %q: %w", username, err)
	}
	if err := affected(res); err != nil {
		return fmt.Errorf("set admin %q: %w", username, err)
	}
	return nil
}

// ----------------------------
// Sessions
// ----------------------------

func (s *Store) CreateSession(ctx context.Context, sess models.Session) error {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, expires_at, created_at) VALUES ($1, $2, $3, $4)`,
		sess.ID, sess.UserID, sess.ExpiresAt.UTC(), s.now(),
	)
	if err != nil {
		return fmt.Errorf("create session: %w", translate(err))
	}
	return nil
}

func (s *Store) SessionByID(ctx context.Context, id string) (models.Session, error) {
	var sess models.Session
	err := s.q.QueryRowContext(ctx,
		`SELECT id, user_id, expires_at, created_at FROM sessions WHERE id = $1`, id,
	).Scan(&sess.ID, &sess.UserID, &sess.ExpiresAt, &sess.CreatedAt)
	if err != nil {
		return models.Session{}, fmt.Errorf("session: %w", translate(err))
	}
	return sess, nil
}

func (s *Store) DeleteSession(ctx context.Context, id string) error {
	_, err := s.q.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	return err
}

func (s *Store) DeleteUserSessions(ctx context.Context, userID int64) error {
	_, err := s.q.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	return err
}

// DeleteExpiredSessions removes sessions that expired before now.
func (s *Store) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.q.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < $1`, now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
