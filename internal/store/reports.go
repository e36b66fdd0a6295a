package store

import (
	"context"
	"fmt"

	"blog/internal/models"
)

const reportSelect = `
SELECT r.id, r.type, r.status, r.post_id, p.title, r.reported_by, u.username, u.email,
       r.created_at, r.updated_at
  FROM reports r
  JOIN posts p ON p.id = r.post_id
  JOIN users u ON u.id = r.reported_by
`

func scanReport(row scanner) (models.Report, error) {
	var r models.Report
	err := row.Scan(&r.ID, &r.Type, &r.Status, &r.PostID, &r.PostTitle,
		&r.ReportedBy.ID, &r.ReportedBy.Username, &r.ReportedBy.Email,
		&r.CreatedAt, &r.UpdatedAt)
	return r, err
}

// CreateReport inserts a report. A second report for the same
// (post, reporter) pair fails with ErrDuplicate.
func (s *Store) CreateReport(ctx context.Context, r *models.Report) error {
	now := s.now()
	err := s.q.QueryRowContext(ctx,
		`INSERT INTO reports (type, status, post_id, reported_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		r.Type, r.Status, r.PostID, r.ReportedBy.ID, now, now,
	).Scan(&r.ID)
	if err != nil {
		return fmt.Errorf("create report: %w", translate(err))
	}
	r.CreatedAt, r.UpdatedAt = now, now
	return nil
}

func (s *Store) ReportByID(ctx context.Context, id int64) (models.Report, error) {
	r, err := scanReport(s.q.QueryRowContext(ctx, reportSelect+` WHERE r.id = $1`, id))
	if err != nil {
		return models.Report{}, fmt.Errorf("report %d: %w", id, translate(err))
	}
	return r, nil
}

// ListReports lists reports filed by reporterID, or all when it is 0.
func (s *Store) ListReports(ctx context.Context, reporterID int64) ([]models.Report, error) {
	query := reportSelect
	var args []any
	if reporterID != 0 {
		query += ` WHERE r.reported_by = $1`
		args = append(args, reporterID)
	}
	query += ` ORDER BY r.created_at DESC, r.id DESC`

	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var out []models.Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("list reports scan: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) UpdateReport(ctx context.Context, r *models.Report) error {
	r.UpdatedAt = s.now()
	res, err := s.q.ExecContext(ctx,
		`UPDATE reports SET type = $1, status = $2, updated_at = $3 WHERE id = $4`,
		r.Type, r.Status, r.UpdatedAt, r.ID)
	if err != nil {
		return fmt.Errorf("update report %d: %w", r.ID, err)
	}
	if err := affected(res); err != nil {
		return fmt.Errorf("update report %d: %w", r.ID, err)
	}
	return nil
}

func (s *Store) DeleteReport(ctx context.Context, id int64) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete report %d: %w", id, err)
	}
	if err := affected(res); err != nil {
		return fmt.Errorf("delete report %d: %w", id, err)
	}
	return nil
}
