package blog

import (
	"context"
	"errors"
	"fmt"
	"log"

	"blog/internal/models"
	"blog/internal/store"
)

const msgAlreadyReported = "Already reported by the user."

type ReportInput struct {
	PostID int64
	Type   models.ReportType
}

func validateReportType(t models.ReportType) error {
	if !t.Valid() {
		return invalid("type", fmt.Sprintf("%q is not a valid choice.", string(t)))
	}
	return nil
}

// FileReport records a report by who. Each user may report a post once.
func (s *Service) FileReport(ctx context.Context, who models.Principal, in ReportInput) (models.Report, error) {
	if in.Type == "" {
		in.Type = models.ReportSpam
	}
	if err := validateReportType(in.Type); err != nil {
		return models.Report{}, err
	}
	if in.PostID == 0 {
		return models.Report{}, invalid("post", "This field is required.")
	}

	r := models.Report{
		Type:       in.Type,
		Status:     models.StatusPending,
		PostID:     in.PostID,
		ReportedBy: models.User{ID: who.ID},
	}
	err := s.store.CreateReport(ctx, &r)
	switch {
	case errors.Is(err, store.ErrDuplicate):
		return models.Report{}, &ConflictError{Message: msgAlreadyReported}
	case errors.Is(err, store.ErrReference):
		return models.Report{}, invalid("post", fmt.Sprintf(`Invalid pk "%d" - object does not exist.`, in.PostID))
	case err != nil:
		return models.Report{}, err
	}
	log.Printf("report filed uid=%d post=%d type=%s id=%d", who.ID, r.PostID, r.Type, r.ID)
	return s.store.ReportByID(ctx, r.ID)
}

// visibleReport loads a report that who may see: admins see all, everyone
// else only their own.
func visibleReport(ctx context.Context, tx *store.Store, who models.Principal, id int64) (models.Report, error) {
	r, err := tx.ReportByID(ctx, id)
	if err != nil {
		return models.Report{}, notFound("report", id, err)
	}
	if !who.IsAdmin && r.ReportedBy.ID != who.ID {
		return models.Report{}, fmt.Errorf("%w: report %d", ErrNotFound, id)
	}
	return r, nil
}

func (s *Service) Report(ctx context.Context, who models.Principal, id int64) (models.Report, error) {
	return visibleReport(ctx, s.store, who, id)
}

func (s *Service) ListReports(ctx context.Context, who models.Principal) ([]models.Report, error) {
	if who.IsAdmin {
		return s.store.ListReports(ctx, 0)
	}
	return s.store.ListReports(ctx, who.ID)
}

// UpdateReportType lets the reporter reclassify a report still pending.
func (s *Service) UpdateReportType(ctx context.Context, who models.Principal, id int64, t models.ReportType) (models.Report, error) {
	err := s.store.WithTx(ctx, func(tx *store.Store) error {
		r, err := visibleReport(ctx, tx, who, id)
		if err != nil {
			return err
		}
		if r.ReportedBy.ID != who.ID {
			return forbidden("only the reporter can change this report")
		}
		if r.Status != models.StatusPending {
			return forbidden("report was already reviewed")
		}
		if err := validateReportType(t); err != nil {
			return err
		}
		r.Type = t
		return tx.UpdateReport(ctx, &r)
	})
	if err != nil {
		return models.Report{}, err
	}
	return s.store.ReportByID(ctx, id)
}

// DeleteReport removes a report. Reporters may withdraw pending reports;
// admins may delete any.
func (s *Service) DeleteReport(ctx context.Context, who models.Principal, id int64) error {
	return s.store.WithTx(ctx, func(tx *store.Store) error {
		r, err := visibleReport(ctx, tx, who, id)
		if err != nil {
			return err
		}
		if !who.IsAdmin && r.Status != models.StatusPending {
			return forbidden("report was already reviewed")
		}
		return tx.DeleteReport(ctx, id)
	})
}

// ReviewReport moves a report to status. Approving blocks the reported
// post in the same transaction. Empty status keeps the current one.
func (s *Service) ReviewReport(ctx context.Context, who models.Principal, id int64, status string) (models.ReportStatus, error) {
	if !who.IsAdmin {
		return "", forbidden("only administrators can review reports")
	}

	var result models.ReportStatus
	err := s.store.WithTx(ctx, func(tx *store.Store) error {
		r, err := tx.ReportByID(ctx, id)
		if err != nil {
			return notFound("report", id, err)
		}
		next := r.Status
		if status != "" {
			next = models.ReportStatus(status)
		}
		if !next.Valid() {
			return invalid("status", "Invalid Report status. Not a valid choice.")
		}

		r.Status = next
		if err := tx.UpdateReport(ctx, &r); err != nil {
			return err
		}
		if next == models.StatusApproved {
			if err := tx.SetPostBlocked(ctx, r.PostID, true); err != nil {
				return err
			}
		}
		result = next
		return nil
	})
	if err != nil {
		return "", err
	}
	log.Printf("review report admin=%d id=%d status=%s", who.ID, id, result)
	return result, nil
}
