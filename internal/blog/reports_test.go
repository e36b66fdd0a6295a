package blog

import (
	"context"
	"errors"
	"testing"

	"blog/internal/models"
)

func TestFileReport(t *testing.T) {
	svc, st := setup(t)
	ctx := context.Background()
	alice := principal(t, st, "alice", false)
	bob := principal(t, st, "bob", false)
	p := newPost(t, svc, alice, "Test Title", "")

	r, err := svc.FileReport(ctx, bob, ReportInput{PostID: p.ID})
	if err != nil {
		t.Fatal(err)
	}
	if r.Type != models.ReportSpam || r.Status != models.StatusPending {
		t.Fatalf("unexpected report %+v", r)
	}
	if r.ReportedBy.Username != "bob" || r.PostTitle != "Test Title" {
		t.Fatalf("unexpected report %+v", r)
	}

	_, err = svc.FileReport(ctx, bob, ReportInput{PostID: p.ID, Type: models.ReportSensitive})
	var conflict *ConflictError
	if !errors.As(err, &conflict) || conflict.Message != "Already reported by the user." {
		t.Fatalf("expected conflict, got %v", err)
	}

	// another reporter is fine
	if _, err := svc.FileReport(ctx, alice, ReportInput{PostID: p.ID}); err != nil {
		t.Fatal(err)
	}
}

func TestFileReportValidation(t *testing.T) {
	svc, st := setup(t)
	ctx := context.Background()
	alice := principal(t, st, "alice", false)
	p := newPost(t, svc, alice, "Test Title", "")

	tests := []struct {
		name  string
		in    ReportInput
		field string
	}{
		{"bad type", ReportInput{PostID: p.ID, Type: "rude"}, "type"},
		{"no post", ReportInput{}, "post"},
		{"missing post", ReportInput{PostID: 404}, "post"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.FileReport(ctx, alice, tt.in)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if _, ok := verr.Fields[tt.field]; !ok {
				t.Fatalf("expected %q in %v", tt.field, verr.Fields)
			}
		})
	}
}

func TestReviewReport(t *testing.T) {
	svc, st := setup(t)
	ctx := context.Background()
	alice := principal(t, st, "alice", false)
	bob := principal(t, st, "bob", false)
	admin := principal(t, st, "root", true)
	p := newPost(t, svc, alice, "Test Title", "")
	r, err := svc.FileReport(ctx, bob, ReportInput{PostID: p.ID, Type: models.ReportHateSpeech})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.ReviewReport(ctx, bob, r.ID, "approved"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.ReviewReport(ctx, bob, 999, "approved"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("non-admin must be rejected before lookup, got %v", err)
	}

	_, err = svc.ReviewReport(ctx, admin, r.ID, "banana")
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Fields["status"] != "Invalid Report status. Not a valid choice." {
		t.Fatalf("expected status validation error, got %v", err)
	}
	got, err := svc.Report(ctx, admin, r.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.StatusPending {
		t.Fatalf("status changed to %s", got.Status)
	}

	status, err := svc.ReviewReport(ctx, admin, r.ID, "")
	if err != nil || status != models.StatusPending {
		t.Fatalf("empty status: %s, %v", status, err)
	}

	status, err = svc.ReviewReport(ctx, admin, r.ID, "rejected")
	if err != nil || status != models.StatusRejected {
		t.Fatalf("reject: %s, %v", status, err)
	}
	post, err := svc.Post(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if post.IsBlocked {
		t.Fatal("rejected report must not block the post")
	}

	if _, err := svc.ReviewReport(ctx, admin, r.ID, "approved"); err != nil {
		t.Fatal(err)
	}
	post, err = svc.Post(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !post.IsBlocked {
		t.Fatal("approved report must block the post")
	}

	if _, err := svc.ReviewReport(ctx, admin, 999, "approved"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReportOwnership(t *testing.T) {
	svc, st := setup(t)
	ctx := context.Background()
	alice := principal(t, st, "alice", false)
	bob := principal(t, st, "bob", false)
	admin := principal(t, st, "root", true)
	p := newPost(t, svc, alice, "Test Title", "")
	r, err := svc.FileReport(ctx, bob, ReportInput{PostID: p.ID})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Report(ctx, alice, r.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("other users must not see the report, got %v", err)
	}
	mine, err := svc.ListReports(ctx, alice)
	if err != nil || len(mine) != 0 {
		t.Fatalf("alice reports = %v, %v", mine, err)
	}
	all, err := svc.ListReports(ctx, admin)
	if err != nil || len(all) != 1 {
		t.Fatalf("admin reports = %v, %v", all, err)
	}

	r, err = svc.UpdateReportType(ctx, bob, r.ID, models.ReportDuplicate)
	if err != nil {
		t.Fatal(err)
	}
	if r.Type != models.ReportDuplicate {
		t.Fatalf("type = %s", r.Type)
	}

	if _, err := svc.ReviewReport(ctx, admin, r.ID, "rejected"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UpdateReportType(ctx, bob, r.ID, models.ReportSpam); !errors.Is(err, ErrForbidden) {
		t.Fatalf("reviewed report must be frozen, got %v", err)
	}
	if err := svc.DeleteReport(ctx, bob, r.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("reviewed report must not be withdrawn, got %v", err)
	}
	if err := svc.DeleteReport(ctx, admin, r.ID); err != nil {
		t.Fatal(err)
	}
}

func TestDeletePostCascadesReports(t *testing.T) {
	svc, st := setup(t)
	ctx := context.Background()
	alice := principal(t, st, "alice", false)
	bob := principal(t, st, "bob", false)
	admin := principal(t, st, "root", true)
	p := newPost(t, svc, alice, "Test Title", "news")

	if _, err := svc.FileReport(ctx, bob, ReportInput{PostID: p.ID}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Vote(ctx, bob, p.ID, Upvote); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CreateComment(ctx, bob, CommentInput{PostID: p.ID, Content: "hi"}); err != nil {
		t.Fatal(err)
	}

	if err := svc.DeletePost(ctx, bob, p.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.DeletePost(ctx, alice, p.ID); err != nil {
		t.Fatal(err)
	}

	reports, err := svc.ListReports(ctx, admin)
	if err != nil || len(reports) != 0 {
		t.Fatalf("reports = %v, %v", reports, err)
	}
	votes, err := svc.ListVotes(ctx, 0)
	if err != nil || len(votes) != 0 {
		t.Fatalf("votes = %v, %v", votes, err)
	}
	comments, err := svc.ListComments(ctx, 0)
	if err != nil || len(comments) != 0 {
		t.Fatalf("comments = %v, %v", comments, err)
	}
}
