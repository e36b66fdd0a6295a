package blog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"blog/internal/models"
	"blog/internal/store"
)

type CommentInput struct {
	PostID   int64
	ParentID *int64
	Content  string
}

func validateCommentContent(content string) error {
	n := countRunes(content)
	if strings.TrimSpace(content) == "" {
		return invalid("content", "This field may not be blank.")
	}
	if n > maxCommentLen {
		return invalid("content", fmt.Sprintf("Ensure this field has no more than %d characters.", maxCommentLen))
	}
	return nil
}

// CreateComment adds a comment, or a reply when ParentID is set. A reply
// must belong to the same post as its parent.
func (s *Service) CreateComment(ctx context.Context, who models.Principal, in CommentInput) (models.Comment, error) {
	if in.PostID == 0 {
		return models.Comment{}, invalid("post", "This field is required.")
	}
	if err := validateCommentContent(in.Content); err != nil {
		return models.Comment{}, err
	}

	c := models.Comment{PostID: in.PostID, UserID: who.ID, ParentID: in.ParentID, Content: in.Content}
	err := s.store.WithTx(ctx, func(tx *store.Store) error {
		if _, err := tx.PostByID(ctx, in.PostID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return invalid("post", fmt.Sprintf(`Invalid pk "%d" - object does not exist.`, in.PostID))
			}
			return err
		}
		if in.ParentID != nil {
			parent, err := tx.CommentByID(ctx, *in.ParentID)
			if errors.Is(err, store.ErrNotFound) {
				return invalid("parent", fmt.Sprintf(`Invalid pk "%d" - object does not exist.`, *in.ParentID))
			}
			if err != nil {
				return err
			}
			if parent.PostID != in.PostID {
				return invalid("parent", "Parent comment belongs to a different post.")
			}
		}
		return tx.CreateComment(ctx, &c)
	})
	if err != nil {
		return models.Comment{}, err
	}
	log.Printf("create comment uid=%d post=%d id=%d parent=%v", who.ID, c.PostID, c.ID, in.ParentID != nil)
	return s.Comment(ctx, c.ID)
}

// Comment returns one comment; a top-level comment carries its direct replies.
func (s *Service) Comment(ctx context.Context, id int64) (models.Comment, error) {
	c, err := s.store.CommentByID(ctx, id)
	if err != nil {
		return models.Comment{}, notFound("comment", id, err)
	}
	if err := s.withReplies(ctx, &c); err != nil {
		return models.Comment{}, err
	}
	return c, nil
}

// ListComments lists the top-level comments of postID with their replies.
// With postID 0 every comment is listed.
func (s *Service) ListComments(ctx context.Context, postID int64) ([]models.Comment, error) {
	cs, err := s.store.ListComments(ctx, store.CommentFilter{PostID: postID, TopLevel: postID != 0})
	if err != nil {
		return nil, err
	}
	for i := range cs {
		if err := s.withReplies(ctx, &cs[i]); err != nil {
			return nil, err
		}
	}
	return cs, nil
}

func (s *Service) withReplies(ctx context.Context, c *models.Comment) error {
	if !c.IsParent() {
		return nil
	}
	kids, err := s.store.CommentChildren(ctx, c.ID)
	if err != nil {
		return err
	}
	c.Replies = kids
	return nil
}

// UpdateComment changes the content only. Owner, post and parent are fixed.
func (s *Service) UpdateComment(ctx context.Context, who models.Principal, id int64, content string) (models.Comment, error) {
	err := s.store.WithTx(ctx, func(tx *store.Store) error {
		c, err := tx.CommentByID(ctx, id)
		if err != nil {
			return notFound("comment", id, err)
		}
		if c.UserID != who.ID {
			return forbidden("only the author can change this comment")
		}
		if err := validateCommentContent(content); err != nil {
			return err
		}
		c.Content = content
		return tx.UpdateCommentContent(ctx, &c)
	})
	if err != nil {
		return models.Comment{}, err
	}
	return s.Comment(ctx, id)
}

func (s *Service) DeleteComment(ctx context.Context, who models.Principal, id int64) error {
	return s.store.WithTx(ctx, func(tx *store.Store) error {
		c, err := tx.CommentByID(ctx, id)
		if err != nil {
			return notFound("comment", id, err)
		}
		if c.UserID != who.ID {
			return forbidden("only the author can delete this comment")
		}
		return tx.DeleteComment(ctx, id)
	})
}
