package blog

import (
	"context"
	"fmt"
	"log"
	"strings"

	"blog/internal/models"
	"blog/internal/store"
)

// PostInput carries client supplied post fields. A nil field was omitted;
// for Tags that leaves the assigned tags untouched while "" clears them.
type PostInput struct {
	Title   *string
	Content *string
	Image   *string
	Tags    *string
}

func (s *Service) CreatePost(ctx context.Context, who models.Principal, in PostInput) (models.Post, error) {
	verr := &ValidationError{}
	if in.Title == nil {
		verr.add("title", "This field is required.")
	}
	if in.Content == nil {
		verr.add("content", "This field is required.")
	}
	if err := verr.orNil(); err != nil {
		return models.Post{}, err
	}

	p := models.Post{UserID: who.ID, Title: strings.TrimSpace(*in.Title), Content: *in.Content}
	if in.Image != nil {
		p.Image = strings.TrimSpace(*in.Image)
	}
	if err := validatePost(p); err != nil {
		return models.Post{}, err
	}

	var tags []string
	if in.Tags != nil {
		var err error
		if tags, err = ParseTags(*in.Tags); err != nil {
			return models.Post{}, err
		}
	}

	err := s.store.WithTx(ctx, func(tx *store.Store) error {
		if err := tx.CreatePost(ctx, &p); err != nil {
			return err
		}
		if len(tags) > 0 {
			return ReconcileTags(ctx, tx, p.ID, tags)
		}
		return nil
	})
	if err != nil {
		return models.Post{}, fmt.Errorf("create post: %w", err)
	}

	log.Printf("create post uid=%d id=%d title=%q tags=%v", who.ID, p.ID, p.Title, tags)
	return s.Post(ctx, p.ID)
}

func validatePost(p models.Post) error {
	verr := &ValidationError{}
	if p.Title == "" {
		verr.add("title", "This field may not be blank.")
	} else if countRunes(p.Title) > maxTitleLen {
		verr.add("title", fmt.Sprintf("Ensure this field has no more than %d characters.", maxTitleLen))
	}
	if strings.TrimSpace(p.Content) == "" {
		verr.add("content", "This field may not be blank.")
	}
	return verr.orNil()
}

func (s *Service) Post(ctx context.Context, id int64) (models.Post, error) {
	p, err := s.store.PostByID(ctx, id)
	if err != nil {
		return models.Post{}, notFound("post", id, err)
	}
	return p, nil
}

func (s *Service) ListPosts(ctx context.Context, f store.PostFilter) ([]models.Post, error) {
	return s.store.ListPosts(ctx, f)
}

// UpdatePost changes the fields present in in. Only the owner may update.
func (s *Service) UpdatePost(ctx context.Context, who models.Principal, id int64, in PostInput) (models.Post, error) {
	err := s.store.WithTx(ctx, func(tx *store.Store) error {
		p, err := tx.PostByID(ctx, id)
		if err != nil {
			return notFound("post", id, err)
		}
		if p.UserID != who.ID {
			return forbidden("only the author can change this post")
		}

		if in.Title != nil {
			p.Title = strings.TrimSpace(*in.Title)
		}
		if in.Content != nil {
			p.Content = *in.Content
		}
		if in.Image != nil {
			p.Image = strings.TrimSpace(*in.Image)
		}
		if err := validatePost(p); err != nil {
			return err
		}

		if in.Tags != nil {
			tags, err := ParseTags(*in.Tags)
			if err != nil {
				return err
			}
			if err := ReconcileTags(ctx, tx, p.ID, tags); err != nil {
				return err
			}
		}
		return tx.UpdatePost(ctx, &p)
	})
	if err != nil {
		return models.Post{}, err
	}
	log.Printf("update post uid=%d id=%d", who.ID, id)
	return s.Post(ctx, id)
}

func (s *Service) DeletePost(ctx context.Context, who models.Principal, id int64) error {
	return s.store.WithTx(ctx, func(tx *store.Store) error {
		p, err := tx.PostByID(ctx, id)
		if err != nil {
			return notFound("post", id, err)
		}
		if p.UserID != who.ID {
			return forbidden("only the author can delete this post")
		}
		if err := tx.DeletePost(ctx, id); err != nil {
			return err
		}
		log.Printf("delete post uid=%d id=%d", who.ID, id)
		return nil
	})
}
