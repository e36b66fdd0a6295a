package blog

import (
	"context"

	"blog/internal/models"
)

func (s *Service) User(ctx context.Context, id int64) (models.User, error) {
	u, err := s.store.UserByID(ctx, id)
	if err != nil {
		return models.User{}, notFound("user", id, err)
	}
	return u, nil
}

// ListUsers is restricted to administrators.
func (s *Service) ListUsers(ctx context.Context, who models.Principal) ([]models.User, error) {
	if !who.IsAdmin {
		return nil, forbidden("only administrators can list users")
	}
	return s.store.ListUsers(ctx)
}
