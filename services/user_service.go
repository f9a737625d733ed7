package services

import (
	"context"
	"log/slog"

	"music-lab/repositories"
	"music-lab/search"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type IUserService interface {
	Search(ctx context.Context, query string, currentUserID uuid.UUID, limit int) ([]repositories.User, error)
}

// UserService answers username search queries from the bluge index and
// hydrates the matches from the user repository.
type UserService struct {
	log   *slog.Logger
	users repositories.IUserRepository
	index *search.UserIndex
}

func NewUserService(log *slog.Logger, users repositories.IUserRepository,
	index *search.UserIndex) IUserService {
	return &UserService{log: log, users: users, index: index}
}

func (s *UserService) Search(ctx context.Context, query string,
	currentUserID uuid.UUID, limit int) ([]repositories.User, error) {
	ids, err := s.index.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	// The caller never appears in their own search results.
	ids = lo.Filter(ids, func(id uuid.UUID, _ int) bool {
		return id != currentUserID
	})

	users := make([]repositories.User, 0, len(ids))
	for _, id := range ids {
		user, err := s.users.GetByID(id)
		if err != nil {
			s.log.Warn("Indexed user without row", "user", id, "error", err)
			continue
		}
		users = append(users, user)
	}
	return users, nil
}
