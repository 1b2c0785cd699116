package user

import (
	"log/slog"
)

// Repository is the directory of users. GetByEmail matches the email
// case-insensitively; implementations own that guarantee.
type Repository interface {
	GetByID(id string) (*User, error)
	GetByEmail(email string) (*User, error)
	Upsert(u *User) error
	CountByRole(role Role) (int, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetByID(id string) (*User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get user by id", "error", err, "user_id", id)
		return nil, err
	}
	return u, nil
}

func (s *Service) GetByEmail(email string) (*User, error) {
	u, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) CountEmployees() (int, error) {
	return s.repo.CountByRole(RoleEmployee)
}
