package user

import (
	userModel "github.com/frahmantamala/finance-chatbot/internal/core/datamodel/user"
)

type Repository interface {
	GetByID(userID int64) (*userModel.User, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) GetByID(userID int64) (*User, error) {
	u, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return FromDataModel(u), nil
}
