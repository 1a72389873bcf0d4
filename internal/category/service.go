package category

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/finance-chatbot/internal"
	catModel "github.com/frahmantamala/finance-chatbot/internal/core/datamodel/category"
	"github.com/frahmantamala/finance-chatbot/internal/core/events"
)

// RepositoryAPI defines the data access methods for categories. Name
// lookups are case-insensitive; names keep the casing they were created
// with but are unique per user regardless of case.
type RepositoryAPI interface {
	GetAllByUser(userID int64) ([]*catModel.Category, error)
	GetByID(id int64) (*catModel.Category, error)
	GetByName(userID int64, name string) (*catModel.Category, error)
	Create(cat *catModel.Category) error
	Update(cat *catModel.Category) error
	Delete(id int64) error
}

// TransactionReassigner relabels transactions when a category is renamed
// or removed. Implemented by the transaction repository.
type TransactionReassigner interface {
	ReassignCategory(userID int64, oldName, newName string) (int64, error)
}

type Service struct {
	repo         RepositoryAPI
	transactions TransactionReassigner
	events       *events.EventBus
	logger       *slog.Logger
}

func NewService(repo RepositoryAPI, transactions TransactionReassigner, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:         repo,
		transactions: transactions,
		events:       bus,
		logger:       logger,
	}
}

func (s *Service) List(userID int64) ([]CategoryResponse, error) {
	dataCategories, err := s.repo.GetAllByUser(userID)
	if err != nil {
		s.logger.Error("failed to get categories from repository", "error", err, "user_id", userID)
		return nil, err
	}

	responses := make([]CategoryResponse, 0, len(dataCategories))
	for _, dataCategory := range dataCategories {
		responses = append(responses, FromDataModel(dataCategory).ToResponse())
	}
	return responses, nil
}

func (s *Service) Create(userID int64, dto CreateCategoryDTO) (*Category, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByName(userID, dto.Name)
	if err != nil {
		s.logger.Error("failed to check category existence", "error", err, "user_id", userID)
		return nil, err
	}
	if existing != nil {
		return nil, internal.NewConflictError(
			fmt.Sprintf("Category \"%s\" already exists for this user.", existing.Name),
			internal.ErrCodeCategoryExists,
		)
	}

	data := ToDataModel(NewCategory(userID, dto.Name, dto.Type))
	if err := s.repo.Create(data); err != nil {
		s.logger.Error("failed to create category", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("category created", "category_id", data.ID, "user_id", userID, "name", data.Name)
	return FromDataModel(data), nil
}

func (s *Service) Update(userID, id int64, dto UpdateCategoryDTO) (*Category, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	data, err := s.getOwned(userID, id)
	if err != nil {
		return nil, err
	}

	oldName := data.Name
	if dto.Name != "" && dto.Name != oldName {
		existing, err := s.repo.GetByName(userID, dto.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, internal.NewConflictError(
				fmt.Sprintf("Category \"%s\" already exists for this user.", dto.Name),
				internal.ErrCodeCategoryExists,
			)
		}
		data.Name = dto.Name
	}
	if dto.Type != "" {
		data.Type = dto.Type
	}

	if err := s.repo.Update(data); err != nil {
		s.logger.Error("failed to update category", "error", err, "category_id", id)
		return nil, err
	}

	// A rename propagates to owned transactions so their stored label
	// keeps pointing at a real category.
	if data.Name != oldName {
		reassigned, err := s.transactions.ReassignCategory(userID, oldName, data.Name)
		if err != nil {
			s.logger.Error("failed to relabel transactions after rename", "error", err, "category_id", id)
			return nil, err
		}
		s.logger.Info("category renamed", "category_id", id, "old_name", oldName, "new_name", data.Name, "reassigned", reassigned)
	}

	return FromDataModel(data), nil
}

// Delete removes a category and reassigns its transactions to the
// "Uncategorized" fallback, which is created on first need.
func (s *Service) Delete(userID, id int64) error {
	data, err := s.getOwned(userID, id)
	if err != nil {
		return err
	}

	fallback, err := s.ResolveForChat(userID, DefaultName, data.Type)
	if err != nil {
		return err
	}

	reassigned := int64(0)
	if data.Name != fallback {
		reassigned, err = s.transactions.ReassignCategory(userID, data.Name, fallback)
		if err != nil {
			s.logger.Error("failed to reassign transactions before delete", "error", err, "category_id", id)
			return err
		}
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete category", "error", err, "category_id", id)
		return err
	}

	if s.events != nil {
		ev := events.NewCategoryDeletedEvent(id, userID, data.Name, reassigned)
		if err := s.events.Publish(context.Background(), ev); err != nil {
			s.logger.Warn("failed to publish category event", "error", err, "category_id", id)
		}
	}
	return nil
}

// GetOwnedByID returns the category only when it belongs to the user;
// a missing or foreign category yields nil without error.
func (s *Service) GetOwnedByID(userID, id int64) (*catModel.Category, error) {
	data, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if data == nil || data.UserID != userID {
		return nil, nil
	}
	return data, nil
}

// ResolveForChat maps a free-text category token from the chatbot to the
// name of a real category row. An existing category matching the token
// case-insensitively wins; otherwise a category named after the token is
// created with the transaction's type. An empty token resolves to the
// "Uncategorized" fallback.
func (s *Service) ResolveForChat(userID int64, token, txType string) (string, error) {
	if token == "" {
		token = DefaultName
	}

	existing, err := s.repo.GetByName(userID, token)
	if err != nil {
		s.logger.Error("failed to resolve category token", "error", err, "user_id", userID)
		return "", err
	}
	if existing != nil {
		return existing.Name, nil
	}

	data := ToDataModel(NewCategory(userID, token, txType))
	if err := s.repo.Create(data); err != nil {
		s.logger.Error("failed to create category for chat token", "error", err, "user_id", userID)
		return "", err
	}

	s.logger.Info("category created from chat token", "category_id", data.ID, "user_id", userID, "name", data.Name)
	return data.Name, nil
}

func (s *Service) getOwned(userID, id int64) (*catModel.Category, error) {
	data, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if data == nil || data.UserID != userID {
		return nil, internal.ErrCategoryNotFound
	}
	return data, nil
}
