package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/finance-chatbot/internal"
	catModel "github.com/frahmantamala/finance-chatbot/internal/core/datamodel/category"
	txModel "github.com/frahmantamala/finance-chatbot/internal/core/datamodel/transaction"
	"github.com/frahmantamala/finance-chatbot/internal/core/events"
)

// Repository defines the data access methods for transactions.
type Repository interface {
	Create(tx *txModel.Transaction) error
	GetByID(id int64) (*txModel.Transaction, error)
	ListByUser(userID int64, f Filter) ([]*txModel.Transaction, error)
	Search(userID int64, f Filter) ([]*txModel.Transaction, error)
	Aggregate(userID int64, f Filter) (Aggregate, error)
	Update(tx *txModel.Transaction) error
	Delete(id int64) error
}

// CategoryAPI is the slice of the category service this package needs.
type CategoryAPI interface {
	GetOwnedByID(userID, id int64) (*catModel.Category, error)
	ResolveForChat(userID int64, token, txType string) (string, error)
}

type Service struct {
	repo       Repository
	categories CategoryAPI
	events     *events.EventBus
	logger     *slog.Logger
}

func NewService(repo Repository, categories CategoryAPI, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		events:     bus,
		logger:     logger,
	}
}

// Create persists a transaction coming through the REST API. The category
// is referenced by id, must belong to the user, and its type must match the
// transaction type; the category's name is what gets stored on the record.
func (s *Service) Create(userID int64, dto CreateTransactionDTO) (*txModel.Transaction, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("transaction validation failed", "error", err, "user_id", userID)
		return nil, err
	}

	cat, err := s.categories.GetOwnedByID(userID, dto.CategoryID)
	if err != nil {
		s.logger.Error("failed to look up category", "error", err, "category_id", dto.CategoryID)
		return nil, err
	}
	if cat == nil {
		return nil, internal.ErrCategoryNotFound
	}
	if cat.Type != dto.Type {
		return nil, internal.NewValidationError(
			fmt.Sprintf("Category type '%s' does not match transaction type '%s'.", cat.Type, dto.Type),
			internal.ErrCodeCategoryTypeMismatch,
		)
	}

	paymentMethod := dto.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = DefaultPaymentMethod
	}

	tx := &txModel.Transaction{
		UserID:        userID,
		Type:          dto.Type,
		CategoryName:  cat.Name,
		AmountMinor:   dto.Amount.Round(2).Shift(2).IntPart(),
		Description:   dto.Description,
		PaymentMethod: paymentMethod,
		Date:          dto.Date,
	}

	if err := s.repo.Create(tx); err != nil {
		s.logger.Error("failed to create transaction", "error", err, "user_id", userID)
		return nil, err
	}

	s.publishCreated(tx, "api")
	return tx, nil
}

// RecordChat persists a transaction parsed from a chat command. The free
// category token is resolved to a real category (created on first use) so
// the stored name always refers to an existing row.
func (s *Service) RecordChat(userID int64, rec ChatRecord) (*txModel.Transaction, error) {
	if rec.AmountMinor <= 0 {
		return nil, internal.NewValidationError("Amount must be a positive number.", internal.ErrCodeInvalidAmount)
	}
	if !IsValidType(rec.Type) {
		return nil, internal.NewValidationError("Invalid transaction type: Must be 'income' or 'expense'.", internal.ErrCodeInvalidType)
	}

	categoryName, err := s.categories.ResolveForChat(userID, rec.CategoryToken, rec.Type)
	if err != nil {
		s.logger.Error("failed to resolve category for chat transaction", "error", err, "user_id", userID)
		return nil, err
	}

	paymentMethod := rec.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = DefaultPaymentMethod
	}

	date := rec.Date
	if date.IsZero() {
		date = time.Now()
	}

	tx := &txModel.Transaction{
		UserID:        userID,
		Type:          rec.Type,
		CategoryName:  categoryName,
		AmountMinor:   rec.AmountMinor,
		Description:   rec.Description,
		PaymentMethod: paymentMethod,
		Date:          date,
	}

	if err := s.repo.Create(tx); err != nil {
		s.logger.Error("failed to record chat transaction", "error", err, "user_id", userID)
		return nil, err
	}

	s.publishCreated(tx, "chatbot")
	return tx, nil
}

// List returns a user's transactions newest first, for the REST listing.
func (s *Service) List(userID int64, f Filter) ([]*txModel.Transaction, error) {
	transactions, err := s.repo.ListByUser(userID, f)
	if err != nil {
		s.logger.Error("failed to list transactions", "error", err, "user_id", userID)
		return nil, err
	}
	return transactions, nil
}

// Search returns matching transactions oldest first, the order chat
// listings render in.
func (s *Service) Search(userID int64, f Filter) ([]*txModel.Transaction, error) {
	transactions, err := s.repo.Search(userID, f)
	if err != nil {
		s.logger.Error("failed to search transactions", "error", err, "user_id", userID)
		return nil, err
	}
	return transactions, nil
}

// Aggregate sums matching transactions. An empty match is a valid zero
// aggregate, not an error.
func (s *Service) Aggregate(userID int64, f Filter) (Aggregate, error) {
	agg, err := s.repo.Aggregate(userID, f)
	if err != nil {
		s.logger.Error("failed to aggregate transactions", "error", err, "user_id", userID)
		return Aggregate{}, err
	}
	return agg, nil
}

func (s *Service) Get(userID, id int64) (*txModel.Transaction, error) {
	tx, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrTransactionNotFound
	}
	if tx.UserID != userID {
		s.logger.Warn("unauthorized access to transaction", "transaction_id", id, "user_id", userID)
		return nil, internal.ErrTransactionNotFound
	}
	return tx, nil
}

func (s *Service) Update(userID, id int64, dto UpdateTransactionDTO) (*txModel.Transaction, error) {
	tx, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}

	if dto.Type != "" {
		if !IsValidType(dto.Type) {
			return nil, internal.NewValidationError("Invalid transaction type: Must be 'income' or 'expense'.", internal.ErrCodeInvalidType)
		}
		tx.Type = dto.Type
	}
	if !dto.Amount.IsZero() {
		if !dto.Amount.IsPositive() {
			return nil, internal.NewValidationError("Amount must be a positive number.", internal.ErrCodeInvalidAmount)
		}
		tx.AmountMinor = dto.Amount.Round(2).Shift(2).IntPart()
	}
	if dto.CategoryID != 0 {
		cat, err := s.categories.GetOwnedByID(userID, dto.CategoryID)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			return nil, internal.ErrCategoryNotFound
		}
		if cat.Type != tx.Type {
			return nil, internal.NewValidationError(
				fmt.Sprintf("Category type '%s' does not match transaction type '%s'.", cat.Type, tx.Type),
				internal.ErrCodeCategoryTypeMismatch,
			)
		}
		tx.CategoryName = cat.Name
	}
	if !dto.Date.IsZero() {
		tx.Date = dto.Date
	}
	if dto.Description != nil {
		tx.Description = *dto.Description
	}
	if dto.PaymentMethod != nil {
		tx.PaymentMethod = *dto.PaymentMethod
	}

	if err := s.repo.Update(tx); err != nil {
		s.logger.Error("failed to update transaction", "error", err, "transaction_id", id)
		return nil, err
	}
	return tx, nil
}

func (s *Service) Delete(userID, id int64) error {
	if _, err := s.Get(userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete transaction", "error", err, "transaction_id", id)
		return err
	}
	return nil
}

func (s *Service) publishCreated(tx *txModel.Transaction, source string) {
	if s.events == nil {
		return
	}
	ev := events.NewTransactionCreatedEvent(tx.ID, tx.UserID, tx.Type, tx.CategoryName, source, tx.AmountMinor)
	if err := s.events.Publish(context.Background(), ev); err != nil {
		s.logger.Warn("failed to publish transaction event", "error", err, "transaction_id", tx.ID)
	}
}
