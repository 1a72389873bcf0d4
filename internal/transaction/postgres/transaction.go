package postgres

import (
	"strings"
	"time"

	txModel "github.com/frahmantamala/finance-chatbot/internal/core/datamodel/transaction"
	"github.com/frahmantamala/finance-chatbot/internal/transaction"
	"gorm.io/gorm"
)

// TransactionRepository implements the transaction.Repository interface
// using GORM.
type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(tx *txModel.Transaction) error {
	return r.db.Create(tx).Error
}

func (r *TransactionRepository) GetByID(id int64) (*txModel.Transaction, error) {
	var tx txModel.Transaction
	err := r.db.Where("id = ?", id).First(&tx).Error
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// ListByUser returns matching transactions newest first, the order the
// REST listing renders in.
func (r *TransactionRepository) ListByUser(userID int64, f transaction.Filter) ([]*txModel.Transaction, error) {
	var transactions []*txModel.Transaction
	err := r.filtered(userID, f).Order("date DESC").Find(&transactions).Error
	return transactions, err
}

// Search returns matching transactions oldest first, for chat listings.
func (r *TransactionRepository) Search(userID int64, f transaction.Filter) ([]*txModel.Transaction, error) {
	var transactions []*txModel.Transaction
	err := r.filtered(userID, f).Order("date ASC").Find(&transactions).Error
	return transactions, err
}

// Aggregate sums the matching transactions in one query. No matches is a
// zero sum, not an error.
func (r *TransactionRepository) Aggregate(userID int64, f transaction.Filter) (transaction.Aggregate, error) {
	var agg transaction.Aggregate
	err := r.filtered(userID, f).
		Select("COALESCE(SUM(amount_minor), 0) AS sum_minor, COUNT(*) AS count").
		Scan(&agg).Error
	return agg, err
}

func (r *TransactionRepository) Update(tx *txModel.Transaction) error {
	tx.UpdatedAt = time.Now()
	return r.db.Save(tx).Error
}

func (r *TransactionRepository) Delete(id int64) error {
	return r.db.Delete(&txModel.Transaction{}, id).Error
}

// ReassignCategory relabels all of a user's transactions under oldName to
// newName and reports how many rows moved. Matching is case-insensitive
// like every other category lookup.
func (r *TransactionRepository) ReassignCategory(userID int64, oldName, newName string) (int64, error) {
	result := r.db.Model(&txModel.Transaction{}).
		Where("user_id = ? AND LOWER(category_name) = LOWER(?)", userID, oldName).
		Updates(map[string]interface{}{
			"category_name": newName,
			"updated_at":    time.Now(),
		})
	return result.RowsAffected, result.Error
}

// filtered builds the WHERE clause shared by list, search and aggregate.
// LOWER comparisons keep the matching case-insensitive on any SQL backend.
func (r *TransactionRepository) filtered(userID int64, f transaction.Filter) *gorm.DB {
	q := r.db.Model(&txModel.Transaction{}).Where("user_id = ?", userID)

	if f.Type != "" {
		q = q.Where("LOWER(type) = LOWER(?)", f.Type)
	}
	if f.Category != "" {
		q = q.Where("LOWER(category_name) LIKE ?", "%"+strings.ToLower(f.Category)+"%")
	}
	if f.StartDate != nil {
		q = q.Where("date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("date <= ?", *f.EndDate)
	}
	return q
}
