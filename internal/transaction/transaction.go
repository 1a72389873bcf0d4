package transaction

import (
	"time"

	"github.com/frahmantamala/finance-chatbot/internal"
	txModel "github.com/frahmantamala/finance-chatbot/internal/core/datamodel/transaction"
	"github.com/shopspring/decimal"
)

const (
	TypeIncome  = "income"
	TypeExpense = "expense"

	DefaultPaymentMethod = "Unknown"
)

func IsValidType(t string) bool {
	return t == TypeIncome || t == TypeExpense
}

// Filter narrows a user's transactions. Nil date bounds impose no
// constraint on that side; an empty Type matches both types; Category is a
// case-insensitive substring match against the stored category name.
type Filter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Type      string
	Category  string
}

// Aggregate is the summed view of a filtered set.
type Aggregate struct {
	SumMinor int64 `gorm:"column:sum_minor"`
	Count    int64 `gorm:"column:count"`
}

// ChatRecord is an add-transaction request that already went through the
// chatbot classifier. The category arrives as a free-text token and is
// resolved against the user's categories at write time.
type ChatRecord struct {
	Type          string
	AmountMinor   int64
	Description   string
	CategoryToken string
	PaymentMethod string
	Date          time.Time
}

// CreateTransactionDTO is the REST create payload. Unlike the chatbot
// path, the category is referenced by id and validated against the user's
// categories.
type CreateTransactionDTO struct {
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"`
	CategoryID    int64           `json:"category_id"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	PaymentMethod string          `json:"payment_method"`
}

func (dto CreateTransactionDTO) Validate() error {
	if !dto.Amount.IsPositive() {
		return internal.NewValidationError("Amount must be a positive number.", internal.ErrCodeInvalidAmount)
	}
	if !IsValidType(dto.Type) {
		return internal.NewValidationError("Invalid transaction type: Must be 'income' or 'expense'.", internal.ErrCodeInvalidType)
	}
	if dto.CategoryID == 0 {
		return internal.NewValidationError("Category is required.", internal.ErrCodeCategoryNotFound)
	}
	if dto.Date.IsZero() {
		return internal.NewValidationError("Date is required.", internal.ErrCodeInvalidDate)
	}
	return nil
}

// UpdateTransactionDTO carries optional fields; zero values leave the
// stored value untouched.
type UpdateTransactionDTO struct {
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"`
	CategoryID    int64           `json:"category_id"`
	Date          time.Time       `json:"date"`
	Description   *string         `json:"description"`
	PaymentMethod *string         `json:"payment_method"`
}

type TransactionResponse struct {
	ID            int64           `json:"id"`
	Type          string          `json:"type"`
	Category      string          `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	PaymentMethod string          `json:"payment_method"`
	Date          time.Time       `json:"date"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type TransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

func ToResponse(tx *txModel.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:            tx.ID,
		Type:          tx.Type,
		Category:      tx.CategoryName,
		Amount:        decimal.New(tx.AmountMinor, -2),
		Description:   tx.Description,
		PaymentMethod: tx.PaymentMethod,
		Date:          tx.Date,
		CreatedAt:     tx.CreatedAt,
		UpdatedAt:     tx.UpdatedAt,
	}
}
