package category

import (
	"time"

	catModel "github.com/frahmantamala/finance-chatbot/internal/core/datamodel/category"
)

const (
	TypeIncome  = "income"
	TypeExpense = "expense"

	// DefaultName is the fallback category transactions are reassigned to
	// when their category is deleted, and the one chat writes land in when
	// no category token was given.
	DefaultName = "Uncategorized"
)

func IsValidType(t string) bool {
	return t == TypeIncome || t == TypeExpense
}

type Category struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Category) ToResponse() CategoryResponse {
	return CategoryResponse{
		ID:   c.ID,
		Name: c.Name,
		Type: c.Type,
	}
}

func NewCategory(userID int64, name, categoryType string) *Category {
	now := time.Now()
	return &Category{
		UserID:    userID,
		Name:      name,
		Type:      categoryType,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func ToDataModel(c *Category) *catModel.Category {
	return &catModel.Category{
		ID:        c.ID,
		UserID:    c.UserID,
		Name:      c.Name,
		Type:      c.Type,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func FromDataModel(c *catModel.Category) *Category {
	return &Category{
		ID:        c.ID,
		UserID:    c.UserID,
		Name:      c.Name,
		Type:      c.Type,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
