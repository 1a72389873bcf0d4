package postgres

import (
	"github.com/frahmantamala/finance-chatbot/internal/category"
	catModel "github.com/frahmantamala/finance-chatbot/internal/core/datamodel/category"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) category.RepositoryAPI {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) GetAllByUser(userID int64) ([]*catModel.Category, error) {
	var categories []*catModel.Category
	err := r.db.Where("user_id = ?", userID).Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) GetByID(id int64) (*catModel.Category, error) {
	var cat catModel.Category
	err := r.db.Where("id = ?", id).First(&cat).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

// GetByName matches case-insensitively; names are unique per user
// regardless of case.
func (r *CategoryRepository) GetByName(userID int64, name string) (*catModel.Category, error) {
	var cat catModel.Category
	err := r.db.Where("user_id = ? AND LOWER(name) = LOWER(?)", userID, name).First(&cat).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepository) Create(cat *catModel.Category) error {
	return r.db.Create(cat).Error
}

func (r *CategoryRepository) Update(cat *catModel.Category) error {
	return r.db.Save(cat).Error
}

func (r *CategoryRepository) Delete(id int64) error {
	return r.db.Delete(&catModel.Category{}, id).Error
}
