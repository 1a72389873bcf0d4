package category

import "time"

// Category names keep the casing they were created with and are unique
// per user regardless of case; lookups compare lowercased.
type Category struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:idx_categories_user_name"`
	Name      string    `gorm:"column:name;not null;uniqueIndex:idx_categories_user_name"`
	Type      string    `gorm:"column:type;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Category) TableName() string {
	return "categories"
}
