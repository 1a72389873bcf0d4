package transaction

import "time"

// Transaction is the persisted ledger entry. AmountMinor is always positive
// and carries the value in minor currency units (kobo); the sign lives in
// Type, never in the amount.
type Transaction struct {
	ID            int64     `gorm:"primaryKey"`
	UserID        int64     `gorm:"column:user_id;not null;index"`
	Type          string    `gorm:"column:type;not null"`
	CategoryName  string    `gorm:"column:category_name;not null"`
	AmountMinor   int64     `gorm:"column:amount_minor;not null"`
	Description   string    `gorm:"column:description"`
	PaymentMethod string    `gorm:"column:payment_method"`
	Date          time.Time `gorm:"column:date;not null;index"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Transaction) TableName() string {
	return "transactions"
}
