package models

import (
	"time"
)

type Transaction struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Date        string  `json:"date"` // YYYY-MM-DD

	UserID uint `gorm:"index" json:"user_id"`
	User   User `json:"-" gorm:"foreignKey:UserID"`

	// Optional links; nil means uncategorized / no account.
	CategoryID *uint     `json:"category_id"`
	Category   *Category `json:"-" gorm:"foreignKey:CategoryID"`
	AccountID  *uint     `json:"account_id"`
	Account    *Account  `json:"-" gorm:"foreignKey:AccountID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
