package models

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `gorm:"uniqueIndex" json:"email"`
	PasswordHash string    `json:"-"` // Bcrypt hash, hidden from JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Accounts   []Account  `gorm:"many2many:has" json:"-"`
	Goals      []Goal     `gorm:"many2many:sets" json:"-"`
	Categories []Category `gorm:"many2many:selects" json:"-"`
}
