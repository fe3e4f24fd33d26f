package models

import (
	"time"
)

type Goal struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `json:"name"`
	TargetDate    string    `json:"target_date"` // YYYY-MM-DD
	TargetAmount  float64   `json:"target_amount"`
	CurrentAmount float64   `json:"current_amount"`
	Description   string    `json:"description"`

	// The monthly budget is a goal with this flag set; at most one per
	// user, enforced by the store.
	IsMonthlyBudget bool `json:"is_monthly_budget"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
