package store

import (
	"github.com/Shashhank12/Budget-Buddy/internal/models"
)

// CategoryTotal is a per-category aggregate over a window.
type CategoryTotal struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// DailySpend is one (date, category) spend bucket.
type DailySpend struct {
	Date     string
	Category string
	Total    float64
}

// TotalBalance sums the balances of every account linked to the user.
func (s *Store) TotalBalance(userID uint) (float64, error) {
	var total float64
	err := s.db.Model(&models.Account{}).
		Joins("JOIN has ON has.account_id = accounts.id").
		Where("has.user_id = ?", userID).
		Select("COALESCE(SUM(accounts.balance), 0)").
		Scan(&total).Error
	return total, err
}

// SpendInWindow sums transaction amounts in [start, end] and counts them.
func (s *Store) SpendInWindow(userID uint, start, end string) (float64, int, error) {
	var agg struct {
		Total float64
		N     int
	}
	err := s.db.Model(&models.Transaction{}).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Select("COALESCE(SUM(amount), 0) AS total, COUNT(*) AS n").
		Scan(&agg).Error
	return agg.Total, agg.N, err
}

// CategoryTotals groups the window's spend by category name; rows with no
// category report as "Uncategorized".
func (s *Store) CategoryTotals(userID uint, start, end string) ([]CategoryTotal, error) {
	var totals []CategoryTotal
	err := s.db.Model(&models.Transaction{}).
		Joins("LEFT JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.user_id = ? AND transactions.date >= ? AND transactions.date <= ?", userID, start, end).
		Select("COALESCE(categories.name, 'Uncategorized') AS name, COALESCE(SUM(transactions.amount), 0) AS total, COUNT(*) AS count").
		Group("COALESCE(categories.name, 'Uncategorized')").
		Order("total desc").
		Scan(&totals).Error
	return totals, err
}

// DailyCategorySpend returns (date, category) buckets for the window; the
// caller zero-fills missing days.
func (s *Store) DailyCategorySpend(userID uint, start, end string) ([]DailySpend, error) {
	var rows []DailySpend
	err := s.db.Model(&models.Transaction{}).
		Joins("LEFT JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.user_id = ? AND transactions.date >= ? AND transactions.date <= ?", userID, start, end).
		Select("transactions.date AS date, COALESCE(categories.name, 'Uncategorized') AS category, COALESCE(SUM(transactions.amount), 0) AS total").
		Group("transactions.date, COALESCE(categories.name, 'Uncategorized')").
		Order("transactions.date").
		Scan(&rows).Error
	return rows, err
}

// TopTransactions returns the window's n largest transactions by amount.
func (s *Store) TopTransactions(userID uint, start, end string, n int) ([]TxRow, error) {
	var rows []TxRow
	err := s.db.Model(&models.Transaction{}).
		Select(`transactions.id, transactions.date, transactions.description,
			transactions.amount, transactions.category_id, transactions.account_id,
			COALESCE(categories.name, '') AS category_name,
			COALESCE(accounts.name, '') AS account_name`).
		Joins("LEFT JOIN categories ON categories.id = transactions.category_id").
		Joins("LEFT JOIN accounts ON accounts.id = transactions.account_id").
		Where("transactions.user_id = ? AND transactions.date >= ? AND transactions.date <= ?", userID, start, end).
		Order("transactions.amount desc").
		Limit(n).
		Scan(&rows).Error
	return rows, err
}
