package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Shashhank12/Budget-Buddy/internal/models"
	"github.com/Shashhank12/Budget-Buddy/internal/money"
)

// TxFilter narrows ListTransactions. Zero values mean "no filter".
type TxFilter struct {
	StartDate   string
	EndDate     string
	CategoryID  uint
	AccountID   uint
	Description string
	MinAmount   *float64
	MaxAmount   *float64
	Sort        string // date_desc, date_asc, amount_desc, amount_asc
}

// TxRow is a transaction joined with its category and account names, the
// shape the management table consumes.
type TxRow struct {
	ID           uint    `json:"id"`
	Date         string  `json:"date"`
	Description  string  `json:"description"`
	Amount       float64 `json:"amount"`
	CategoryID   *uint   `json:"category_id"`
	CategoryName string  `json:"category_name"`
	AccountID    *uint   `json:"account_id"`
	AccountName  string  `json:"account_name"`
}

func (s *Store) TransactionForUser(userID, txID uint) (*models.Transaction, error) {
	return transactionForUser(s.db, userID, txID)
}

func transactionForUser(tx *gorm.DB, userID, txID uint) (*models.Transaction, error) {
	var t models.Transaction
	err := tx.Where("id = ?", txID).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if t.UserID != userID {
		return nil, ErrNotOwned
	}
	return &t, nil
}

// CreateTransaction inserts the transaction and debits the linked
// account's balance in one database transaction. Optional category and
// account links are ownership-checked before anything is written.
func (s *Store) CreateTransaction(userID uint, t *models.Transaction) error {
	if t.Date == "" {
		return Invalid("transaction date is required")
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if t.CategoryID != nil {
			if _, err := categoryForUser(tx, userID, *t.CategoryID); err != nil {
				return err
			}
		}
		var account *models.Account
		if t.AccountID != nil {
			var err error
			account, err = accountForUser(tx, userID, *t.AccountID)
			if err != nil {
				return err
			}
		}
		t.UserID = userID
		if err := tx.Create(t).Error; err != nil {
			return err
		}
		if account != nil {
			account.Balance = money.Sub(account.Balance, t.Amount)
			if err := tx.Save(account).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateTransaction edits a transaction and reconciles account balances:
// the old amount is credited back to the old account and the new amount
// debited from the new one (which may be the same account, or none).
func (s *Store) UpdateTransaction(userID uint, updated *models.Transaction) error {
	if updated.Date == "" {
		return Invalid("transaction date is required")
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		t, err := transactionForUser(tx, userID, updated.ID)
		if err != nil {
			return err
		}
		if updated.CategoryID != nil {
			if _, err := categoryForUser(tx, userID, *updated.CategoryID); err != nil {
				return err
			}
		}

		if t.AccountID != nil {
			old, err := accountForUser(tx, userID, *t.AccountID)
			if err != nil {
				return err
			}
			old.Balance = money.Add(old.Balance, t.Amount)
			if err := tx.Save(old).Error; err != nil {
				return err
			}
		}
		if updated.AccountID != nil {
			next, err := accountForUser(tx, userID, *updated.AccountID)
			if err != nil {
				return err
			}
			next.Balance = money.Sub(next.Balance, updated.Amount)
			if err := tx.Save(next).Error; err != nil {
				return err
			}
		}

		t.Amount = updated.Amount
		t.Description = updated.Description
		t.Date = updated.Date
		t.CategoryID = updated.CategoryID
		t.AccountID = updated.AccountID
		return tx.Save(t).Error
	})
}

// DeleteTransaction removes the row and restores its amount to the
// linked account's balance.
func (s *Store) DeleteTransaction(userID, txID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		t, err := transactionForUser(tx, userID, txID)
		if err != nil {
			return err
		}
		if t.AccountID != nil {
			account, err := accountForUser(tx, userID, *t.AccountID)
			if err == nil {
				account.Balance = money.Add(account.Balance, t.Amount)
				if err := tx.Save(account).Error; err != nil {
					return err
				}
			} else if !errors.Is(err, ErrNotFound) {
				return err
			}
		}
		return tx.Delete(&models.Transaction{}, t.ID).Error
	})
}

// ListTransactions returns the user's transactions with category and
// account names resolved, filtered and sorted per the filter.
func (s *Store) ListTransactions(userID uint, f TxFilter) ([]TxRow, error) {
	q := s.db.Model(&models.Transaction{}).
		Select(`transactions.id, transactions.date, transactions.description,
			transactions.amount, transactions.category_id, transactions.account_id,
			COALESCE(categories.name, '') AS category_name,
			COALESCE(accounts.name, '') AS account_name`).
		Joins("LEFT JOIN categories ON categories.id = transactions.category_id").
		Joins("LEFT JOIN accounts ON accounts.id = transactions.account_id").
		Where("transactions.user_id = ?", userID)

	if f.StartDate != "" {
		q = q.Where("transactions.date >= ?", f.StartDate)
	}
	if f.EndDate != "" {
		q = q.Where("transactions.date <= ?", f.EndDate)
	}
	if f.CategoryID != 0 {
		q = q.Where("transactions.category_id = ?", f.CategoryID)
	}
	if f.AccountID != 0 {
		q = q.Where("transactions.account_id = ?", f.AccountID)
	}
	if d := strings.TrimSpace(f.Description); d != "" {
		q = q.Where("LOWER(transactions.description) LIKE LOWER(?)", "%"+d+"%")
	}
	if f.MinAmount != nil {
		q = q.Where("transactions.amount >= ?", *f.MinAmount)
	}
	if f.MaxAmount != nil {
		q = q.Where("transactions.amount <= ?", *f.MaxAmount)
	}

	switch f.Sort {
	case "date_asc":
		q = q.Order("transactions.date asc, transactions.id asc")
	case "amount_desc":
		q = q.Order("transactions.amount desc")
	case "amount_asc":
		q = q.Order("transactions.amount asc")
	default:
		q = q.Order("transactions.date desc, transactions.id desc")
	}

	var rows []TxRow
	err := q.Scan(&rows).Error
	return rows, err
}
