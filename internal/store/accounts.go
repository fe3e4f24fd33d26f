package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Shashhank12/Budget-Buddy/internal/models"
)

func (s *Store) AccountsForUser(userID uint) ([]models.Account, error) {
	var accounts []models.Account
	err := s.db.
		Joins("JOIN has ON has.account_id = accounts.id").
		Where("has.user_id = ?", userID).
		Order("accounts.name").
		Find(&accounts).Error
	return accounts, err
}

// AccountForUser loads an account only if the has join links it to the
// user; a row owned by someone else reads as ErrNotOwned.
func (s *Store) AccountForUser(userID, accountID uint) (*models.Account, error) {
	return accountForUser(s.db, userID, accountID)
}

func accountForUser(tx *gorm.DB, userID, accountID uint) (*models.Account, error) {
	var account models.Account
	err := tx.
		Joins("JOIN has ON has.account_id = accounts.id").
		Where("has.user_id = ? AND accounts.id = ?", userID, accountID).
		First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		var exists int64
		tx.Model(&models.Account{}).Where("id = ?", accountID).Count(&exists)
		if exists > 0 {
			return nil, ErrNotOwned
		}
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// CreateAccount inserts the account and links it to the user in one
// transaction.
func (s *Store) CreateAccount(userID uint, account *models.Account) error {
	if account.Name == "" {
		return Invalid("account name is required")
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(account).Error; err != nil {
			return err
		}
		return tx.Exec("INSERT INTO has (user_id, account_id) VALUES (?, ?)", userID, account.ID).Error
	})
}

func (s *Store) UpdateAccount(userID uint, accountID uint, name, accType string, balance float64) error {
	if name == "" {
		return Invalid("account name is required")
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		account, err := accountForUser(tx, userID, accountID)
		if err != nil {
			return err
		}
		account.Name = name
		account.Type = accType
		account.Balance = balance
		return tx.Save(account).Error
	})
}

// DeleteAccount removes the account, its join row, and detaches any
// transactions recorded on it (they keep their amounts, just lose the
// account link).
func (s *Store) DeleteAccount(userID, accountID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		account, err := accountForUser(tx, userID, accountID)
		if err != nil {
			return err
		}
		if err := tx.Model(&models.Transaction{}).
			Where("account_id = ?", account.ID).
			Update("account_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM has WHERE user_id = ? AND account_id = ?", userID, account.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Account{}, account.ID).Error
	})
}
