package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Shashhank12/Budget-Buddy/internal/models"
)

func (s *Store) CategoriesForUser(userID uint) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.
		Joins("JOIN selects ON selects.category_id = categories.id").
		Where("selects.user_id = ?", userID).
		Order("categories.name").
		Find(&categories).Error
	return categories, err
}

func (s *Store) CategoryForUser(userID, categoryID uint) (*models.Category, error) {
	return categoryForUser(s.db, userID, categoryID)
}

func categoryForUser(tx *gorm.DB, userID, categoryID uint) (*models.Category, error) {
	var category models.Category
	err := tx.
		Joins("JOIN selects ON selects.category_id = categories.id").
		Where("selects.user_id = ? AND categories.id = ?", userID, categoryID).
		First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		var exists int64
		tx.Model(&models.Category{}).Where("id = ?", categoryID).Count(&exists)
		if exists > 0 {
			return nil, ErrNotOwned
		}
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *Store) CategoryByNameForUser(userID uint, name string) (*models.Category, error) {
	var category models.Category
	err := s.db.
		Joins("JOIN selects ON selects.category_id = categories.id").
		Where("selects.user_id = ? AND LOWER(categories.name) = LOWER(?)", userID, strings.TrimSpace(name)).
		First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateCategory inserts the category and links it to the user; the name
// must be unique among the user's categories.
func (s *Store) CreateCategory(userID uint, category *models.Category) error {
	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		return Invalid("category name is required")
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.Category{}).
			Joins("JOIN selects ON selects.category_id = categories.id").
			Where("selects.user_id = ? AND LOWER(categories.name) = LOWER(?)", userID, category.Name).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return Invalid("you already have a category named %q", category.Name)
		}
		if err := tx.Create(category).Error; err != nil {
			return err
		}
		return tx.Exec("INSERT INTO selects (user_id, category_id) VALUES (?, ?)", userID, category.ID).Error
	})
}

// DeleteCategory unlinks and removes the category; transactions filed
// under it become uncategorized.
func (s *Store) DeleteCategory(userID, categoryID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		category, err := categoryForUser(tx, userID, categoryID)
		if err != nil {
			return err
		}
		if err := tx.Model(&models.Transaction{}).
			Where("category_id = ?", category.ID).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM selects WHERE user_id = ? AND category_id = ?", userID, category.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Category{}, category.ID).Error
	})
}
