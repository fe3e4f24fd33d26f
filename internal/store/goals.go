package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Shashhank12/Budget-Buddy/internal/models"
	"github.com/Shashhank12/Budget-Buddy/internal/money"
)

func (s *Store) GoalsForUser(userID uint) ([]models.Goal, error) {
	var goals []models.Goal
	err := s.db.
		Joins("JOIN sets ON sets.goal_id = goals.id").
		Where("sets.user_id = ?", userID).
		Order("goals.target_date").
		Find(&goals).Error
	return goals, err
}

func (s *Store) GoalForUser(userID, goalID uint) (*models.Goal, error) {
	return goalForUser(s.db, userID, goalID)
}

func goalForUser(tx *gorm.DB, userID, goalID uint) (*models.Goal, error) {
	var goal models.Goal
	err := tx.
		Joins("JOIN sets ON sets.goal_id = goals.id").
		Where("sets.user_id = ? AND goals.id = ?", userID, goalID).
		First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		var exists int64
		tx.Model(&models.Goal{}).Where("id = ?", goalID).Count(&exists)
		if exists > 0 {
			return nil, ErrNotOwned
		}
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// MonthlyBudget returns the user's flagged budget goal, or ErrNotFound if
// none is set.
func (s *Store) MonthlyBudget(userID uint) (*models.Goal, error) {
	var goal models.Goal
	err := s.db.
		Joins("JOIN sets ON sets.goal_id = goals.id").
		Where("sets.user_id = ? AND goals.is_monthly_budget = ?", userID, true).
		First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// CreateGoal inserts the goal and links it to the user. If the goal is
// flagged as the monthly budget, any previously flagged goal loses the
// flag in the same transaction, keeping at most one per user.
func (s *Store) CreateGoal(userID uint, goal *models.Goal) error {
	if goal.Name == "" {
		return Invalid("goal name is required")
	}
	if goal.TargetAmount <= 0 {
		return Invalid("goal target amount must be positive")
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if goal.IsMonthlyBudget {
			if err := clearMonthlyBudget(tx, userID); err != nil {
				return err
			}
		}
		if err := tx.Create(goal).Error; err != nil {
			return err
		}
		return tx.Exec("INSERT INTO sets (user_id, goal_id) VALUES (?, ?)", userID, goal.ID).Error
	})
}

func clearMonthlyBudget(tx *gorm.DB, userID uint) error {
	return tx.Exec(`
		UPDATE goals SET is_monthly_budget = ?
		WHERE is_monthly_budget = ?
		  AND id IN (SELECT goal_id FROM sets WHERE user_id = ?)`,
		false, true, userID).Error
}

func (s *Store) UpdateGoal(userID uint, updated *models.Goal) error {
	if updated.Name == "" {
		return Invalid("goal name is required")
	}
	if updated.TargetAmount <= 0 {
		return Invalid("goal target amount must be positive")
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		goal, err := goalForUser(tx, userID, updated.ID)
		if err != nil {
			return err
		}
		if updated.IsMonthlyBudget && !goal.IsMonthlyBudget {
			if err := clearMonthlyBudget(tx, userID); err != nil {
				return err
			}
		}
		goal.Name = updated.Name
		goal.TargetDate = updated.TargetDate
		goal.TargetAmount = updated.TargetAmount
		goal.CurrentAmount = updated.CurrentAmount
		goal.Description = updated.Description
		goal.IsMonthlyBudget = updated.IsMonthlyBudget
		return tx.Save(goal).Error
	})
}

// AddGoalProgress bumps the goal's saved amount, capped at the target.
func (s *Store) AddGoalProgress(userID, goalID uint, amount float64) error {
	if amount <= 0 {
		return Invalid("progress amount must be positive")
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		goal, err := goalForUser(tx, userID, goalID)
		if err != nil {
			return err
		}
		next := money.Add(goal.CurrentAmount, amount)
		if next > goal.TargetAmount {
			next = goal.TargetAmount
		}
		goal.CurrentAmount = next
		return tx.Save(goal).Error
	})
}

func (s *Store) DeleteGoal(userID, goalID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		goal, err := goalForUser(tx, userID, goalID)
		if err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM sets WHERE user_id = ? AND goal_id = ?", userID, goal.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Goal{}, goal.ID).Error
	})
}
