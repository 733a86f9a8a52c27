package services

import (
	"time"

	"gorm.io/gorm"

	"spendwise/internal/analytics"
	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
)

// budgetService handles the monthly budget ceiling.
type budgetService struct {
	db    *gorm.DB
	users UserServicer

	// Overridable in tests.
	now func() time.Time
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB, users UserServicer) BudgetServicer {
	return &budgetService{db: db, users: users, now: time.Now}
}

// SetMonthlyBudget overwrites the user's monthly budget. Zero clears it.
func (s *budgetService) SetMonthlyBudget(userID string, amount float64) (*models.User, error) {
	if amount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "budget must not be negative")
	}

	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(user).Update("monthly_budget", amount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	user.MonthlyBudget = amount

	return user, nil
}

// GetBudgetStatus recomputes the budget position from the current calendar
// month's expenses. Nothing is cached; every read reflects live data.
func (s *budgetService) GetBudgetStatus(userID string) (*BudgetStatus, error) {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	spent, err := s.spentThisMonth(userID)
	if err != nil {
		return nil, err
	}

	left := analytics.BudgetLeft(user.MonthlyBudget, spent)
	return &BudgetStatus{
		MonthlyBudget:  user.MonthlyBudget,
		SpentThisMonth: spent,
		BudgetLeft:     left,
		OverBudget:     left < 0,
	}, nil
}

// spentThisMonth sums expenses since the first of the current month.
// Amounts are parsed in Go rather than summed in SQL because they are stored
// as decimal strings and malformed values must count as zero.
func (s *budgetService) spentThisMonth(userID string) (float64, error) {
	start := analytics.StartOfMonth(s.now())

	var expenses []models.Expense
	if err := s.db.Where("user_id = ? AND timestamp >= ?", userID, start).
		Find(&expenses).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return analytics.Sum(expenses), nil
}
