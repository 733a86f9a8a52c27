package services

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
	"spendwise/internal/pagination"
)

// expenseService handles expense-related business logic.
type expenseService struct {
	db *gorm.DB
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB) ExpenseServicer {
	return &expenseService{db: db}
}

// validateAmount checks that a new amount string is a parseable non-negative
// decimal. Write-time validation is strict; read-time parsing stays lenient
// so legacy garbage can never fail an aggregation.
func validateAmount(amount string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
	if err != nil || v < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be a non-negative decimal number")
	}
	return nil
}

// resolveCategory returns the denormalized name for a new or updated
// expense. A stable category ID takes precedence; a plain name is kept
// as-is for compatibility with category-less entries.
func (s *expenseService) resolveCategory(userID string, categoryID *string, categoryName string) (*string, string, error) {
	if categoryID != nil && *categoryID != "" {
		var category models.Category
		if err := s.db.Where("id = ? AND user_id = ?", *categoryID, userID).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, "", apperrors.ErrCategoryNotFound
			}
			return nil, "", apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return &category.ID, category.Name, nil
	}

	categoryName = strings.TrimSpace(categoryName)
	if categoryName == "" {
		return nil, "", apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}
	return nil, categoryName, nil
}

// CreateExpense records a new expense. The category name is denormalized at
// write time; a zero timestamp defaults to now.
func (s *expenseService) CreateExpense(userID, amount string, categoryID *string, categoryName, description string, timestamp time.Time) (*models.Expense, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	catID, catName, err := s.resolveCategory(userID, categoryID, categoryName)
	if err != nil {
		return nil, err
	}

	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	expense := &models.Expense{
		UserID:       userID,
		Amount:       strings.TrimSpace(amount),
		CategoryID:   catID,
		CategoryName: catName,
		Description:  description,
		Timestamp:    timestamp,
	}

	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return expense, nil
}

// GetUserExpenses returns a page of the user's expenses. Ordering by
// timestamp descending happens in the query itself so display order is
// stable regardless of write order.
func (s *expenseService) GetUserExpenses(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Expense{}).Where("user_id = ?", userID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := base.Order("timestamp DESC").Scopes(pagination.Paginate(page)).Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetExpenseByID retrieves an expense by ID for a specific user
func (s *expenseService) GetExpenseByID(userID, expenseID string) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Where("id = ? AND user_id = ?", expenseID, userID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// UpdateExpense edits an expense's amount, category, or description.
// The timestamp is immutable after creation.
func (s *expenseService) UpdateExpense(userID, expenseID, amount string, categoryID *string, categoryName, description string) (*models.Expense, error) {
	expense, err := s.GetExpenseByID(userID, expenseID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if amount != "" {
		if err := validateAmount(amount); err != nil {
			return nil, err
		}
		updates["amount"] = strings.TrimSpace(amount)
	}
	if (categoryID != nil && *categoryID != "") || strings.TrimSpace(categoryName) != "" {
		catID, catName, err := s.resolveCategory(userID, categoryID, categoryName)
		if err != nil {
			return nil, err
		}
		updates["category_id"] = catID
		updates["category_name"] = catName
	}
	if description != "" {
		updates["description"] = description
	}

	if len(updates) > 0 {
		if err := s.db.Model(expense).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return expense, nil
}

// DeleteExpense soft-deletes an expense.
func (s *expenseService) DeleteExpense(userID, expenseID string) error {
	expense, err := s.GetExpenseByID(userID, expenseID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
