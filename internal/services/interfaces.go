package services

import (
	"context"
	"time"

	"spendwise/internal/analytics"
	"spendwise/internal/currency"
	"spendwise/internal/models"
	"spendwise/internal/pagination"
)

// UserServicer defines the contract for account and session logic.
type UserServicer interface {
	CreateUser(name, email, password string) (*models.User, error)
	AttemptLogin(email, password string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	VerifyEmail(token string) (*models.User, error)
	ResendVerification(email string) error
	GoogleSignIn(ctx context.Context, idToken string) (*models.User, error)
}

// CategoryServicer defines the contract for category management.
type CategoryServicer interface {
	CreateCategory(userID, name, symbol string) (*models.Category, error)
	GetUserCategories(userID string) ([]models.Category, error)
	GetCategoryByID(userID, categoryID string) (*models.Category, error)
	UpdateCategory(userID, categoryID, name, symbol string) (*models.Category, error)
	DeleteCategory(userID, categoryID string) error
}

// ExpenseServicer defines the contract for expense entries.
type ExpenseServicer interface {
	CreateExpense(userID, amount string, categoryID *string, categoryName, description string, timestamp time.Time) (*models.Expense, error)
	GetUserExpenses(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error)
	GetExpenseByID(userID, expenseID string) (*models.Expense, error)
	UpdateExpense(userID, expenseID, amount string, categoryID *string, categoryName, description string) (*models.Expense, error)
	DeleteExpense(userID, expenseID string) error
}

// BudgetStatus is the monthly budget position, recomputed from live data on
// every read. BudgetLeft going negative means over budget and is a valid,
// displayed state.
type BudgetStatus struct {
	MonthlyBudget  float64 `json:"monthly_budget"`
	SpentThisMonth float64 `json:"spent_this_month"`
	BudgetLeft     float64 `json:"budget_left"`
	OverBudget     bool    `json:"over_budget"`
}

// BudgetServicer defines the contract for the monthly budget ceiling.
type BudgetServicer interface {
	SetMonthlyBudget(userID string, amount float64) (*models.User, error)
	GetBudgetStatus(userID string) (*BudgetStatus, error)
}

// BreakdownEntry is a breakdown row plus its display-currency rendering.
type BreakdownEntry struct {
	analytics.CategoryTotal
	TotalDisplay string `json:"total_display"`
}

// AnalyticsSummary is the full dashboard payload for one time window.
// Numeric amounts are canonical (INR); *_display fields are rendered in the
// requested display currency.
type AnalyticsSummary struct {
	Window            analytics.Window `json:"window"`
	Currency          currency.Code    `json:"currency"`
	TotalSpent        float64          `json:"total_spent"`
	TotalSpentDisplay string           `json:"total_spent_display"`
	AvgPerDay         float64          `json:"avg_per_day"`
	AvgPerDayDisplay  string           `json:"avg_per_day_display"`
	TransactionCount  int              `json:"transaction_count"`
	Breakdown         []BreakdownEntry `json:"breakdown"`
	TopCategory       *BreakdownEntry  `json:"top_category,omitempty"`
	Budget            *BudgetStatus    `json:"budget,omitempty"`
}

// AnalyticsServicer defines the contract for the spending dashboard.
type AnalyticsServicer interface {
	Summary(userID string, window analytics.Window, display currency.Code) (*AnalyticsSummary, error)
}

// PasswordResetServicer defines the contract for the rate-limited
// password-reset flow.
type PasswordResetServicer interface {
	RequestReset(email string) error
	ConfirmReset(token, newPassword string) error
}

// Mailer sends account emails. Implementations must be safe for concurrent use.
type Mailer interface {
	SendVerificationEmail(to, name, link string) error
	SendPasswordResetEmail(to, link string) error
}
