package services

import (
	"time"

	"gorm.io/gorm"

	"spendwise/internal/analytics"
	"spendwise/internal/currency"
	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
)

// analyticsService assembles the spending dashboard from live data.
type analyticsService struct {
	db        *gorm.DB
	budgets   BudgetServicer
	formatter *currency.Formatter

	// Overridable in tests.
	now func() time.Time
}

// NewAnalyticsService creates a new AnalyticsServicer.
func NewAnalyticsService(db *gorm.DB, budgets BudgetServicer, rates currency.RateProvider) AnalyticsServicer {
	return &analyticsService{
		db:        db,
		budgets:   budgets,
		formatter: currency.NewFormatter(rates),
		now:       time.Now,
	}
}

// Summary computes the dashboard payload for one window and display currency.
// Window filtering and aggregation happen in Go on the user's full expense
// set; the aggregation core stays pure and the same code path serves every
// window including "all".
func (s *analyticsService) Summary(userID string, window analytics.Window, display currency.Code) (*AnalyticsSummary, error) {
	if !window.Valid() {
		return nil, apperrors.ErrInvalidWindow
	}
	if !currency.Valid(display) {
		return nil, apperrors.ErrInvalidCurrency
	}

	var categories []models.Category
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := s.db.Where("user_id = ?", userID).
		Order("timestamp DESC").
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	now := s.now()
	filtered := analytics.Filter(expenses, window, now)
	totals := analytics.Aggregate(filtered, categories)
	grand := analytics.GrandTotal(totals)

	avgPerDay := 0.0
	if days := window.Days(now); days > 0 {
		avgPerDay = grand / float64(days)
	}

	summary := &AnalyticsSummary{
		Window:           window,
		Currency:         display,
		TotalSpent:       grand,
		AvgPerDay:        avgPerDay,
		TransactionCount: len(filtered),
		Breakdown:        make([]BreakdownEntry, 0, len(totals)),
	}

	var err error
	if summary.TotalSpentDisplay, err = s.formatter.Format(grand, display); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if summary.AvgPerDayDisplay, err = s.formatter.Format(avgPerDay, display); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for _, t := range totals {
		entry, err := s.renderEntry(t, display)
		if err != nil {
			return nil, err
		}
		summary.Breakdown = append(summary.Breakdown, entry)
	}

	if top, ok := analytics.TopCategory(totals); ok {
		entry, err := s.renderEntry(top, display)
		if err != nil {
			return nil, err
		}
		summary.TopCategory = &entry
	}

	budget, err := s.budgets.GetBudgetStatus(userID)
	if err != nil {
		return nil, err
	}
	if budget.MonthlyBudget > 0 {
		summary.Budget = budget
	}

	return summary, nil
}

func (s *analyticsService) renderEntry(t analytics.CategoryTotal, display currency.Code) (BreakdownEntry, error) {
	rendered, err := s.formatter.Format(t.Total, display)
	if err != nil {
		return BreakdownEntry{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return BreakdownEntry{CategoryTotal: t, TotalDisplay: rendered}, nil
}
