package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"spendwise/internal/analytics"
	"spendwise/internal/currency"
	"spendwise/internal/services"
)

// --- mock analytics service ---

type mockAnalyticsService struct {
	summaryFn func(userID string, window analytics.Window, display currency.Code) (*services.AnalyticsSummary, error)
}

func (m *mockAnalyticsService) Summary(userID string, window analytics.Window, display currency.Code) (*services.AnalyticsSummary, error) {
	if m.summaryFn != nil {
		return m.summaryFn(userID, window, display)
	}
	return &services.AnalyticsSummary{Window: window, Currency: display}, nil
}

var _ services.AnalyticsServicer = (*mockAnalyticsService)(nil)

func setupAnalyticsRouter(handler *AnalyticsHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.GET("/analytics/summary", handler.GetSummary)
	return r
}

func TestAnalyticsHandler_GetSummary(t *testing.T) {
	t.Run("returns summary with breakdown", func(t *testing.T) {
		svc := &mockAnalyticsService{
			summaryFn: func(_ string, window analytics.Window, display currency.Code) (*services.AnalyticsSummary, error) {
				return &services.AnalyticsSummary{
					Window:            window,
					Currency:          display,
					TotalSpent:        450,
					TotalSpentDisplay: "₹450.00",
					TransactionCount:  3,
					Breakdown: []services.BreakdownEntry{
						{CategoryTotal: analytics.CategoryTotal{Name: "Travel", Total: 300, Percent: 66.7}, TotalDisplay: "₹300.00"},
						{CategoryTotal: analytics.CategoryTotal{Name: "Food", Total: 150, Percent: 33.3}, TotalDisplay: "₹150.00"},
					},
				}, nil
			},
		}
		handler := NewAnalyticsHandler(svc)
		r := setupAnalyticsRouter(handler)

		rec := doRequest(r, "GET", "/analytics/summary?window=week&currency=INR", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		summary := result["summary"].(map[string]interface{})
		if summary["total_spent"].(float64) != 450 {
			t.Errorf("expected total 450, got %v", summary["total_spent"])
		}
		breakdown := summary["breakdown"].([]interface{})
		if len(breakdown) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(breakdown))
		}
	})

	t.Run("defaults to month and INR", func(t *testing.T) {
		var gotWindow analytics.Window
		var gotCurrency currency.Code
		svc := &mockAnalyticsService{
			summaryFn: func(_ string, window analytics.Window, display currency.Code) (*services.AnalyticsSummary, error) {
				gotWindow = window
				gotCurrency = display
				return &services.AnalyticsSummary{Window: window, Currency: display}, nil
			},
		}
		handler := NewAnalyticsHandler(svc)
		r := setupAnalyticsRouter(handler)

		rec := doRequest(r, "GET", "/analytics/summary", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotWindow != analytics.WindowMonth {
			t.Errorf("expected default window month, got %q", gotWindow)
		}
		if gotCurrency != currency.INR {
			t.Errorf("expected default currency INR, got %q", gotCurrency)
		}
	})

	t.Run("returns 400 on unknown window", func(t *testing.T) {
		handler := NewAnalyticsHandler(&mockAnalyticsService{})
		r := setupAnalyticsRouter(handler)

		rec := doRequest(r, "GET", "/analytics/summary?window=fortnight", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on unknown currency", func(t *testing.T) {
		handler := NewAnalyticsHandler(&mockAnalyticsService{})
		r := setupAnalyticsRouter(handler)

		rec := doRequest(r, "GET", "/analytics/summary?currency=EUR", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 401 without user", func(t *testing.T) {
		handler := NewAnalyticsHandler(&mockAnalyticsService{})
		r := gin.New()
		r.GET("/analytics/summary", handler.GetSummary)

		rec := doRequest(r, "GET", "/analytics/summary", "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}
