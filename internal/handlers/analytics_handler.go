package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"spendwise/internal/analytics"
	"spendwise/internal/currency"
	apperrors "spendwise/internal/errors"
	"spendwise/internal/services"
)

// AnalyticsHandler handles spending dashboard requests
type AnalyticsHandler struct {
	analyticsService services.AnalyticsServicer
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analyticsService services.AnalyticsServicer) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// SummaryQuery represents the dashboard query parameters
type SummaryQuery struct {
	Window   string `form:"window" binding:"omitempty,time_window"`
	Currency string `form:"currency" binding:"omitempty,display_currency"`
}

// GetSummary returns the spending dashboard for one time window
// @Summary     Get spending summary
// @Description Get totals, per-category breakdown, top category, and budget status for a time window
// @Tags        analytics
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       window query string false "Time window: today, week, month, 3months, 6months, year, all (default month)"
// @Param       currency query string false "Display currency: INR or USD (default INR)"
// @Success     200 {object} services.AnalyticsSummary "Spending summary"
// @Failure     400 {object} ErrorResponse "Invalid window or currency"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /analytics/summary [get]
func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var query SummaryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	window := analytics.Window(query.Window)
	if query.Window == "" {
		window = analytics.WindowMonth
	}
	display := currency.Code(query.Currency)
	if query.Currency == "" {
		display = currency.INR
	}

	summary, err := h.analyticsService.Summary(userID, window, display)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
