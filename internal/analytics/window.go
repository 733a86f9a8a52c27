// Package analytics implements the spending aggregation core: time-window
// filtering, per-category totals, and budget arithmetic. Everything here is
// a pure function of its inputs; "now" is always passed explicitly.
package analytics

import (
	"time"

	"spendwise/internal/models"
)

// Window is a named relative time range used to filter expenses.
type Window string

const (
	WindowToday   Window = "today"
	WindowWeek    Window = "week"
	WindowMonth   Window = "month"
	Window3Months Window = "3months"
	Window6Months Window = "6months"
	WindowYear    Window = "year"
	// WindowAll is the sentinel that disables filtering entirely.
	WindowAll Window = "all"
)

// Valid reports whether w is a recognized window name.
func (w Window) Valid() bool {
	switch w {
	case WindowToday, WindowWeek, WindowMonth, Window3Months, Window6Months, WindowYear, WindowAll:
		return true
	}
	return false
}

// Cutoff returns the inclusive lower bound for the window relative to now.
// Month and year windows use calendar-aware subtraction so "1 month back"
// crosses month boundaries the way users expect. The second return value is
// false for WindowAll, which has no cutoff. The cutoff never lies in the
// future.
func (w Window) Cutoff(now time.Time) (time.Time, bool) {
	var cutoff time.Time
	switch w {
	case WindowToday:
		cutoff = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case WindowWeek:
		cutoff = now.AddDate(0, 0, -7)
	case WindowMonth:
		cutoff = now.AddDate(0, -1, 0)
	case Window3Months:
		cutoff = now.AddDate(0, -3, 0)
	case Window6Months:
		cutoff = now.AddDate(0, -6, 0)
	case WindowYear:
		cutoff = now.AddDate(-1, 0, 0)
	default:
		return time.Time{}, false
	}
	if cutoff.After(now) {
		cutoff = now
	}
	return cutoff, true
}

// Days returns the number of days the window spans as of now, used for
// per-day averages. WindowAll returns 0 because it has no fixed span.
func (w Window) Days(now time.Time) int {
	cutoff, ok := w.Cutoff(now)
	if !ok {
		return 0
	}
	days := int(now.Sub(cutoff).Hours()/24 + 0.5)
	if days < 1 {
		days = 1
	}
	return days
}

// Filter returns the subset of expenses whose timestamp falls within the
// window relative to now. WindowAll short-circuits to the full input.
// Filtering is monotonic: a narrower window always yields a subset of a
// wider one for the same data and now.
func Filter(expenses []models.Expense, w Window, now time.Time) []models.Expense {
	cutoff, ok := w.Cutoff(now)
	if !ok {
		return expenses
	}
	filtered := make([]models.Expense, 0, len(expenses))
	for _, e := range expenses {
		if !e.Timestamp.Before(cutoff) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// StartOfMonth returns day 1, 00:00:00 of now's month in now's location.
func StartOfMonth(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}
