// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// disposableDomains contains common throwaway email providers. Addresses on
// these domains are rejected at registration before any account is created.
var disposableDomains = map[string]bool{
	"tempmail.com":       true,
	"10minutemail.com":   true,
	"throwaway.email":    true,
	"guerrillamail.com":  true,
	"mailinator.com":     true,
	"sharklasers.com":    true,
	"spam4.me":           true,
	"temp-mail.org":      true,
	"yopmail.com":        true,
	"maildrop.cc":        true,
	"trashmail.com":      true,
	"fakeinbox.com":      true,
	"temp-mailbox.com":   true,
	"emailondeck.com":    true,
	"guerrillamail.info": true,
	"grr.la":             true,
	"pokemail.net":       true,
	"spam.la":            true,
	"throwawaymail.com":  true,
	"temp.email":         true,
	"dispostable.com":    true,
	"mailnesia.com":      true,
	"tempmail.ninja":     true,
	"mytrashmail.com":    true,
	"minutemail.com":     true,
	"temp-mail.ru":       true,
	"tempmailer.com":     true,
}

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("real_email", validateRealEmail)
		_ = v.RegisterValidation("time_window", validateTimeWindow)
		_ = v.RegisterValidation("display_currency", validateDisplayCurrency)
	}
}

// IsValidEmailFormat reports whether the address has a plausible shape.
func IsValidEmailFormat(email string) bool {
	return emailRegex.MatchString(email)
}

// IsDisposableEmail reports whether the address uses a known throwaway domain.
func IsDisposableEmail(email string) bool {
	parts := strings.Split(strings.ToLower(email), "@")
	if len(parts) != 2 {
		return false
	}
	return disposableDomains[parts[1]]
}

func validateRealEmail(fl validator.FieldLevel) bool {
	email := fl.Field().String()
	return IsValidEmailFormat(email) && !IsDisposableEmail(email)
}

func validateTimeWindow(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "today", "week", "month", "3months", "6months", "year", "all":
		return true
	}
	return false
}

func validateDisplayCurrency(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "INR", "USD":
		return true
	}
	return false
}
