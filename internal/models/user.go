package models

import "time"

// User represents the user profile. It also carries the single
// monthly budget ceiling, which is overwritten in place (no history).
type User struct {
	Base
	Email         string     `gorm:"uniqueIndex;not null" json:"email"`
	Password      string     `gorm:"not null" json:"-"`
	Name          string     `json:"name"`
	EmailVerified bool       `gorm:"default:false" json:"email_verified"`
	MonthlyBudget float64    `gorm:"default:0" json:"monthly_budget"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`

	// Single-use token hashes for email verification and password reset.
	VerificationTokenHash string     `gorm:"size:64" json:"-"`
	VerificationExpiresAt *time.Time `json:"-"`
	ResetTokenHash        string     `gorm:"size:64" json:"-"`
	ResetExpiresAt        *time.Time `json:"-"`

	Categories []Category `gorm:"foreignKey:UserID" json:"categories,omitempty"`
	Expenses   []Expense  `gorm:"foreignKey:UserID" json:"expenses,omitempty"`
}
