package models

import "time"

// Expense represents a single spending entry.
//
// Amount is persisted as a decimal string in the canonical currency (INR)
// and parsed at read time; malformed values are treated as 0 so a single
// bad record cannot poison an aggregation.
//
// CategoryName is a denormalized copy of the category's name at write time.
// CategoryID, when set, is the stable reference used to resolve the current
// name and symbol; expenses whose category was deleted keep CategoryName
// as plain text and fall back to a default glyph on display.
type Expense struct {
	Base
	UserID       string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount       string    `gorm:"not null" json:"amount"`
	CategoryID   *string   `gorm:"type:uuid" json:"category_id,omitempty"`
	CategoryName string    `gorm:"not null" json:"category"`
	Description  string    `json:"description"`
	Timestamp    time.Time `gorm:"not null;index" json:"timestamp"`
}
