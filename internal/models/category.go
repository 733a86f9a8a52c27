package models

// Category represents a user-defined spending category with a display glyph.
// Names are unique per user. Deleting a category never cascades to expenses;
// they keep their denormalized category name (see Expense).
type Category struct {
	Base
	UserID string `gorm:"type:uuid;not null;index" json:"user_id"`
	Name   string `gorm:"not null" json:"name"`
	Symbol string `json:"symbol"`
}
