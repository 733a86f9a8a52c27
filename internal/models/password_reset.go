package models

import "time"

// PasswordReset tracks reset-email requests per address inside a rolling
// one-hour window. Keyed by email rather than user ID because the requester
// is not authenticated. Attempts only counts successful sends; the record
// is merge-written so unrelated fields are never clobbered.
type PasswordReset struct {
	Base
	Email           string    `gorm:"uniqueIndex;not null" json:"email"`
	Attempts        int       `gorm:"default:0" json:"attempts"`
	LastAttemptTime time.Time `json:"last_attempt_time"`
}
