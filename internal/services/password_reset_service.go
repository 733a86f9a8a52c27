package services

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/middleware"
	"spendwise/internal/models"
)

const (
	resetTokenTTL    = time.Hour
	maxResetAttempts = 5
	resetWindow      = time.Hour
)

// passwordResetService handles the rate-limited password-reset flow.
type passwordResetService struct {
	db      *gorm.DB
	mailer  Mailer
	baseURL string

	// Overridable in tests.
	now func() time.Time
}

// NewPasswordResetService creates a new PasswordResetServicer.
func NewPasswordResetService(db *gorm.DB, mailer Mailer, baseURL string) PasswordResetServicer {
	return &passwordResetService{db: db, mailer: mailer, baseURL: baseURL, now: time.Now}
}

// RequestReset emails a reset link, limited to 5 requests per rolling hour
// per email. The attempt counter only advances after a successful send, so a
// delivery failure never burns an attempt. Unknown emails are reported
// without touching the counter.
func (s *passwordResetService) RequestReset(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNoAccountFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	now := s.now()

	var record models.PasswordReset
	attempts := 0
	err := s.db.Where("email = ?", email).First(&record).Error
	switch {
	case err == nil:
		attempts = record.Attempts
		// The window is rolling: an hour of silence resets the counter.
		if now.Sub(record.LastAttemptTime) > resetWindow {
			attempts = 0
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// First request for this email.
	default:
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if attempts >= maxResetAttempts {
		return apperrors.ErrResetRateLimited
	}

	token, err := middleware.NewActionToken()
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	expires := now.Add(resetTokenTTL)

	updates := map[string]interface{}{
		"reset_token_hash": middleware.HashToken(token),
		"reset_expires_at": expires,
	}
	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.mailer.SendPasswordResetEmail(user.Email, s.resetLink(token)); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.recordAttempt(email, attempts+1, now)
}

// recordAttempt merge-writes the counter: only attempts and the last attempt
// time change, whether the row is new or existing.
func (s *passwordResetService) recordAttempt(email string, attempts int, now time.Time) error {
	record := models.PasswordReset{Email: email}
	if err := s.db.Where("email = ?", email).FirstOrCreate(&record).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := map[string]interface{}{
		"attempts":          attempts,
		"last_attempt_time": now,
	}
	if err := s.db.Model(&record).Updates(updates).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ConfirmReset redeems a reset token and sets the new password. The token is
// single use; redeeming clears it.
func (s *passwordResetService) ConfirmReset(token, newPassword string) error {
	if len(newPassword) < 6 {
		return apperrors.ErrWeakPassword
	}

	var user models.User
	err := s.db.Where("reset_token_hash = ?", middleware.HashToken(token)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrInvalidToken
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if user.ResetExpiresAt == nil || s.now().After(*user.ResetExpiresAt) {
		return apperrors.ErrInvalidToken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := map[string]interface{}{
		"password":         string(hashed),
		"reset_token_hash": "",
		"reset_expires_at": nil,
	}
	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func (s *passwordResetService) resetLink(token string) string {
	return s.baseURL + "/reset-password?token=" + token
}
