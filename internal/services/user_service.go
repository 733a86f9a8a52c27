package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"
	"gorm.io/gorm"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/logger"
	"spendwise/internal/middleware"
	"spendwise/internal/models"
	"spendwise/internal/validator"
)

const verificationTokenTTL = 24 * time.Hour

// userService handles account and session business logic.
type userService struct {
	db             *gorm.DB
	mailer         Mailer
	baseURL        string
	googleClientID string

	// Stubbed in tests.
	verifyIDToken func(ctx context.Context, token, audience string) (*idtoken.Payload, error)
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB, mailer Mailer, baseURL, googleClientID string) UserServicer {
	return &userService{
		db:             db,
		mailer:         mailer,
		baseURL:        baseURL,
		googleClientID: googleClientID,
		verifyIDToken:  idtoken.Validate,
	}
}

// CreateUser registers a new account and sends the verification email.
// A failed email send or any later non-critical write is logged but does not
// roll back the registration.
func (s *userService) CreateUser(name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" || email == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name, email and password are required")
	}
	if !validator.IsValidEmailFormat(email) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid email format")
	}
	if validator.IsDisposableEmail(email) {
		return nil, apperrors.ErrDisposableEmail
	}
	if len(password) < 6 {
		return nil, apperrors.ErrWeakPassword
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	token, err := middleware.NewActionToken()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	expires := time.Now().Add(verificationTokenTTL)

	user := &models.User{
		Name:                  name,
		Email:                 email,
		Password:              string(hashedPassword),
		EmailVerified:         false,
		VerificationTokenHash: middleware.HashToken(token),
		VerificationExpiresAt: &expires,
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.mailer.SendVerificationEmail(user.Email, user.Name, s.verificationLink(token)); err != nil {
		// Account creation succeeded; the user can request a resend.
		logger.Get().Warnw("failed to send verification email", "email", user.Email, "error", err)
	}

	return user, nil
}

// AttemptLogin checks credentials and the verification state, then records
// the login time.
func (s *userService) AttemptLogin(email, password string) (*models.User, error) {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.EmailVerified {
		return nil, apperrors.ErrEmailNotVerified
	}

	now := time.Now()
	if err := s.db.Model(user).Update("last_login_at", now).Error; err != nil {
		logger.Get().Warnw("failed to record last login", "user_id", user.ID, "error", err)
	}
	user.LastLoginAt = &now

	return user, nil
}

// GetUserByEmail retrieves a user by email
func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// VerifyEmail redeems a verification token and marks the account verified.
func (s *userService) VerifyEmail(token string) (*models.User, error) {
	var user models.User
	err := s.db.Where("verification_token_hash = ?", middleware.HashToken(token)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if user.VerificationExpiresAt == nil || time.Now().After(*user.VerificationExpiresAt) {
		return nil, apperrors.ErrInvalidToken
	}

	updates := map[string]interface{}{
		"email_verified":          true,
		"verification_token_hash": "",
		"verification_expires_at": nil,
	}
	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	user.EmailVerified = true

	return &user, nil
}

// ResendVerification issues a fresh verification token and emails it.
func (s *userService) ResendVerification(email string) error {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		return apperrors.ErrNoAccountFound
	}
	if user.EmailVerified {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Email is already verified")
	}

	token, err := middleware.NewActionToken()
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	expires := time.Now().Add(verificationTokenTTL)

	updates := map[string]interface{}{
		"verification_token_hash": middleware.HashToken(token),
		"verification_expires_at": expires,
	}
	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.mailer.SendVerificationEmail(user.Email, user.Name, s.verificationLink(token)); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GoogleSignIn validates a Google ID token and signs the user in,
// provisioning the account on first use. Federated accounts are considered
// verified by the provider.
func (s *userService) GoogleSignIn(ctx context.Context, idToken string) (*models.User, error) {
	if s.googleClientID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrFederatedSignIn, "Google sign-in is not configured")
	}

	payload, err := s.verifyIDToken(ctx, idToken, s.googleClientID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrFederatedSignIn, err)
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, apperrors.ErrFederatedSignIn
	}
	name, _ := payload.Claims["name"].(string)

	user, err := s.GetUserByEmail(email)
	if err != nil {
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) || appErr.Code != apperrors.ErrUserNotFound.Code {
			return nil, err
		}

		// First federated sign-in: provision the profile with an unusable
		// random password. Password login stays possible via the reset flow.
		random, tokenErr := middleware.NewActionToken()
		if tokenErr != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, tokenErr)
		}
		hashed, hashErr := bcrypt.GenerateFromPassword([]byte(random), bcrypt.DefaultCost)
		if hashErr != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, hashErr)
		}

		user = &models.User{
			Name:          name,
			Email:         strings.ToLower(email),
			Password:      string(hashed),
			EmailVerified: true,
		}
		if err := s.db.Create(user).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	now := time.Now()
	updates := map[string]interface{}{
		"email_verified": true,
		"last_login_at":  now,
	}
	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		logger.Get().Warnw("failed to record federated login", "user_id", user.ID, "error", err)
	}
	user.EmailVerified = true
	user.LastLoginAt = &now

	return user, nil
}

func (s *userService) verificationLink(token string) string {
	return s.baseURL + "/api/v1/auth/verify-email?token=" + token
}
