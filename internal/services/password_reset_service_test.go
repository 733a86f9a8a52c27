package services

import (
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"spendwise/internal/models"
	"spendwise/internal/testutil"
)

func newTestResetService(t *testing.T) (*passwordResetService, *mockMailer, *gorm.DB, func()) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	mailer := &mockMailer{}
	svc := NewPasswordResetService(db, mailer, "http://localhost:8080").(*passwordResetService)
	return svc, mailer, db, func() { testutil.TeardownTestDB(t, db) }
}

func TestRequestReset(t *testing.T) {
	t.Run("sends_and_counts", func(t *testing.T) {
		svc, mailer, db, teardown := newTestResetService(t)
		defer teardown()
		user := testutil.CreateTestUser(t, db)

		testutil.AssertNoError(t, svc.RequestReset(user.Email))

		if len(mailer.resets) != 1 {
			t.Fatalf("expected 1 reset email, got %d", len(mailer.resets))
		}

		var record models.PasswordReset
		testutil.AssertNoError(t, db.Where("email = ?", user.Email).First(&record).Error)
		if record.Attempts != 1 {
			t.Errorf("expected 1 attempt recorded, got %d", record.Attempts)
		}
	})

	t.Run("sixth_request_within_hour_blocked", func(t *testing.T) {
		svc, mailer, db, teardown := newTestResetService(t)
		defer teardown()
		user := testutil.CreateTestUser(t, db)

		base := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
		for i := 0; i < 5; i++ {
			svc.now = func() time.Time { return base.Add(time.Duration(i) * time.Minute) }
			testutil.AssertNoError(t, svc.RequestReset(user.Email))
		}

		svc.now = func() time.Time { return base.Add(10 * time.Minute) }
		err := svc.RequestReset(user.Email)
		testutil.AssertAppError(t, err, "RESET_RATE_LIMITED")
		if len(mailer.resets) != 5 {
			t.Errorf("expected the blocked request to send nothing, got %d emails", len(mailer.resets))
		}
	})

	t.Run("window_is_rolling", func(t *testing.T) {
		svc, _, db, teardown := newTestResetService(t)
		defer teardown()
		user := testutil.CreateTestUser(t, db)

		base := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
		svc.now = func() time.Time { return base }
		for i := 0; i < 5; i++ {
			testutil.AssertNoError(t, svc.RequestReset(user.Email))
		}

		// An hour of silence resets the counter to 1 on the next request.
		svc.now = func() time.Time { return base.Add(time.Hour + time.Minute) }
		testutil.AssertNoError(t, svc.RequestReset(user.Email))

		var record models.PasswordReset
		testutil.AssertNoError(t, db.Where("email = ?", user.Email).First(&record).Error)
		if record.Attempts != 1 {
			t.Errorf("expected counter reset to 1, got %d", record.Attempts)
		}
	})

	t.Run("unknown_email_does_not_count", func(t *testing.T) {
		svc, mailer, db, teardown := newTestResetService(t)
		defer teardown()

		err := svc.RequestReset("ghost@example.com")
		testutil.AssertAppError(t, err, "NO_ACCOUNT_FOUND")
		if len(mailer.resets) != 0 {
			t.Error("expected no email for an unknown address")
		}

		var count int64
		testutil.AssertNoError(t, db.Model(&models.PasswordReset{}).Count(&count).Error)
		if count != 0 {
			t.Errorf("expected no counter rows, got %d", count)
		}
	})

	t.Run("send_failure_does_not_burn_attempt", func(t *testing.T) {
		svc, mailer, db, teardown := newTestResetService(t)
		defer teardown()
		user := testutil.CreateTestUser(t, db)
		mailer.err = errors.New("smtp down")

		err := svc.RequestReset(user.Email)
		testutil.AssertAppError(t, err, "INTERNAL_ERROR")

		var count int64
		testutil.AssertNoError(t, db.Model(&models.PasswordReset{}).Where("email = ?", user.Email).Count(&count).Error)
		if count != 0 {
			t.Error("expected no attempt recorded for a failed send")
		}
	})
}

func TestConfirmReset(t *testing.T) {
	t.Run("round_trip", func(t *testing.T) {
		svc, mailer, db, teardown := newTestResetService(t)
		defer teardown()
		user := testutil.CreateTestUser(t, db)

		testutil.AssertNoError(t, svc.RequestReset(user.Email))
		token := tokenFromLink(t, mailer.lastLink)

		testutil.AssertNoError(t, svc.ConfirmReset(token, "brandnewpass"))

		var updated models.User
		testutil.AssertNoError(t, db.Where("id = ?", user.ID).First(&updated).Error)
		if bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("brandnewpass")) != nil {
			t.Error("expected the new password to verify")
		}

		// The token is single use.
		err := svc.ConfirmReset(token, "anotherpass1")
		testutil.AssertAppError(t, err, "INVALID_TOKEN")
	})

	t.Run("expired_token", func(t *testing.T) {
		svc, mailer, db, teardown := newTestResetService(t)
		defer teardown()
		user := testutil.CreateTestUser(t, db)

		base := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
		svc.now = func() time.Time { return base }
		testutil.AssertNoError(t, svc.RequestReset(user.Email))
		token := tokenFromLink(t, mailer.lastLink)

		svc.now = func() time.Time { return base.Add(2 * time.Hour) }
		err := svc.ConfirmReset(token, "brandnewpass")
		testutil.AssertAppError(t, err, "INVALID_TOKEN")
	})

	t.Run("short_password", func(t *testing.T) {
		svc, _, _, teardown := newTestResetService(t)
		defer teardown()

		err := svc.ConfirmReset("whatever", "12345")
		testutil.AssertAppError(t, err, "WEAK_PASSWORD")
	})

	t.Run("garbage_token", func(t *testing.T) {
		svc, _, _, teardown := newTestResetService(t)
		defer teardown()

		err := svc.ConfirmReset("garbage", "brandnewpass")
		testutil.AssertAppError(t, err, "INVALID_TOKEN")
	})
}
