package testutil_test

import (
	"testing"
	"time"

	"spendwise/internal/errors"
	"spendwise/internal/testutil"
)

func TestSetupTestDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	// Verify all tables exist by doing a simple count query on each model.
	var count int64
	for _, table := range []string{"users", "categories", "expenses", "password_resets"} {
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Errorf("table %q should exist after migration: %v", table, err)
		}
	}
}

func TestFixtures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)

	user := testutil.CreateTestUser(t, db)
	if user.ID == "" {
		t.Fatal("user should have a non-empty ID")
	}
	if !user.EmailVerified {
		t.Error("fixture users should be verified")
	}

	other := testutil.CreateTestUser(t, db)
	if other.Email == user.Email {
		t.Error("fixture emails should be unique")
	}

	category := testutil.CreateTestCategoryWithName(t, db, user.ID, "Food")
	if category.Name != "Food" {
		t.Errorf("expected category name Food, got %s", category.Name)
	}

	expense := testutil.CreateTestExpense(t, db, user.ID, "250", category.Name, time.Now())
	if expense.Amount != "250" {
		t.Errorf("expected amount 250, got %s", expense.Amount)
	}
	if expense.CategoryName != "Food" {
		t.Errorf("expected denormalized category name Food, got %s", expense.CategoryName)
	}
}

func TestAssertAppError(t *testing.T) {
	err := errors.WithMessage(errors.ErrCategoryNotFound, "custom message")
	testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
}

func TestAssertNoError(t *testing.T) {
	testutil.AssertNoError(t, nil)
}
