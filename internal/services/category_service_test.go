package services

import (
	"testing"
	"time"

	"spendwise/internal/testutil"
)

func TestCreateCategory(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		category, err := svc.CreateCategory(user.ID, "Groceries", "🛒")
		testutil.AssertNoError(t, err)
		if category.Name != "Groceries" || category.Symbol != "🛒" {
			t.Errorf("unexpected category: %+v", category)
		}
	})

	t.Run("random_symbol_when_omitted", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		category, err := svc.CreateCategory(user.ID, "Misc", "")
		testutil.AssertNoError(t, err)
		if category.Symbol == "" {
			t.Error("expected a glyph to be assigned")
		}
	})

	t.Run("duplicate_name_per_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "Food", "")
		testutil.AssertNoError(t, err)
		_, err = svc.CreateCategory(user.ID, "Food", "")
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY")
	})

	t.Run("same_name_different_users", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(alice.ID, "Food", "")
		testutil.AssertNoError(t, err)
		_, err = svc.CreateCategory(bob.ID, "Food", "")
		testutil.AssertNoError(t, err)
	})

	t.Run("blank_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateCategory(user.ID, "   ", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetUserCategories(t *testing.T) {
	t.Run("newest_first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		older := testutil.CreateTestCategoryWithName(t, db, user.ID, "Older")
		db.Model(older).Update("created_at", time.Now().Add(-time.Hour))
		testutil.CreateTestCategoryWithName(t, db, user.ID, "Newer")

		categories, err := svc.GetUserCategories(user.ID)
		testutil.AssertNoError(t, err)
		if len(categories) != 2 {
			t.Fatalf("expected 2 categories, got %d", len(categories))
		}
		if categories[0].Name != "Newer" {
			t.Errorf("expected Newer first, got %s", categories[0].Name)
		}
	})

	t.Run("scoped_to_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)
		testutil.CreateTestCategory(t, db, alice.ID)

		categories, err := svc.GetUserCategories(bob.ID)
		testutil.AssertNoError(t, err)
		if len(categories) != 0 {
			t.Errorf("expected no categories for bob, got %d", len(categories))
		}
	})
}

func TestUpdateCategory(t *testing.T) {
	t.Run("rename", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategoryWithName(t, db, user.ID, "Old")

		updated, err := svc.UpdateCategory(user.ID, category.ID, "New", "")
		testutil.AssertNoError(t, err)
		if updated.Name != "New" {
			t.Errorf("expected New, got %s", updated.Name)
		}
	})

	t.Run("rename_to_existing_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestCategoryWithName(t, db, user.ID, "Taken")
		category := testutil.CreateTestCategoryWithName(t, db, user.ID, "Mine")

		_, err := svc.UpdateCategory(user.ID, category.ID, "Taken", "")
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY")
	})

	t.Run("rename_leaves_expense_names_alone", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		expSvc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategoryWithName(t, db, user.ID, "Food")

		expense, err := expSvc.CreateExpense(user.ID, "100", &category.ID, "", "lunch", time.Now())
		testutil.AssertNoError(t, err)

		_, err = svc.UpdateCategory(user.ID, category.ID, "Dining", "")
		testutil.AssertNoError(t, err)

		got, err := expSvc.GetExpenseByID(user.ID, expense.ID)
		testutil.AssertNoError(t, err)
		if got.CategoryName != "Food" {
			t.Errorf("expected the denormalized name to stay Food, got %s", got.CategoryName)
		}
	})

	t.Run("other_users_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db, alice.ID)

		_, err := svc.UpdateCategory(bob.ID, category.ID, "Stolen", "")
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("delete_keeps_expenses", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		expSvc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategoryWithName(t, db, user.ID, "Food")

		expense, err := expSvc.CreateExpense(user.ID, "100", &category.ID, "", "lunch", time.Now())
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.DeleteCategory(user.ID, category.ID))

		_, err = svc.GetCategoryByID(user.ID, category.ID)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")

		got, err := expSvc.GetExpenseByID(user.ID, expense.ID)
		testutil.AssertNoError(t, err)
		if got.CategoryName != "Food" {
			t.Errorf("expected the orphaned expense to keep its name, got %s", got.CategoryName)
		}
	})

	t.Run("missing_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		err := svc.DeleteCategory(user.ID, "does-not-exist")
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}
