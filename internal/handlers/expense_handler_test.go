package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "spendwise/internal/errors"
	"spendwise/internal/models"
	"spendwise/internal/pagination"
	"spendwise/internal/services"
)

// --- mock expense service ---

type mockExpenseService struct {
	createExpenseFn   func(userID, amount string, categoryID *string, categoryName, description string, timestamp time.Time) (*models.Expense, error)
	getUserExpensesFn func(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error)
	getExpenseByIDFn  func(userID, expenseID string) (*models.Expense, error)
	updateExpenseFn   func(userID, expenseID, amount string, categoryID *string, categoryName, description string) (*models.Expense, error)
	deleteExpenseFn   func(userID, expenseID string) error
}

func (m *mockExpenseService) CreateExpense(userID, amount string, categoryID *string, categoryName, description string, timestamp time.Time) (*models.Expense, error) {
	if m.createExpenseFn != nil {
		return m.createExpenseFn(userID, amount, categoryID, categoryName, description, timestamp)
	}
	return &models.Expense{}, nil
}

func (m *mockExpenseService) GetUserExpenses(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error) {
	if m.getUserExpensesFn != nil {
		return m.getUserExpensesFn(userID, page)
	}
	resp := pagination.NewPageResponse([]models.Expense{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockExpenseService) GetExpenseByID(userID, expenseID string) (*models.Expense, error) {
	if m.getExpenseByIDFn != nil {
		return m.getExpenseByIDFn(userID, expenseID)
	}
	return &models.Expense{}, nil
}

func (m *mockExpenseService) UpdateExpense(userID, expenseID, amount string, categoryID *string, categoryName, description string) (*models.Expense, error) {
	if m.updateExpenseFn != nil {
		return m.updateExpenseFn(userID, expenseID, amount, categoryID, categoryName, description)
	}
	return &models.Expense{}, nil
}

func (m *mockExpenseService) DeleteExpense(userID, expenseID string) error {
	if m.deleteExpenseFn != nil {
		return m.deleteExpenseFn(userID, expenseID)
	}
	return nil
}

var _ services.ExpenseServicer = (*mockExpenseService)(nil)

const testExpenseID = "0195f9b2-0000-7000-8000-0000000000ee"

func setupExpenseRouter(handler *ExpenseHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.POST("/expenses", handler.CreateExpense)
	auth.GET("/expenses", handler.GetExpenses)
	auth.GET("/expenses/:id", handler.GetExpense)
	auth.PUT("/expenses/:id", handler.UpdateExpense)
	auth.DELETE("/expenses/:id", handler.DeleteExpense)
	return r
}

func TestExpenseHandler_CreateExpense(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockExpenseService{
			createExpenseFn: func(userID, amount string, _ *string, categoryName, description string, _ time.Time) (*models.Expense, error) {
				return &models.Expense{
					Base:         models.Base{ID: testExpenseID},
					UserID:       userID,
					Amount:       amount,
					CategoryName: categoryName,
					Description:  description,
					Timestamp:    time.Now(),
				}, nil
			},
		}
		handler := NewExpenseHandler(svc, &mockCategoryService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "POST", "/expenses",
			`{"amount":"150.50","category":"Food","description":"lunch"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		expense := result["expense"].(map[string]interface{})
		if expense["amount"] != "150.50" {
			t.Errorf("expected amount 150.50, got %v", expense["amount"])
		}
	})

	t.Run("returns 400 on missing amount", func(t *testing.T) {
		handler := NewExpenseHandler(&mockExpenseService{}, &mockCategoryService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "POST", "/expenses", `{"category":"Food"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 on unknown category id", func(t *testing.T) {
		svc := &mockExpenseService{
			createExpenseFn: func(_, _ string, _ *string, _, _ string, _ time.Time) (*models.Expense, error) {
				return nil, apperrors.ErrCategoryNotFound
			},
		}
		handler := NewExpenseHandler(svc, &mockCategoryService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "POST", "/expenses",
			`{"amount":"10","category_id":"`+testCategoryID+`"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestExpenseHandler_GetExpenses(t *testing.T) {
	t.Run("resolves symbols and falls back for orphans", func(t *testing.T) {
		expSvc := &mockExpenseService{
			getUserExpensesFn: func(_ string, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error) {
				resp := pagination.NewPageResponse([]models.Expense{
					{Base: models.Base{ID: testExpenseID}, Amount: "10", CategoryName: "Food", Timestamp: time.Now()},
					{Base: models.Base{ID: testCategoryID}, Amount: "20", CategoryName: "Ghost", Timestamp: time.Now()},
				}, 1, 20, 2)
				return &resp, nil
			},
		}
		catSvc := &mockCategoryService{
			getUserCategoriesFn: func(string) ([]models.Category, error) {
				return []models.Category{{Name: "Food", Symbol: "🍔"}}, nil
			},
		}
		handler := NewExpenseHandler(expSvc, catSvc)
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "GET", "/expenses", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		expenses := result["expenses"].([]interface{})
		if len(expenses) != 2 {
			t.Fatalf("expected 2 expenses, got %d", len(expenses))
		}
		first := expenses[0].(map[string]interface{})
		if first["symbol"] != "🍔" {
			t.Errorf("expected resolved symbol, got %v", first["symbol"])
		}
		second := expenses[1].(map[string]interface{})
		if second["symbol"] != "💸" {
			t.Errorf("expected default symbol for orphan, got %v", second["symbol"])
		}
	})

	t.Run("returns 400 on bad page size", func(t *testing.T) {
		handler := NewExpenseHandler(&mockExpenseService{}, &mockCategoryService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "GET", "/expenses?page_size=9999", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestExpenseHandler_UpdateExpense(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		svc := &mockExpenseService{
			updateExpenseFn: func(userID, expenseID, amount string, _ *string, _, description string) (*models.Expense, error) {
				return &models.Expense{
					Base:        models.Base{ID: expenseID},
					UserID:      userID,
					Amount:      amount,
					Description: description,
				}, nil
			},
		}
		handler := NewExpenseHandler(svc, &mockCategoryService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "PUT", "/expenses/"+testExpenseID,
			`{"amount":"25.75","description":"dinner"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 404 on other users expense", func(t *testing.T) {
		svc := &mockExpenseService{
			updateExpenseFn: func(_, _, _ string, _ *string, _, _ string) (*models.Expense, error) {
				return nil, apperrors.ErrExpenseNotFound
			},
		}
		handler := NewExpenseHandler(svc, &mockCategoryService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "PUT", "/expenses/"+testExpenseID, `{"amount":"25"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "EXPENSE_NOT_FOUND")
	})
}

func TestExpenseHandler_DeleteExpense(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		handler := NewExpenseHandler(&mockExpenseService{}, &mockCategoryService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "DELETE", "/expenses/"+testExpenseID, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 400 on malformed id", func(t *testing.T) {
		handler := NewExpenseHandler(&mockExpenseService{}, &mockCategoryService{})
		r := setupExpenseRouter(handler)

		rec := doRequest(r, "DELETE", "/expenses/42", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
