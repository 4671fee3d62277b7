package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// testEnv wires the full service graph over an in-memory database.
type testEnv struct {
	store        *storage.Store
	dash         *DashboardCache
	categories   *CategoryService
	transactions *TransactionService
	budgets      *BudgetService
	reports      *ReportService
	dashboard    *DashboardService
	owner        string
	other        string
	ctx          context.Context
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	logger := log.New(log.Config{Handler: slog.NewTextHandler(io.Discard, nil)})
	dash := NewDashboardCache(64, time.Minute)
	reports := NewReportService(store, logger)
	categories := NewCategoryService(store, logger, dash)
	transactions := NewTransactionService(store, categories, logger, dash)
	budgets := NewBudgetService(store, reports, logger, dash)
	dashboard := NewDashboardService(reports, budgets, dash, logger)

	env := &testEnv{
		store:        store,
		dash:         dash,
		categories:   categories,
		transactions: transactions,
		budgets:      budgets,
		reports:      reports,
		dashboard:    dashboard,
		ctx:          context.Background(),
	}
	env.owner = env.addUser(t, "alice")
	env.other = env.addUser(t, "bob")
	return env
}

func (e *testEnv) addUser(t *testing.T, username string) string {
	t.Helper()
	u := &core.User{
		ID:        uuid.NewString(),
		Username:  username,
		Account:   core.LocalAccount{PasswordHash: "x"},
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, e.store.CreateUser(e.ctx, u))
	return u.ID
}

func (e *testEnv) addCategory(t *testing.T, owner, name string, kind core.Kind, limit string) *core.Category {
	t.Helper()
	c, err := e.categories.Create(e.ctx, owner, name, kind, core.MustMoney(limit))
	require.NoError(t, err)
	return c
}

func (e *testEnv) addTransaction(t *testing.T, owner, categoryID string, kind core.Kind, amount string, date time.Time) *core.Transaction {
	t.Helper()
	tx, err := e.transactions.Create(e.ctx, owner, CreateTransactionInput{
		Amount:     core.MustMoney(amount),
		Date:       date,
		Kind:       kind,
		CategoryID: categoryID,
	})
	require.NoError(t, err)
	return tx
}
