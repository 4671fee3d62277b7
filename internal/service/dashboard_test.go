package service

import (
	"testing"
	"time"

	"fintrack/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardAssembly(t *testing.T) {
	env := newTestEnv(t)
	salary := env.addCategory(t, env.owner, "Salary", core.Income, "0")
	groceries := env.addCategory(t, env.owner, "Groceries", core.Expense, "200")

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	env.addTransaction(t, env.owner, salary.ID, core.Income, "2000", monthStart)
	env.addTransaction(t, env.owner, groceries.ID, core.Expense, "80", monthStart.AddDate(0, 0, 1))

	_, err := env.budgets.Create(env.ctx, env.owner, CreateBudgetInput{
		CategoryID: groceries.ID, Amount: core.MustMoney("200"), Period: core.Monthly, StartDate: monthStart,
	})
	require.NoError(t, err)

	window := core.MonthWindow(now.Year(), now.Month())
	d, err := env.dashboard.Dashboard(env.ctx, env.owner, window)
	require.NoError(t, err)

	assert.True(t, d.Summary.TotalIncome.Equal(core.MustMoney("2000")))
	assert.True(t, d.Summary.TotalExpenses.Equal(core.MustMoney("80")))
	assert.True(t, d.Summary.NetSavings.Equal(core.MustMoney("1920")))

	require.Len(t, d.Charts.Labels, 6)
	require.Len(t, d.Charts.MonthlyIncome, 6)
	require.Len(t, d.Charts.MonthlyExpenses, 6)
	assert.Equal(t, monthStart.Format("Jan"), d.Charts.Labels[5])
	assert.True(t, d.Charts.MonthlyIncome[5].Equal(core.MustMoney("2000")))

	require.Len(t, d.CategoryBreakdown, 2)
	require.Len(t, d.Budgets, 1)
	assert.True(t, d.Budgets[0].Spent.Equal(core.MustMoney("80")))
	assert.True(t, d.Budgets[0].Remaining.Equal(core.MustMoney("120")))
}

func TestDashboardEmptyOwner(t *testing.T) {
	env := newTestEnv(t)

	d, err := env.dashboard.Dashboard(env.ctx, env.other, core.Window{})
	require.NoError(t, err)
	assert.True(t, d.Summary.TotalIncome.Equal(core.ZeroMoney()))
	assert.True(t, d.Summary.NetSavings.Equal(core.ZeroMoney()))
	assert.Empty(t, d.CategoryBreakdown)
	assert.Empty(t, d.Budgets)
	assert.Len(t, d.Charts.Labels, 6)

	_, err = env.dashboard.Dashboard(env.ctx, "", core.Window{})
	assert.True(t, core.IsUnauthenticated(err))
}

func TestDashboardCacheInvalidation(t *testing.T) {
	env := newTestEnv(t)
	groceries := env.addCategory(t, env.owner, "Groceries", core.Expense, "0")

	now := time.Now().UTC()
	window := core.MonthWindow(now.Year(), now.Month())

	d1, err := env.dashboard.Dashboard(env.ctx, env.owner, window)
	require.NoError(t, err)
	assert.True(t, d1.Summary.TotalExpenses.Equal(core.ZeroMoney()))

	// A cached read returns the same assembled value.
	d2, err := env.dashboard.Dashboard(env.ctx, env.owner, window)
	require.NoError(t, err)
	assert.Same(t, d1, d2)

	// A write for the owner drops the cache; the next read recomputes.
	env.addTransaction(t, env.owner, groceries.ID, core.Expense, "40", now)
	d3, err := env.dashboard.Dashboard(env.ctx, env.owner, window)
	require.NoError(t, err)
	assert.True(t, d3.Summary.TotalExpenses.Equal(core.MustMoney("40")))

	// Writes by one owner leave another owner's cache alone.
	d4, err := env.dashboard.Dashboard(env.ctx, env.other, window)
	require.NoError(t, err)
	env.addTransaction(t, env.owner, groceries.ID, core.Expense, "1", now)
	d5, err := env.dashboard.Dashboard(env.ctx, env.other, window)
	require.NoError(t, err)
	assert.Same(t, d4, d5)
}
