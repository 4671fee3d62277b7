package service

import (
	"testing"
	"time"

	"fintrack/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalByKindAndNetSavings(t *testing.T) {
	env := newTestEnv(t)
	salary := env.addCategory(t, env.owner, "Salary", core.Income, "0")
	groceries := env.addCategory(t, env.owner, "Groceries", core.Expense, "0")

	env.addTransaction(t, env.owner, salary.ID, core.Income, "2000", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	env.addTransaction(t, env.owner, groceries.ID, core.Expense, "0.10", time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC))
	env.addTransaction(t, env.owner, groceries.ID, core.Expense, "0.20", time.Date(2025, 3, 6, 0, 0, 0, 0, time.UTC))

	window := core.MonthWindow(2025, time.March)

	income, err := env.reports.TotalByKind(env.ctx, env.owner, core.Income, window)
	require.NoError(t, err)
	assert.True(t, income.Equal(core.MustMoney("2000")))

	// Decimal accumulation: 0.10 + 0.20 is exactly 0.30.
	expenses, err := env.reports.TotalByKind(env.ctx, env.owner, core.Expense, window)
	require.NoError(t, err)
	assert.True(t, expenses.Equal(core.MustMoney("0.30")))

	net, err := env.reports.NetSavings(env.ctx, env.owner, window)
	require.NoError(t, err)
	assert.True(t, net.Equal(core.MustMoney("1999.70")))

	// A window with no rows yields exact zeros, not an error.
	empty := core.MonthWindow(2020, time.January)
	zero, err := env.reports.NetSavings(env.ctx, env.owner, empty)
	require.NoError(t, err)
	assert.True(t, zero.Equal(core.ZeroMoney()))

	// Another owner's window is empty regardless of data.
	foreign, err := env.reports.TotalByKind(env.ctx, env.other, core.Income, window)
	require.NoError(t, err)
	assert.True(t, foreign.Equal(core.ZeroMoney()))
}

func TestCategoryBreakdown(t *testing.T) {
	env := newTestEnv(t)
	groceries := env.addCategory(t, env.owner, "Groceries", core.Expense, "200")
	travel := env.addCategory(t, env.owner, "Travel", core.Expense, "0")
	env.addCategory(t, env.owner, "Unused", core.Expense, "50")

	env.addTransaction(t, env.owner, groceries.ID, core.Expense, "50", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	env.addTransaction(t, env.owner, groceries.ID, core.Expense, "30", time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC))
	env.addTransaction(t, env.owner, travel.ID, core.Expense, "120", time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC))

	breakdown, err := env.reports.CategoryBreakdown(env.ctx, env.owner, core.MonthWindow(2025, time.March))
	require.NoError(t, err)
	require.Len(t, breakdown, 2, "categories without transactions are omitted")

	// Ordered by total descending.
	assert.Equal(t, "Travel", breakdown[0].CategoryName)
	assert.True(t, breakdown[0].Total.Equal(core.MustMoney("120")))
	assert.Equal(t, 1, breakdown[0].Count)

	assert.Equal(t, "Groceries", breakdown[1].CategoryName)
	assert.True(t, breakdown[1].Total.Equal(core.MustMoney("80")))
	assert.Equal(t, 2, breakdown[1].Count)
	assert.True(t, breakdown[1].BudgetLimit.Equal(core.MustMoney("200")))
}

func TestCategoryBreakdownSplitsMixedKinds(t *testing.T) {
	env := newTestEnv(t)
	c := env.addCategory(t, env.owner, "Side gig", core.Income, "0")

	// A category can carry transactions of both kinds; each kind is its
	// own bucket.
	env.addTransaction(t, env.owner, c.ID, core.Income, "500", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	env.addTransaction(t, env.owner, c.ID, core.Expense, "75", time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC))

	breakdown, err := env.reports.CategoryBreakdown(env.ctx, env.owner, core.MonthWindow(2025, time.March))
	require.NoError(t, err)
	require.Len(t, breakdown, 2)
	assert.Equal(t, core.Income, breakdown[0].Kind)
	assert.Equal(t, core.Expense, breakdown[1].Kind)
}

func TestMonthlyTrend(t *testing.T) {
	env := newTestEnv(t)
	salary := env.addCategory(t, env.owner, "Salary", core.Income, "0")
	groceries := env.addCategory(t, env.owner, "Groceries", core.Expense, "0")

	now := time.Now().UTC()
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastMonth := thisMonth.AddDate(0, -1, 0)

	env.addTransaction(t, env.owner, salary.ID, core.Income, "2000", thisMonth)
	env.addTransaction(t, env.owner, groceries.ID, core.Expense, "300", lastMonth)
	// Too old to land in a six month window.
	env.addTransaction(t, env.owner, groceries.ID, core.Expense, "999", thisMonth.AddDate(0, -6, 0))

	trend, err := env.reports.MonthlyTrend(env.ctx, env.owner, 6)
	require.NoError(t, err)
	require.Len(t, trend, 6, "always exactly the requested number of months")

	assert.Equal(t, thisMonth.Format("Jan"), trend[5].Label)
	assert.True(t, trend[5].Income.Equal(core.MustMoney("2000")))
	assert.True(t, trend[5].Expense.Equal(core.ZeroMoney()))

	assert.Equal(t, lastMonth.Format("Jan"), trend[4].Label)
	assert.True(t, trend[4].Expense.Equal(core.MustMoney("300")))

	// Months without data report explicit zeros.
	for _, p := range trend[:4] {
		assert.True(t, p.Income.Equal(core.ZeroMoney()))
		assert.True(t, p.Expense.Equal(core.ZeroMoney()))
	}

	_, err = env.reports.MonthlyTrend(env.ctx, env.owner, 0)
	assert.True(t, core.IsValidation(err))
}

func TestBudgetSpendScenario(t *testing.T) {
	env := newTestEnv(t)
	groceries := env.addCategory(t, env.owner, "Groceries", core.Expense, "200")

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	env.addTransaction(t, env.owner, groceries.ID, core.Expense, "50", monthStart.AddDate(0, 0, 2))
	env.addTransaction(t, env.owner, groceries.ID, core.Expense, "30", monthStart.AddDate(0, 0, 5))
	// Before the budget starts; must not count.
	env.addTransaction(t, env.owner, groceries.ID, core.Expense, "70", monthStart.AddDate(0, 0, -3))

	b, err := env.budgets.Create(env.ctx, env.owner, CreateBudgetInput{
		CategoryID: groceries.ID,
		Amount:     core.MustMoney("200"),
		Period:     core.Monthly,
		StartDate:  monthStart,
	})
	require.NoError(t, err)

	spent, err := env.reports.BudgetSpend(env.ctx, env.owner, b)
	require.NoError(t, err)
	assert.True(t, spent.Equal(core.MustMoney("80")))

	status, err := env.budgets.Get(env.ctx, env.owner, b.ID)
	require.NoError(t, err)
	assert.True(t, status.Spent.Equal(core.MustMoney("80")))
	assert.True(t, status.Remaining.Equal(core.MustMoney("120")))
}
