package service

import (
	"context"
	"sort"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

// ReportService is the read side: windowed totals, category breakdowns,
// monthly trend series and per-budget spend. It never mutates anything.
type ReportService struct {
	store  *storage.Store
	logger *log.Logger
}

func NewReportService(store *storage.Store, logger *log.Logger) *ReportService {
	return &ReportService{
		store:  store,
		logger: logger.WithComponent(log.ComponentReport),
	}
}

// TotalByKind sums transactions of one kind within window. No matching
// rows yields an exact zero.
func (s *ReportService) TotalByKind(ctx context.Context, owner string, kind core.Kind, window core.Window) (core.Money, error) {
	if err := requireOwner(owner); err != nil {
		return core.ZeroMoney(), err
	}
	if !kind.Valid() {
		return core.ZeroMoney(), core.Validationf("invalid kind %q", kind)
	}

	rows, err := s.store.ListTransactions(ctx, owner, storage.TransactionFilter{Window: window, Kind: kind})
	if err != nil {
		return core.ZeroMoney(), err
	}

	total := core.ZeroMoney()
	for _, t := range rows {
		total = total.Add(t.Amount)
	}
	return total, nil
}

// NetSavings is income minus expenses over window.
func (s *ReportService) NetSavings(ctx context.Context, owner string, window core.Window) (core.Money, error) {
	income, err := s.TotalByKind(ctx, owner, core.Income, window)
	if err != nil {
		return core.ZeroMoney(), err
	}
	expenses, err := s.TotalByKind(ctx, owner, core.Expense, window)
	if err != nil {
		return core.ZeroMoney(), err
	}
	return income.Sub(expenses), nil
}

// CategorySummary is one (category, kind) bucket of a breakdown. The kind
// is the transactions' kind, which may differ from the category's own.
type CategorySummary struct {
	CategoryID   string     `json:"categoryId"`
	CategoryName string     `json:"categoryName"`
	Kind         core.Kind  `json:"kind"`
	Total        core.Money `json:"total"`
	Count        int        `json:"count"`
	BudgetLimit  core.Money `json:"budgetLimit"`
}

// CategoryBreakdown buckets window transactions by (category, kind) and
// annotates each bucket with the category's current budget limit.
// Categories without transactions in the window are omitted. Buckets are
// ordered by total descending, then name.
func (s *ReportService) CategoryBreakdown(ctx context.Context, owner string, window core.Window) ([]CategorySummary, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}

	rows, err := s.store.ListTransactions(ctx, owner, storage.TransactionFilter{Window: window})
	if err != nil {
		return nil, err
	}

	type bucketKey struct {
		categoryID string
		kind       core.Kind
	}
	buckets := make(map[bucketKey]*CategorySummary)
	for _, t := range rows {
		key := bucketKey{t.CategoryID, t.Kind}
		b, ok := buckets[key]
		if !ok {
			b = &CategorySummary{
				CategoryID:  t.CategoryID,
				Kind:        t.Kind,
				Total:       core.ZeroMoney(),
				BudgetLimit: core.ZeroMoney(),
			}
			if t.Category != nil {
				b.CategoryName = t.Category.Name
				b.BudgetLimit = t.Category.BudgetLimit
			}
			buckets[key] = b
		}
		b.Total = b.Total.Add(t.Amount)
		b.Count++
	}

	out := make([]CategorySummary, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[j].Total.LessThan(out[i].Total.Decimal)
		}
		return out[i].CategoryName < out[j].CategoryName
	})
	return out, nil
}

// MonthPoint is one month of the trend series.
type MonthPoint struct {
	Label   string     `json:"label"`
	Income  core.Money `json:"income"`
	Expense core.Money `json:"expense"`
}

// MonthlyTrend returns exactly months points covering the trailing calendar
// months up to and including the current partial one, oldest first. Months
// without transactions report zero for both series.
func (s *ReportService) MonthlyTrend(ctx context.Context, owner string, months int) ([]MonthPoint, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}
	if months < 1 {
		return nil, core.Validationf("month count must be at least 1")
	}

	now := time.Now().UTC()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)
	window := core.Window{Start: first, End: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)}

	rows, err := s.store.ListTransactions(ctx, owner, storage.TransactionFilter{Window: window})
	if err != nil {
		return nil, err
	}

	points := make([]MonthPoint, months)
	index := make(map[string]int, months)
	for i := range points {
		m := first.AddDate(0, i, 0)
		key := m.Format("2006-01")
		points[i] = MonthPoint{Label: m.Format("Jan"), Income: core.ZeroMoney(), Expense: core.ZeroMoney()}
		index[key] = i
	}

	for _, t := range rows {
		i, ok := index[t.Date.UTC().Format("2006-01")]
		if !ok {
			continue
		}
		switch t.Kind {
		case core.Income:
			points[i].Income = points[i].Income.Add(t.Amount)
		case core.Expense:
			points[i].Expense = points[i].Expense.Add(t.Amount)
		}
	}
	return points, nil
}

// BudgetSpend sums expense transactions in the budget's category dated on
// or after its start date. The window is open-ended: a monthly budget
// accumulates until its start date is moved, rather than resetting each
// period.
func (s *ReportService) BudgetSpend(ctx context.Context, owner string, b *core.Budget) (core.Money, error) {
	if err := requireOwner(owner); err != nil {
		return core.ZeroMoney(), err
	}

	rows, err := s.store.ListTransactions(ctx, owner, storage.TransactionFilter{
		Window:     core.Since(b.StartDate),
		CategoryID: b.CategoryID,
		Kind:       core.Expense,
	})
	if err != nil {
		return core.ZeroMoney(), err
	}

	spent := core.ZeroMoney()
	for _, t := range rows {
		spent = spent.Add(t.Amount)
	}
	return spent, nil
}
