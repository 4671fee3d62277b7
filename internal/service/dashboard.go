package service

import (
	"context"
	"time"

	"fintrack/internal/cache"
	"fintrack/internal/core"
	"fintrack/internal/log"

	"golang.org/x/sync/errgroup"
)

const trendMonths = 6

// Dashboard is the single read the overview page is built from.
type Dashboard struct {
	Summary           Summary             `json:"summary"`
	Charts            Charts              `json:"charts"`
	CategoryBreakdown []CategorySummary   `json:"categoryBreakdown"`
	Budgets           []core.BudgetStatus `json:"budgets"`
}

// Summary holds the headline totals for the requested window.
type Summary struct {
	TotalIncome   core.Money `json:"totalIncome"`
	TotalExpenses core.Money `json:"totalExpenses"`
	NetSavings    core.Money `json:"netSavings"`
}

// Charts carries the trend series as parallel slices keyed by month label.
type Charts struct {
	Labels          []string     `json:"labels"`
	MonthlyIncome   []core.Money `json:"monthlyIncome"`
	MonthlyExpenses []core.Money `json:"monthlyExpenses"`
}

// DashboardCache memoizes assembled dashboards per owner and window. Every
// ledger write for an owner drops all of that owner's entries.
type DashboardCache struct {
	lru *cache.LRUCache[*Dashboard]
}

func NewDashboardCache(maxSize int, ttl time.Duration) *DashboardCache {
	return &DashboardCache{lru: cache.NewLRUCache[*Dashboard](maxSize, ttl)}
}

func (c *DashboardCache) key(owner string, window core.Window) string {
	return owner + ":" + window.Start.UTC().Format(time.RFC3339) + "/" + window.End.UTC().Format(time.RFC3339)
}

func (c *DashboardCache) get(owner string, window core.Window) (*Dashboard, bool) {
	return c.lru.Get(c.key(owner, window))
}

func (c *DashboardCache) set(owner string, window core.Window, d *Dashboard) {
	c.lru.Set(c.key(owner, window), d)
}

// InvalidateOwner drops every cached dashboard belonging to owner.
func (c *DashboardCache) InvalidateOwner(owner string) {
	c.lru.DeletePrefix(owner + ":")
}

// CleanExpired removes expired entries; satisfies cache.Cleaner.
func (c *DashboardCache) CleanExpired() int {
	return c.lru.CleanExpired()
}

// DashboardService assembles the dashboard payload by fanning out to the
// report and budget services.
type DashboardService struct {
	reports *ReportService
	budgets *BudgetService
	cache   *DashboardCache
	logger  *log.Logger
}

func NewDashboardService(reports *ReportService, budgets *BudgetService, dash *DashboardCache, logger *log.Logger) *DashboardService {
	return &DashboardService{
		reports: reports,
		budgets: budgets,
		cache:   dash,
		logger:  logger.WithComponent(log.ComponentDashboard),
	}
}

// Dashboard computes the overview for owner over window. The four parts
// are independent reads and run concurrently; results are cached until the
// owner's next write.
func (s *DashboardService) Dashboard(ctx context.Context, owner string, window core.Window) (*Dashboard, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if d, ok := s.cache.get(owner, window); ok {
			s.logger.DebugContext(ctx, "dashboard served from cache", log.FieldUserID, owner)
			return d, nil
		}
	}

	var (
		income    core.Money
		expenses  core.Money
		breakdown []CategorySummary
		trend     []MonthPoint
		budgets   []core.BudgetStatus
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		income, err = s.reports.TotalByKind(gctx, owner, core.Income, window)
		if err != nil {
			return err
		}
		expenses, err = s.reports.TotalByKind(gctx, owner, core.Expense, window)
		return err
	})
	g.Go(func() error {
		var err error
		breakdown, err = s.reports.CategoryBreakdown(gctx, owner, window)
		return err
	})
	g.Go(func() error {
		var err error
		trend, err = s.reports.MonthlyTrend(gctx, owner, trendMonths)
		return err
	})
	g.Go(func() error {
		var err error
		budgets, err = s.budgets.List(gctx, owner)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	charts := Charts{
		Labels:          make([]string, len(trend)),
		MonthlyIncome:   make([]core.Money, len(trend)),
		MonthlyExpenses: make([]core.Money, len(trend)),
	}
	for i, p := range trend {
		charts.Labels[i] = p.Label
		charts.MonthlyIncome[i] = p.Income
		charts.MonthlyExpenses[i] = p.Expense
	}

	d := &Dashboard{
		Summary: Summary{
			TotalIncome:   income,
			TotalExpenses: expenses,
			NetSavings:    income.Sub(expenses),
		},
		Charts:            charts,
		CategoryBreakdown: breakdown,
		Budgets:           budgets,
	}

	if s.cache != nil {
		s.cache.set(owner, window, d)
	}
	return d, nil
}
