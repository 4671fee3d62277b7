package service

import (
	"context"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/storage"

	"github.com/google/uuid"
)

// BudgetService owns period-scoped spending caps. Listings are enriched
// with spent and remaining, computed at read time by the report service.
type BudgetService struct {
	store   *storage.Store
	reports *ReportService
	logger  *log.Logger
	dash    *DashboardCache
}

func NewBudgetService(store *storage.Store, reports *ReportService, logger *log.Logger, dash *DashboardCache) *BudgetService {
	return &BudgetService{
		store:   store,
		reports: reports,
		logger:  logger.WithComponent(log.ComponentBudget),
		dash:    dash,
	}
}

// CreateBudgetInput is the payload for a new budget.
type CreateBudgetInput struct {
	CategoryID string
	Amount     core.Money
	Period     core.Period
	StartDate  time.Time
}

// Create validates the payload, checks that the category belongs to owner,
// and persists a new budget.
func (s *BudgetService) Create(ctx context.Context, owner string, in CreateBudgetInput) (*core.Budget, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}
	if in.CategoryID == "" {
		return nil, core.Validationf("category id is required")
	}

	category, err := s.store.GetCategory(ctx, owner, in.CategoryID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	b := &core.Budget{
		ID:         uuid.NewString(),
		UserID:     owner,
		CategoryID: category.ID,
		Amount:     in.Amount,
		Period:     in.Period,
		StartDate:  in.StartDate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.InsertBudget(ctx, b); err != nil {
		return nil, err
	}
	b.Category = category
	s.invalidate(owner)

	s.logger.InfoContext(ctx, "budget created",
		log.FieldOperation, log.OpCreate,
		log.FieldUserID, owner,
		log.FieldBudgetID, b.ID,
		log.FieldCategoryID, category.ID,
		log.FieldPeriod, string(b.Period),
		log.FieldAmount, b.Amount.String(),
	)
	return b, nil
}

// List returns all of owner's budgets, each enriched with spent and
// remaining.
func (s *BudgetService) List(ctx context.Context, owner string) ([]core.BudgetStatus, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}

	budgets, err := s.store.ListBudgets(ctx, owner)
	if err != nil {
		return nil, err
	}

	out := make([]core.BudgetStatus, 0, len(budgets))
	for i := range budgets {
		status, err := s.enrich(ctx, owner, &budgets[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *status)
	}
	return out, nil
}

// Get returns one budget enriched with spent and remaining.
func (s *BudgetService) Get(ctx context.Context, owner, id string) (*core.BudgetStatus, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}
	b, err := s.store.GetBudget(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, owner, b)
}

// BudgetUpdate carries the mutable budget fields; nil means unchanged.
type BudgetUpdate struct {
	CategoryID *string
	Amount     *core.Money
	Period     *core.Period
	StartDate  *time.Time
}

// Update applies a partial update and returns the updated, enriched record.
func (s *BudgetService) Update(ctx context.Context, owner, id string, upd BudgetUpdate) (*core.BudgetStatus, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}

	b, err := s.store.GetBudget(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	if upd.CategoryID != nil {
		category, cerr := s.store.GetCategory(ctx, owner, *upd.CategoryID)
		if cerr != nil {
			return nil, cerr
		}
		b.CategoryID = category.ID
		b.Category = category
	}
	if upd.Amount != nil {
		b.Amount = *upd.Amount
	}
	if upd.Period != nil {
		b.Period = *upd.Period
	}
	if upd.StartDate != nil {
		b.StartDate = *upd.StartDate
	}
	b.UpdatedAt = time.Now().UTC()
	if err := b.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.UpdateBudget(ctx, b); err != nil {
		return nil, err
	}
	s.invalidate(owner)
	return s.enrich(ctx, owner, b)
}

// Delete removes a budget owned by owner.
func (s *BudgetService) Delete(ctx context.Context, owner, id string) error {
	if err := requireOwner(owner); err != nil {
		return err
	}
	if err := s.store.DeleteBudget(ctx, owner, id); err != nil {
		return err
	}
	s.invalidate(owner)

	s.logger.InfoContext(ctx, "budget deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldUserID, owner,
		log.FieldBudgetID, id,
	)
	return nil
}

func (s *BudgetService) enrich(ctx context.Context, owner string, b *core.Budget) (*core.BudgetStatus, error) {
	spent, err := s.reports.BudgetSpend(ctx, owner, b)
	if err != nil {
		return nil, err
	}
	return &core.BudgetStatus{
		Budget:    *b,
		Spent:     spent,
		Remaining: b.Amount.Sub(spent),
	}, nil
}

func (s *BudgetService) invalidate(owner string) {
	if s.dash != nil {
		s.dash.InvalidateOwner(owner)
	}
}
