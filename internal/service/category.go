package service

import (
	"context"
	"strings"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/storage"

	"github.com/google/uuid"
)

// CategoryService owns category definitions and the find-or-create
// convention used when a transaction payload names a category instead of
// referencing one.
type CategoryService struct {
	store  *storage.Store
	logger *log.Logger
	dash   *DashboardCache
}

func NewCategoryService(store *storage.Store, logger *log.Logger, dash *DashboardCache) *CategoryService {
	return &CategoryService{
		store:  store,
		logger: logger.WithComponent(log.ComponentCategory),
		dash:   dash,
	}
}

// Create validates and persists a new category for owner.
func (s *CategoryService) Create(ctx context.Context, owner, name string, kind core.Kind, budgetLimit core.Money) (*core.Category, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	c := &core.Category{
		ID:          uuid.NewString(),
		UserID:      owner,
		Name:        strings.TrimSpace(name),
		Kind:        kind,
		BudgetLimit: budgetLimit,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.InsertCategory(ctx, c); err != nil {
		return nil, err
	}
	s.invalidate(owner)

	s.logger.InfoContext(ctx, "category created",
		log.FieldOperation, log.OpCreate,
		log.FieldUserID, owner,
		log.FieldCategoryID, c.ID,
		log.FieldCategoryName, c.Name,
	)
	return c, nil
}

// List returns owner's categories in insertion order, optionally filtered
// by kind.
func (s *CategoryService) List(ctx context.Context, owner string, kindFilter core.Kind) ([]core.Category, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}
	if kindFilter != "" && !kindFilter.Valid() {
		return nil, core.Validationf("invalid kind filter %q", kindFilter)
	}
	return s.store.ListCategories(ctx, owner, kindFilter)
}

// Get returns a single category owned by owner.
func (s *CategoryService) Get(ctx context.Context, owner, id string) (*core.Category, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}
	return s.store.GetCategory(ctx, owner, id)
}

// CategoryUpdate carries the mutable category fields; nil means unchanged.
type CategoryUpdate struct {
	Name        *string
	BudgetLimit *core.Money
}

// Update applies a partial update and returns the updated record.
func (s *CategoryService) Update(ctx context.Context, owner, id string, upd CategoryUpdate) (*core.Category, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}

	c, err := s.store.GetCategory(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		c.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.BudgetLimit != nil {
		c.BudgetLimit = *upd.BudgetLimit
	}
	c.UpdatedAt = time.Now().UTC()
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.UpdateCategory(ctx, c); err != nil {
		return nil, err
	}
	s.invalidate(owner)
	return c, nil
}

// Delete removes a category. A category referenced by any transaction or
// budget cannot be deleted; the probe is by category id alone, so a stale
// cross-owner reference also blocks deletion.
func (s *CategoryService) Delete(ctx context.Context, owner, id string) error {
	if err := requireOwner(owner); err != nil {
		return err
	}

	if _, err := s.store.GetCategory(ctx, owner, id); err != nil {
		return err
	}

	referenced, err := s.store.CategoryReferenced(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return core.Conflictf("category is referenced by existing transactions or budgets")
	}

	if err := s.store.DeleteCategory(ctx, owner, id); err != nil {
		return err
	}
	s.invalidate(owner)

	s.logger.InfoContext(ctx, "category deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldUserID, owner,
		log.FieldCategoryID, id,
	)
	return nil
}

// ResolveOrCreate looks a category up by exact name for owner, creating it
// with the implied kind if absent. When the category already exists and a
// budget limit is supplied, the stored limit is overwritten as a documented
// side effect of the resolution.
func (s *CategoryService) ResolveOrCreate(ctx context.Context, owner, name string, impliedKind core.Kind, budgetLimit *core.Money) (*core.Category, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, core.Validationf("category name is required")
	}

	c, err := s.store.FindCategoryByName(ctx, owner, name)
	switch {
	case err == nil:
		if budgetLimit != nil && !c.BudgetLimit.Equal(*budgetLimit) {
			c.BudgetLimit = *budgetLimit
			c.UpdatedAt = time.Now().UTC()
			if err := c.Validate(); err != nil {
				return nil, err
			}
			if err := s.store.UpdateCategory(ctx, c); err != nil {
				return nil, err
			}
			s.invalidate(owner)
		}
		return c, nil
	case core.IsNotFound(err):
		limit := core.ZeroMoney()
		if budgetLimit != nil {
			limit = *budgetLimit
		}
		created, cerr := s.Create(ctx, owner, name, impliedKind, limit)
		if cerr != nil {
			return nil, cerr
		}
		s.logger.InfoContext(ctx, "category implied by transaction",
			log.FieldOperation, log.OpResolve,
			log.FieldUserID, owner,
			log.FieldCategoryID, created.ID,
			log.FieldCategoryName, created.Name,
		)
		return created, nil
	default:
		return nil, err
	}
}

func (s *CategoryService) invalidate(owner string) {
	if s.dash != nil {
		s.dash.InvalidateOwner(owner)
	}
}
