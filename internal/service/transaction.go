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

// TransactionService owns dated monetary events. Category resolution,
// including implicit creation from a bare name, is delegated to the
// category service.
type TransactionService struct {
	store      *storage.Store
	categories *CategoryService
	logger     *log.Logger
	dash       *DashboardCache
}

func NewTransactionService(store *storage.Store, categories *CategoryService, logger *log.Logger, dash *DashboardCache) *TransactionService {
	return &TransactionService{
		store:      store,
		categories: categories,
		logger:     logger.WithComponent(log.ComponentTransaction),
		dash:       dash,
	}
}

// CreateTransactionInput is the payload for a new transaction. Exactly one
// of CategoryID and CategoryName must be set; a name that does not resolve
// creates the category with the transaction's kind.
type CreateTransactionInput struct {
	Amount       core.Money
	Date         time.Time
	Kind         core.Kind
	CategoryID   string
	CategoryName string
	Description  string
	// BudgetLimit, when set alongside CategoryName, is stored on the
	// resolved category.
	BudgetLimit *core.Money
}

// Create validates, resolves the category and persists a new transaction.
// The returned record carries the resolved category.
func (s *TransactionService) Create(ctx context.Context, owner string, in CreateTransactionInput) (*core.Transaction, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}

	category, err := s.resolveCategory(ctx, owner, in.CategoryID, in.CategoryName, in.Kind, in.BudgetLimit)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	t := &core.Transaction{
		ID:          uuid.NewString(),
		UserID:      owner,
		CategoryID:  category.ID,
		Kind:        in.Kind,
		Amount:      in.Amount,
		Description: strings.TrimSpace(in.Description),
		Date:        in.Date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	s.warnKindMismatch(ctx, t, category)

	if err := s.store.InsertTransaction(ctx, t); err != nil {
		return nil, err
	}
	t.Category = category
	s.invalidate(owner)

	s.logger.InfoContext(ctx, "transaction created",
		log.FieldOperation, log.OpCreate,
		log.FieldUserID, owner,
		log.FieldTransactionID, t.ID,
		log.FieldCategoryID, category.ID,
		log.FieldKind, string(t.Kind),
		log.FieldAmount, t.Amount.String(),
	)
	return t, nil
}

// ListTransactionsInput filters and paginates a listing. Page numbers are
// 1-based; a zero PageSize lists up to DefaultPageSize rows.
type ListTransactionsInput struct {
	Window     core.Window
	CategoryID string
	Kind       core.Kind
	Page       int
	PageSize   int
}

// List returns one page of owner's transactions, most recent date first.
func (s *TransactionService) List(ctx context.Context, owner string, in ListTransactionsInput) ([]core.Transaction, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}
	if in.Kind != "" && !in.Kind.Valid() {
		return nil, core.Validationf("invalid kind filter %q", in.Kind)
	}
	if in.Page < 0 || in.PageSize < 0 {
		return nil, core.Validationf("page and page size must not be negative")
	}

	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.PageSize
	if size == 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	return s.store.ListTransactions(ctx, owner, storage.TransactionFilter{
		Window:     in.Window,
		CategoryID: in.CategoryID,
		Kind:       in.Kind,
		Limit:      size,
		Offset:     (page - 1) * size,
	})
}

// Get returns a single transaction owned by owner.
func (s *TransactionService) Get(ctx context.Context, owner, id string) (*core.Transaction, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}
	return s.store.GetTransaction(ctx, owner, id)
}

// TransactionUpdate carries the mutable transaction fields; nil means
// unchanged. Setting CategoryID or CategoryName re-resolves the category
// under the same rules as create.
type TransactionUpdate struct {
	Amount       *core.Money
	Date         *time.Time
	Kind         *core.Kind
	CategoryID   *string
	CategoryName *string
	Description  *string
}

// Update applies a partial update and returns the updated record.
func (s *TransactionService) Update(ctx context.Context, owner, id string, upd TransactionUpdate) (*core.Transaction, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}

	t, err := s.store.GetTransaction(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	if upd.Amount != nil {
		t.Amount = *upd.Amount
	}
	if upd.Date != nil {
		t.Date = *upd.Date
	}
	if upd.Kind != nil {
		t.Kind = *upd.Kind
	}
	if upd.Description != nil {
		t.Description = strings.TrimSpace(*upd.Description)
	}

	category := t.Category
	if upd.CategoryID != nil || upd.CategoryName != nil {
		var catID, catName string
		if upd.CategoryID != nil {
			catID = *upd.CategoryID
		}
		if upd.CategoryName != nil {
			catName = *upd.CategoryName
		}
		category, err = s.resolveCategory(ctx, owner, catID, catName, t.Kind, nil)
		if err != nil {
			return nil, err
		}
		t.CategoryID = category.ID
	}

	t.UpdatedAt = time.Now().UTC()
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if category != nil {
		s.warnKindMismatch(ctx, t, category)
	}

	if err := s.store.UpdateTransaction(ctx, t); err != nil {
		return nil, err
	}
	t.Category = category
	s.invalidate(owner)
	return t, nil
}

// Delete removes a transaction owned by owner.
func (s *TransactionService) Delete(ctx context.Context, owner, id string) error {
	if err := requireOwner(owner); err != nil {
		return err
	}
	if err := s.store.DeleteTransaction(ctx, owner, id); err != nil {
		return err
	}
	s.invalidate(owner)

	s.logger.InfoContext(ctx, "transaction deleted",
		log.FieldOperation, log.OpDelete,
		log.FieldUserID, owner,
		log.FieldTransactionID, id,
	)
	return nil
}

func (s *TransactionService) resolveCategory(ctx context.Context, owner, id, name string, impliedKind core.Kind, budgetLimit *core.Money) (*core.Category, error) {
	switch {
	case id != "":
		return s.store.GetCategory(ctx, owner, id)
	case name != "":
		return s.categories.ResolveOrCreate(ctx, owner, name, impliedKind, budgetLimit)
	default:
		return nil, core.Validationf("category id or name is required")
	}
}

// Category kind and transaction kind are deliberately not cross-validated;
// the mismatch is only surfaced in the logs.
func (s *TransactionService) warnKindMismatch(ctx context.Context, t *core.Transaction, c *core.Category) {
	if t.Kind != c.Kind {
		s.logger.WarnContext(ctx, "transaction kind differs from category kind",
			log.FieldUserID, t.UserID,
			log.FieldCategoryID, c.ID,
			log.FieldCategoryName, c.Name,
			log.FieldKind, string(t.Kind),
		)
	}
}

func (s *TransactionService) invalidate(owner string) {
	if s.dash != nil {
		s.dash.InvalidateOwner(owner)
	}
}
