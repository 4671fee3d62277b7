package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fintrack/internal/core"
)

// InsertBudget persists a new budget.
func (s *Store) InsertBudget(ctx context.Context, b *core.Budget) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO budgets (id, user_id, category_id, amount, period, start_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.UserID, b.CategoryID, b.Amount.String(), string(b.Period), b.StartDate.UTC(), b.CreatedAt.UTC(), b.UpdatedAt.UTC(),
	)
	if err != nil {
		return core.StorageError("insert budget", err)
	}
	return nil
}

// GetBudget loads one owned budget with its category populated.
func (s *Store) GetBudget(ctx context.Context, owner, id string) (*core.Budget, error) {
	row := s.db.QueryRowContext(ctx, budgetSelect+" WHERE b.user_id = ? AND b.id = ?", owner, id)
	return scanBudget(row.Scan)
}

// ListBudgets returns all budgets for the owner in insertion order, each
// with its category populated. Derived spend figures are the service's job.
func (s *Store) ListBudgets(ctx context.Context, owner string) ([]core.Budget, error) {
	rows, err := s.db.QueryContext(ctx, budgetSelect+" WHERE b.user_id = ? ORDER BY b.created_at, b.id", owner)
	if err != nil {
		return nil, core.StorageError("list budgets", err)
	}
	defer rows.Close()

	var out []core.Budget
	for rows.Next() {
		b, err := scanBudget(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, core.StorageError("list budgets", err)
	}
	return out, nil
}

// UpdateBudget writes back all mutable fields of an owned budget.
func (s *Store) UpdateBudget(ctx context.Context, b *core.Budget) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE budgets
		SET category_id = ?, amount = ?, period = ?, start_date = ?, updated_at = ?
		WHERE user_id = ? AND id = ?`,
		b.CategoryID, b.Amount.String(), string(b.Period), b.StartDate.UTC(), time.Now().UTC(), b.UserID, b.ID,
	)
	if err != nil {
		return core.StorageError("update budget", err)
	}
	return requireAffected(res, "budget")
}

// DeleteBudget removes an owned budget.
func (s *Store) DeleteBudget(ctx context.Context, owner, id string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM budgets WHERE user_id = ? AND id = ?", owner, id,
	)
	if err != nil {
		return core.StorageError("delete budget", err)
	}
	return requireAffected(res, "budget")
}

const budgetSelect = `
	SELECT b.id, b.user_id, b.category_id, b.amount, b.period, b.start_date, b.created_at, b.updated_at,
	       c.id, c.user_id, c.name, c.kind, c.budget_limit, c.created_at, c.updated_at
	FROM budgets b
	JOIN categories c ON c.id = b.category_id`

func scanBudget(scan func(...any) error) (*core.Budget, error) {
	var (
		b       core.Budget
		c       core.Category
		amount  string
		period  string
		cKind   string
		cLimit  string
		start   time.Time
		bCreate time.Time
		bUpdate time.Time
		cCreate time.Time
		cUpdate time.Time
	)
	err := scan(
		&b.ID, &b.UserID, &b.CategoryID, &amount, &period, &start, &bCreate, &bUpdate,
		&c.ID, &c.UserID, &c.Name, &cKind, &cLimit, &cCreate, &cUpdate,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.NotFound("budget")
	}
	if err != nil {
		return nil, core.StorageError("scan budget", err)
	}

	b.Period = core.Period(period)
	b.StartDate = start
	b.CreatedAt, b.UpdatedAt = bCreate, bUpdate
	b.Amount, err = core.ParseMoney(amount)
	if err != nil {
		return nil, core.StorageError("decode budget amount", err)
	}

	c.Kind = core.Kind(cKind)
	c.CreatedAt, c.UpdatedAt = cCreate, cUpdate
	c.BudgetLimit, err = core.ParseMoney(cLimit)
	if err != nil {
		return nil, core.StorageError("decode budget limit", err)
	}
	b.Category = &c
	return &b, nil
}
