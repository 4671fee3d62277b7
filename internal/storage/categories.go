package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fintrack/internal/core"
)

// InsertCategory persists a new category.
func (s *Store) InsertCategory(ctx context.Context, c *core.Category) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (id, user_id, name, kind, budget_limit, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.UserID, c.Name, string(c.Kind), c.BudgetLimit.String(), c.CreatedAt.UTC(), c.UpdatedAt.UTC(),
	)
	if err != nil {
		return core.StorageError("insert category", err)
	}
	return nil
}

// GetCategory loads one category owned by owner.
func (s *Store) GetCategory(ctx context.Context, owner, id string) (*core.Category, error) {
	row := s.db.QueryRowContext(ctx, categorySelect+" WHERE user_id = ? AND id = ?", owner, id)
	return scanCategory(row.Scan)
}

// FindCategoryByName looks up a category by exact name for the owner.
func (s *Store) FindCategoryByName(ctx context.Context, owner, name string) (*core.Category, error) {
	row := s.db.QueryRowContext(ctx, categorySelect+" WHERE user_id = ? AND name = ?", owner, name)
	return scanCategory(row.Scan)
}

// ListCategories returns all categories for the owner in insertion order,
// optionally filtered by kind.
func (s *Store) ListCategories(ctx context.Context, owner string, kind core.Kind) ([]core.Category, error) {
	query := categorySelect + " WHERE user_id = ?"
	args := []any{owner}
	if kind != "" {
		query += " AND kind = ?"
		args = append(args, string(kind))
	}
	query += " ORDER BY created_at, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, core.StorageError("list categories", err)
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		c, err := scanCategory(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, core.StorageError("list categories", err)
	}
	return out, nil
}

// UpdateCategory writes back name and budget limit for an owned category.
func (s *Store) UpdateCategory(ctx context.Context, c *core.Category) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE categories SET name = ?, budget_limit = ?, updated_at = ? WHERE user_id = ? AND id = ?",
		c.Name, c.BudgetLimit.String(), time.Now().UTC(), c.UserID, c.ID,
	)
	if err != nil {
		return core.StorageError("update category", err)
	}
	return requireAffected(res, "category")
}

// DeleteCategory removes an owned category. The reference guard is a
// separate probe; see CategoryReferenced.
func (s *Store) DeleteCategory(ctx context.Context, owner, id string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM categories WHERE user_id = ? AND id = ?", owner, id,
	)
	if err != nil {
		return core.StorageError("delete category", err)
	}
	return requireAffected(res, "category")
}

// CategoryReferenced reports whether any transaction or budget points at
// the category. The probe is deliberately global (by category id only, not
// owner-scoped), matching the delete-guard contract.
func (s *Store) CategoryReferenced(ctx context.Context, categoryID string) (bool, error) {
	var referenced bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM transactions WHERE category_id = ?)
		    OR EXISTS (SELECT 1 FROM budgets WHERE category_id = ?)`,
		categoryID, categoryID,
	).Scan(&referenced)
	if err != nil {
		return false, core.StorageError("probe category references", err)
	}
	return referenced, nil
}

const categorySelect = `
	SELECT id, user_id, name, kind, budget_limit, created_at, updated_at
	FROM categories`

func scanCategory(scan func(...any) error) (*core.Category, error) {
	var (
		c      core.Category
		kind   string
		limit  string
		create time.Time
		update time.Time
	)
	err := scan(&c.ID, &c.UserID, &c.Name, &kind, &limit, &create, &update)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.NotFound("category")
	}
	if err != nil {
		return nil, core.StorageError("scan category", err)
	}
	c.Kind = core.Kind(kind)
	c.CreatedAt, c.UpdatedAt = create, update
	c.BudgetLimit, err = core.ParseMoney(limit)
	if err != nil {
		return nil, core.StorageError("decode budget limit", err)
	}
	return &c, nil
}
