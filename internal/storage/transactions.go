package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fintrack/internal/core"
)

// TransactionFilter narrows a transaction listing. All predicates are
// optional; Limit <= 0 means no page bound (the service layer applies its
// own cap).
type TransactionFilter struct {
	Window     core.Window
	CategoryID string
	Kind       core.Kind
	Limit      int
	Offset     int
}

// InsertTransaction persists a new transaction.
func (s *Store) InsertTransaction(ctx context.Context, t *core.Transaction) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (id, user_id, category_id, kind, amount, description, date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.CategoryID, string(t.Kind), t.Amount.String(), t.Description, t.Date.UTC(), t.CreatedAt.UTC(), t.UpdatedAt.UTC(),
	)
	if err != nil {
		return core.StorageError("insert transaction", err)
	}
	return nil
}

// GetTransaction loads one owned transaction with its category populated.
func (s *Store) GetTransaction(ctx context.Context, owner, id string) (*core.Transaction, error) {
	row := s.db.QueryRowContext(ctx, transactionSelect+" WHERE t.user_id = ? AND t.id = ?", owner, id)
	return scanTransaction(row.Scan)
}

// ListTransactions returns the owner's transactions newest first, filtered
// by the given predicates, each with its category populated.
func (s *Store) ListTransactions(ctx context.Context, owner string, f TransactionFilter) ([]core.Transaction, error) {
	query := transactionSelect + " WHERE t.user_id = ?"
	args := []any{owner}

	if !f.Window.Start.IsZero() {
		query += " AND t.date >= ?"
		args = append(args, f.Window.Start.UTC())
	}
	if !f.Window.End.IsZero() {
		query += " AND t.date < ?"
		args = append(args, f.Window.End.UTC())
	}
	if f.CategoryID != "" {
		query += " AND t.category_id = ?"
		args = append(args, f.CategoryID)
	}
	if f.Kind != "" {
		query += " AND t.kind = ?"
		args = append(args, string(f.Kind))
	}

	query += " ORDER BY t.date DESC, t.created_at DESC, t.id"
	if f.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, core.StorageError("list transactions", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, core.StorageError("list transactions", err)
	}
	return out, nil
}

// UpdateTransaction writes back all mutable fields of an owned transaction.
func (s *Store) UpdateTransaction(ctx context.Context, t *core.Transaction) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE transactions
		SET category_id = ?, kind = ?, amount = ?, description = ?, date = ?, updated_at = ?
		WHERE user_id = ? AND id = ?`,
		t.CategoryID, string(t.Kind), t.Amount.String(), t.Description, t.Date.UTC(), time.Now().UTC(), t.UserID, t.ID,
	)
	if err != nil {
		return core.StorageError("update transaction", err)
	}
	return requireAffected(res, "transaction")
}

// DeleteTransaction removes an owned transaction.
func (s *Store) DeleteTransaction(ctx context.Context, owner, id string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM transactions WHERE user_id = ? AND id = ?", owner, id,
	)
	if err != nil {
		return core.StorageError("delete transaction", err)
	}
	return requireAffected(res, "transaction")
}

const transactionSelect = `
	SELECT t.id, t.user_id, t.category_id, t.kind, t.amount, t.description, t.date, t.created_at, t.updated_at,
	       c.id, c.user_id, c.name, c.kind, c.budget_limit, c.created_at, c.updated_at
	FROM transactions t
	JOIN categories c ON c.id = t.category_id`

func scanTransaction(scan func(...any) error) (*core.Transaction, error) {
	var (
		t          core.Transaction
		c          core.Category
		tKind      string
		amount     string
		cKind      string
		cLimit     string
		date       time.Time
		tCreate    time.Time
		tUpdate    time.Time
		cCreate    time.Time
		cUpdate    time.Time
	)
	err := scan(
		&t.ID, &t.UserID, &t.CategoryID, &tKind, &amount, &t.Description, &date, &tCreate, &tUpdate,
		&c.ID, &c.UserID, &c.Name, &cKind, &cLimit, &cCreate, &cUpdate,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.NotFound("transaction")
	}
	if err != nil {
		return nil, core.StorageError("scan transaction", err)
	}

	t.Kind = core.Kind(tKind)
	t.Date = date
	t.CreatedAt, t.UpdatedAt = tCreate, tUpdate
	t.Amount, err = core.ParseMoney(amount)
	if err != nil {
		return nil, core.StorageError("decode transaction amount", err)
	}

	c.Kind = core.Kind(cKind)
	c.CreatedAt, c.UpdatedAt = cCreate, cUpdate
	c.BudgetLimit, err = core.ParseMoney(cLimit)
	if err != nil {
		return nil, core.StorageError("decode budget limit", err)
	}
	t.Category = &c
	return &t, nil
}
