// Package service holds the ledger and aggregation logic: ownership-scoped
// CRUD over categories, transactions and budgets, plus the read-side
// reporting that the dashboard is built from. Every operation takes an
// owner id resolved by the auth layer; an empty owner is rejected before
// touching storage.
package service

import "fintrack/internal/core"

const (
	// DefaultPageSize bounds unpaginated transaction listings.
	DefaultPageSize = 1000
	// MaxPageSize is the hard cap on a requested page size.
	MaxPageSize = 1000
)

func requireOwner(owner string) error {
	if owner == "" {
		return core.Unauthenticated()
	}
	return nil
}
