package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKinds(t *testing.T) {
	cases := []struct {
		err  error
		pred func(error) bool
	}{
		{Validationf("amount must be positive"), IsValidation},
		{NotFound("category"), IsNotFound},
		{Conflictf("category is in use"), IsConflict},
		{Unauthenticated(), IsUnauthenticated},
		{StorageError("query transactions", errors.New("disk io")), IsStorage},
	}
	for i, tc := range cases {
		if !tc.pred(tc.err) {
			t.Fatalf("case %d: predicate rejected %v", i, tc.err)
		}
		// Each error matches exactly one kind.
		matches := 0
		for _, p := range []func(error) bool{IsValidation, IsNotFound, IsConflict, IsUnauthenticated, IsStorage} {
			if p(tc.err) {
				matches++
			}
		}
		if matches != 1 {
			t.Fatalf("case %d: %v matched %d kinds", i, tc.err, matches)
		}
	}
}

func TestErrorKindsSurviveWrapping(t *testing.T) {
	err := fmt.Errorf("list budgets: %w", NotFound("budget"))
	if !IsNotFound(err) {
		t.Fatalf("wrapped not-found error lost its kind")
	}
}

func TestStorageErrorUnwrap(t *testing.T) {
	cause := errors.New("database is locked")
	err := StorageError("insert transaction", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("storage error must unwrap to its cause")
	}
}

func TestNotFoundMessageIsUniform(t *testing.T) {
	// Cross-owner probes must read identically to plain absence.
	a := NotFound("transaction")
	b := NotFound("transaction")
	if a.Error() != b.Error() {
		t.Fatalf("not-found messages differ: %q vs %q", a, b)
	}
}
