package core

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Kind tags a category or transaction as money coming in or going out.
// The two kinds are deliberately not cross-validated between a transaction
// and its category; a mismatch is legal and only logged by the ledger.
type Kind string

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

func (k Kind) Valid() bool { return k == Income || k == Expense }

// Period scopes a budget cap.
type Period string

const (
	Monthly Period = "monthly"
	Yearly  Period = "yearly"
)

func (p Period) Valid() bool { return p == Monthly || p == Yearly }

// AccountKind names how a user authenticates.
type AccountKind string

const (
	AccountLocal    AccountKind = "local"
	AccountGoogle   AccountKind = "google"
	AccountFacebook AccountKind = "facebook"
)

// Account is the tagged variant behind a user's credential: either a local
// password hash or a link to an external OAuth identity. The core never
// performs an OAuth handshake; it only stores the linkage.
type Account interface {
	Kind() AccountKind
}

// LocalAccount carries the bcrypt hash of a locally registered user.
type LocalAccount struct {
	PasswordHash string
}

func (LocalAccount) Kind() AccountKind { return AccountLocal }

// OAuthAccount links a user to an external identity provider.
type OAuthAccount struct {
	Provider   AccountKind
	ExternalID string
}

func (a OAuthAccount) Kind() AccountKind { return a.Provider }

// User owns every other entity. Usernames are unique case-insensitively;
// the email is optional but unique when present.
type User struct {
	ID          string
	Username    string
	Email       string
	DisplayName string
	Prefs       map[string]string
	Account     Account
	CreatedAt   time.Time
}

const (
	minUsernameLen = 3
	maxUsernameLen = 30
)

func (u User) Validate() error {
	name := strings.TrimSpace(u.Username)
	if name == "" {
		return Validationf("username is required")
	}
	if n := utf8.RuneCountInString(name); n < minUsernameLen || n > maxUsernameLen {
		return Validationf("username must be between %d and %d characters", minUsernameLen, maxUsernameLen)
	}
	if u.Email != "" && !strings.Contains(u.Email, "@") {
		return Validationf("invalid email address")
	}
	if u.Account == nil {
		return Validationf("account credential is required")
	}
	return nil
}

// Category is a user-scoped bucket for transactions. Name uniqueness is not
// enforced beyond the find-or-create-by-name convention.
type Category struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Kind        Kind      `json:"kind"`
	BudgetLimit Money     `json:"budgetLimit"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

const (
	minCategoryNameLen = 3
	maxCategoryNameLen = 50
)

func (c Category) Validate() error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return Validationf("category name is required")
	}
	if n := utf8.RuneCountInString(name); n < minCategoryNameLen || n > maxCategoryNameLen {
		return Validationf("category name must be between %d and %d characters", minCategoryNameLen, maxCategoryNameLen)
	}
	if !c.Kind.Valid() {
		return Validationf("category kind must be %q or %q", Income, Expense)
	}
	if c.BudgetLimit.Negative() {
		return Validationf("budget limit must not be negative")
	}
	return nil
}

// Transaction is a dated monetary event linked to exactly one category of
// the same owner. Category is populated on reads, never persisted inline.
type Transaction struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	CategoryID  string    `json:"categoryId"`
	Kind        Kind      `json:"kind"`
	Amount      Money     `json:"amount"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Category *Category `json:"category,omitempty"`
}

const maxDescriptionLen = 255

func (t Transaction) Validate() error {
	if !t.Amount.Positive() {
		return Validationf("amount must be positive")
	}
	if t.Date.IsZero() {
		return Validationf("date is required")
	}
	if !t.Kind.Valid() {
		return Validationf("transaction kind must be %q or %q", Income, Expense)
	}
	if t.CategoryID == "" {
		return Validationf("category is required")
	}
	if utf8.RuneCountInString(t.Description) > maxDescriptionLen {
		return Validationf("description must be at most %d characters", maxDescriptionLen)
	}
	return nil
}

// Budget caps spending for one category from a start date. Spent and
// remaining are derived at read time, never stored.
type Budget struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	CategoryID string    `json:"categoryId"`
	Amount     Money     `json:"amount"`
	Period     Period    `json:"period"`
	StartDate  time.Time `json:"startDate"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	Category *Category `json:"category,omitempty"`
}

func (b Budget) Validate() error {
	if !b.Amount.Positive() {
		return Validationf("budget amount must be positive")
	}
	if !b.Period.Valid() {
		return Validationf("budget period must be %q or %q", Monthly, Yearly)
	}
	if b.StartDate.IsZero() {
		return Validationf("start date is required")
	}
	if b.CategoryID == "" {
		return Validationf("category is required")
	}
	return nil
}

// BudgetStatus is a budget enriched with its derived spend figures.
type BudgetStatus struct {
	Budget
	Spent     Money `json:"spent"`
	Remaining Money `json:"remaining"`
}
