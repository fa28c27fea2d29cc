package models

import "github.com/shopspring/decimal"

// Expense is a single spend recorded in the ledger.
//
// An expense with an empty GroupID is personal and belongs only to its owner's
// personal view. A grouped expense belongs only to that group's view. Expenses
// are never edited in place.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// Date is the calendar date the money was spent.
	Date Date `validate:"required"`

	// Amount is the non-negative amount spent, in a currency-agnostic unit.
	Amount decimal.Decimal `validate:"gte=0"`

	// Category is free text, usually one of the suggested categories.
	Category string `validate:"required,max=64"`

	// Location is where the money was spent (optional).
	Location string `validate:"max=200"`

	// Description is a free-form note.
	Description string `validate:"max=500"`

	// Owner is the username of the spender. For group expenses this is the
	// member who paid, not necessarily the account that recorded it.
	Owner string `validate:"required,max=64"`

	// GroupID references the group this expense is charged to, or "" for personal.
	GroupID string

	// CreatedAt is the Unix timestamp when the expense was appended.
	CreatedAt int64
}

// IsPersonal reports whether the expense is outside any group.
func (e Expense) IsPersonal() bool {
	return e.GroupID == ""
}

// PersonalCategories are suggested for personal expenses.
var PersonalCategories = []string{"Food", "Transport", "Accommodation", "Activities", "Shopping", "Other"}

// GroupCategories are suggested for group expenses.
var GroupCategories = []string{"Food", "Travel", "Accommodation", "Shopping", "Entertainment", "Other"}
