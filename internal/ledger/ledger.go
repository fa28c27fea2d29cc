// Package ledger owns the canonical, ordered list of expenses.
//
// Every mutation goes through a Ledger, which serializes writers behind one lock
// so a read-modify-write cycle (such as removing positions) never interleaves
// with another mutation. Reads work on a snapshot and take no lock.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/ledgerwise/internal/models"
	"github.com/mmynk/ledgerwise/internal/storage"
	"github.com/mmynk/ledgerwise/internal/validation"
)

// ErrValidation is returned for malformed input. The ledger is left unchanged.
var ErrValidation = errors.New("invalid expense")

// Ledger appends, queries and removes expenses.
type Ledger struct {
	mu      sync.Mutex
	records storage.ExpenseRecords
	members storage.Membership
	now     func() time.Time
}

// New creates a Ledger over the given expense records and membership lookup.
func New(records storage.ExpenseRecords, members storage.Membership) *Ledger {
	return &Ledger{
		records: records,
		members: members,
		now:     time.Now,
	}
}

// Append validates expense, stamps ID and CreatedAt, and adds it at the tail.
// expense is updated with the stamped fields only once the store has kept it.
//
// The date may not be later than today. A grouped expense needs an existing group (storage.ErrNotFound otherwise) and
// an owner who is a member of it.
func (l *Ledger) Append(ctx context.Context, expense *models.Expense) error {
	if expense == nil {
		return fmt.Errorf("%w: expense is required", ErrValidation)
	}
	if err := validation.Struct(expense); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if today := models.DateOf(l.now()); expense.Date.After(today.Time) {
		return fmt.Errorf("%w: date %s is after today (%s)", ErrValidation, expense.Date, today)
	}
	if expense.GroupID != "" {
		members, err := l.members.MembersOf(ctx, expense.GroupID)
		if err != nil {
			return err
		}
		if !slices.Contains(members, expense.Owner) {
			return fmt.Errorf("%w: %s is not a member of group %s", ErrValidation, expense.Owner, expense.GroupID)
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	stamped := *expense
	if stamped.ID == "" {
		stamped.ID = uuid.New().String()
	}
	stamped.CreatedAt = l.now().Unix()

	if err := l.records.AppendExpense(ctx, &stamped); err != nil {
		return err
	}
	*expense = stamped
	return nil
}

// Query returns the expenses selected by filter, in insertion order.
// Group-scoped filters fail with storage.ErrNotFound for unknown groups.
func (l *Ledger) Query(ctx context.Context, filter Filter) (View, error) {
	if err := filter.validate(); err != nil {
		return View{}, err
	}
	if id := filter.GroupID(); id != "" {
		exists, err := l.members.GroupExists(ctx, id)
		if err != nil {
			return View{}, err
		}
		if !exists {
			return View{}, fmt.Errorf("%w: group %s", storage.ErrNotFound, id)
		}
	}

	expenses, err := l.records.ListExpenses(ctx)
	if err != nil {
		return View{}, err
	}
	return newView(expenses, filter.Match), nil
}

// RemoveByPositions deletes the expenses at the given positions of the full,
// unfiltered collection and returns them in ascending position order.
//
// Positions may be given in any order and may repeat. If any position is out of
// range the call fails with ErrValidation and nothing is removed. When
// authorize is non-nil it is called for each targeted expense before anything
// is removed; its first error aborts the call.
func (l *Ledger) RemoveByPositions(ctx context.Context, positions []int, authorize func(models.Expense) error) ([]models.Expense, error) {
	if len(positions) == 0 {
		return nil, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	expenses, err := l.records.ListExpenses(ctx)
	if err != nil {
		return nil, err
	}

	targets := slices.Clone(positions)
	slices.Sort(targets)
	targets = slices.Compact(targets)
	for _, p := range targets {
		if p < 0 || p >= len(expenses) {
			return nil, fmt.Errorf("%w: position %d out of range (ledger has %d expenses)", ErrValidation, p, len(expenses))
		}
		if authorize != nil {
			if err := authorize(expenses[p]); err != nil {
				return nil, err
			}
		}
	}

	removed := make([]models.Expense, 0, len(targets))
	kept := slices.Clone(expenses)
	// Highest first, so earlier positions still point at the same records.
	for _, p := range slices.Backward(targets) {
		removed = append(removed, kept[p])
		kept = slices.Delete(kept, p, p+1)
	}
	slices.Reverse(removed)

	if err := l.records.ReplaceExpenses(ctx, kept); err != nil {
		return nil, err
	}
	return removed, nil
}
