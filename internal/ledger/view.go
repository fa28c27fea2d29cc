package ledger

import (
	"iter"

	"github.com/mmynk/ledgerwise/internal/models"
)

// View is a read-only, filtered projection of a ledger snapshot.
// Its sequences are evaluated lazily and can be ranged over any number of times.
type View struct {
	snapshot []models.Expense
	match    func(models.Expense) bool
}

func newView(snapshot []models.Expense, match func(models.Expense) bool) View {
	return View{snapshot: snapshot, match: match}
}

// All yields each matching expense with its position in the full collection.
func (v View) All() iter.Seq2[int, models.Expense] {
	return func(yield func(int, models.Expense) bool) {
		for i, e := range v.snapshot {
			if v.matches(e) && !yield(i, e) {
				return
			}
		}
	}
}

// Expenses yields each matching expense in insertion order.
func (v View) Expenses() iter.Seq[models.Expense] {
	return func(yield func(models.Expense) bool) {
		for _, e := range v.All() {
			if !yield(e) {
				return
			}
		}
	}
}

// Between narrows the view to expenses dated from from to to, both inclusive.
// A zero bound leaves that side open.
func (v View) Between(from, to models.Date) View {
	return View{
		snapshot: v.snapshot,
		match: func(e models.Expense) bool {
			if !v.matches(e) {
				return false
			}
			if !from.IsZero() && e.Date.Before(from.Time) {
				return false
			}
			if !to.IsZero() && e.Date.After(to.Time) {
				return false
			}
			return true
		},
	}
}

// Len counts the matching expenses.
func (v View) Len() int {
	n := 0
	for range v.All() {
		n++
	}
	return n
}

func (v View) matches(e models.Expense) bool {
	return v.match == nil || v.match(e)
}
