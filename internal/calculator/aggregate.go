// Package calculator computes totals, breakdowns and settlements over ledger views.
// Every function is pure: it reads the sequence it is given and nothing else.
package calculator

import (
	"iter"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/ledgerwise/internal/models"
)

// NoCategory is reported as the top category of an empty view.
const NoCategory = "N/A"

var hundred = decimal.NewFromInt(100)

// CategoryShare is one row of a category breakdown.
type CategoryShare struct {
	Category   string
	Total      decimal.Decimal
	Percentage decimal.Decimal // of the grand total, 2 decimal places
}

// MemberShare is one row of a member breakdown.
type MemberShare struct {
	Member     string
	Spent      decimal.Decimal
	Count      int
	Mean       decimal.Decimal // 2 decimal places
	Percentage decimal.Decimal // of the grand total, 2 decimal places
}

// MonthTotals holds the sums of two consecutive calendar months.
type MonthTotals struct {
	ThisMonth decimal.Decimal
	LastMonth decimal.Decimal
}

// Stats is the summary shown for any view.
type Stats struct {
	Total       decimal.Decimal
	Mean        decimal.Decimal // 2 decimal places
	Count       int
	TopCategory string
	ThisMonth   decimal.Decimal
	LastMonth   decimal.Decimal
}

// Total sums the amounts of the view. An empty view totals zero.
func Total(view iter.Seq[models.Expense]) decimal.Decimal {
	total := decimal.Zero
	for e := range view {
		total = total.Add(e.Amount)
	}
	return total
}

// percentOf returns part as a percentage of total, or zero when total is zero.
func percentOf(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Mul(hundred).Div(total).Round(2)
}

// CategoryBreakdown sums the view per category, largest first.
// Categories with equal sums are ordered by name.
func CategoryBreakdown(view iter.Seq[models.Expense]) []CategoryShare {
	sums := make(map[string]decimal.Decimal)
	total := decimal.Zero
	for e := range view {
		sums[e.Category] = sums[e.Category].Add(e.Amount)
		total = total.Add(e.Amount)
	}

	shares := make([]CategoryShare, 0, len(sums))
	for category, sum := range sums {
		shares = append(shares, CategoryShare{
			Category:   category,
			Total:      sum,
			Percentage: percentOf(sum, total),
		})
	}

	slices.SortFunc(shares, func(a, b CategoryShare) int {
		if c := b.Total.Cmp(a.Total); c != 0 {
			return c
		}
		return strings.Compare(a.Category, b.Category)
	})
	return shares
}

// MemberBreakdown summarizes spending per owner, ordered by member name.
func MemberBreakdown(view iter.Seq[models.Expense]) []MemberShare {
	byMember := make(map[string]*MemberShare)
	total := decimal.Zero
	for e := range view {
		m, ok := byMember[e.Owner]
		if !ok {
			m = &MemberShare{Member: e.Owner, Spent: decimal.Zero}
			byMember[e.Owner] = m
		}
		m.Spent = m.Spent.Add(e.Amount)
		m.Count++
		total = total.Add(e.Amount)
	}

	shares := make([]MemberShare, 0, len(byMember))
	for _, m := range byMember {
		m.Mean = m.Spent.DivRound(decimal.NewFromInt(int64(m.Count)), 2)
		m.Percentage = percentOf(m.Spent, total)
		shares = append(shares, *m)
	}

	slices.SortFunc(shares, func(a, b MemberShare) int {
		return strings.Compare(a.Member, b.Member)
	})
	return shares
}

// TimeWindowTotals sums the calendar month containing ref and the month before it.
// January's previous month is December of the previous year.
func TimeWindowTotals(view iter.Seq[models.Expense], ref models.Date) MonthTotals {
	thisStart := ref.MonthStart()
	nextStart := thisStart.AddDate(0, 1, 0)
	lastStart := thisStart.AddDate(0, -1, 0)

	totals := MonthTotals{ThisMonth: decimal.Zero, LastMonth: decimal.Zero}
	for e := range view {
		d := e.Date.Time
		switch {
		case !d.Before(thisStart.Time) && d.Before(nextStart):
			totals.ThisMonth = totals.ThisMonth.Add(e.Amount)
		case !d.Before(lastStart) && d.Before(thisStart.Time):
			totals.LastMonth = totals.LastMonth.Add(e.Amount)
		}
	}
	return totals
}

// TopCategory returns the category with the largest sum, breaking ties by the
// lexicographically smallest name. An empty view yields NoCategory.
func TopCategory(view iter.Seq[models.Expense]) string {
	shares := CategoryBreakdown(view)
	if len(shares) == 0 {
		return NoCategory
	}
	return shares[0].Category
}

// ComputeStats bundles total, mean, count, top category and the month totals
// relative to ref. An empty view yields zeros and NoCategory.
func ComputeStats(view iter.Seq[models.Expense], ref models.Date) Stats {
	stats := Stats{
		Total:       decimal.Zero,
		Mean:        decimal.Zero,
		TopCategory: NoCategory,
		ThisMonth:   decimal.Zero,
		LastMonth:   decimal.Zero,
	}
	for e := range view {
		stats.Total = stats.Total.Add(e.Amount)
		stats.Count++
	}
	if stats.Count == 0 {
		return stats
	}

	stats.Mean = stats.Total.DivRound(decimal.NewFromInt(int64(stats.Count)), 2)
	stats.TopCategory = TopCategory(view)
	window := TimeWindowTotals(view, ref)
	stats.ThisMonth = window.ThisMonth
	stats.LastMonth = window.LastMonth
	return stats
}
