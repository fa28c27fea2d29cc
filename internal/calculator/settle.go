package calculator

import (
	"errors"
	"iter"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/ledgerwise/internal/models"
)

// ErrDivisionUndefined is returned when a fair share is asked for zero members.
var ErrDivisionUndefined = errors.New("fair share is undefined for a group with no members")

// settleThreshold ignores leftovers below one cent when matching debts.
var settleThreshold = decimal.New(1, -2)

// cent is the unit fair shares are allotted in.
var cent = decimal.New(1, -2)

// MemberBalance represents the balance information for one group member.
type MemberBalance struct {
	Member     string
	Spent      decimal.Decimal // Total this member paid for the group
	FairShare  decimal.Decimal // This member's allotted part of the group total
	NetBalance decimal.Decimal // Positive = owed money, Negative = owes money
}

// Settlement is the equal-split result for a group.
type Settlement struct {
	Total     decimal.Decimal
	FairShare decimal.Decimal // total/len(members), rounded to cents
	Balances  []MemberBalance
}

// Transfer is a suggested payment from a debtor to a creditor.
type Transfer struct {
	From   string // Person who owes
	To     string // Person who is owed
	Amount decimal.Decimal
}

// Settle splits the view's total equally among members.
//
// Every member gets a balance row, including members who spent nothing:
// net_balance = spent - share. Shares are total/len(members) in whole cents;
// the cents that do not divide evenly go one each to the first members by
// name, and any sub-cent residue to the first member. Shares therefore add up
// to the total exactly and the net balances sum to exactly zero.
// With no members it returns a zero Settlement and ErrDivisionUndefined.
// Rows come back sorted by member name, but that order is for display only.
func Settle(view iter.Seq[models.Expense], members []string) (Settlement, error) {
	names := slices.Clone(members)
	slices.Sort(names)
	names = slices.Compact(names)
	if len(names) == 0 {
		return Settlement{}, ErrDivisionUndefined
	}

	spent := make(map[string]decimal.Decimal, len(names))
	total := decimal.Zero
	for e := range view {
		spent[e.Owner] = spent[e.Owner].Add(e.Amount)
		total = total.Add(e.Amount)
	}

	shares := splitShares(total, len(names))

	balances := make([]MemberBalance, 0, len(names))
	for i, name := range names {
		paid, ok := spent[name]
		if !ok {
			paid = decimal.Zero
		}
		balances = append(balances, MemberBalance{
			Member:     name,
			Spent:      paid,
			FairShare:  shares[i],
			NetBalance: paid.Sub(shares[i]),
		})
	}

	fairShare := total.Div(decimal.NewFromInt(int64(len(names)))).Round(2)
	return Settlement{Total: total, FairShare: fairShare, Balances: balances}, nil
}

// splitShares divides a non-negative total into n cent-denominated parts
// whose sum is exactly total.
func splitShares(total decimal.Decimal, n int) []decimal.Decimal {
	base, rem := total.QuoRem(decimal.NewFromInt(int64(n)), 2)
	extraCents := rem.Div(cent).Floor().IntPart()
	residue := rem.Sub(cent.Mul(decimal.NewFromInt(extraCents)))

	shares := make([]decimal.Decimal, n)
	for i := range shares {
		shares[i] = base
		if int64(i) < extraCents {
			shares[i] = shares[i].Add(cent)
		}
	}
	shares[0] = shares[0].Add(residue)
	return shares
}

// Transfers turns net balances into a short list of payments that settles
// everyone, matching the largest debts with the largest credits first.
// Amounts are rounded to cents.
func Transfers(balances []MemberBalance) []Transfer {
	type party struct {
		name   string
		amount decimal.Decimal
	}

	var creditors, debtors []party
	for _, b := range balances {
		switch b.NetBalance.Sign() {
		case 1:
			creditors = append(creditors, party{b.Member, b.NetBalance})
		case -1:
			debtors = append(debtors, party{b.Member, b.NetBalance.Neg()})
		}
	}

	largestFirst := func(a, b party) int {
		if c := b.amount.Cmp(a.amount); c != 0 {
			return c
		}
		return strings.Compare(a.name, b.name)
	}
	slices.SortFunc(creditors, largestFirst)
	slices.SortFunc(debtors, largestFirst)

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor, creditor := &debtors[i], &creditors[j]

		amount := decimal.Min(debtor.amount, creditor.amount)
		if amount.Round(2).GreaterThanOrEqual(settleThreshold) {
			transfers = append(transfers, Transfer{
				From:   debtor.name,
				To:     creditor.name,
				Amount: amount.Round(2),
			})
		}

		debtor.amount = debtor.amount.Sub(amount)
		creditor.amount = creditor.amount.Sub(amount)

		if debtor.amount.LessThan(settleThreshold) {
			i++
		}
		if creditor.amount.LessThan(settleThreshold) {
			j++
		}
	}

	return transfers
}
