package cli

import (
	"context"
	"strconv"
	"time"

	"github.com/alecthomas/kong"

	"github.com/mmynk/ledgerwise/internal/calculator"
	"github.com/mmynk/ledgerwise/internal/ledger"
	"github.com/mmynk/ledgerwise/internal/models"
)

// StatsCmd prints the summary of a view.
type StatsCmd struct {
	ViewFlags `embed:""`

	Ref string `help:"Reference date for this/last month (YYYY-MM-DD, default today)."`
}

// Run executes the stats command.
func (cmd *StatsCmd) Run(ctx *kong.Context, env *Env) error {
	ref := models.DateOf(time.Now())
	if cmd.Ref != "" {
		d, err := models.ParseDate(cmd.Ref)
		if err != nil {
			return err
		}
		ref = d
	}

	view, err := cmd.query(context.Background(), env.Ledger)
	if err != nil {
		return err
	}

	stats := calculator.ComputeStats(view.Expenses(), ref)

	t := newTable("Metric", "Value").
		Row("Total", stats.Total.StringFixed(2)).
		Row("Expenses", strconv.Itoa(stats.Count)).
		Row("Mean", stats.Mean.StringFixed(2)).
		Row("Top category", stats.TopCategory).
		Row("This month", stats.ThisMonth.StringFixed(2)).
		Row("Last month", stats.LastMonth.StringFixed(2))
	render(ctx.Stdout, t)
	return nil
}

// CategoriesCmd prints the category breakdown of a view.
type CategoriesCmd struct {
	ViewFlags `embed:""`
}

// Run executes the categories command.
func (cmd *CategoriesCmd) Run(ctx *kong.Context, env *Env) error {
	view, err := cmd.query(context.Background(), env.Ledger)
	if err != nil {
		return err
	}

	shares := calculator.CategoryBreakdown(view.Expenses())
	if len(shares) == 0 {
		printInfof(ctx.Stdout, "No expenses")
		return nil
	}

	t := newTable("Category", "Total", "%")
	for _, s := range shares {
		t.Row(s.Category, s.Total.StringFixed(2), s.Percentage.StringFixed(2))
	}
	render(ctx.Stdout, t)
	return nil
}

// MembersCmd prints how much each member spent for a group.
type MembersCmd struct {
	Group string `help:"Group ID." short:"g" required:""`
}

// Run executes the members command.
func (cmd *MembersCmd) Run(ctx *kong.Context, env *Env) error {
	view, err := env.Ledger.Query(context.Background(), ledger.ByGroup(cmd.Group))
	if err != nil {
		return err
	}

	shares := calculator.MemberBreakdown(view.Expenses())
	if len(shares) == 0 {
		printInfof(ctx.Stdout, "No expenses in %s", cmd.Group)
		return nil
	}

	t := newTable("Member", "Spent", "Count", "Mean", "%")
	for _, s := range shares {
		t.Row(s.Member, s.Spent.StringFixed(2), strconv.Itoa(s.Count), s.Mean.StringFixed(2), s.Percentage.StringFixed(2))
	}
	render(ctx.Stdout, t)
	return nil
}

// SettleCmd prints each member's balance and the transfers that settle the group.
type SettleCmd struct {
	Group string `help:"Group ID." short:"g" required:""`
}

// Run executes the settle command.
func (cmd *SettleCmd) Run(ctx *kong.Context, env *Env) error {
	runCtx := context.Background()

	members, err := env.Members.MembersOf(runCtx, cmd.Group)
	if err != nil {
		return err
	}
	view, err := env.Ledger.Query(runCtx, ledger.ByGroup(cmd.Group))
	if err != nil {
		return err
	}

	settlement, err := calculator.Settle(view.Expenses(), members)
	if err != nil {
		return err
	}

	t := newTable("Member", "Spent", "Fair share", "Balance")
	for _, b := range settlement.Balances {
		balance := b.NetBalance.StringFixed(2)
		switch b.NetBalance.Round(2).Sign() {
		case 1:
			balance = owedStyle.Render("+" + balance)
		case -1:
			balance = owesStyle.Render(balance)
		}
		t.Row(b.Member, b.Spent.StringFixed(2), b.FairShare.StringFixed(2), balance)
	}
	render(ctx.Stdout, t)

	transfers := calculator.Transfers(settlement.Balances)
	if len(transfers) == 0 {
		printInfof(ctx.Stdout, "Everyone is settled up")
		return nil
	}
	for _, tr := range transfers {
		printInfof(ctx.Stdout, "%s pays %s %s", tr.From, tr.To, tr.Amount.StringFixed(2))
	}
	return nil
}
