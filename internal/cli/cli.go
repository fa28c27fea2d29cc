// Package cli implements the ledgerctl reporting commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"iter"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mmynk/ledgerwise/internal/ledger"
	"github.com/mmynk/ledgerwise/internal/models"
	"github.com/mmynk/ledgerwise/internal/storage"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#5F5FD7", Dark: "#87AFFF"}).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	owesStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	owedStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00D787", Dark: "#00D787"})
	infoStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#5FAFFF", Dark: "#5FAFFF"})
)

const infoSymbol = "→"

// Exporter writes a view somewhere outside the ledger.
type Exporter interface {
	Export(ctx context.Context, view iter.Seq[models.Expense]) (int, error)
}

// Env carries the dependencies commands run against.
type Env struct {
	Ledger  *ledger.Ledger
	Members storage.Membership

	// NewExporter is called only by the export command.
	NewExporter func(ctx context.Context) (Exporter, error)
}

// ViewFlags select the slice of the ledger a report covers.
type ViewFlags struct {
	User  string `help:"Report on this user's personal expenses." short:"u"`
	Group string `help:"Report on this group's expenses." short:"g"`
	Mine  bool   `help:"With --user, include the user's group spending too."`
	From  string `help:"Only expenses on or after this date (YYYY-MM-DD)."`
	To    string `help:"Only expenses on or before this date (YYYY-MM-DD)."`
}

func (v ViewFlags) filter() (ledger.Filter, error) {
	switch {
	case v.Mine && v.User == "":
		return ledger.Filter{}, fmt.Errorf("--mine requires --user")
	case v.Mine && v.Group != "":
		return ledger.Filter{}, fmt.Errorf("--mine cannot be combined with --group")
	case v.Mine:
		return ledger.ByOwner(v.User), nil
	case v.User != "" && v.Group != "":
		return ledger.PersonalAndGroup(v.User, v.Group), nil
	case v.User != "":
		return ledger.PersonalOnly(v.User), nil
	case v.Group != "":
		return ledger.ByGroup(v.Group), nil
	default:
		return ledger.All(), nil
	}
}

// query resolves the flags against the ledger.
func (v ViewFlags) query(ctx context.Context, l *ledger.Ledger) (ledger.View, error) {
	filter, err := v.filter()
	if err != nil {
		return ledger.View{}, err
	}
	from, err := optionalDate(v.From)
	if err != nil {
		return ledger.View{}, err
	}
	to, err := optionalDate(v.To)
	if err != nil {
		return ledger.View{}, err
	}

	view, err := l.Query(ctx, filter)
	if err != nil {
		return ledger.View{}, err
	}
	return view.Between(from, to), nil
}

func optionalDate(s string) (models.Date, error) {
	if s == "" {
		return models.Date{}, nil
	}
	return models.ParseDate(s)
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func render(w io.Writer, t *table.Table) {
	_, _ = fmt.Fprintln(w, t.Render())
}

func printInfof(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, "%s %s\n", infoStyle.Render(infoSymbol), fmt.Sprintf(format, args...))
}
