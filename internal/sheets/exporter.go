// Package sheets exports ledger views to a Google Sheets spreadsheet.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"

	"google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"github.com/mmynk/ledgerwise/internal/models"
)

// Header is the first row written by Export.
var Header = []any{"Date", "Amount", "Category", "Location", "Description", "Owner", "Group"}

// Exporter overwrites one sheet with the expenses of a view.
type Exporter struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// New creates an Exporter. Authentication comes from opts, typically
// option.WithCredentialsJSON with a service account key.
func New(ctx context.Context, spreadsheetID, sheetName string, opts ...option.ClientOption) (*Exporter, error) {
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	if sheetName == "" {
		return nil, errors.New("missing sheet name")
	}

	svc, err := gsheet.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Exporter{svc: svc, spreadsheetID: spreadsheetID, sheetName: sheetName}, nil
}

// ServiceAccountOptions authenticates with a service account key and the spreadsheets scope.
func ServiceAccountOptions(credentialsJSON []byte) []option.ClientOption {
	return []option.ClientOption{
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(gsheet.SpreadsheetsScope),
	}
}

// Rows renders the header and one row per expense, in view order.
func Rows(view iter.Seq[models.Expense]) [][]any {
	rows := [][]any{Header}
	for e := range view {
		rows = append(rows, []any{
			e.Date.String(),
			e.Amount.StringFixed(2),
			e.Category,
			e.Location,
			e.Description,
			e.Owner,
			e.GroupID,
		})
	}
	return rows
}

// Export clears the sheet and writes the view to it. It returns the number of
// expenses written.
func (x *Exporter) Export(ctx context.Context, view iter.Seq[models.Expense]) (int, error) {
	rows := Rows(view)

	clearRange := fmt.Sprintf("'%s'!A:G", x.sheetName)
	_, err := x.svc.Spreadsheets.Values.Clear(x.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("failed to clear sheet %s: %w", x.sheetName, err)
	}

	dataRange := fmt.Sprintf("'%s'!A1", x.sheetName)
	_, err = x.svc.Spreadsheets.Values.Update(x.spreadsheetID, dataRange, &gsheet.ValueRange{Values: rows}).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("failed to write sheet %s: %w", x.sheetName, err)
	}

	slog.InfoContext(ctx, "Exported expenses to sheet",
		"sheet", x.sheetName,
		"rows", len(rows)-1,
	)
	return len(rows) - 1, nil
}
