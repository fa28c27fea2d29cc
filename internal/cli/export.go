package cli

import (
	"context"
	"errors"

	"github.com/alecthomas/kong"

	"github.com/mmynk/ledgerwise/internal/config"
	"github.com/mmynk/ledgerwise/internal/sheets"
)

// ExportCmd writes a view to the configured Google Sheet.
type ExportCmd struct {
	ViewFlags `embed:""`
}

// Run executes the export command.
func (cmd *ExportCmd) Run(ctx *kong.Context, env *Env) error {
	if env.NewExporter == nil {
		return errors.New("sheet export is not configured")
	}
	runCtx := context.Background()

	view, err := cmd.query(runCtx, env.Ledger)
	if err != nil {
		return err
	}

	exporter, err := env.NewExporter(runCtx)
	if err != nil {
		return err
	}

	n, err := exporter.Export(runCtx, view.Expenses())
	if err != nil {
		return err
	}

	printInfof(ctx.Stdout, "Exported %d expenses", n)
	return nil
}

// SheetsExporter builds the Google Sheets exporter from cfg on first use.
func SheetsExporter(cfg *config.Config) func(ctx context.Context) (Exporter, error) {
	return func(ctx context.Context) (Exporter, error) {
		if err := cfg.ValidateSheets(); err != nil {
			return nil, err
		}
		creds, err := cfg.ServiceAccountCredentials()
		if err != nil {
			return nil, err
		}
		exporter, err := sheets.New(ctx, cfg.GoogleSpreadsheetID, cfg.GoogleSheetName, sheets.ServiceAccountOptions(creds)...)
		if err != nil {
			return nil, err
		}
		return exporter, nil
	}
}
