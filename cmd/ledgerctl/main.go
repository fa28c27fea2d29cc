package main

import (
	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/mmynk/ledgerwise/internal/cli"
	"github.com/mmynk/ledgerwise/internal/config"
	"github.com/mmynk/ledgerwise/internal/ledger"
	"github.com/mmynk/ledgerwise/internal/storage/sqlite"
	"github.com/mmynk/ledgerwise/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	logging.Setup()

	var cmds cli.Commands
	ctx := kong.Parse(&cmds,
		kong.Name("ledgerctl"),
		kong.Description("Reports over a ledgerwise database."),
		kong.UsageOnError(),
	)

	store, err := sqlite.New(cmds.DB)
	ctx.FatalIfErrorf(err)
	defer store.Close()

	env := &cli.Env{
		Ledger:      ledger.New(store, store),
		Members:     store,
		NewExporter: cli.SheetsExporter(config.Load()),
	}
	ctx.FatalIfErrorf(ctx.Run(env))
}
