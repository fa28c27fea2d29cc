package cli

// Globals defines global flags available to all commands.
type Globals struct {
	DB string `help:"Path to the SQLite database." env:"DB_PATH" default:"./data/ledgerwise.db" type:"path"`
}

type Commands struct {
	Globals

	Stats      StatsCmd      `cmd:"" help:"Show total, mean, top category and month-over-month spending."`
	Categories CategoriesCmd `cmd:"" help:"Break spending down by category."`
	Members    MembersCmd    `cmd:"" help:"Break a group's spending down by member."`
	Settle     SettleCmd     `cmd:"" help:"Split a group's spending equally and suggest transfers."`
	Export     ExportCmd     `cmd:"" help:"Export expenses to Google Sheets."`
}
