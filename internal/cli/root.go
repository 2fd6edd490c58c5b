package cli

import (
	"os"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	storeDriver string
	dbPath      string
	csvPath     string
	language    string
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd runs the web form when invoked without a subcommand.
func NewRootCmd() *cobra.Command {
	options := &rootOptions{}
	serve := &serveOptions{}

	cmd := &cobra.Command{
		Use:          "cyclenote",
		Short:        "Track period start dates and predict the next cycle",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, options, serve)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&options.storeDriver, "store", "", "date store: sqlite, csv, postgres or memory (overrides STORE_DRIVER)")
	flags.StringVar(&options.dbPath, "db", "", "sqlite database path (overrides DB_PATH)")
	flags.StringVar(&options.csvPath, "csv", "", "csv file path (overrides CSV_PATH)")
	flags.StringVar(&options.language, "lang", "", "output language: en or si (overrides DEFAULT_LANGUAGE)")

	cmd.AddCommand(
		newServeCmd(options),
		newAddCmd(options),
		newSummaryCmd(options),
	)
	return cmd
}
