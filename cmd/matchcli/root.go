package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"match-service/internal/config"
)

var version = "dev"

// cliEnv: общие для подкоманд конфиг и логгер, заполняются в PersistentPreRun.
type cliEnv struct {
	cfg    config.Config
	logger zerolog.Logger
}

func newRootCommand() *cobra.Command {
	env := &cliEnv{}
	cmd := &cobra.Command{
		Use:   "matchcli",
		Short: "Fuzzy and keyword matching between two sheets of an Excel workbook",
		Long: `matchcli matches rows of one sheet against another, either by fuzzy
similarity of a column (token sort ratio) or by whole-word keyword search,
and can grade every match against three extra column comparisons.
Results are appended to the workbook as new sheets.`,
		Version:      version,
		SilenceUsage: true,
	}

	debug := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging (per-row progress)")
	logFile := cmd.PersistentFlags().String("log-file", "", "Also write JSON logs to this file")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		env.cfg = config.Load()
		env.cfg.LogFile = *logFile
		if *debug {
			env.cfg.LogLevel = "debug"
		}
		env.logger = config.SetupCLILogger(env.cfg)
	}

	cmd.AddCommand(newSheetsCommand(env))
	cmd.AddCommand(newRunCommand(env))
	return cmd
}
