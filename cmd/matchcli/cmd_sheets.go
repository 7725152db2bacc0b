package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	excelize "github.com/xuri/excelize/v2"

	"match-service/internal/fileio"
)

func newSheetsCommand(env *cliEnv) *cobra.Command {
	var headerRow int
	cmd := &cobra.Command{
		Use:   "sheets <workbook.xlsx>",
		Short: "List sheets and column names of a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := excelize.OpenFile(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			wb, err := fileio.ReadWorkbook(f, headerRow)
			if err != nil {
				return err
			}
			tables := wb.Tables()
			out := cmd.OutOrStdout()
			for _, name := range wb.Names() {
				t := tables[name]
				fmt.Fprintf(out, "%s (%d rows)\n", name, t.Len())
				if len(t.Columns) > 0 {
					fmt.Fprintf(out, "  %s\n", strings.Join(t.Columns, "\n  "))
				}
			}
			env.logger.Debug().Str("workbook", args[0]).Int("sheets", len(tables)).Msg("sheets listed")
			return nil
		},
	}
	cmd.Flags().IntVar(&headerRow, "header-row", 1, "Header row number (1-based)")
	return cmd
}
