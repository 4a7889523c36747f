package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/actual-tools/intesa2actual/internal/converter"
	"github.com/actual-tools/intesa2actual/internal/transform"
)

func newInspectCommand(root *rootOptions) *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "inspect <statement>",
		Short: "Show what a statement would convert to without writing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(root)
			if err != nil {
				return err
			}

			opts, err := flags.options(cmd, cfg)
			if err != nil {
				return err
			}

			result, err := converter.ConvertFile(args[0], opts)
			if err != nil {
				return err
			}
			sum := converter.Summarize(result.Records)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "File:       %s\n", args[0])
			fmt.Fprintf(out, "Header row: %d\n", result.HeaderRow)
			fmt.Fprintf(out, "Columns:    %s=%d %s=%d %s=%d %s=%d\n",
				transform.ColumnDate, result.Columns.Date+1,
				transform.ColumnPayee, result.Columns.Payee+1,
				transform.ColumnNotes, result.Columns.Notes+1,
				transform.ColumnAmount, result.Columns.Amount+1)
			fmt.Fprintf(out, "Records:    %d\n", len(result.Records))
			if len(result.Skipped) > 0 {
				fmt.Fprintf(out, "Skipped:    %d (rows %s)\n", len(result.Skipped), formatRows(result.Skipped))
			} else {
				fmt.Fprintf(out, "Skipped:    0\n")
			}
			fmt.Fprintf(out, "Credits:    %d totalling %s\n", sum.Credits, sum.CreditTotal.StringFixed(2))
			fmt.Fprintf(out, "Debits:     %d totalling %s\n", sum.Debits, sum.DebitTotal.StringFixed(2))
			if sum.Unparsed > 0 {
				fmt.Fprintf(out, "Unparsed:   %d amounts could not be read\n", sum.Unparsed)
			}

			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

func formatRows(rows []int) string {
	parts := make([]string, len(rows))
	for i, row := range rows {
		parts[i] = strconv.Itoa(row)
	}
	return strings.Join(parts, ", ")
}
