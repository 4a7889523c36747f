package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/actual-tools/intesa2actual/internal/converter"
)

func newConvertCommand(root *rootOptions) *cobra.Command {
	var output string
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert <statement> [output]",
		Short: "Convert a statement file to an Actual Budget import CSV",
		Long: "Convert reads an Intesa Sanpaolo statement export (CSV or XLSX)\n" +
			"and writes a CSV that Actual Budget's importer accepts.\n\n" +
			"With a single argument the converted CSV goes to stdout, so the\n" +
			"command can sit in a pipeline. A second argument or --output\n" +
			"writes it to a file instead.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest := output
			if len(args) > 1 {
				if output != "" {
					return fmt.Errorf("output file given both as argument %q and --output %q", args[1], output)
				}
				dest = args[1]
			}

			cfg, err := loadConfig(root)
			if err != nil {
				return err
			}
			log := newLoggerFor(root, cfg)

			opts, err := flags.options(cmd, cfg)
			if err != nil {
				return err
			}

			result, err := converter.ConvertFile(args[0], opts)
			if err != nil {
				return err
			}

			if dest == "" || dest == "-" {
				if err := result.WriteCSV(cmd.OutOrStdout()); err != nil {
					return err
				}
			} else {
				if err := writeFile(dest, result); err != nil {
					return err
				}
				log.Info().
					Str("input", args[0]).
					Str("output", dest).
					Int("records", len(result.Records)).
					Msg("Statement converted")
			}

			if len(result.Skipped) > 0 {
				log.Warn().
					Ints("rows", result.Skipped).
					Msg("Skipped malformed rows")
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the converted CSV to this file instead of stdout")
	flags.register(cmd)

	return cmd
}

func writeFile(path string, result *converter.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if err := result.WriteCSV(f); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
