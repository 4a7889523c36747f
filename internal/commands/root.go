package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/actual-tools/intesa2actual/internal/buildinfo"
	"github.com/actual-tools/intesa2actual/internal/config"
	"github.com/actual-tools/intesa2actual/internal/converter"
	"github.com/actual-tools/intesa2actual/internal/logger"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	verbose    bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "intesa2actual",
		Short:   "Convert Intesa Sanpaolo statements for Actual Budget",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		// main prints the error itself so it can exit with a
		// kind-specific code.
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default intesa2actual.yaml if present)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newConvertCommand(opts))
	rootCmd.AddCommand(newInspectCommand(opts))
	rootCmd.AddCommand(newServeCommand(opts))

	return rootCmd
}

// loadConfig reads the file named by --config, falling back to
// intesa2actual.yaml in the working directory and then to built-in
// defaults. Environment overrides apply last.
func loadConfig(opts *rootOptions) (*config.Config, error) {
	var cfg *config.Config

	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		loaded, err := config.Load(config.DefaultPath)
		switch {
		case err == nil:
			cfg = loaded
		case errors.Is(err, os.ErrNotExist):
			cfg = config.Default()
		default:
			return nil, err
		}
	}

	config.LoadEnv(cfg)
	return cfg, nil
}

func newLoggerFor(opts *rootOptions, cfg *config.Config) zerolog.Logger {
	level := cfg.LogLevel
	if opts.verbose {
		level = "debug"
	}
	return logger.New(level)
}

// convertFlags are the conversion tuning flags shared by the convert,
// inspect and serve commands.
type convertFlags struct {
	format    string
	delimiter string
	strict    bool
	account   string
}

func (f *convertFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.format, "format", "", `force the input format ("csv" or "xlsx") instead of detecting it`)
	cmd.Flags().StringVar(&f.delimiter, "delimiter", "", `force the CSV delimiter ("," ";" or "tab") instead of detecting it`)
	cmd.Flags().BoolVar(&f.strict, "strict", false, "abort on malformed rows instead of skipping them")
	cmd.Flags().StringVar(&f.account, "account", "", "value for the Account column (default from config)")
}

// options merges the config file with any flags set on the command line.
// Flags win over config.
func (f *convertFlags) options(cmd *cobra.Command, cfg *config.Config) (converter.Options, error) {
	opts := converter.Options{
		Format:  f.format,
		Strict:  cfg.Strict,
		Account: cfg.Account,
	}
	if cmd.Flags().Changed("strict") {
		opts.Strict = f.strict
	}
	if f.account != "" {
		opts.Account = f.account
	}

	delim := cfg.Delimiter
	if cmd.Flags().Changed("delimiter") {
		delim = f.delimiter
	}
	d, err := config.ParseDelimiter(delim)
	if err != nil {
		return converter.Options{}, err
	}
	opts.Delimiter = d

	return opts, nil
}
