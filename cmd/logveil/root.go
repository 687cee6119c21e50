package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/logveil/logveil/internal/clf"
	"github.com/logveil/logveil/internal/dnsclient"
	"github.com/logveil/logveil/internal/logging"
	"github.com/logveil/logveil/internal/pipeline"
	"github.com/logveil/logveil/internal/pseudonym"
	"github.com/logveil/logveil/internal/referrer"
)

// exitUsage is the sysexits EX_USAGE status, returned for invalid options
// before any record is processed.
const exitUsage = 64

var logger *zap.Logger

// usageError marks errors caused by invalid options or option values.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

var rootFlags struct {
	salt     string
	host     string
	year     string
	month    string
	day      string
	patterns string
}

var rootCmd = &cobra.Command{
	Use:   "logveil",
	Short: "Pseudonymize web-server access logs",
	Long: `logveil reads an access log in the Combined Log Format from standard
input and writes a pseudonymized copy to standard output.

Client hosts are replaced by salted-hash pseudonyms of the form hash.TLD
(hash.ip when no name can be resolved). DNS lookups merge all
representations of one host, so every name and address of an endpoint maps
to the same pseudonym. Localhost is not pseudonymized.

Referrer query strings and fragments are stripped, except for the
search-query term of known search engines, which is preserved for traffic
analytics.

Warnings and errors go to standard error and never interleave with the
transformed log. Unparsable lines are dropped whole.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return &usageError{fmt.Errorf("unexpected argument: %q", args[0])}
		}
		return nil
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.New(logging.FromEnv())
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			logging.Sync(logger)
		}
	},
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVarP(&rootFlags.salt, "salt", "s", getEnv("LOGVEIL_SALT", ""), "salt appended to host names before hashing")
	rootCmd.Flags().StringVarP(&rootFlags.host, "host", "H", "", "print the pseudonym of one host and exit")
	rootCmd.Flags().StringVarP(&rootFlags.year, "year", "y", "", "process only records from this year (1995-9999)")
	rootCmd.Flags().StringVarP(&rootFlags.month, "month", "m", "", "process only records from this month (1-12 or Jan..Dec)")
	rootCmd.Flags().StringVarP(&rootFlags.day, "day", "d", "", "process only records from this day of month (1-31)")
	rootCmd.Flags().StringVar(&rootFlags.patterns, "patterns", "", "YAML file replacing the built-in referrer pattern tables")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err}
	})
}

// Execute runs the root command. Usage errors exit with EX_USAGE, anything
// else with 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var uerr *usageError
		if errors.As(err, &uerr) {
			os.Exit(exitUsage)
		}
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	filter, err := clf.NewDateFilter(rootFlags.year, rootFlags.month, rootFlags.day)
	if err != nil {
		return &usageError{err}
	}

	tables := referrer.DefaultTables()
	if rootFlags.patterns != "" {
		tables, err = referrer.LoadTables(rootFlags.patterns)
		if err != nil {
			return &usageError{err}
		}
	}

	// Options are valid; from here on failures are runtime errors, not
	// usage errors.
	cmd.SilenceUsage = true

	dnsClient, err := dnsclient.New(logger.Named("dns"))
	if err != nil {
		return err
	}
	resolver := pseudonym.NewResolver(dnsClient, rootFlags.salt, logger.Named("resolver"))

	if rootFlags.host != "" {
		fmt.Fprintln(cmd.OutOrStdout(), resolver.Resolve(cmd.Context(), rootFlags.host))
		return nil
	}

	sanitizer, err := referrer.NewSanitizer(tables, logger.Named("referrer"))
	if err != nil {
		return err
	}

	p := &pipeline.Pipeline{
		Resolver:  resolver,
		Sanitizer: sanitizer,
		Filter:    filter,
		Logger:    logger.Named("pipeline"),
	}
	_, err = p.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
	return err
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
