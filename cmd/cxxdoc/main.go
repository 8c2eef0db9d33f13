// Command cxxdoc reports which C++ declarations carry documentation
// comments.
//
// # Usage
//
//	cxxdoc check [flags] <file|directory> ...
//	cxxdoc schema
//	cxxdoc version
//
// check analyzes every matching file, writes a report and exits with status
// 2 when the documented share of declarations is below --fail-under.
// schema prints the JSON Schema of the json and yaml reports.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/cxxdoc/batch"
	"go.jacobcolvin.com/cxxdoc/docassoc"
	"go.jacobcolvin.com/cxxdoc/log"
	"go.jacobcolvin.com/cxxdoc/report"
	"go.jacobcolvin.com/cxxdoc/version"
)

// errBelowThreshold is returned by check when --fail-under is not met.
var errBelowThreshold = errors.New("documentation density below threshold")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)

	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)

		if errors.Is(err, errBelowThreshold) {
			os.Exit(2)
		}

		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	logCfg := log.NewConfig()

	rootCmd := &cobra.Command{
		Use:           "cxxdoc",
		Short:         "Report documentation coverage of C++ declarations",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	logCfg.RegisterFlags(rootCmd.PersistentFlags())

	err := logCfg.RegisterCompletions(rootCmd)
	if err != nil {
		fmt.Fprintf(stderr, "register completions: %v\n", err)
	}

	rootCmd.AddCommand(
		newCheckCmd(logCfg, stdout, stderr),
		newSchemaCmd(stdout),
		newVersionCmd(stdout),
	)

	return rootCmd
}

func newCheckCmd(logCfg *log.Config, stdout, stderr io.Writer) *cobra.Command {
	var (
		docCfg    = docassoc.NewConfig()
		batchCfg  = batch.NewConfig()
		reportCfg = report.NewConfig()
		failUnder float64
	)

	cmd := &cobra.Command{
		Use:   "check [flags] <file|directory> ...",
		Short: "Analyze C++ sources and report undocumented declarations",
		Long: `check associates documentation comments ("/** */", "/*! */" and the
trailing "///<", "//!<", "/**<" and "/*!<" forms) with the declarations they
document and reports every declaration that has none.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if failUnder < 0 || failUnder > 100 {
				return fmt.Errorf("%w: fail-under must be between 0 and 100, got %g",
					docassoc.ErrInvalidOption, failUnder)
			}

			logger, err := logCfg.NewLogger(stderr, "cxxdoc")
			if err != nil {
				return err
			}

			runner, err := batchCfg.NewRunner(docCfg.NewEngine(logger), logger)
			if err != nil {
				return err
			}

			files, err := runner.Discover(args)
			if err != nil {
				return err
			}

			sum, err := runner.Run(cmd.Context(), files)
			if err != nil {
				return err
			}

			err = reportCfg.Write(stdout, sum)
			if err != nil {
				return err
			}

			density := sum.Stats.Density * 100
			if density < failUnder {
				return fmt.Errorf("%w: %.1f%% < %.1f%%", errBelowThreshold, density, failUnder)
			}

			return nil
		},
	}

	flags := cmd.Flags()
	docCfg.RegisterFlags(flags)
	batchCfg.RegisterFlags(flags)
	reportCfg.RegisterFlags(flags)
	flags.Float64Var(&failUnder, "fail-under", 0,
		"fail when the documented percentage is below this value")

	for _, register := range []func(*cobra.Command) error{
		batchCfg.RegisterCompletions,
		reportCfg.RegisterCompletions,
	} {
		err := register(cmd)
		if err != nil {
			fmt.Fprintf(stderr, "register completions: %v\n", err)
		}
	}

	return cmd
}

func newSchemaCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the json and yaml reports",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return report.WriteSchema(stdout)
		},
	}
}

func newVersionCmd(stdout io.Writer) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			info := version.Get()

			if !asJSON {
				_, err := fmt.Fprintln(stdout, info)
				if err != nil {
					return fmt.Errorf("%w: %w", docassoc.ErrWriteOutput, err)
				}

				return nil
			}

			enc := json.NewEncoder(stdout)
			enc.SetIndent("", "  ")

			err := enc.Encode(info)
			if err != nil {
				return fmt.Errorf("%w: %w", docassoc.ErrWriteOutput, err)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")

	return cmd
}
