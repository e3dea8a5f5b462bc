// Command vectorgen converts the vector inputs named by an XML configuration
// document into a single GeoJSON file with a date-templated name.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/backmassage/vectorgen/internal/check"
	"github.com/backmassage/vectorgen/internal/config"
	"github.com/backmassage/vectorgen/internal/logging"
	"github.com/backmassage/vectorgen/internal/ogr"
	"github.com/backmassage/vectorgen/internal/pipeline"
	"github.com/backmassage/vectorgen/internal/sigevent"
)

// version is set at build time via -ldflags.
var version = "1.0.0"

// exitError carries a process exit status out of RunE.
type exitError struct{ code int }

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())

	var ee *exitError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &ee):
		return ee.code
	default:
		fmt.Fprintf(stderr, "vectorgen: %v\n", err)
		return 1
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := config.DefaultOptions()
	cmd := &cobra.Command{
		Use:           "vectorgen",
		Short:         "Convert vector inputs to GeoJSON as described by an XML configuration file",
		Args:          cobra.NoArgs,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return execute(cmd.Context(), opts, stdout, stderr)
		},
	}
	cmd.SetVersionTemplate("{{.Version}}\n")
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	config.BindFlags(cmd.Flags(), &opts)
	return cmd
}

// execute runs the pipeline, or the diagnostics with --check. A fatal error
// exits 1; otherwise the exit status is the number of non-fatal errors
// encountered.
func execute(ctx context.Context, opts config.Options, stdout, stderr io.Writer) error {
	logOpts := logging.DefaultOptions(opts.Verbose)
	if stdout != os.Stdout {
		logOpts.Color = false
	}
	logOpts.Stdout, logOpts.Stderr = stdout, stderr
	log := logging.New(logOpts)

	if opts.CheckOnly {
		defer log.Close()
		if n := check.RunCheck(ctx, ogr.Binary, log); n > 0 {
			return &exitError{code: n}
		}
		return nil
	}

	r := &pipeline.Runner{
		Converter: ogr.NewExecutor(log),
		Notifier:  sigevent.NewClient(opts.SigeventURL),
		Log:       log,
		Version:   version,
	}
	rep, err := r.Run(ctx, opts)
	if err != nil {
		return &exitError{code: 1}
	}
	if n := rep.ErrorCount(); n > 0 {
		return &exitError{code: n}
	}
	return nil
}
