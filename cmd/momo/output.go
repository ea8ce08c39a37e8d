package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"momo/internal/diag"
	"momo/internal/diagfmt"
	"momo/internal/observ"
	"momo/internal/source"
)

// globalFlags is the parsed set of persistent root flags.
type globalFlags struct {
	color          bool
	quiet          bool
	timings        bool
	maxDiagnostics int
}

func readGlobalFlags(cmd *cobra.Command) (globalFlags, error) {
	flags := cmd.Root().PersistentFlags()
	colorFlag, err := flags.GetString("color")
	if err != nil {
		return globalFlags{}, fmt.Errorf("failed to get color flag: %w", err)
	}
	var g globalFlags
	switch colorFlag {
	case "on":
		g.color = true
	case "off":
		g.color = false
	case "auto":
		g.color = isTerminal(os.Stderr)
	default:
		return globalFlags{}, fmt.Errorf("unknown color mode %q (auto|on|off)", colorFlag)
	}
	if g.quiet, err = flags.GetBool("quiet"); err != nil {
		return globalFlags{}, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if g.timings, err = flags.GetBool("timings"); err != nil {
		return globalFlags{}, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if g.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return globalFlags{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return g, nil
}

func (g globalFlags) prettyOpts() diagfmt.PrettyOpts {
	opts := diagfmt.PrettyOpts{Color: g.color, PathMode: diagfmt.PathModeAuto}
	if g.quiet {
		opts.MinSeverity = diag.SevWarning
	}
	return opts
}

// printDiagnostics печатает bag в w; логи скрываются при --quiet.
func printDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, g globalFlags) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	bag.Sort()
	return diagfmt.Pretty(w, bag, fs, g.prettyOpts())
}

func printTimings(w io.Writer, report *observ.Report) {
	if report == nil {
		return
	}
	_, _ = io.WriteString(w, report.Summary())
}

// reportedError marks an error whose diagnostics were already printed.
type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

func isReported(err error) bool {
	var r reportedError
	return errors.As(err, &r)
}
