package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"momo/internal/diag"
	"momo/internal/driver"
	"momo/internal/source"
)

// compileRequest описывает одну сборку из CLI.
type compileRequest struct {
	path    string
	execute bool
	entry   string
	noCache bool
}

// compileFile runs the driver with a bag reporter and prints diagnostics to stderr.
func compileFile(cmd *cobra.Command, req compileRequest) (*driver.Result, globalFlags, error) {
	g, err := readGlobalFlags(cmd)
	if err != nil {
		return nil, g, err
	}

	opts := driver.Options{
		Execute:       req.execute,
		Entry:         req.entry,
		EnableTimings: g.timings,
	}
	if !req.noCache {
		// без кэша сборка всё равно работает
		if cache, cerr := driver.OpenDiskCache("momo"); cerr == nil {
			opts.Cache = cache
		}
	}

	bag := diag.NewBag(g.maxDiagnostics)
	opts.Reporter = diag.BagReporter{Bag: bag}

	res, err := driver.CompileFile(cmd.Context(), req.path, opts)
	var fileSet *source.FileSet
	if res != nil {
		fileSet = res.FileSet
	}
	if perr := printDiagnostics(cmd.ErrOrStderr(), bag, fileSet, g); perr != nil {
		return res, g, perr
	}
	if g.timings && res != nil {
		printTimings(cmd.ErrOrStderr(), res.Timings)
	}
	if err != nil {
		if diag.CodeOf(err) != diag.UnknownCode {
			return res, g, reportedError{err: err}
		}
		return res, g, fmt.Errorf("%s: %w", req.path, err)
	}
	return res, g, nil
}
