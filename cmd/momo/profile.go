package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"momo/internal/prof"
)

// profiling is the session started for the current invocation, if any.
var profiling *prof.Session

// setupProfiling читает флаги профилирования и запускает профайлеры.
func setupProfiling(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	var opts prof.Options
	var err error
	if opts.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if opts.Mem, err = flags.GetString("mem-profile"); err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if opts.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if opts == (prof.Options{}) {
		return nil
	}
	s, err := prof.Start(opts)
	if err != nil {
		return fmt.Errorf("failed to start profiling: %w", err)
	}
	profiling = s
	return nil
}

func stopProfiling() error {
	s := profiling
	profiling = nil
	return s.Stop()
}
