package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"momo/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <dir>",
	Short: "Compile every .momo file under a directory",
	Long:  `Check compiles all source files under a directory concurrently and reports failures; no output is written`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().IntP("jobs", "j", 0, "parallel compilations (0 = GOMAXPROCS)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	g, err := readGlobalFlags(cmd)
	if err != nil {
		return err
	}

	results, err := driver.CompileDir(cmd.Context(), args[0], driver.Options{}, g.maxDiagnostics, jobs)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("no %s files under %s", driver.SourceExt, args[0])
	}

	failed := 0
	out := cmd.OutOrStdout()
	for _, r := range results {
		if r.Result != nil {
			if perr := printDiagnostics(cmd.ErrOrStderr(), r.Bag, r.Result.FileSet, g); perr != nil {
				return perr
			}
		}
		if r.Err != nil {
			failed++
			if r.Result == nil {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", r.Path, r.Err)
			}
			continue
		}
		if !g.quiet {
			_, _ = fmt.Fprintf(out, "ok   %s (%d bytes)\n", r.Path, len(r.Result.Bytes))
		}
	}
	if failed > 0 {
		return reportedError{err: fmt.Errorf("%d of %d files failed", failed, len(results))}
	}
	return nil
}
