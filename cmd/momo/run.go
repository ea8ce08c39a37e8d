package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"momo/internal/driver"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] <file.momo>",
	Short: "Compile and execute a momo program",
	Long:  `Compile a source file and call its exported entry function in an embedded WebAssembly runtime`,
	Args:  cobra.ExactArgs(1),
	RunE:  runExecution,
}

func init() {
	runCmd.Flags().String("entry", driver.DefaultEntry, "exported function to call")
	runCmd.Flags().Int("memory", 0, "print the first N words of linear memory after the call")
	runCmd.Flags().Bool("no-cache", false, "bypass the on-disk module cache")
}

func runExecution(cmd *cobra.Command, args []string) error {
	entry, err := cmd.Flags().GetString("entry")
	if err != nil {
		return fmt.Errorf("failed to get entry flag: %w", err)
	}
	words, err := cmd.Flags().GetInt("memory")
	if err != nil {
		return fmt.Errorf("failed to get memory flag: %w", err)
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}

	res, _, err := compileFile(cmd, compileRequest{
		path:    args[0],
		execute: true,
		entry:   entry,
		noCache: noCache,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if res.Exec.HasValue {
		_, _ = fmt.Fprintln(out, res.Exec.Value)
	}
	if words > 0 {
		_, _ = fmt.Fprint(out, res.Exec.FormatMemory(words))
	}
	return nil
}
