package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"momo/internal/diagfmt"
	"momo/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.momo",
	Short: "Parse a momo source file and print its syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	g, err := readGlobalFlags(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Parse(args[0], g.maxDiagnostics)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}
	if err := printDiagnostics(cmd.ErrOrStderr(), result.Bag, result.FileSet, g); err != nil {
		return err
	}
	if result.Err != nil {
		return reportedError{err: result.Err}
	}

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		return diagfmt.FormatASTPretty(out, result.Builder, result.FileSet)
	case "json":
		return diagfmt.FormatASTJSON(out, result.Builder)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
