package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"momo/internal/diag"
	"momo/internal/driver"
	"momo/internal/project"
	"momo/internal/source"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [file.momo]",
	Short: "Compile a momo source file to a .wasm module",
	Long: `Build compiles a source file to a WebAssembly module.
Without a file argument the nearest momo.toml supplies [build].main and [build].output.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringP("output", "o", "", "output path (default: input name with .wasm)")
	buildCmd.Flags().Bool("dump", false, "print the module bytes as hex")
	buildCmd.Flags().Bool("no-cache", false, "bypass the on-disk module cache")
}

// buildTarget is the resolved input/output pair of a build.
type buildTarget struct {
	input  string
	output string
}

func resolveBuildTarget(args []string, output, cwd string) (buildTarget, error) {
	if len(args) > 0 {
		t := buildTarget{input: args[0], output: output}
		if t.output == "" {
			t.output = outputNameFromPath(t.input)
		}
		return t, nil
	}
	manifest, ok, err := project.Discover(cwd)
	if errors.Is(err, project.ErrBuildMainMissing) || errors.Is(err, project.ErrPackageSectionMissing) {
		msg := fmt.Sprintf("invalid %s: %v", project.ManifestName, err)
		return buildTarget{}, diag.AsError(diag.NewError(diag.ProjInvalidConfig, source.Span{}, msg))
	}
	if err != nil {
		return buildTarget{}, err
	}
	if !ok {
		return buildTarget{}, fmt.Errorf("no input file and no %s found", project.ManifestName)
	}
	t := buildTarget{input: manifest.Main, output: output}
	if t.output == "" {
		t.output = manifest.Output
	}
	return t, nil
}

// outputNameFromPath заменяет расширение исходника на .wasm
func outputNameFromPath(inputPath string) string {
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".wasm"
}

func runBuild(cmd *cobra.Command, args []string) error {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	dump, err := cmd.Flags().GetBool("dump")
	if err != nil {
		return fmt.Errorf("failed to get dump flag: %w", err)
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	target, err := resolveBuildTarget(args, output, cwd)
	if err != nil {
		return err
	}

	res, g, err := compileFile(cmd, compileRequest{path: target.input, noCache: noCache})
	if err != nil {
		return err
	}
	if dir := filepath.Dir(target.output); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %q: %w", dir, err)
		}
	}
	if err := os.WriteFile(target.output, res.Bytes, 0o600); err != nil {
		return fmt.Errorf("failed to write %q: %w", target.output, err)
	}

	out := cmd.OutOrStdout()
	if dump {
		_, _ = fmt.Fprintln(out, strings.Join(driver.HexDump(res.Bytes), " "))
	}
	if !g.quiet {
		cached := ""
		if res.CacheHit {
			cached = " (cached)"
		}
		_, _ = fmt.Fprintf(out, "wrote %s, %d bytes%s\n", target.output, len(res.Bytes), cached)
	}
	return nil
}
