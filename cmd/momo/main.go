package main

import (
	"os"

	"fortio.org/safecast"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"momo/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "momo",
	Short:         "momo language compiler",
	Long:          `momo compiles a small C-like language to WebAssembly MVP modules`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return setupProfiling(cmd)
	}

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a runtime trace to file")
}

func main() {
	err := rootCmd.Execute()
	// профиль пишем и при ошибке команды
	if perr := stopProfiling(); perr != nil {
		_, _ = os.Stderr.WriteString("momo: profiling: " + perr.Error() + "\n")
	}
	if err != nil {
		// диагностики уже напечатаны
		if !isReported(err) {
			_, _ = os.Stderr.WriteString("momo: " + err.Error() + "\n")
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	fd, err := safecast.Conv[int](f.Fd())
	if err != nil {
		return false
	}
	return term.IsTerminal(fd)
}
