package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"glsles/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "glsles",
	Short: "GLSL ES 1.00 shader front end",
	Long: `glsles tokenizes and parses OpenGL ES 2.0 shaders, reports diagnostics
and extracts the global declarations (uniforms, attributes, varyings,
structs and functions) that a binding layer needs.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupProfiling(cmd); err != nil {
			return err
		}
		cleanup, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		traceCleanup = cleanup
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		runTraceCleanup()
		runProfileCleanup()
	},
}

// exitCodeError завершает процесс с кодом без сообщения: всё уже напечатано.
type exitCodeError struct {
	code int
}

func (e exitCodeError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// main registers the subcommands and persistent flags and runs the root
// command. Errors exit with status 1; `diag` uses status 2 for findings.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(declsCmd)
	rootCmd.AddCommand(diagCmd)
	rootCmd.AddCommand(versionCmd)

	registerPersistentFlags(rootCmd)

	err := rootCmd.Execute()
	runTraceCleanup()
	runProfileCleanup()
	if err == nil {
		return
	}
	var exit exitCodeError
	if errors.As(err, &exit) {
		os.Exit(exit.code)
	}
	fmt.Fprintf(os.Stderr, "glsles: %v\n", err)
	os.Exit(1)
}

// registerPersistentFlags объявляет глобальные флаги на корневой команде
func registerPersistentFlags(root *cobra.Command) {
	flags := root.PersistentFlags()
	flags.String("format", "", "output format (pretty|json|yaml); default from glsles.toml or pretty")
	flags.String("color", "", "colorize output (auto|on|off)")
	flags.Int("max-diagnostics", 0, "maximum number of diagnostics per file (0 = manifest value)")
	flags.String("path-mode", "auto", "how to print file paths (auto|absolute|relative|basename)")
	flags.Bool("timings", false, "print phase timings to stderr")
	flags.String("trace", "", "trace output file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	flags.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	flags.String("cpu-profile", "", "write a CPU profile to file")
	flags.String("mem-profile", "", "write a heap profile to file on exit")
	flags.String("runtime-trace", "", "write a Go runtime trace to file")
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) // #nosec G115 -- fd fits in int
}
