package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"glsles/internal/diag"
	"glsles/internal/diagfmt"
	"glsles/internal/driver"
)

var diagCmd = &cobra.Command{
	Use:   "diag [flags] [file|directory...]",
	Short: "Report lexical, syntactic and extraction diagnostics",
	Long: `Diag runs the full front end over shader files or directories and prints
every diagnostic. It exits with status 2 when errors were found (or
warnings, with --warnings-as-errors).`,
	RunE: runDiagnose,
}

func init() {
	addDiagFlags(diagCmd)
}

func addDiagFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	cmd.Flags().Bool("no-warnings", false, "hide warnings")
	addAnalysisFlags(cmd)
}

// runDiagnose prints the diagnostics of every target and turns findings
// into exit status 2.
func runDiagnose(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("warnings-as-errors") {
		s.cfg.Diagnostics.WarningsAsErrors, _ = cmd.Flags().GetBool("warnings-as-errors")
	}
	noWarnings, err := cmd.Flags().GetBool("no-warnings")
	if err != nil {
		return fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	requireMain, err := cmd.Flags().GetBool("require-main")
	if err != nil {
		return fmt.Errorf("failed to get require-main flag: %w", err)
	}

	run, err := runAnalysis(cmd, s, args, driver.Options{
		MaxDiagnostics: s.cfg.Diagnostics.Max,
		RequireMain:    requireMain,
		Cache:          s.openCache(cmd),
	})
	if err != nil {
		return err
	}
	if noWarnings {
		for i, t := range run.targets {
			run.targets[i].bag = withoutWarnings(t.bag)
		}
	}

	if err := writeDiagnostics(cmd.OutOrStdout(), s, run.targets); err != nil {
		return err
	}

	errs, warns := run.counts()
	if s.format == "pretty" {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s, %s in %s\n", //nolint:errcheck
			plural(errs, "error"), plural(warns, "warning"), plural(len(run.targets), "file"))
	}
	if s.timings {
		printTimings(cmd.ErrOrStderr(), run.timing)
	}
	if errs > 0 || (s.cfg.Diagnostics.WarningsAsErrors && warns > 0) {
		return exitCodeError{code: 2}
	}
	return nil
}

func withoutWarnings(bag *diag.Bag) *diag.Bag {
	out := diag.NewBag(bag.Cap())
	for _, d := range bag.Items() {
		if d.Severity != diag.SevWarning {
			out.Add(d)
		}
	}
	return out
}

func writeDiagnostics(w io.Writer, s *settings, targets []target) error {
	switch s.format {
	case "pretty":
		first := true
		for _, t := range targets {
			if t.bag.Len() == 0 {
				continue
			}
			if !first {
				fmt.Fprintln(w) //nolint:errcheck
			}
			first = false
			diagfmt.Pretty(w, t.bag, t.fs, s.prettyOpts())
		}
		return nil
	case "json":
		// все файлы одним документом: diagnostics в порядке целей
		out := diagfmt.DiagnosticsOutput{Diagnostics: []diagfmt.DiagnosticJSON{}}
		for _, t := range targets {
			part := diagfmt.BuildDiagnosticsOutput(t.bag, t.fs, s.jsonOpts())
			out.Diagnostics = append(out.Diagnostics, part.Diagnostics...)
		}
		out.Count = len(out.Diagnostics)
		return encodeJSON(w, out)
	default:
		return fmt.Errorf("format %q is not supported by diag (use pretty or json)", s.format)
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
