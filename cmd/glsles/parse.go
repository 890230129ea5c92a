package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"glsles/internal/diagfmt"
	"glsles/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file",
	Short: "Print the syntax tree of a shader",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Parse(cmd.Context(), args[0], s.cfg.Diagnostics.Max)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	if result.Bag.Len() > 0 {
		diagfmt.Pretty(cmd.ErrOrStderr(), result.Bag, result.FileSet, s.prettyOpts())
	}
	if s.timings {
		printTimings(cmd.ErrOrStderr(), result.Timing)
	}

	out := cmd.OutOrStdout()
	switch s.format {
	case "pretty":
		err = diagfmt.FormatASTPretty(out, result.Builder, result.Unit, result.FileSet)
	case "json":
		err = diagfmt.FormatASTJSON(out, result.Builder, result.Unit)
	default:
		return fmt.Errorf("format %q is not supported by parse (use pretty or json)", s.format)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return exitCodeError{code: 2}
	}
	return nil
}
