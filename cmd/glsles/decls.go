package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"glsles/internal/diagfmt"
	"glsles/internal/driver"
)

var declsCmd = &cobra.Command{
	Use:   "decls [flags] [file|directory...]",
	Short: "Print the global declaration table of shaders",
	Long: `Decls extracts uniforms, attributes, varyings, structs and functions.
Without arguments it scans the directories listed in glsles.toml.`,
	RunE: runDecls,
}

func init() {
	declsCmd.Flags().Bool("bindings", false, "also list the flattened uniform and vertex-input bindings")
	addAnalysisFlags(declsCmd)
}

func runDecls(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	bindings, err := cmd.Flags().GetBool("bindings")
	if err != nil {
		return fmt.Errorf("failed to get bindings flag: %w", err)
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

	stderr := cmd.ErrOrStderr()
	for _, t := range run.targets {
		if t.bag.Len() > 0 {
			diagfmt.Pretty(stderr, t.bag, t.fs, s.prettyOpts())
		}
	}

	if err := writeDecls(cmd.OutOrStdout(), s, run.targets, bindings); err != nil {
		return err
	}
	if s.timings {
		printTimings(stderr, run.timing)
	}
	if errs, _ := run.counts(); errs > 0 {
		return exitCodeError{code: 2}
	}
	return nil
}

func declsOpts(s *settings, t target, bindings bool) diagfmt.DeclsOpts {
	opts := diagfmt.DeclsOpts{PathMode: s.pathMode, Bindings: bindings}
	if t.result.Stage != driver.StageUnknown {
		opts.Stage = t.result.Stage.String()
	}
	return opts
}

// writeDecls prints one table per analyzed file. JSON and YAML wrap
// several files in a list.
func writeDecls(w io.Writer, s *settings, targets []target, bindings bool) error {
	var loaded []target
	for _, t := range targets {
		if t.result != nil {
			loaded = append(loaded, t)
		}
	}

	if len(loaded) == 1 {
		t := loaded[0]
		opts := declsOpts(s, t, bindings)
		switch s.format {
		case "json":
			return diagfmt.FormatDeclsJSON(w, t.result.Table, t.fs, t.result.File.ID, opts)
		case "yaml":
			return diagfmt.FormatDeclsYAML(w, t.result.Table, t.fs, t.result.File.ID, opts)
		default:
			return diagfmt.FormatDeclsPretty(w, t.result.Table, t.fs, t.result.File.ID, opts)
		}
	}

	switch s.format {
	case "json", "yaml":
		outs := make([]diagfmt.DeclsOutput, 0, len(loaded))
		for _, t := range loaded {
			outs = append(outs, diagfmt.BuildDeclsOutput(t.result.Table, t.fs, t.result.File.ID, declsOpts(s, t, bindings)))
		}
		if s.format == "json" {
			return encodeJSON(w, outs)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(outs); err != nil {
			return err
		}
		return enc.Close()
	default:
		for i, t := range loaded {
			if i > 0 {
				if _, err := io.WriteString(w, "\n"); err != nil {
					return err
				}
			}
			if err := diagfmt.FormatDeclsPretty(w, t.result.Table, t.fs, t.result.File.ID, declsOpts(s, t, bindings)); err != nil {
				return err
			}
		}
		return nil
	}
}
