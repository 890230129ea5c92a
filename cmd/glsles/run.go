package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"glsles/internal/diag"
	"glsles/internal/driver"
	"glsles/internal/observ"
	"glsles/internal/source"
	"glsles/internal/trace"
)

// target is one analyzed shader with the FileSet its spans resolve in.
type target struct {
	fs     *source.FileSet
	path   string
	result *driver.Result // nil when the file failed to load
	bag    *diag.Bag
}

type analysisRun struct {
	targets []target
	timing  observ.Report
}

func (r *analysisRun) counts() (errs, warns int) {
	for _, t := range r.targets {
		for _, d := range t.bag.Items() {
			switch d.Severity {
			case diag.SevError:
				errs++
			case diag.SevWarning:
				warns++
			}
		}
	}
	return errs, warns
}

// addAnalysisFlags declares the flags shared by decls and diag.
func addAnalysisFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("require-main", false, "warn when void main() is not defined")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directories (0=auto)")
	cmd.Flags().Bool("no-cache", false, "do not read or write the declaration cache")
	cmd.Flags().String("ui", "auto", "progress UI for directories (auto|on|off)")
}

// runAnalysis analyzes every path in args (files and directories, in
// order). Without args it scans the manifest directories.
func runAnalysis(cmd *cobra.Command, s *settings, args []string, opts driver.Options) (*analysisRun, error) {
	ctx, span := trace.Start(cmd.Context(), trace.ScopeDriver, cmd.Name())
	defer span.End("")

	if len(args) == 0 {
		args = s.scanDirs()
	}
	mode := uiModeOff
	if cmd.Flags().Lookup("ui") != nil {
		value, _ := cmd.Flags().GetString("ui")
		m, err := readUIMode(value)
		if err != nil {
			return nil, err
		}
		mode = m
	}

	run := &analysisRun{}
	for _, path := range args {
		dir, err := isDir(path)
		if err != nil {
			return nil, fmt.Errorf("cannot analyze %s: %w", path, err)
		}
		if !dir {
			res, err := driver.Analyze(ctx, path, opts)
			if err != nil {
				return nil, fmt.Errorf("analysis of %s failed: %w", path, err)
			}
			run.targets = append(run.targets, target{fs: res.FileSet, path: path, result: res, bag: res.Bag})
			run.timing.Merge(res.Timing)
			continue
		}

		dirOpts := driver.DirOptions{
			Extensions: s.cfg.Scan.Extensions,
			Jobs:       s.cfg.Scan.Jobs,
			Options:    opts,
		}
		var report *driver.DirReport
		if shouldUseTUI(mode) && s.format == "pretty" {
			report, err = analyzeDirWithUI(ctx, cmd.Name()+" "+path, []string{path}, dirOpts)
		} else {
			report, err = driver.AnalyzeDir(ctx, []string{path}, dirOpts)
		}
		if err != nil {
			return nil, fmt.Errorf("analysis of %s failed: %w", path, err)
		}
		for _, f := range report.Files {
			run.targets = append(run.targets, target{fs: report.FileSet, path: f.Path, result: f.Result, bag: f.Bag})
		}
		run.timing.Merge(report.Timing)
	}
	span.WithExtra("files", fmt.Sprint(len(run.targets)))
	return run, nil
}
