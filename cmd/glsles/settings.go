package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"glsles/internal/diagfmt"
	"glsles/internal/driver"
	"glsles/internal/project"
)

// settings is the effective configuration of one invocation: manifest
// values overridden by explicitly set flags.
type settings struct {
	manifest *project.Manifest // nil без glsles.toml
	cfg      project.Config

	format   string
	color    bool
	pathMode diagfmt.PathMode
	timings  bool
	noCache  bool
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve working directory: %w", err)
	}
	s := &settings{cfg: project.Defaults()}
	m, ok, err := project.LoadFromDir(wd)
	if err != nil {
		return nil, err
	}
	if ok {
		s.manifest = m
		s.cfg = m.Config
		for _, key := range m.Undecoded {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: unknown key %q ignored\n", m.Path, key) //nolint:errcheck
		}
	}

	flags := cmd.Root().PersistentFlags()
	if flags.Changed("format") {
		s.cfg.Output.Format, _ = flags.GetString("format")
	}
	if flags.Changed("color") {
		s.cfg.Output.Color, _ = flags.GetString("color")
	}
	if flags.Changed("max-diagnostics") {
		s.cfg.Diagnostics.Max, _ = flags.GetInt("max-diagnostics")
	}
	if cmd.Flags().Changed("jobs") {
		s.cfg.Scan.Jobs, _ = cmd.Flags().GetInt("jobs")
	}
	if cmd.Flags().Changed("no-cache") {
		s.noCache, _ = cmd.Flags().GetBool("no-cache")
	}
	s.timings, _ = flags.GetBool("timings")
	pathMode, _ := flags.GetString("path-mode")
	s.pathMode = diagfmt.ParsePathMode(pathMode)

	s.format = strings.ToLower(s.cfg.Output.Format)
	switch s.format {
	case "pretty", "json", "yaml":
	default:
		return nil, fmt.Errorf("unknown format %q (expected pretty|json|yaml)", s.format)
	}
	switch s.cfg.Output.Color {
	case "on":
		s.color = true
	case "off":
		s.color = false
	case "auto", "":
		s.color = isTerminal(os.Stdout) && isTerminal(os.Stderr)
	default:
		return nil, fmt.Errorf("invalid --color value %q (expected auto|on|off)", s.cfg.Output.Color)
	}
	color.NoColor = !s.color
	if s.cfg.Diagnostics.Max < 0 || s.cfg.Scan.Jobs < 0 {
		return nil, fmt.Errorf("max-diagnostics and jobs must be >= 0")
	}
	return s, nil
}

func (s *settings) prettyOpts() diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:     s.color,
		Context:   1,
		PathMode:  s.pathMode,
		ShowNotes: true,
	}
}

func (s *settings) jsonOpts() diagfmt.JSONOpts {
	return diagfmt.JSONOpts{
		IncludePositions: true,
		PathMode:         s.pathMode,
		IncludeNotes:     true,
	}
}

// scanDirs returns the manifest scan directories, or "." without one.
func (s *settings) scanDirs() []string {
	if s.manifest != nil {
		return s.manifest.ScanDirs()
	}
	return []string{"."}
}

// openCache returns nil when caching is off or the cache cannot be opened;
// the run then simply analyzes every file.
func (s *settings) openCache(cmd *cobra.Command) *driver.DiskCache {
	if s.noCache || !s.cfg.Cache.Enabled {
		return nil
	}
	var (
		cache *driver.DiskCache
		err   error
	)
	if dir := s.cfg.Cache.Dir; dir != "" {
		if !filepath.IsAbs(dir) && s.manifest != nil {
			dir = filepath.Join(s.manifest.Root, dir)
		}
		cache, err = driver.OpenDiskCacheAt(dir)
	} else {
		cache, err = driver.OpenDiskCache("glsles")
	}
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "cache disabled: %v\n", err) //nolint:errcheck
		return nil
	}
	return cache
}

// isDir reports whether path names a directory.
func isDir(path string) (bool, error) {
	st, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return st.IsDir(), nil
}
