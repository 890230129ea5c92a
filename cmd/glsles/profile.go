package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"glsles/internal/prof"
)

var (
	profSession *prof.Session
	profOnce    sync.Once
)

// setupProfiling reads the profiling flags and starts the requested
// profilers.
func setupProfiling(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	var cfg prof.Config
	var err error
	if cfg.CPUProfile, err = flags.GetString("cpu-profile"); err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if cfg.MemProfile, err = flags.GetString("mem-profile"); err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if cfg.RuntimeTrace, err = flags.GetString("runtime-trace"); err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if !cfg.Enabled() {
		return nil
	}
	s, err := prof.Start(cfg)
	if err != nil {
		return err
	}
	profSession = s
	return nil
}

func runProfileCleanup() {
	profOnce.Do(func() {
		if err := profSession.Stop(); err != nil {
			fmt.Fprintf(os.Stderr, "glsles: profiling: %v\n", err) //nolint:errcheck
		}
	})
}
