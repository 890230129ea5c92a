package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"glsles/internal/diagfmt"
	"glsles/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file",
	Short: "Print the token stream of a shader",
	Long:  `Tokenize breaks a GLSL ES shader into tokens; --hidden also shows comments and directive lines`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().Bool("hidden", false, "include hidden-channel trivia (comments, # lines)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	hidden, err := cmd.Flags().GetBool("hidden")
	if err != nil {
		return fmt.Errorf("failed to get hidden flag: %w", err)
	}

	result, err := driver.Tokenize(args[0], s.cfg.Diagnostics.Max)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Выводим диагностику в stderr, если есть
	if result.Bag.Len() > 0 {
		diagfmt.Pretty(cmd.ErrOrStderr(), result.Bag, result.FileSet, s.prettyOpts())
	}

	out := cmd.OutOrStdout()
	switch s.format {
	case "pretty":
		return diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet, hidden)
	case "json":
		return diagfmt.FormatTokensJSON(out, result.Tokens, hidden)
	default:
		return fmt.Errorf("format %q is not supported by tokenize (use pretty or json)", s.format)
	}
}
