package token

import (
	"strings"

	"glsles/internal/source"
)

// Channel separates what the parser sees from what only positions need.
type Channel uint8

const (
	// ChannelDefault carries significant tokens.
	ChannelDefault Channel = iota
	// ChannelHidden carries whitespace, comments and directive lines.
	ChannelHidden
)

func (c Channel) String() string {
	if c == ChannelHidden {
		return "hidden"
	}
	return "default"
}

// Token represents a single significant token with its location and the
// hidden-channel trivia that preceded it.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// Channel is always ChannelDefault for tokens; trivia live on the hidden one.
func (t Token) Channel() Channel { return ChannelDefault }

// Is reports whether the token has one of the kinds.
func (t Token) Is(kinds ...Kind) bool {
	for _, k := range kinds {
		if t.Kind == k {
			return true
		}
	}
	return false
}

// Reconstruct joins the significant token texts with single spaces.
// Hidden-channel material is dropped; EOF contributes nothing.
func Reconstruct(toks []Token) string {
	var b strings.Builder
	for _, t := range toks {
		if t.Kind == EOF || t.Text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t.Text)
	}
	return b.String()
}
