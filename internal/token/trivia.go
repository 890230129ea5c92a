package token

import "glsles/internal/source"

// TriviaKind classifies hidden-channel material.
type TriviaKind uint8

const (
	TriviaSpace        TriviaKind = iota // ' ', '\t', '\r', '\f', '\v'
	TriviaNewline                        // one or more '\n'
	TriviaLineComment                    // // ... up to the newline
	TriviaBlockComment                   // /* ... */, first closing delimiter wins
	TriviaDirective                      // # ... up to the newline
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaNewline:
		return "Newline"
	case TriviaLineComment:
		return "LineComment"
	case TriviaBlockComment:
		return "BlockComment"
	case TriviaDirective:
		return "Directive"
	default:
		return "Trivia?"
	}
}

// Trivia is a hidden-channel lexeme kept for positions and tooling.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

// Channel is always ChannelHidden.
func (Trivia) Channel() Channel { return ChannelHidden }
