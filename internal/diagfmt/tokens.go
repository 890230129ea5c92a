package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"glsles/internal/source"
	"glsles/internal/token"
)

type TriviaOutput struct {
	Kind string      `json:"kind"`
	Text string      `json:"text,omitempty"`
	Span source.Span `json:"span"`
}

type TokenOutput struct {
	Kind    string         `json:"kind"`
	Channel string         `json:"channel"`
	Text    string         `json:"text,omitempty"`
	Span    source.Span    `json:"span"`
	Leading []TriviaOutput `json:"leading,omitempty"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате.
// With hidden set every trivia is printed on its own line before the
// token it precedes.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet, hidden bool) error {
	for i, tok := range tokens {
		if hidden {
			for _, tr := range tok.Leading {
				start, _ := fs.Resolve(tr.Span)
				if _, err := fmt.Fprintf(w, "     ~ %-15s %q at %d:%d\n", tr.Kind.String(), tr.Text, start.Line, start.Col); err != nil {
					return err
				}
			}
		}

		startPos, endPos := fs.Resolve(tok.Span)
		var b strings.Builder
		fmt.Fprintf(&b, "%3d: %-15s", i+1, tok.Kind.String())
		if tok.Text != "" {
			fmt.Fprintf(&b, " %q", tok.Text)
		}
		fmt.Fprintf(&b, " at %d:%d-%d:%d", startPos.Line, startPos.Col, endPos.Line, endPos.Col)
		if !hidden && len(tok.Leading) > 0 {
			leading := make([]string, len(tok.Leading))
			for j, tr := range tok.Leading {
				leading[j] = tr.Kind.String()
			}
			fmt.Fprintf(&b, " (leading: %s)", strings.Join(leading, ", "))
		}
		b.WriteByte('\n')
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token, hidden bool) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		tokenOut := TokenOutput{
			Kind:    tok.Kind.String(),
			Channel: tok.Channel().String(),
			Text:    tok.Text,
			Span:    tok.Span,
		}
		if hidden {
			for _, tr := range tok.Leading {
				tokenOut.Leading = append(tokenOut.Leading, TriviaOutput{Kind: tr.Kind.String(), Text: tr.Text, Span: tr.Span})
			}
		}
		output = append(output, tokenOut)
		if tok.Kind == token.EOF {
			break
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
