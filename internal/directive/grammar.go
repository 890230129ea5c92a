package directive

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// lineLexer tokenizes the text of one `#` line. Comments inside the line
// are dropped the same way the shader lexer drops them.
var lineLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*|/\*.*?\*/`},
	{Name: "Hash", Pattern: `#`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Punct", Pattern: `[^\sA-Za-z0-9_:#]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// line is a whole directive. A bare `#` is legal and matches nothing.
type line struct {
	Version   *versionLine   `"#" ( @@`
	Extension *extensionLine `    | @@`
	Pragma    *pragmaLine    `    | @@`
	Line      *lineLine      `    | @@`
	Define    *defineLine    `    | @@`
	Other     *otherLine     `    | @@ )?`
}

type versionLine struct {
	Number  int    `"version" @Int`
	Profile string `@Ident?`
}

type extensionLine struct {
	Name     string `"extension" @Ident`
	Behavior string `":" @Ident`
}

type pragmaLine struct {
	Name string   `"pragma" @Ident`
	Args []string `@( Ident | Int | Punct | Colon )*`
}

type lineLine struct {
	Number int    `"line" @Int`
	Source string `@Int?`
}

type defineLine struct {
	Name string   `"define" @Ident`
	Body []string `@( Ident | Int | Punct | Colon | Hash )*`
}

type otherLine struct {
	Name string   `@Ident`
	Args []string `@( Ident | Int | Punct | Colon | Hash )*`
}

var lineParser = participle.MustBuild[line](
	participle.Lexer(lineLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(2),
)
