package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedBlockComment Code = 1002
	LexBadNumber                Code = 1003

	// Синтаксические
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynExpectSemicolon   Code = 2002
	SynExpectIdentifier  Code = 2003
	SynExpectType        Code = 2004
	SynExpectExpression  Code = 2005
	SynExpectStatement   Code = 2006
	SynUnclosedParen     Code = 2007
	SynUnclosedBrace     Code = 2008
	SynUnclosedBracket   Code = 2009
	SynReservedOperator  Code = 2010
	SynRepeatedQualifier Code = 2011
	SynBadDeclaration    Code = 2012
	SynTooManyErrors     Code = 2013

	// Извлечение деклараций
	ExtInfo              Code = 3000
	ExtDuplicateGlobal   Code = 3001
	ExtPrecisionNoType   Code = 3002
	ExtDuplicateFunction Code = 3003
	ExtDuplicateStruct   Code = 3004
	ExtNestedStruct      Code = 3005
	ExtNoMain            Code = 3006

	// I/O
	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002

	// Директивы препроцессора (скрытый канал)
	DirMalformed       Code = 5001
	DirUnknownBehavior Code = 5002
	DirVersionNotFirst Code = 5003
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Malformed numeric constant",

	SynInfo:              "Syntax information",
	SynUnexpectedToken:   "Unexpected token",
	SynExpectSemicolon:   "Missing semicolon",
	SynExpectIdentifier:  "Expected identifier",
	SynExpectType:        "Expected type",
	SynExpectExpression:  "Expected expression",
	SynExpectStatement:   "Expected statement",
	SynUnclosedParen:     "Unclosed parenthesis",
	SynUnclosedBrace:     "Unclosed brace",
	SynUnclosedBracket:   "Unclosed bracket",
	SynReservedOperator:  "Reserved operator",
	SynRepeatedQualifier: "Repeated qualifier",
	SynBadDeclaration:    "Malformed declaration",
	SynTooManyErrors:     "Too many errors",

	ExtInfo:              "Extraction information",
	ExtDuplicateGlobal:   "Duplicate global declaration",
	ExtPrecisionNoType:   "Precision statement without type",
	ExtDuplicateFunction: "Duplicate function definition",
	ExtDuplicateStruct:   "Duplicate struct type",
	ExtNestedStruct:      "Nested struct declaration",
	ExtNoMain:            "Missing main function",

	IOLoadFileError: "Failed to load file",
	IOCacheError:    "Cache failure",

	DirMalformed:       "Malformed directive",
	DirUnknownBehavior: "Unknown extension behavior",
	DirVersionNotFirst: "#version is not the first directive",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("EXT%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("DIR%04d", ic)
	}
	return "E0000"
}

// Kind reports which stage a code belongs to.
// Directive codes count as lexical: directive lines live on the lexer's hidden channel.
func (c Code) Kind() Kind {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000, ic >= 5000 && ic < 6000:
		return KindLexical
	case ic >= 2000 && ic < 3000:
		return KindSyntactic
	case ic >= 3000 && ic < 4000:
		return KindExtraction
	case ic >= 4000 && ic < 5000:
		return KindIO
	}
	return KindUnknown
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
