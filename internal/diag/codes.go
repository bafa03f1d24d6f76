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
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexTokenTooLong             Code = 1005

	// Парсерные
	SynInfo                Code = 2000
	SynUnexpectedToken     Code = 2001
	SynUnclosedDelimiter   Code = 2002
	SynUnclosedParen       Code = 2006
	SynUnclosedBrace       Code = 2007
	SynUnclosedBracket     Code = 2008
	SynModifierNotAllowed  Code = 2015
	SynAttributeNotAllowed Code = 2016
	SynTypeExpectBody      Code = 2019
	SynExpectIdentifier    Code = 2102
	SynExpectType          Code = 2202
	SynExpectExpression    Code = 2203
	SynExpectColon         Code = 2204
	SynUnexpectedModifier  Code = 2205

	// Раскрытие атрибутов
	MacInfo             Code = 3000
	MacInvalidSpecifier Code = 3001

	// IO
	IOLoadFileError Code = 4001

	// Конфигурация
	CfgInfo          Code = 5000
	CfgInvalidConfig Code = 5001

	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedString:       "Unterminated string literal",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexBadNumber:                "Bad number literal",
		LexTokenTooLong:             "Token too long",
		SynInfo:                     "Syntax information",
		SynUnexpectedToken:          "Unexpected token",
		SynUnclosedDelimiter:        "Unclosed delimiter",
		SynUnclosedParen:            "Unclosed parenthesis",
		SynUnclosedBrace:            "Unclosed brace",
		SynUnclosedBracket:          "Unclosed bracket",
		SynModifierNotAllowed:       "Modifier not allowed here",
		SynAttributeNotAllowed:      "Attribute not allowed here",
		SynTypeExpectBody:           "Expected type body",
		SynExpectIdentifier:         "Expect identifier",
		SynExpectType:               "Expect type",
		SynExpectExpression:         "Expect expression",
		SynExpectColon:              "Expect colon",
		SynUnexpectedModifier:       "Unexpected modifier",
		MacInfo:                     "Expansion information",
		MacInvalidSpecifier:         "invalid specifier",
		IOLoadFileError:             "I/O load file error",
		CfgInfo:                     "Configuration information",
		CfgInvalidConfig:            "Invalid configuration",
		ObsInfo:                     "Observability information",
		ObsTimings:                  "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("MAC%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CFG%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// Domain names the component that owns the code. Expansion diagnostics belong
// to the attribute that produced them.
func (c Code) Domain() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return "lexer"
	case ic >= 2000 && ic < 3000:
		return "parser"
	case ic >= 3000 && ic < 4000:
		return "LockedWeakReference"
	case ic >= 4000 && ic < 5000:
		return "io"
	case ic >= 5000 && ic < 6000:
		return "config"
	case ic >= 6000 && ic < 7000:
		return "observ"
	}
	return ""
}
