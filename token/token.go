// Package token defines the Cool lexical token model: a closed set of
// tagged token and lexical-error kinds plus the single total rendering
// function that turns each into the line format the Cool test harness
// expects.
package token

import "fmt"

// Kind is the tag of a lexical item produced by the recognizer.
type Kind int

const (
	// Special
	Illegal Kind = iota

	// Keywords (case-insensitive in source; tag is the uppercased spelling)
	keywordBeg
	Class
	Else
	Fi
	If
	In
	Inherits
	Let
	Loop
	Pool
	Then
	While
	Case
	Esac
	Of
	New
	IsVoid
	Not
	keywordEnd

	// Literals and identifiers
	BoolConstant
	IntegerConstant
	StringConstant
	TypeId
	ObjectId

	// Operators
	operatorBeg
	Plus     // +
	Minus    // -
	Star     // *
	Slash    // /
	Equal    // =
	Less     // <
	LE       // <=
	Assign   // <-
	Darrow   // =>
	Dot      // .
	At       // @
	Tilde    // ~
	operatorEnd

	// Symbols
	Symbol // payload carries the literal punctuation byte
)

var keywordNames = map[Kind]string{
	Class:    "CLASS",
	Else:     "ELSE",
	Fi:       "FI",
	If:       "IF",
	In:       "IN",
	Inherits: "INHERITS",
	Let:      "LET",
	Loop:     "LOOP",
	Pool:     "POOL",
	Then:     "THEN",
	While:    "WHILE",
	Case:     "CASE",
	Esac:     "ESAC",
	Of:       "OF",
	New:      "NEW",
	IsVoid:   "ISVOID",
	Not:      "NOT",
}

// Keywords maps the lowercase spelling of each Cool keyword to its Kind.
// Source-level matching against this table is case-insensitive; callers
// must lowercase the candidate lexeme before the lookup.
var Keywords = map[string]Kind{
	"class":    Class,
	"else":     Else,
	"fi":       Fi,
	"if":       If,
	"in":       In,
	"inherits": Inherits,
	"let":      Let,
	"loop":     Loop,
	"pool":     Pool,
	"then":     Then,
	"while":    While,
	"case":     Case,
	"esac":     Esac,
	"of":       Of,
	"new":      New,
	"isvoid":   IsVoid,
	"not":      Not,
}

var operatorNames = map[Kind]string{
	Plus:   "'+'",
	Minus:  "'-'",
	Star:   "'*'",
	Slash:  "'/'",
	Equal:  "'='",
	Less:   "'<'",
	LE:     "LE",
	Assign: "ASSIGN",
	Darrow: "DARROW",
	Dot:    "'.'",
	At:     "'@'",
	Tilde:  "'~'",
}

// IsKeyword reports whether k is one of the 17 Cool keyword kinds.
func (k Kind) IsKeyword() bool { return k > keywordBeg && k < keywordEnd }

// IsOperator reports whether k is one of the 12 Cool operator kinds.
func (k Kind) IsOperator() bool { return k > operatorBeg && k < operatorEnd }

// ErrorKind is the closed set of lexical errors the recognizer can report.
type ErrorKind int

const (
	EofInComment ErrorKind = iota
	UnclosedComment
	EofInStringConstant
	UnterminatedStringConstant
	StringContainsNullCharacter
	StringContainsEscapedNullCharacter
	StringConstantTooLong
	InvalidCharacter
)

var errorMessages = map[ErrorKind]string{
	EofInComment:                       "EOF in comment",
	UnclosedComment:                    "Unmatched *)",
	EofInStringConstant:                "EOF in string constant",
	UnterminatedStringConstant:         "Unterminated string constant",
	StringContainsNullCharacter:        "String contains null character.",
	StringContainsEscapedNullCharacter: "String contains escaped null character.",
	StringConstantTooLong:              "String constant too long",
}

// Token is one classified lexical item: its kind, the line on which its
// last byte sits, and a kind-dependent payload.
//
// Payload interpretation by Kind:
//   - keyword kinds, operator kinds other than Symbol: unused (empty)
//   - Symbol: Payload is the single punctuation byte, as a one-rune string
//   - BoolConstant: Payload is "true" or "false"
//   - IntegerConstant: Payload is the raw, unparsed digit string
//   - StringConstant: Payload is the already-decoded string content
//   - TypeId, ObjectId: Payload is the original identifier text
type Token struct {
	Kind    Kind
	Payload string
	Line    int
}

// ScannerError is one lexical error: its kind and the line it was
// reported on.
//
// For InvalidCharacter, Payload carries the single offending byte.
type ScannerError struct {
	Kind    ErrorKind
	Payload byte
	Line    int
}

// Render formats t in the canonical "#<line> <TAG>[ <payload>]" form.
func (t Token) Render() string {
	switch {
	case t.Kind.IsKeyword():
		return fmt.Sprintf("#%d %s", t.Line, keywordNames[t.Kind])
	case t.Kind.IsOperator():
		return fmt.Sprintf("#%d %s", t.Line, operatorNames[t.Kind])
	case t.Kind == Symbol:
		return fmt.Sprintf("#%d '%s'", t.Line, t.Payload)
	case t.Kind == BoolConstant:
		return fmt.Sprintf("#%d BOOL_CONST %s", t.Line, t.Payload)
	case t.Kind == IntegerConstant:
		return fmt.Sprintf("#%d INT_CONST %s", t.Line, t.Payload)
	case t.Kind == StringConstant:
		return fmt.Sprintf("#%d STR_CONST \"%s\"", t.Line, EscapeString(t.Payload))
	case t.Kind == TypeId:
		return fmt.Sprintf("#%d TYPEID %s", t.Line, t.Payload)
	case t.Kind == ObjectId:
		return fmt.Sprintf("#%d OBJECTID %s", t.Line, t.Payload)
	default:
		return fmt.Sprintf("#%d ILLEGAL", t.Line)
	}
}

// Render formats e in the canonical "#<line> ERROR \"<message>\"" form.
func (e ScannerError) Render() string {
	if e.Kind == InvalidCharacter {
		return fmt.Sprintf("#%d ERROR \"%s\"", e.Line, escapeByte(e.Payload))
	}
	return fmt.Sprintf("#%d ERROR \"%s\"", e.Line, errorMessages[e.Kind])
}

// escapeTable maps bytes that re-escape to something other than
// themselves when rendered inside a STR_CONST payload or an
// InvalidCharacter error message.
var escapeTable = map[byte]string{
	'"':  `\"`,
	'\\': `\\`,
	'\n': `\n`,
	'\t': `\t`,
	0x08: `\b`,
	0x0C: `\f`,
	0x00: `\000`,
	0x01: `\001`,
	0x02: `\002`,
	0x03: `\003`,
	0x04: `\004`,
	0x0B: `\013`,
	0x0D: `\015`,
	0x12: `\022`,
	0x1B: `\033`,
}

func escapeByte(c byte) string {
	if s, ok := escapeTable[c]; ok {
		return s
	}
	return string(c)
}

// EscapeString re-escapes a decoded string constant's bytes for output,
// per the byte table in §6 of the specification.
func EscapeString(s string) string {
	var b []byte
	for i := 0; i < len(s); i++ {
		b = append(b, escapeByte(s[i])...)
	}
	return string(b)
}
