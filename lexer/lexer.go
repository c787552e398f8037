// Package lexer implements the Cool lexical recognizer: a single
// left-to-right pass over raw source text that yields an ordered
// sequence of classified tokens and lexical errors.
package lexer

import (
	"github.com/alexisbouchez/coolscan/config"
	"github.com/alexisbouchez/coolscan/token"
)

// Item is one element of the recognizer's output sequence: exactly one
// of Token or Error is set.
type Item struct {
	Token *token.Token
	Error *token.ScannerError
}

// Option configures a Lexer at construction time.
type Option func(*Lexer)

// WithLimits overrides the scanner's tunable limits (see config.Limits).
// Callers that do not supply this get the specification's defaults.
func WithLimits(limits config.Limits) Option {
	return func(l *Lexer) { l.limits = limits }
}

// WithTracer installs a callback invoked with one line of diagnostic
// text whenever block comment nesting reaches limits.CommentDepthWarn.
// It never influences the emitted token/error stream.
func WithTracer(trace func(string)) Option {
	return func(l *Lexer) { l.tracer = trace }
}

// Lexer walks an input string byte-at-a-time, producing Items on demand.
type Lexer struct {
	input string
	pos   int
	ch    byte
	atEOF bool
	line  int

	limits config.Limits
	tracer func(string)
}

// New creates a Lexer over input, ready to produce its first Item.
func New(input string, opts ...Option) *Lexer {
	l := &Lexer{
		input:  input,
		pos:    -1,
		line:   1,
		limits: config.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.readChar()
	return l
}

// Scan runs l to completion and returns every Item it produces, in
// source order. Scan is a convenience wrapper; Next supports a lazy
// pull-based iteration when buffering the whole sequence is undesired.
func Scan(input string, opts ...Option) []Item {
	l := New(input, opts...)
	var items []Item
	for {
		item, ok := l.Next()
		if !ok {
			break
		}
		items = append(items, item)
	}
	return items
}

// readChar advances the cursor by one byte, tracking the current line.
// l.line always names the line of l.ch; advancing past a '\n' is what
// moves the counter forward, so end-of-lexeme lines read correctly off
// l.line at the moment a construct's last byte has just been consumed.
//
// End of input is tracked by atEOF rather than by a sentinel value of
// ch, since a literal NUL byte is legal (if erroneous) Cool source text
// and must be distinguishable from genuine end of input.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
	}
	l.pos++
	if l.pos >= len(l.input) {
		l.ch = 0
		l.atEOF = true
	} else {
		l.ch = l.input[l.pos]
		l.atEOF = false
	}
}

func (l *Lexer) peek() byte {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

// Next returns the next Item in the sequence, or ok=false once the
// input is exhausted and nothing more will ever be produced.
func (l *Lexer) Next() (Item, bool) {
	for {
		l.skipWhitespaceAndLineComments()

		if l.atEOF {
			return Item{}, false
		}

		// 1. Block comment
		if l.ch == '(' && l.peek() == '*' {
			if errKind, line, unterminated := l.consumeBlockComment(); unterminated {
				return errItem(errKind, line), true
			}
			continue
		}

		// 2. Stray close comment
		if l.ch == '*' && l.peek() == ')' {
			line := l.line
			l.readChar()
			l.readChar()
			return errItem(token.UnclosedComment, line), true
		}

		// 3. String literal
		if l.ch == '"' {
			return l.lexString()
		}

		// 4. Integer constant
		if isDigit(l.ch) {
			return l.lexInteger(), true
		}

		// 5. Keyword or identifier
		if isLetter(l.ch) || l.ch == '_' {
			return l.lexIdentifierOrKeyword(), true
		}

		// 6/7. Two-character then one-character operator, or symbol
		if item, ok := l.lexOperatorOrSymbol(); ok {
			return item, true
		}

		// 8. Anything else
		line := l.line
		bad := l.ch
		l.readChar()
		return Item{Error: &token.ScannerError{Kind: token.InvalidCharacter, Payload: bad, Line: line}}, true
	}
}

func errItem(kind token.ErrorKind, line int) Item {
	return Item{Error: &token.ScannerError{Kind: kind, Line: line}}
}

func (l *Lexer) skipWhitespaceAndLineComments() {
	for {
		for !l.atEOF && isSpace(l.ch) {
			l.readChar()
		}
		if l.ch == '-' && l.peek() == '-' {
			for !l.atEOF && l.ch != '\n' {
				l.readChar()
			}
			continue
		}
		break
	}
}

// consumeBlockComment consumes a nested (* ... *) comment starting at
// the current '(' and reports whether it ran off the end of input
// before closing (unterminated == true, with the line EOF occurred on).
func (l *Lexer) consumeBlockComment() (kind token.ErrorKind, line int, unterminated bool) {
	depth := 1
	l.readChar() // consume '('
	l.readChar() // consume '*'

	for depth > 0 {
		if l.atEOF {
			return token.EofInComment, l.line, true
		}
		if l.ch == '(' && l.peek() == '*' {
			depth++
			l.readChar()
			l.readChar()
			if l.tracer != nil && l.limits.CommentDepthWarn > 0 && depth == l.limits.CommentDepthWarn {
				l.tracer("block comment nesting reached configured depth warning threshold")
			}
			continue
		}
		if l.ch == '*' && l.peek() == ')' {
			depth--
			l.readChar()
			l.readChar()
			continue
		}
		l.readChar()
	}
	return 0, 0, false
}

// lexString consumes a double-quoted string literal starting at the
// current unescaped '"', decoding escapes per the specification.
func (l *Lexer) lexString() (Item, bool) {
	l.readChar() // consume opening quote
	var content []byte

	for {
		switch {
		case l.atEOF:
			return errItem(token.EofInStringConstant, l.line), true

		case l.ch == '"':
			line := l.line
			l.readChar() // consume closing quote
			if len(content) > l.limits.MaxStringConstant {
				return errItem(token.StringConstantTooLong, line), true
			}
			return Item{Token: &token.Token{Kind: token.StringConstant, Payload: string(content), Line: line}}, true

		case l.ch == '\n':
			line := l.line
			l.readChar() // consume the newline; resume scanning right after it
			return errItem(token.UnterminatedStringConstant, line), true

		case l.ch == 0x00:
			line := l.line
			l.skipToStringEnd()
			return errItem(token.StringContainsNullCharacter, line), true

		case l.ch == '\\':
			l.readChar() // consume backslash
			if l.atEOF {
				return errItem(token.EofInStringConstant, l.line), true
			}
			if l.ch == 0x00 {
				line := l.line
				l.skipToStringEnd()
				return errItem(token.StringContainsEscapedNullCharacter, line), true
			}
			content = append(content, decodeEscape(l.ch))
			l.readChar()

		default:
			content = append(content, l.ch)
			l.readChar()
		}
	}
}

// decodeEscape resolves the byte following a backslash inside a string
// literal to the decoded byte it contributes to the string's content.
func decodeEscape(c byte) byte {
	switch c {
	case 'n', '\n':
		return '\n'
	case 't':
		return '\t'
	case 'b':
		return 0x08
	case 'f':
		return 0x0C
	default:
		return c
	}
}

// skipToStringEnd discards the remainder of a malformed string literal,
// stopping at (and consuming) the next closing quote or bare newline,
// or at end of input, so scanning can resume in Normal state.
func (l *Lexer) skipToStringEnd() {
	for !l.atEOF && l.ch != '"' && l.ch != '\n' {
		if l.ch == '\\' {
			l.readChar()
			if !l.atEOF {
				l.readChar()
			}
			continue
		}
		l.readChar()
	}
	if !l.atEOF {
		l.readChar()
	}
}

func (l *Lexer) lexInteger() Item {
	start := l.pos
	for isDigit(l.ch) {
		l.readChar()
	}
	return Item{Token: &token.Token{Kind: token.IntegerConstant, Payload: l.input[start:l.pos], Line: l.line}}
}

// lexIdentifierOrKeyword matches [A-Za-z_][A-Za-z0-9_]* and classifies
// it as a keyword, a boolean constant, a TypeId, or an ObjectId.
func (l *Lexer) lexIdentifierOrKeyword() Item {
	start := l.pos
	line := l.line
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	lit := l.input[start:l.pos]
	lower := toLower(lit)

	if (lower == "true" && lit[0] == 't') || (lower == "false" && lit[0] == 'f') {
		return Item{Token: &token.Token{Kind: token.BoolConstant, Payload: lower, Line: line}}
	}
	if kind, ok := token.Keywords[lower]; ok {
		return Item{Token: &token.Token{Kind: kind, Line: line}}
	}
	if lit[0] >= 'A' && lit[0] <= 'Z' {
		return Item{Token: &token.Token{Kind: token.TypeId, Payload: lit, Line: line}}
	}
	return Item{Token: &token.Token{Kind: token.ObjectId, Payload: lit, Line: line}}
}

func (l *Lexer) lexOperatorOrSymbol() (Item, bool) {
	line := l.line
	switch l.ch {
	case '+':
		l.readChar()
		return opItem(token.Plus, line), true
	case '-':
		l.readChar()
		return opItem(token.Minus, line), true
	case '*':
		l.readChar()
		return opItem(token.Star, line), true
	case '/':
		l.readChar()
		return opItem(token.Slash, line), true
	case '=':
		if l.peek() == '>' {
			l.readChar()
			l.readChar()
			return opItem(token.Darrow, line), true
		}
		l.readChar()
		return opItem(token.Equal, line), true
	case '<':
		if l.peek() == '=' {
			l.readChar()
			l.readChar()
			return opItem(token.LE, line), true
		}
		if l.peek() == '-' {
			l.readChar()
			l.readChar()
			return opItem(token.Assign, line), true
		}
		l.readChar()
		return opItem(token.Less, line), true
	case '.':
		l.readChar()
		return opItem(token.Dot, line), true
	case '@':
		l.readChar()
		return opItem(token.At, line), true
	case '~':
		l.readChar()
		return opItem(token.Tilde, line), true
	case '{', '}', ':', ';', '(', ')', ',':
		c := l.ch
		l.readChar()
		return Item{Token: &token.Token{Kind: token.Symbol, Payload: string(c), Line: line}}, true
	}
	return Item{}, false
}

func opItem(kind token.Kind, line int) Item {
	return Item{Token: &token.Token{Kind: kind, Line: line}}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// toLower folds ASCII letters only; Cool source is 7-bit ASCII.
func toLower(s string) string {
	b := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		b[i] = c
	}
	return string(b)
}
