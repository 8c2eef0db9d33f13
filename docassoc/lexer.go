package docassoc

import (
	"bytes"
	"strings"
)

// TokenKind is the lexical class of a [Token].
type TokenKind string

// Token kinds.
const (
	TokenIdent  TokenKind = "ident"
	TokenNumber TokenKind = "number"
	TokenString TokenKind = "string"
	TokenChar   TokenKind = "char"
	TokenPunct  TokenKind = "punct"
)

// Token is a single lexical token. Literal contents are kept verbatim.
type Token struct {
	Kind  TokenKind `json:"kind"  yaml:"kind"`
	Text  string    `json:"text"  yaml:"text"`
	Range Range     `json:"range" yaml:"range"`
}

// Directive is a preprocessor line, including continuation lines. Comments
// inside it are reported separately.
type Directive struct {
	Text  string `json:"text"  yaml:"text"`
	Range Range  `json:"range" yaml:"range"`
}

type itemKind int

const (
	itemToken itemKind = iota
	itemComment
	itemDirective
)

type item struct {
	comment   *Comment
	directive *Directive
	tok       Token
	kind      itemKind
}

// literalPrefixes are the encoding prefixes that may precede a string or
// character literal.
var literalPrefixes = map[string]bool{
	"L": true, "u": true, "U": true, "u8": true,
	"R": true, "LR": true, "uR": true, "UR": true, "u8R": true,
}

// lexer splits C++ source into tokens, comments and directives. It does not
// expand macros or interpret directives.
type lexer struct {
	src         []byte
	items       []item
	off         int
	line        int
	col         int
	atLineStart bool
}

func lex(src []byte) ([]item, error) {
	l := &lexer{src: src, line: 1, col: 1, atLineStart: true}

	err := l.run()
	if err != nil {
		return nil, err
	}

	return l.items, nil
}

func (l *lexer) pos() Position {
	return Position{Offset: l.off, Line: l.line, Column: l.col}
}

// endPos returns the position of the last consumed byte, used as the end of
// a range so that End.Line is the line of the closing delimiter.
func (l *lexer) endPos() Position {
	p := Position{Offset: l.off, Line: l.line, Column: l.col - 1}
	if l.off > 0 && l.src[l.off-1] == '\n' {
		p.Line--
	}

	return p
}

func (l *lexer) peek(n int) byte {
	if l.off+n < len(l.src) {
		return l.src[l.off+n]
	}

	return 0
}

func (l *lexer) advance(n int) {
	for range n {
		if l.off >= len(l.src) {
			return
		}

		if l.src[l.off] == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}

		l.off++
	}
}

// splice reports the length of a backslash-newline sequence at offset n
// from the cursor, or 0.
func (l *lexer) splice(n int) int {
	if l.peek(n) != '\\' {
		return 0
	}

	switch {
	case l.peek(n+1) == '\n':
		return 2
	case l.peek(n+1) == '\r' && l.peek(n+2) == '\n':
		return 3
	}

	return 0
}

func (l *lexer) run() error {
	for l.off < len(l.src) {
		c := l.src[l.off]

		switch {
		case c == '\n':
			l.advance(1)
			l.atLineStart = true

		case c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v':
			l.advance(1)

		case l.splice(0) > 0:
			l.advance(l.splice(0))

		case c == '#' && l.atLineStart:
			err := l.directive()
			if err != nil {
				return err
			}

			l.atLineStart = true

		case c == '/' && l.peek(1) == '/':
			l.lineComment()

		case c == '/' && l.peek(1) == '*':
			err := l.blockComment()
			if err != nil {
				return err
			}

		default:
			l.atLineStart = false

			err := l.token()
			if err != nil {
				return err
			}
		}
	}

	return nil
}

func (l *lexer) emitComment(start Position, text string) {
	l.items = append(l.items, item{
		kind: itemComment,
		comment: &Comment{
			Text:  text,
			Style: commentStyle(text),
			Range: Range{Start: start, End: l.endPos()},
		},
	})
}

func (l *lexer) lineComment() {
	start := l.pos()

	for l.off < len(l.src) && l.src[l.off] != '\n' {
		if n := l.splice(0); n > 0 {
			l.advance(n)

			continue
		}

		l.advance(1)
	}

	l.emitComment(start, strings.TrimSuffix(string(l.src[start.Offset:l.off]), "\r"))
}

func (l *lexer) blockComment() error {
	start := l.pos()

	idx := bytes.Index(l.src[l.off+2:], []byte("*/"))
	if idx < 0 {
		return scanErrorf(start, "unterminated comment")
	}

	l.advance(idx + 4)
	l.emitComment(start, string(l.src[start.Offset:l.off]))

	return nil
}

// directive consumes a preprocessor line. Comments inside it are emitted as
// their own items after the directive item.
func (l *lexer) directive() error {
	start := l.pos()
	idx := len(l.items)
	l.items = append(l.items, item{kind: itemDirective})

	var text strings.Builder

loop:
	for l.off < len(l.src) {
		c := l.src[l.off]

		switch {
		case c == '\n':
			break loop

		case l.splice(0) > 0:
			text.WriteByte(' ')
			l.advance(l.splice(0))

		case c == '/' && l.peek(1) == '/':
			l.lineComment()

			break loop

		case c == '/' && l.peek(1) == '*':
			err := l.blockComment()
			if err != nil {
				return err
			}

			text.WriteByte(' ')

		case c == '"':
			// Tolerate unterminated strings in directives, e.g. #error text.
			text.WriteByte(c)
			l.advance(1)

			for l.off < len(l.src) && l.src[l.off] != '"' && l.src[l.off] != '\n' {
				if l.src[l.off] == '\\' && l.peek(1) != '\n' {
					text.WriteByte(l.src[l.off])
					l.advance(1)
				}

				text.WriteByte(l.src[l.off])
				l.advance(1)
			}

			if l.off < len(l.src) && l.src[l.off] == '"' {
				text.WriteByte('"')
				l.advance(1)
			}

		default:
			text.WriteByte(c)
			l.advance(1)
		}
	}

	l.items[idx].directive = &Directive{
		Text:  strings.TrimSpace(text.String()),
		Range: Range{Start: start, End: l.endPos()},
	}

	return nil
}

func (l *lexer) token() error {
	start := l.pos()
	c := l.src[l.off]

	switch {
	case isIdentStart(c):
		end := l.off
		for end < len(l.src) && isIdentPart(l.src[end]) {
			end++
		}

		word := string(l.src[l.off:end])
		if literalPrefixes[word] && end < len(l.src) && (l.src[end] == '"' || l.src[end] == '\'') {
			return l.literal(start, len(word), strings.HasSuffix(word, "R"))
		}

		l.advance(end - l.off)
		l.emitToken(TokenIdent, start)

	case isDigit(c) || (c == '.' && isDigit(l.peek(1))):
		l.number()
		l.emitToken(TokenNumber, start)

	case c == '"' || c == '\'':
		return l.literal(start, 0, false)

	default:
		l.advance(punctLen(l.src[l.off:]))
		l.emitToken(TokenPunct, start)
	}

	return nil
}

func (l *lexer) emitToken(kind TokenKind, start Position) {
	l.items = append(l.items, item{
		kind: itemToken,
		tok: Token{
			Kind:  kind,
			Text:  string(l.src[start.Offset:l.off]),
			Range: Range{Start: start, End: l.endPos()},
		},
	})
}

func (l *lexer) number() {
	for l.off < len(l.src) {
		c := l.src[l.off]

		switch {
		case (c == '+' || c == '-') && l.off > 0 && strings.ContainsRune("eEpP", rune(l.src[l.off-1])):
			l.advance(1)
		case isIdentPart(c) || c == '.' || (c == '\'' && isIdentPart(l.peek(1))):
			l.advance(1)
		default:
			return
		}
	}
}

// literal consumes a string or character literal starting prefixLen bytes
// after the cursor.
func (l *lexer) literal(start Position, prefixLen int, raw bool) error {
	l.advance(prefixLen)

	quote := l.src[l.off]
	kind := TokenString

	if quote == '\'' {
		kind = TokenChar
	}

	if raw && quote == '"' {
		err := l.rawString(start)
		if err != nil {
			return err
		}

		l.emitToken(kind, start)

		return nil
	}

	l.advance(1)

	for {
		if l.off >= len(l.src) || l.src[l.off] == '\n' {
			return scanErrorf(start, "unterminated %s literal", kind)
		}

		c := l.src[l.off]
		if c == '\\' {
			l.advance(2)

			continue
		}

		l.advance(1)

		if c == quote {
			break
		}
	}

	// User-defined literal suffix.
	for l.off < len(l.src) && isIdentPart(l.src[l.off]) {
		l.advance(1)
	}

	l.emitToken(kind, start)

	return nil
}

// rawString consumes R"delim( ... )delim". The cursor is on the opening
// quote.
func (l *lexer) rawString(start Position) error {
	rest := l.src[l.off+1:]

	open := bytes.IndexByte(rest, '(')
	if open < 0 || open > 16 || bytes.ContainsAny(rest[:open], " \\)\n\"") {
		return scanErrorf(start, "malformed raw string delimiter")
	}

	closing := append(append([]byte(")"), rest[:open]...), '"')

	end := bytes.Index(rest[open+1:], closing)
	if end < 0 {
		return scanErrorf(start, "unterminated raw string literal")
	}

	l.advance(1 + open + 1 + end + len(closing))

	return nil
}

// punctLen returns the length of the punctuator at the start of b. Only the
// multi-character punctuators the classifier cares about are combined; ">>"
// is never combined so template argument lists close one '>' at a time.
func punctLen(b []byte) int {
	for _, p := range []string{"...", "::", "->"} {
		if bytes.HasPrefix(b, []byte(p)) {
			return len(p)
		}
	}

	return 1
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
