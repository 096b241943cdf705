package recipe

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNewline
	tokSemicolon
	tokLBrace
	tokRBrace
	tokLParen
	tokRParen
	tokEquals
	tokSlashDash
	tokWord
	tokString
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of file"
	case tokNewline:
		return "newline"
	case tokSemicolon:
		return "';'"
	case tokLBrace:
		return "'{'"
	case tokRBrace:
		return "'}'"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokEquals:
		return "'='"
	case tokSlashDash:
		return "'/-'"
	case tokWord:
		return "identifier"
	case tokString:
		return "string"
	default:
		return fmt.Sprintf("token(%d)", int(k))
	}
}

// Position is a 1-based line and column (in characters)
type Position struct {
	Line   int
	Column int
}

type token struct {
	kind tokenKind
	text string
	pos  Position
}

// syntaxError stops lexing or parsing at pos
type syntaxError struct {
	pos Position
	msg string
}

func (e *syntaxError) Error() string { return e.msg }

type lexer struct {
	src  []rune
	off  int
	line int
	col  int
}

func newLexer(src string) *lexer {
	src = strings.TrimPrefix(src, "\ufeff")
	return &lexer{src: []rune(src), line: 1, col: 1}
}

// tokenize returns every token up to and including tokEOF
func tokenize(src string) ([]token, error) {
	lx := newLexer(src)
	var toks []token
	for {
		tok, err := lx.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.kind == tokEOF {
			return toks, nil
		}
	}
}

func (lx *lexer) pos() Position { return Position{Line: lx.line, Column: lx.col} }

func (lx *lexer) peek(n int) rune {
	if lx.off+n >= len(lx.src) {
		return utf8.RuneError
	}
	return lx.src[lx.off+n]
}

func (lx *lexer) eof() bool { return lx.off >= len(lx.src) }

func (lx *lexer) advance() rune {
	r := lx.src[lx.off]
	lx.off++
	if r == '\n' || (r == '\r' && (lx.eof() || lx.src[lx.off] != '\n')) || isNewlineOnly(r) {
		lx.line++
		lx.col = 1
	} else {
		lx.col++
	}
	return r
}

func (lx *lexer) errorf(pos Position, format string, args ...interface{}) error {
	return syntaxErrorf(pos, format, args...)
}

func syntaxErrorf(pos Position, format string, args ...interface{}) error {
	return &syntaxError{pos: pos, msg: fmt.Sprintf(format, args...)}
}

func isNewline(r rune) bool {
	return r == '\n' || r == '\r' || isNewlineOnly(r)
}

func isNewlineOnly(r rune) bool {
	switch r {
	case '\u0085', '\u000C', '\u2028', '\u2029':
		return true
	}
	return false
}

func isSpace(r rune) bool {
	return !isNewline(r) && (r == '\t' || unicode.Is(unicode.Zs, r))
}

// isWordRune reports whether r may appear in a bare word
func isWordRune(r rune) bool {
	if isSpace(r) || isNewline(r) || r == utf8.RuneError {
		return false
	}
	switch r {
	case '\\', '/', '(', ')', '{', '}', '<', '>', ';', '[', ']', '=', ',', '"':
		return false
	}
	return r > 0x20
}

// skipBlank skips spaces, comments and escaped newlines
func (lx *lexer) skipBlank() error {
	for !lx.eof() {
		r := lx.peek(0)
		switch {
		case isSpace(r):
			lx.advance()
		case r == '/' && lx.peek(1) == '/':
			for !lx.eof() && !isNewline(lx.peek(0)) {
				lx.advance()
			}
		case r == '/' && lx.peek(1) == '*':
			if err := lx.skipBlockComment(); err != nil {
				return err
			}
		case r == '\\':
			if err := lx.skipContinuation(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
	return nil
}

// skipBlockComment skips a possibly nested /* */ comment
func (lx *lexer) skipBlockComment() error {
	start := lx.pos()
	depth := 0
	for !lx.eof() {
		switch {
		case lx.peek(0) == '/' && lx.peek(1) == '*':
			lx.advance()
			lx.advance()
			depth++
		case lx.peek(0) == '*' && lx.peek(1) == '/':
			lx.advance()
			lx.advance()
			depth--
			if depth == 0 {
				return nil
			}
		default:
			lx.advance()
		}
	}
	return lx.errorf(start, "unterminated block comment")
}

// skipContinuation consumes `\` followed by blanks, an optional line comment
// and one newline
func (lx *lexer) skipContinuation() error {
	start := lx.pos()
	lx.advance()
	for !lx.eof() && isSpace(lx.peek(0)) {
		lx.advance()
	}
	if lx.peek(0) == '/' && lx.peek(1) == '/' {
		for !lx.eof() && !isNewline(lx.peek(0)) {
			lx.advance()
		}
	}
	if lx.eof() {
		return nil
	}
	if !isNewline(lx.peek(0)) {
		return lx.errorf(start, "line continuation '\\' must be followed by a newline")
	}
	lx.consumeNewline()
	return nil
}

func (lx *lexer) consumeNewline() {
	if lx.advance() == '\r' && !lx.eof() && lx.peek(0) == '\n' {
		lx.advance()
	}
}

func (lx *lexer) next() (token, error) {
	if err := lx.skipBlank(); err != nil {
		return token{}, err
	}

	pos := lx.pos()
	if lx.eof() {
		return token{kind: tokEOF, pos: pos}, nil
	}

	r := lx.peek(0)
	switch {
	case isNewline(r):
		lx.consumeNewline()
		return token{kind: tokNewline, pos: pos}, nil
	case r == ';':
		lx.advance()
		return token{kind: tokSemicolon, pos: pos}, nil
	case r == '{':
		lx.advance()
		return token{kind: tokLBrace, pos: pos}, nil
	case r == '}':
		lx.advance()
		return token{kind: tokRBrace, pos: pos}, nil
	case r == '(':
		lx.advance()
		return token{kind: tokLParen, pos: pos}, nil
	case r == ')':
		lx.advance()
		return token{kind: tokRParen, pos: pos}, nil
	case r == '=':
		lx.advance()
		return token{kind: tokEquals, pos: pos}, nil
	case r == '/' && lx.peek(1) == '-':
		lx.advance()
		lx.advance()
		return token{kind: tokSlashDash, pos: pos}, nil
	case r == '"':
		text, err := lx.quoted()
		if err != nil {
			return token{}, err
		}
		return token{kind: tokString, text: text, pos: pos}, nil
	case r == 'r' && (lx.peek(1) == '"' || lx.peek(1) == '#'):
		if text, ok, err := lx.raw(); err != nil {
			return token{}, err
		} else if ok {
			return token{kind: tokString, text: text, pos: pos}, nil
		}
		return lx.word(pos)
	case isWordRune(r):
		return lx.word(pos)
	default:
		return token{}, lx.errorf(pos, "unexpected character %q", r)
	}
}

func (lx *lexer) word(pos Position) (token, error) {
	var b strings.Builder
	for !lx.eof() && isWordRune(lx.peek(0)) {
		b.WriteRune(lx.advance())
	}
	if b.Len() == 0 {
		return token{}, lx.errorf(pos, "unexpected character %q", lx.peek(0))
	}
	return token{kind: tokWord, text: b.String(), pos: pos}, nil
}

// quoted reads a "..." string with KDL escapes
func (lx *lexer) quoted() (string, error) {
	start := lx.pos()
	lx.advance()

	var b strings.Builder
	for {
		if lx.eof() {
			return "", lx.errorf(start, "unterminated string")
		}
		r := lx.advance()
		switch r {
		case '"':
			return b.String(), nil
		case '\\':
			if err := lx.escape(&b); err != nil {
				return "", err
			}
		default:
			b.WriteRune(r)
		}
	}
}

func (lx *lexer) escape(b *strings.Builder) error {
	pos := lx.pos()
	if lx.eof() {
		return lx.errorf(pos, "unterminated escape sequence")
	}
	r := lx.advance()
	switch r {
	case 'n':
		b.WriteRune('\n')
	case 'r':
		b.WriteRune('\r')
	case 't':
		b.WriteRune('\t')
	case '\\':
		b.WriteRune('\\')
	case '/':
		b.WriteRune('/')
	case '"':
		b.WriteRune('"')
	case 'b':
		b.WriteRune('\b')
	case 'f':
		b.WriteRune('\f')
	case 'u':
		if lx.eof() || lx.advance() != '{' {
			return lx.errorf(pos, "invalid unicode escape, expected \\u{...}")
		}
		var hex strings.Builder
		for !lx.eof() && lx.peek(0) != '}' && hex.Len() <= 6 {
			hex.WriteRune(lx.advance())
		}
		if lx.eof() || lx.peek(0) != '}' {
			return lx.errorf(pos, "invalid unicode escape, expected \\u{...}")
		}
		lx.advance()
		code, err := strconv.ParseUint(hex.String(), 16, 32)
		if err != nil || hex.Len() == 0 || !utf8.ValidRune(rune(code)) {
			return lx.errorf(pos, "invalid unicode escape \\u{%s}", hex.String())
		}
		b.WriteRune(rune(code))
	default:
		return lx.errorf(pos, "unknown escape sequence \\%c", r)
	}
	return nil
}

// raw reads r"..." or r#"..."#. ok is false when the input is a bare word
// that merely starts with r.
func (lx *lexer) raw() (string, bool, error) {
	start := lx.pos()
	hashes := 0
	for lx.peek(1+hashes) == '#' {
		hashes++
	}
	if lx.peek(1+hashes) != '"' {
		return "", false, nil
	}

	for i := 0; i < hashes+2; i++ {
		lx.advance()
	}

	closing := "\"" + strings.Repeat("#", hashes)
	var b strings.Builder
	for {
		if lx.eof() {
			return "", false, lx.errorf(start, "unterminated raw string")
		}
		if lx.peek(0) == '"' && lx.matches(closing) {
			for range closing {
				lx.advance()
			}
			return b.String(), true, nil
		}
		b.WriteRune(lx.advance())
	}
}

func (lx *lexer) matches(s string) bool {
	i := 0
	for _, r := range s {
		if lx.peek(i) != r {
			return false
		}
		i++
	}
	return true
}
