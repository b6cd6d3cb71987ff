package lexer

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"
)

var (
	ErrLexical            = errors.New("lexical error")
	ErrUnexpectedChar     = fmt.Errorf("%w: unexpected character", ErrLexical)
	ErrUnterminatedString = fmt.Errorf("%w: unterminated string literal", ErrLexical)
)

// Error reports where scanning stopped.
type Error struct {
	Err    error
	Char   rune
	Line   int
	Column int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %v %q", e.Line, e.Column, e.Err, e.Char)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Scanner performs lexical analysis on script source.
type Scanner struct {
	source []byte
	cursor int
	line   int
	column int
}

// NewScanner creates a new scanner for the given source.
func NewScanner(source []byte) *Scanner {
	return &Scanner{
		source: source,
		line:   1,
		column: 1,
	}
}

// Reset re-initializes the scanner with new source for pool reuse.
func (s *Scanner) Reset(source []byte) {
	s.source = source
	s.cursor = 0
	s.line = 1
	s.column = 1
}

// Tokenize scans the whole source eagerly. Scanning stops at the first error.
func Tokenize(source []byte) ([]Token, error) {
	s := NewScanner(source)
	var tokens []Token
	for {
		tok, err := s.Next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

// Next returns the next token from the source, or KindEOF once the input is
// exhausted.
func (s *Scanner) Next() (Token, error) {
	s.skipWhitespace()

	if s.cursor >= len(s.source) {
		return Token{Kind: KindEOF, Line: uint32(s.line), Column: uint32(s.column)}, nil
	}

	ch, _ := s.peek()
	switch {
	case ch == '\'' || ch == '"':
		return s.scanString(ch)
	case isAlpha(ch):
		return s.scanWord(), nil
	case isDigit(ch):
		return s.scanNumber(), nil
	}

	kind := KindEOF
	switch ch {
	case '=':
		kind = KindAssign
	case '{':
		kind = KindLBrace
	case '}':
		kind = KindRBrace
	case '(':
		kind = KindLParen
	case ')':
		kind = KindRParen
	default:
		return Token{}, s.fail(ErrUnexpectedChar, ch, s.line, s.column)
	}

	tok := s.token(kind, string(ch))
	s.advance()
	return tok, nil
}

func (s *Scanner) scanString(quote rune) (Token, error) {
	line, column := s.line, s.column
	s.advance() // opening quote

	start := s.cursor
	for s.cursor < len(s.source) {
		ch, _ := s.peek()
		if ch == quote {
			literal := string(s.source[start:s.cursor])
			s.advance() // closing quote
			return Token{Kind: KindString, Literal: literal, Line: uint32(line), Column: uint32(column)}, nil
		}
		s.advance()
	}

	return Token{}, s.fail(ErrUnterminatedString, quote, line, column)
}

func (s *Scanner) scanWord() Token {
	tok := s.token(KindIdentifier, "")
	start := s.cursor
	for s.cursor < len(s.source) {
		ch, _ := s.peek()
		if !isAlpha(ch) {
			break
		}
		s.advance()
	}

	tok.Literal = string(s.source[start:s.cursor])
	if kind, ok := keywords[tok.Literal]; ok {
		tok.Kind = kind
	}
	return tok
}

func (s *Scanner) scanNumber() Token {
	tok := s.token(KindNumber, "")
	start := s.cursor
	for s.cursor < len(s.source) {
		ch, _ := s.peek()
		if !isDigit(ch) {
			break
		}
		s.advance()
	}
	tok.Literal = string(s.source[start:s.cursor])
	return tok
}

func (s *Scanner) skipWhitespace() {
	for s.cursor < len(s.source) {
		ch, _ := s.peek()
		if !unicode.IsSpace(ch) {
			return
		}
		s.advance()
	}
}

func (s *Scanner) peek() (rune, int) {
	return utf8.DecodeRune(s.source[s.cursor:])
}

func (s *Scanner) advance() {
	ch, size := s.peek()
	s.cursor += size
	if ch == '\n' {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
}

func (s *Scanner) token(kind Kind, literal string) Token {
	return Token{Kind: kind, Literal: literal, Line: uint32(s.line), Column: uint32(s.column)}
}

func (s *Scanner) fail(err error, ch rune, line, column int) error {
	return &Error{Err: err, Char: ch, Line: line, Column: column}
}

func isDigit(ch rune) bool {
	return unicode.IsDigit(ch)
}

func isAlpha(ch rune) bool {
	return unicode.IsLetter(ch)
}
