package filter

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type scanner struct {
	src string
	off int
}

func newScanner(src string) *scanner {
	return &scanner{src: src}
}

func (s *scanner) peek() rune {
	if s.off >= len(s.src) {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(s.src[s.off:])
	return r
}

func (s *scanner) advance() rune {
	if s.off >= len(s.src) {
		return utf8.RuneError
	}
	r, size := utf8.DecodeRuneInString(s.src[s.off:])
	s.off += size
	return r
}

func (s *scanner) eof() bool {
	return s.off >= len(s.src)
}

// scan returns the next token. Malformed input is reported as a ParseError.
func (s *scanner) scan() (token, error) {
	for !s.eof() && unicode.IsSpace(s.peek()) {
		s.advance()
	}

	start := s.off
	if s.eof() {
		return token{kind: tokEOF, pos: start}, nil
	}

	r := s.peek()
	switch {
	case isFieldStart(r):
		return s.scanIdent()
	case isDigit(r):
		return s.scanNumber()
	case r == '\'' || r == '"':
		return s.scanString()
	case r == '/':
		return s.scanRegex()
	}

	s.advance()
	tok := token{pos: start, text: s.src[start:s.off]}
	switch r {
	case '(':
		tok.kind = tokLParen
	case ')':
		tok.kind = tokRParen
	case ',':
		tok.kind = tokComma
	case '~':
		tok.kind = tokMatch
	case '=':
		tok.kind = tokEq
		s.accept('=')
	case '!':
		switch {
		case s.accept('='):
			tok.kind = tokNeq
		case s.accept('~'):
			tok.kind = tokNotMatch
		default:
			return token{}, newParseError(start, "expected = or ~ after !")
		}
	case '<':
		tok.kind = tokLt
		if s.accept('=') {
			tok.kind = tokLte
		}
	case '>':
		tok.kind = tokGt
		if s.accept('=') {
			tok.kind = tokGte
		}
	default:
		return token{}, newParseError(start, "unexpected character %q", r)
	}
	tok.text = s.src[start:s.off]

	return tok, nil
}

func (s *scanner) accept(r rune) bool {
	if !s.eof() && s.peek() == r {
		s.advance()
		return true
	}
	return false
}

// scanIdent reads a keyword or a dotted field name such as "tags.cost-center".
// Every segment must be non empty.
func (s *scanner) scanIdent() (token, error) {
	start := s.off
	for {
		seg := s.off
		for !s.eof() && isFieldPart(s.peek()) {
			s.advance()
		}
		if s.off == seg {
			return token{}, newParseError(seg, "empty field segment")
		}
		if !s.accept('.') {
			break
		}
	}

	text := s.src[start:s.off]
	if kind, found := keywords[strings.ToLower(text)]; found {
		return token{kind: kind, pos: start, text: strings.ToLower(text)}, nil
	}
	return token{kind: tokIdent, pos: start, text: text}, nil
}

// scanNumber reads a decimal number with an optional KB, MB, GB or TB suffix.
func (s *scanner) scanNumber() (token, error) {
	start := s.off
	for !s.eof() && isDigit(s.peek()) {
		s.advance()
	}
	if s.accept('.') {
		frac := s.off
		for !s.eof() && isDigit(s.peek()) {
			s.advance()
		}
		if s.off == frac {
			return token{}, newParseError(start, "malformed number")
		}
	}

	if !s.eof() && unicode.IsLetter(s.peek()) {
		unit := s.off
		for !s.eof() && unicode.IsLetter(s.peek()) {
			s.advance()
		}
		if _, found := sizeUnits[strings.ToLower(s.src[unit:s.off])]; !found {
			return token{}, newParseError(unit, "unknown unit %q", s.src[unit:s.off])
		}
	}

	return token{kind: tokNumber, pos: start, text: s.src[start:s.off]}, nil
}

// scanString reads a quoted string. The quote is escaped by doubling it or
// with a backslash.
func (s *scanner) scanString() (token, error) {
	start := s.off
	quote := s.advance()

	var sb strings.Builder
	for {
		if s.eof() {
			return token{}, newParseError(start, "unclosed string")
		}
		r := s.advance()
		switch {
		case r == '\\' && s.peek() == quote:
			sb.WriteRune(s.advance())
		case r == quote && s.peek() == quote:
			s.advance()
			sb.WriteRune(quote)
		case r == quote:
			return token{kind: tokString, pos: start, text: sb.String()}, nil
		default:
			sb.WriteRune(r)
		}
	}
}

// scanRegex reads /pattern/. A slash inside the pattern is written \/.
func (s *scanner) scanRegex() (token, error) {
	start := s.off
	s.advance()

	var sb strings.Builder
	for {
		if s.eof() {
			return token{}, newParseError(start, "unclosed regex")
		}
		r := s.advance()
		switch {
		case r == '\\' && s.peek() == '/':
			sb.WriteRune(s.advance())
		case r == '/':
			return token{kind: tokRegex, pos: start, text: sb.String()}, nil
		default:
			sb.WriteRune(r)
		}
	}
}

func isFieldStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isFieldPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
