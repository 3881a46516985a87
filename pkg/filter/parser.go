package filter

import (
	"fmt"
	"regexp"
)

// ParseError reports where and why a filter is invalid.
type ParseError struct {
	// Position is the byte offset in the filter.
	Position int
	Message  string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("parse error at %d: %s", e.Position, e.Message)
}

func newParseError(pos int, format string, args ...any) ParseError {
	return ParseError{Position: pos, Message: fmt.Sprintf(format, args...)}
}

// resolver maps a field name to its SQL column.
type resolver func(name string, pos int) (string, error)

// Parse parses a filter over arbitrary fields. Every field is rendered as a
// quoted column of the same name.
func Parse(src []byte) (Expression, error) {
	return parse(string(src), func(name string, _ int) (string, error) {
		return quoteIdent(name), nil
	})
}

func parse(src string, resolve resolver) (Expression, error) {
	p := &parser{scanner: newScanner(src), resolve: resolve}
	if err := p.next(); err != nil {
		return nil, err
	}

	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.unexpected("and, or or the end of the filter")
	}

	return expr, nil
}

type parser struct {
	scanner *scanner
	resolve resolver
	tok     token
}

func (p *parser) next() error {
	tok, err := p.scanner.scan()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) unexpected(want string) error {
	return newParseError(p.tok.pos, "expected %s instead of %s", want, p.tok.kind)
}

// parseOr parses: and_expr ( "or" and_expr )*
func (p *parser) parseOr() (Expression, error) {
	return p.parseLogical(tokOr, p.parseAnd)
}

// parseAnd parses: unary ( "and" unary )*
func (p *parser) parseAnd() (Expression, error) {
	return p.parseLogical(tokAnd, p.parseUnary)
}

func (p *parser) parseLogical(op tokenKind, operand func() (Expression, error)) (Expression, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}

	for p.tok.kind == op {
		if err := p.next(); err != nil {
			return nil, err
		}
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = &logicalExpr{op: op, left: left, right: right}
	}

	return left, nil
}

// parseUnary parses: "not" unary | "(" or_expr ")" | condition
func (p *parser) parseUnary() (Expression, error) {
	switch p.tok.kind {
	case tokNot:
		if err := p.next(); err != nil {
			return nil, err
		}
		expr, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &notExpr{expr: expr}, nil

	case tokLParen:
		if err := p.next(); err != nil {
			return nil, err
		}
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokRParen {
			return nil, p.unexpected(")")
		}
		return expr, p.next()

	case tokIdent:
		return p.parseCondition()

	default:
		return nil, p.unexpected("field, not or (")
	}
}

// parseCondition parses: FIELD op literal | FIELD "in" "(" literal ( "," literal )* ")"
func (p *parser) parseCondition() (Expression, error) {
	column, err := p.resolve(p.tok.text, p.tok.pos)
	if err != nil {
		return nil, err
	}
	f := field{name: p.tok.text, column: column}

	if err := p.next(); err != nil {
		return nil, err
	}

	if p.tok.kind == tokIn {
		return p.parseIn(f)
	}

	if !p.tok.kind.isComparison() {
		return nil, p.unexpected("operator")
	}
	op := p.tok.kind
	if err := p.next(); err != nil {
		return nil, err
	}

	valuePos := p.tok.pos
	value, err := p.parseLiteral()
	if err != nil {
		return nil, err
	}

	_, isRegex := value.(regexLiteral)
	matching := op == tokMatch || op == tokNotMatch
	switch {
	case matching && !isRegex:
		return nil, newParseError(valuePos, "%s expects a /regex/", op)
	case !matching && isRegex:
		return nil, newParseError(valuePos, "a /regex/ needs ~ or !~ instead of %s", op)
	}

	return &compareExpr{field: f, op: op, value: value}, nil
}

func (p *parser) parseIn(f field) (Expression, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	if p.tok.kind != tokLParen {
		return nil, p.unexpected("(")
	}

	var values []literal
	for {
		if err := p.next(); err != nil {
			return nil, err
		}
		valuePos := p.tok.pos
		value, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		if _, isRegex := value.(regexLiteral); isRegex {
			return nil, newParseError(valuePos, "in does not accept a /regex/")
		}
		values = append(values, value)

		if p.tok.kind == tokRParen {
			break
		}
		if p.tok.kind != tokComma {
			return nil, p.unexpected(", or )")
		}
	}

	return &inExpr{field: f, values: values}, p.next()
}

// parseLiteral consumes a string, number, boolean or regex.
func (p *parser) parseLiteral() (literal, error) {
	tok := p.tok

	var value literal
	switch tok.kind {
	case tokString:
		value = stringLiteral(tok.text)
	case tokNumber:
		value = newNumberLiteral(tok.text)
	case tokBool:
		value = boolLiteral(tok.text == "true")
	case tokRegex:
		if _, err := regexp.Compile(tok.text); err != nil {
			return nil, newParseError(tok.pos, "invalid regex: %v", err)
		}
		value = regexLiteral(tok.text)
	default:
		return nil, p.unexpected("value")
	}

	return value, p.next()
}
