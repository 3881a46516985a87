package filter

import (
	"fmt"
	"strconv"
	"strings"
)

// Expression is a parsed filter. Sql renders it as a boolean SQL condition
// over the resources table; String renders it back in the filter syntax,
// fully parenthesized.
type Expression interface {
	String() string
	Sql() string
}

// sizeUnits converts a size suffix to megabytes, the unit memory is stored in.
var sizeUnits = map[string]float64{
	"kb": 1.0 / 1024,
	"mb": 1,
	"gb": 1024,
	"tb": 1024 * 1024,
}

// field is a resolved identifier.
type field struct {
	name   string
	column string
}

// logicalExpr joins two expressions with and or or.
type logicalExpr struct {
	op          tokenKind
	left, right Expression
}

func (e *logicalExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.left, e.op, e.right)
}

func (e *logicalExpr) Sql() string {
	return fmt.Sprintf("(%s %s %s)", e.left.Sql(), strings.ToUpper(e.op.String()), e.right.Sql())
}

type notExpr struct {
	expr Expression
}

func (e *notExpr) String() string {
	return fmt.Sprintf("(not %s)", e.expr)
}

func (e *notExpr) Sql() string {
	return fmt.Sprintf("(NOT %s)", e.expr.Sql())
}

// compareExpr compares a field with a literal.
type compareExpr struct {
	field field
	op    tokenKind
	value literal
}

func (e *compareExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.field.name, e.op, e.value)
}

func (e *compareExpr) Sql() string {
	switch e.op {
	case tokMatch:
		return fmt.Sprintf("regexp_matches(%s, %s)", e.field.column, e.value.sql())
	case tokNotMatch:
		return fmt.Sprintf("NOT regexp_matches(%s, %s)", e.field.column, e.value.sql())
	default:
		return fmt.Sprintf("(%s %s %s)", e.field.column, e.op, e.value.sql())
	}
}

// inExpr tests a field against a list of literals.
type inExpr struct {
	field  field
	values []literal
}

func (e *inExpr) String() string {
	return fmt.Sprintf("(%s in (%s))", e.field.name, joinLiterals(e.values, literal.String))
}

func (e *inExpr) Sql() string {
	return fmt.Sprintf("(%s IN (%s))", e.field.column, joinLiterals(e.values, literal.sql))
}

func joinLiterals(values []literal, render func(literal) string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, render(v))
	}
	return strings.Join(parts, ", ")
}

type literal interface {
	String() string
	sql() string
}

type stringLiteral string

func (s stringLiteral) String() string {
	return strconv.Quote(string(s))
}

func (s stringLiteral) sql() string {
	return quoteString(string(s))
}

type regexLiteral string

func (r regexLiteral) String() string {
	return "/" + strings.ReplaceAll(string(r), "/", `\/`) + "/"
}

func (r regexLiteral) sql() string {
	return quoteString(string(r))
}

type boolLiteral bool

func (b boolLiteral) String() string {
	return strconv.FormatBool(bool(b))
}

func (b boolLiteral) sql() string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

// numberLiteral is a plain number or a size. Sizes are rendered in megabytes.
type numberLiteral struct {
	text  string
	value float64
}

func newNumberLiteral(text string) numberLiteral {
	n := numberLiteral{text: text}

	digits := strings.TrimRightFunc(text, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.'
	})
	n.value, _ = strconv.ParseFloat(digits, 64)
	if factor, found := sizeUnits[strings.ToLower(text[len(digits):])]; found {
		n.value *= factor
	}

	return n
}

func (n numberLiteral) String() string {
	return n.text
}

func (n numberLiteral) sql() string {
	return strconv.FormatFloat(n.value, 'f', -1, 64)
}

func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
