package filter

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokString
	tokRegex
	tokNumber
	tokBool
	tokAnd
	tokOr
	tokNot
	tokIn
	tokLParen
	tokRParen
	tokComma
	tokEq
	tokNeq
	tokLt
	tokLte
	tokGt
	tokGte
	tokMatch
	tokNotMatch
)

var tokenNames = [...]string{
	tokEOF:      "end of filter",
	tokIdent:    "field",
	tokString:   "string",
	tokRegex:    "regex",
	tokNumber:   "number",
	tokBool:     "boolean",
	tokAnd:      "and",
	tokOr:       "or",
	tokNot:      "not",
	tokIn:       "in",
	tokLParen:   "(",
	tokRParen:   ")",
	tokComma:    ",",
	tokEq:       "=",
	tokNeq:      "!=",
	tokLt:       "<",
	tokLte:      "<=",
	tokGt:       ">",
	tokGte:      ">=",
	tokMatch:    "~",
	tokNotMatch: "!~",
}

func (k tokenKind) String() string {
	if int(k) < len(tokenNames) {
		return tokenNames[k]
	}
	return "unknown"
}

var keywords = map[string]tokenKind{
	"and":   tokAnd,
	"or":    tokOr,
	"not":   tokNot,
	"in":    tokIn,
	"true":  tokBool,
	"false": tokBool,
}

type token struct {
	kind tokenKind
	// pos is the byte offset of the token in the filter.
	pos  int
	text string
}

func (k tokenKind) isComparison() bool {
	return k >= tokEq && k <= tokNotMatch
}
