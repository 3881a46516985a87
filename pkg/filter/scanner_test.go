package filter

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func scanAll(src string) ([]token, error) {
	s := newScanner(src)
	var tokens []token
	for {
		tok, err := s.scan()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.kind == tokEOF {
			return tokens, nil
		}
	}
}

func kinds(tokens []token) []tokenKind {
	out := make([]tokenKind, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, t.kind)
	}
	return out
}

var _ = Describe("Scanner", func() {
	It("should scan a full filter", func() {
		tokens, err := scanAll(`(provider = 'aws' OR cpus >= 2) and not tags.env in ("a", "b") and name !~ /^x/`)

		Expect(err).NotTo(HaveOccurred())
		Expect(kinds(tokens)).To(Equal([]tokenKind{
			tokLParen, tokIdent, tokEq, tokString, tokOr, tokIdent, tokGte, tokNumber, tokRParen,
			tokAnd, tokNot, tokIdent, tokIn, tokLParen, tokString, tokComma, tokString, tokRParen,
			tokAnd, tokIdent, tokNotMatch, tokRegex, tokEOF,
		}))
	})

	It("should record byte offsets", func() {
		tokens, err := scanAll("  name   = 'x'")

		Expect(err).NotTo(HaveOccurred())
		Expect(tokens[0].pos).To(Equal(2))
		Expect(tokens[1].pos).To(Equal(9))
		Expect(tokens[2].pos).To(Equal(11))
		Expect(tokens[3].pos).To(Equal(14))
	})

	DescribeTable("operators",
		func(src string, kind tokenKind) {
			tokens, err := scanAll(src)
			Expect(err).NotTo(HaveOccurred())
			Expect(tokens[0].kind).To(Equal(kind))
			Expect(tokens[1].kind).To(Equal(tokEOF))
		},
		Entry("equal", "=", tokEq),
		Entry("double equal", "==", tokEq),
		Entry("not equal", "!=", tokNeq),
		Entry("less", "<", tokLt),
		Entry("less or equal", "<=", tokLte),
		Entry("greater", ">", tokGt),
		Entry("greater or equal", ">=", tokGte),
		Entry("match", "~", tokMatch),
		Entry("not match", "!~", tokNotMatch),
	)

	DescribeTable("literals",
		func(src string, kind tokenKind, text string) {
			tokens, err := scanAll(src)
			Expect(err).NotTo(HaveOccurred())
			Expect(tokens[0].kind).To(Equal(kind))
			Expect(tokens[0].text).To(Equal(text))
		},
		Entry("single quoted", `'web 01'`, tokString, "web 01"),
		Entry("double quoted", `"web"`, tokString, "web"),
		Entry("doubled quote", `'it''s'`, tokString, "it's"),
		Entry("escaped quote", `"say \"hi\""`, tokString, `say "hi"`),
		Entry("empty string", `''`, tokString, ""),
		Entry("unicode string", `'café'`, tokString, "café"),
		Entry("integer", "42", tokNumber, "42"),
		Entry("decimal", "1.5", tokNumber, "1.5"),
		Entry("size", "8GB", tokNumber, "8GB"),
		Entry("lower case size", "512mb", tokNumber, "512mb"),
		Entry("regex", `/^web-\d+$/`, tokRegex, `^web-\d+$`),
		Entry("regex with slash", `/a\/b/`, tokRegex, "a/b"),
		Entry("keyword case", "AND", tokAnd, "and"),
		Entry("boolean", "True", tokBool, "true"),
		Entry("dotted field", "tags.cost-center", tokIdent, "tags.cost-center"),
	)

	DescribeTable("malformed input",
		func(src string, message string) {
			_, err := scanAll(src)
			Expect(err).To(HaveOccurred())
			Expect(err.(ParseError).Message).To(ContainSubstring(message))
		},
		Entry("unclosed string", "'abc", "unclosed string"),
		Entry("unclosed regex", "/abc", "unclosed regex"),
		Entry("lonely bang", "!", "expected = or ~"),
		Entry("unknown unit", "8PB", "unknown unit"),
		Entry("trailing dot", "8.", "malformed number"),
		Entry("empty segment", "tags..env", "empty field segment"),
		Entry("trailing field dot", "tags.", "empty field segment"),
		Entry("unexpected character", "name & x", "unexpected character"),
	)
})
