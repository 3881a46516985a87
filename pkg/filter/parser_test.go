package filter

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Parser", func() {
	DescribeTable("should build the expression tree",
		func(input, tree string) {
			expr, err := Parse([]byte(input))
			Expect(err).NotTo(HaveOccurred())
			Expect(expr.String()).To(Equal(tree))
		},
		Entry("comparison", "name = 'web'", `(name = "web")`),
		Entry("double equal", "name == 'web'", `(name = "web")`),
		Entry("number", "cpus > 2", "(cpus > 2)"),
		Entry("size keeps its text", "memory >= 8GB", "(memory >= 8GB)"),
		Entry("boolean", "enabled = FALSE", "(enabled = false)"),
		Entry("regex", `name ~ /a\/b/`, `(name ~ /a\/b/)`),
		Entry("and binds tighter than or",
			"a = 'x' or b = 'y' and c = 'z'",
			`((a = "x") or ((b = "y") and (c = "z")))`),
		Entry("parentheses",
			"(a = 'x' or b = 'y') and c = 'z'",
			`(((a = "x") or (b = "y")) and (c = "z"))`),
		Entry("left associative",
			"a = '1' and b = '2' and c = '3'",
			`(((a = "1") and (b = "2")) and (c = "3"))`),
		Entry("not binds tighter than and",
			"not a = 'x' and b = 'y'",
			`((not (a = "x")) and (b = "y"))`),
		Entry("not on a group", "not (a = 'x' or b = 'y')", `(not ((a = "x") or (b = "y")))`),
		Entry("double not", "not not a = 'x'", `(not (not (a = "x")))`),
		Entry("in", "state in ('running', 'stopped')", `(state in ("running", "stopped"))`),
		Entry("in with one value", "cpus in (2)", "(cpus in (2))"),
		Entry("nested groups", "((a = 'x'))", `(a = "x")`),
	)

	DescribeTable("should report syntax errors with their position",
		func(input string, position int, message string) {
			_, err := Parse([]byte(input))
			Expect(err).To(HaveOccurred())

			var pe ParseError
			Expect(errors.As(err, &pe)).To(BeTrue())
			Expect(pe.Position).To(Equal(position))
			Expect(pe.Message).To(ContainSubstring(message))
		},
		Entry("empty filter", "", 0, "expected field"),
		Entry("missing value", "name =", 6, "expected value"),
		Entry("missing operator", "name 'web'", 5, "expected operator"),
		Entry("value first", "'web' = name", 0, "expected field"),
		Entry("unclosed group", "(name = 'a'", 11, "expected )"),
		Entry("dangling and", "name = 'a' and", 14, "expected field"),
		Entry("trailing value", "name = 'a' 'b'", 11, "expected and, or"),
		Entry("match without regex", "name ~ 'web'", 7, "expects a /regex/"),
		Entry("regex without match", "name = /web/", 7, "needs ~ or !~"),
		Entry("invalid regex", "name ~ /(/", 7, "invalid regex"),
		Entry("in without list", "state in 'a'", 9, "expected ("),
		Entry("empty in list", "state in ()", 10, "expected value"),
		Entry("in with regex", "state in (/a/)", 10, "does not accept"),
		Entry("in without comma", "state in ('a' 'b')", 14, "expected , or )"),
		Entry("scanner error", "name = 'abc", 7, "unclosed string"),
	)

	It("should format the error with the position", func() {
		_, err := Parse([]byte("name ="))
		Expect(err).To(MatchError("parse error at 6: expected value instead of end of filter"))
	})
})
