// Package filter parses the resource query language of GET /api/v1/resources
// and renders it as a DuckDB condition.
//
// Grammar:
//
//	or_expr    = and_expr { "or" and_expr } .
//	and_expr   = unary { "and" unary } .
//	unary      = "not" unary | "(" or_expr ")" | condition .
//	condition  = FIELD op literal | FIELD "in" "(" literal { "," literal } ")" .
//	op         = "=" | "==" | "!=" | "<" | "<=" | ">" | ">=" | "~" | "!~" .
//	literal    = STRING | NUMBER | BOOLEAN | REGEX .
//
//	FIELD      = segment { "." segment } .   segment: letters, digits, _ and -
//	STRING     = 'text' | "text" .            quotes escaped by doubling or \
//	NUMBER     = digits [ "." digits ] [ "KB" | "MB" | "GB" | "TB" ] .
//	BOOLEAN    = "true" | "false" .
//	REGEX      = /pattern/ .                  \/ for a slash
//
// Keywords are case insensitive. "~" and "!~" only take a regex and a regex
// is only accepted by them.
//
// Examples:
//
//	provider = 'aws' and memory >= 8GB
//	tags.env = 'prod' or tags.owner ~ /^team-/
//	not (state in ('running', 'starting'))
//
// The condition is applied to the resources of one catalog:
//
//	SELECT ... FROM resources
//	WHERE catalog_id = ? AND <filter>
//	ORDER BY position
//	LIMIT ? OFFSET ?;
package filter
