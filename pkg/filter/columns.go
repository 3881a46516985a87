package filter

import (
	"fmt"
	"strings"
)

// tagPrefix selects one tag of a resource: "tags.env = 'prod'".
const tagPrefix = "tags."

// resourceColumns maps the fields accepted by ParseResourceFilter to the
// columns of the resources table. Field names are case insensitive.
var resourceColumns = map[string]string{
	"id":         `"id"`,
	"provider":   `"provider"`,
	"kind":       `"kind"`,
	"name":       `"name"`,
	"location":   `"location"`,
	"state":      `"state"`,
	"os":         `"os"`,
	"memory":     `"memory_mb"`,
	"memory_mb":  `"memory_mb"`,
	"cpus":       `"cpu_count"`,
	"cpu_count":  `"cpu_count"`,
	"size_class": `"size_class"`,
	"sizeclass":  `"size_class"`,
}

// ParseResourceFilter parses a filter over resource fields. Memory is
// compared in megabytes, so "memory > 4GB" compares against 4096.
// "tags.<key>" reads one key of the JSON tags column and keeps the case of
// the key. Any other field is a ParseError.
func ParseResourceFilter(src []byte) (Expression, error) {
	return parse(string(src), resourceColumn)
}

func resourceColumn(name string, pos int) (string, error) {
	lower := strings.ToLower(name)
	if col, found := resourceColumns[lower]; found {
		return col, nil
	}
	if strings.HasPrefix(lower, tagPrefix) {
		return tagColumn(name[len(tagPrefix):]), nil
	}
	return "", newParseError(pos, "unknown field %q", name)
}

// tagColumn extracts the tag named key from the JSON tags column.
func tagColumn(key string) string {
	key = strings.ReplaceAll(key, `"`, `\"`)
	key = strings.ReplaceAll(key, "'", "''")
	return fmt.Sprintf(`json_extract_string("tags", '$."%s"')`, key)
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
