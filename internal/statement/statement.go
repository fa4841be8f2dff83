// Package statement splits rendered SQL into the units sent to the warehouse client.
//
// Splitting is a plain split on ";" with no awareness of quotes, comments or
// procedure bodies: a semicolon inside a string literal or a $$ body breaks
// the statement apart. Templates that need such statements must avoid the
// literal separator.
package statement

import (
	"strings"
	"unicode/utf8"

	"github.com/vvka-141/whdeploy/pkg/whdeploy"
)

// Split breaks sql on the statement separator, trims each piece and drops
// pieces that are empty or whitespace only. Order is preserved.
func Split(sql string) []string {
	var out []string
	for _, piece := range strings.Split(sql, whdeploy.StatementSeparator) {
		if s := strings.TrimSpace(piece); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Preview returns the first max characters of stmt, followed by "..." when
// stmt is longer. Characters are counted as runes.
func Preview(stmt string, max int) string {
	if max < 0 {
		max = 0
	}
	if utf8.RuneCountInString(stmt) <= max {
		return stmt
	}
	n := 0
	for i := range stmt {
		if n == max {
			return stmt[:i] + "..."
		}
		n++
	}
	return stmt
}
