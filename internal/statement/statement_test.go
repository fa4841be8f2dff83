package statement

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		expected []string
	}{
		{"discards empty fragments", "A; B ;; C", []string{"A", "B", "C"}},
		{"single statement with terminator", "CREATE SCHEMA dev_schema;", []string{"CREATE SCHEMA dev_schema"}},
		{"no terminator", "SELECT 1", []string{"SELECT 1"}},
		{"empty input", "", nil},
		{"whitespace only", " \n\t ", nil},
		{"separators only", ";;; ; \n;", nil},
		{"multiline statements", "CREATE TABLE t (\n  id INT\n);\n\nINSERT INTO t VALUES (1);\n", []string{"CREATE TABLE t (\n  id INT\n)", "INSERT INTO t VALUES (1)"}},
		{"semicolon inside literal is split", "SELECT 'a;b'", []string{"SELECT 'a", "b'"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Split(tt.sql))
		})
	}
}

func TestPreview(t *testing.T) {
	long := strings.Repeat("x", 150)
	exact := strings.Repeat("y", 100)

	tests := []struct {
		name     string
		stmt     string
		max      int
		expected string
	}{
		{"short statement unchanged", "SELECT 1", 100, "SELECT 1"},
		{"exactly max unchanged", exact, 100, exact},
		{"long statement truncated", long, 100, strings.Repeat("x", 100) + "..."},
		{"counts runes", "ééééé", 3, "ééé..."},
		{"zero max", "abc", 0, "..."},
		{"negative max", "abc", -1, "..."},
		{"empty", "", 10, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Preview(tt.stmt, tt.max))
		})
	}
}
