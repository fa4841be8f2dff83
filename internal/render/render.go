// Package render substitutes configuration variables into SQL templates.
//
// Templates use Jinja-style syntax through pongo2: {{ var }} interpolation,
// filters, and {% if %} / {% for %} / {% set %} blocks. Output is not escaped.
//
// A variable that is not defined renders as the empty string, the same as
// Jinja's default undefined handling, while a manifest null prints as None.
// Syntax errors and failures while executing the template are reported as
// whdeploy.ErrRender.
package render

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/vvka-141/whdeploy/pkg/whdeploy"
)

func init() {
	// SQL output must not be HTML-escaped.
	pongo2.SetAutoescape(false)
}

// Renderer renders SQL templates with pongo2.
// Renderer is stateless and safe for concurrent use.
type Renderer struct{}

// New creates a Renderer.
func New() Renderer {
	return Renderer{}
}

// Render implements whdeploy.TemplateRenderer.
func (Renderer) Render(templateText string, vars map[string]any) (string, error) {
	return Render(templateText, vars)
}

// Render substitutes vars into templateText.
func Render(templateText string, vars map[string]any) (string, error) {
	tpl, err := pongo2.FromString(templateText)
	if err != nil {
		return "", fmt.Errorf("%w: %w", whdeploy.ErrRender, err)
	}

	out, err := tpl.Execute(toContext(vars))
	if err != nil {
		return "", fmt.Errorf("%w: %w", whdeploy.ErrRender, err)
	}
	return out, nil
}

// toContext converts manifest values into a pongo2 context.
func toContext(vars map[string]any) pongo2.Context {
	ctx := make(pongo2.Context, len(vars))
	for k, v := range vars {
		ctx[k] = normalize(v)
	}
	return ctx
}

// normalize adjusts values whose default pongo2 formatting differs from how
// Jinja prints them: floats in shortest form, null as None, and lists and
// mappings in Python literal form.
func normalize(v any) any {
	switch val := v.(type) {
	case nil:
		return None(false)
	case float64:
		return Decimal(val)
	case []any:
		out := make(List, len(val))
		for i := range val {
			out[i] = normalize(val[i])
		}
		return out
	case map[string]any:
		out := make(Mapping, len(val))
		for k := range val {
			out[k] = normalize(val[k])
		}
		return out
	default:
		return v
	}
}

// Format returns the text {{ v }} produces for a manifest value.
func Format(v any) string {
	switch val := normalize(v).(type) {
	case string:
		return val
	case bool:
		if val {
			return "True"
		}
		return "False"
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// Decimal is a manifest float that prints in its shortest form (1.5, not 1.500000).
type Decimal float64

func (d Decimal) String() string {
	f := float64(d)
	if math.IsInf(f, 1) {
		return "inf"
	}
	if math.IsInf(f, -1) {
		return "-inf"
	}
	if math.IsNaN(f) {
		return "nan"
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// None is a manifest null. It is falsy in conditions and prints as None.
type None bool

func (None) String() string { return "None" }

// List is a manifest sequence. It prints as a Python list literal.
type List []any

func (l List) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, item := range l {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(repr(item))
	}
	b.WriteByte(']')
	return b.String()
}

// Mapping is a nested manifest mapping. It prints as a Python dict literal
// with keys sorted, since decoding does not keep their order.
type Mapping map[string]any

func (m Mapping) String() string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(quote(k))
		b.WriteString(": ")
		b.WriteString(repr(m[k]))
	}
	b.WriteByte('}')
	return b.String()
}

// repr formats an element of a List or Mapping.
func repr(v any) string {
	if s, ok := v.(string); ok {
		return quote(s)
	}
	return Format(v)
}

// quote writes s as a Python string literal: single quotes unless s holds a
// single quote and no double quote.
func quote(s string) string {
	q := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}

	var b strings.Builder
	b.WriteByte(q)
	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == rune(q):
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(q)
	return b.String()
}
