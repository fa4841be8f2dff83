package render

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/whdeploy/pkg/whdeploy"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		template string
		vars     map[string]any
		expected string
	}{
		{
			name:     "quoted interpolation",
			template: "SELECT '{{ x }}'",
			vars:     map[string]any{"x": "prod"},
			expected: "SELECT 'prod'",
		},
		{
			name:     "interpolation without spaces",
			template: "CREATE SCHEMA {{schema}};",
			vars:     map[string]any{"schema": "dev_schema"},
			expected: "CREATE SCHEMA dev_schema;",
		},
		{
			name:     "no expressions",
			template: "SELECT 1;\nSELECT 2;",
			vars:     map[string]any{"unused": "x"},
			expected: "SELECT 1;\nSELECT 2;",
		},
		{
			name:     "integer value",
			template: "ALTER TABLE t SET DATA_RETENTION_TIME_IN_DAYS = {{ days }};",
			vars:     map[string]any{"days": 90},
			expected: "ALTER TABLE t SET DATA_RETENTION_TIME_IN_DAYS = 90;",
		},
		{
			name:     "boolean renders like Jinja",
			template: "-- enabled: {{ flag }}",
			vars:     map[string]any{"flag": true},
			expected: "-- enabled: True",
		},
		{
			name:     "conditional",
			template: "{% if enable_tasks %}ALTER TASK t RESUME;{% else %}ALTER TASK t SUSPEND;{% endif %}",
			vars:     map[string]any{"enable_tasks": false},
			expected: "ALTER TASK t SUSPEND;",
		},
		{
			name:     "loop",
			template: "{% for r in roles %}GRANT USAGE ON SCHEMA s TO ROLE {{ r }};{% endfor %}",
			vars:     map[string]any{"roles": []any{"ANALYST", "LOADER"}},
			expected: "GRANT USAGE ON SCHEMA s TO ROLE ANALYST;GRANT USAGE ON SCHEMA s TO ROLE LOADER;",
		},
		{
			name:     "filter",
			template: "USE WAREHOUSE {{ wh|upper }};",
			vars:     map[string]any{"wh": "dev_wh"},
			expected: "USE WAREHOUSE DEV_WH;",
		},
		{
			name:     "nested mapping",
			template: "USE ROLE {{ roles.admin }};",
			vars:     map[string]any{"roles": map[string]any{"admin": "SYSADMIN"}},
			expected: "USE ROLE SYSADMIN;",
		},
		{
			name:     "values are not escaped",
			template: "SELECT '{{ v }}'",
			vars:     map[string]any{"v": `a<b & "c"`},
			expected: `SELECT 'a<b & "c"'`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Render(tt.template, tt.vars)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestRender_MissingVariableRendersEmpty(t *testing.T) {
	out, err := Render("CREATE SCHEMA {{ schema }};", map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, "CREATE SCHEMA ;", out)

	out, err = Render("CREATE SCHEMA {{ schema }};", nil)
	require.NoError(t, err)
	assert.Equal(t, "CREATE SCHEMA ;", out)
}

func TestRender_InvalidSyntax(t *testing.T) {
	tests := []struct {
		name     string
		template string
	}{
		{"unclosed block", "{% if x %}SELECT 1;"},
		{"unknown tag", "{% frobnicate %}"},
		{"unterminated expression", "SELECT {{ x "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Render(tt.template, map[string]any{"x": 1})
			require.Error(t, err)
			assert.True(t, errors.Is(err, whdeploy.ErrRender), "expected ErrRender, got: %v", err)
			assert.Empty(t, out)
		})
	}
}

func TestRenderer_ImplementsInterface(t *testing.T) {
	var r whdeploy.TemplateRenderer = New()

	out, err := r.Render("SELECT '{{ x }}'", map[string]any{"x": "prod"})
	require.NoError(t, err)
	assert.Equal(t, "SELECT 'prod'", out)
}

func TestRender_DoesNotMutateInput(t *testing.T) {
	vars := map[string]any{"ratio": 0.5, "list": []any{1.25}}

	_, err := Render("{{ ratio }}", vars)
	require.NoError(t, err)

	assert.Equal(t, 0.5, vars["ratio"])
	assert.Equal(t, []any{1.25}, vars["list"])
}

func TestDecimal_String(t *testing.T) {
	assert.Equal(t, "1.5", Decimal(1.5).String())
	assert.Equal(t, "0.25", Decimal(0.25).String())
	assert.Equal(t, "3.0", Decimal(3).String())
	assert.Equal(t, "-2.0", Decimal(-2).String())
}

func TestRender_NullRendersNone(t *testing.T) {
	out, err := Render("X={{ x }}", map[string]any{"x": nil})
	require.NoError(t, err)
	assert.Equal(t, "X=None", out)
}

func TestRender_NullIsFalsy(t *testing.T) {
	out, err := Render("{% if x %}set{% else %}unset{% endif %}", map[string]any{"x": nil})
	require.NoError(t, err)
	assert.Equal(t, "unset", out)
}

func TestRender_ContainersPrintAsPythonLiterals(t *testing.T) {
	tests := []struct {
		name     string
		template string
		vars     map[string]any
		expected string
	}{
		{
			name:     "list of strings",
			template: "L={{ l }}",
			vars:     map[string]any{"l": []any{"a", "b"}},
			expected: "L=['a', 'b']",
		},
		{
			name:     "mixed list",
			template: "{{ l }}",
			vars:     map[string]any{"l": []any{1, 1.5, true, nil, "it's"}},
			expected: `[1, 1.5, True, None, "it's"]`,
		},
		{
			name:     "nested list",
			template: "{{ l }}",
			vars:     map[string]any{"l": []any{[]any{"x"}, []any{}}},
			expected: "[['x'], []]",
		},
		{
			name:     "mapping with sorted keys",
			template: "{{ m }}",
			vars:     map[string]any{"m": map[string]any{"b": 2, "a": "x"}},
			expected: "{'a': 'x', 'b': 2}",
		},
		{
			name:     "list elements still iterate",
			template: "{% for r in l %}{{ r }};{% endfor %}",
			vars:     map[string]any{"l": []any{"A", nil, 2.0}},
			expected: "A;None;2.0;",
		},
		{
			name:     "list length",
			template: "{{ l|length }}",
			vars:     map[string]any{"l": []any{"a", "b", "c"}},
			expected: "3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Render(tt.template, tt.vars)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"string", "dev_schema", "dev_schema"},
		{"int", 90, "90"},
		{"float", 0.5, "0.5"},
		{"true", true, "True"},
		{"false", false, "False"},
		{"null", nil, "None"},
		{"list", []any{"a", 1}, "['a', 1]"},
		{"escaped quotes", []any{`a'b"c`}, `['a\'b"c']`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.value))
		})
	}
}
