package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/vvka-141/whdeploy/pkg/whdeploy"
)

type clientCall struct {
	statement  string
	connection string
}

// mockClient replays scripted responses keyed by statement and records calls.
type mockClient struct {
	mu        sync.Mutex
	calls     []clientCall
	responses map[string]mockResponse
}

type mockResponse struct {
	result whdeploy.ClientResult
	err    error
}

func newMockClient() *mockClient {
	return &mockClient{responses: make(map[string]mockResponse)}
}

func (m *mockClient) on(stmt string, result whdeploy.ClientResult, err error) *mockClient {
	m.responses[stmt] = mockResponse{result: result, err: err}
	return m
}

func (m *mockClient) Run(ctx context.Context, stmt, connection string) (whdeploy.ClientResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, clientCall{statement: stmt, connection: connection})
	if err := ctx.Err(); err != nil {
		return whdeploy.ClientResult{ExitCode: -1}, err
	}
	if r, ok := m.responses[stmt]; ok {
		return r.result, r.err
	}
	return whdeploy.ClientResult{Stdout: "ok\n"}, nil
}

func (m *mockClient) statements() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	for i, c := range m.calls {
		out[i] = c.statement
	}
	return out
}

type mockScanner struct {
	templates []whdeploy.TemplateFile
	err       error
	calls     int
}

func (m *mockScanner) ScanTemplates(_ string) ([]whdeploy.TemplateFile, error) {
	m.calls++
	return m.templates, m.err
}

type mockRunner struct {
	calls []string
}

func (m *mockRunner) Execute(_ context.Context, renderedSQL, _, _ string) []whdeploy.StatementResult {
	m.calls = append(m.calls, renderedSQL)
	return nil
}

type mockRenderer struct {
	err error
}

func (m *mockRenderer) Render(text string, _ map[string]any) (string, error) {
	return text, m.err
}

// recordingLogger keeps every line with a level prefix so tests can assert on
// what a user would see.
type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) add(level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, level+": "+fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Verbose(format string, args ...interface{}) { l.add("verbose", format, args...) }
func (l *recordingLogger) Info(format string, args ...interface{})    { l.add("info", format, args...) }
func (l *recordingLogger) Success(format string, args ...interface{}) { l.add("success", format, args...) }
func (l *recordingLogger) Warn(format string, args ...interface{})    { l.add("warn", format, args...) }
func (l *recordingLogger) Error(format string, args ...interface{})   { l.add("error", format, args...) }
func (l *recordingLogger) Banner(title string)                        { l.add("banner", "%s", title) }
func (l *recordingLogger) Section(title string)                       { l.add("section", "%s", title) }

func (l *recordingLogger) withPrefix(level string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []string
	for _, line := range l.lines {
		if strings.HasPrefix(line, level+": ") {
			out = append(out, strings.TrimPrefix(line, level+": "))
		}
	}
	return out
}

func (l *recordingLogger) text() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return strings.Join(l.lines, "\n")
}
