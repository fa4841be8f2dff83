package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/whdeploy/internal/logging"
	"github.com/vvka-141/whdeploy/pkg/whdeploy"
)

func TestExecute_ReportsErrorsThroughLogger(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		args     []string
		wantMsg  string
		wantCode int
	}{
		{
			name:     "unknown flag",
			args:     []string{"dev", "--no-such-flag"},
			wantMsg:  "unknown flag: --no-such-flag",
			wantCode: whdeploy.ExitUsageError,
		},
		{
			name:     "too many arguments",
			args:     []string{"dev", "prod"},
			wantMsg:  "accepts 1 arg(s), received 2",
			wantCode: whdeploy.ExitUsageError,
		},
		{
			name: "missing manifest",
			args: []string{"dev",
				"--manifest", filepath.Join(dir, "missing.yml"),
				"--definitions", dir},
			wantMsg:  "deployment failed: manifest not found",
			wantCode: whdeploy.ExitConfigError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetDeployFlags()
			t.Cleanup(resetDeployFlags)

			var out, errOut bytes.Buffer
			logger := logging.NewConsoleLoggerTo(&out, &errOut, false, false)

			err := execute(tt.args, logger)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, whdeploy.ExitCodeForError(err))

			lines := strings.Split(strings.TrimSpace(errOut.String()), "\n")
			require.Len(t, lines, 1, "error must be reported once")
			assert.True(t, strings.HasPrefix(lines[0], "[ERROR] "), lines[0])
			assert.Contains(t, lines[0], tt.wantMsg)
			assert.Empty(t, out.String())
		})
	}
}
