package whdeploy_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/whdeploy/pkg/whdeploy"
)

func validConfig() whdeploy.DeploymentConfig {
	return whdeploy.DeploymentConfig{
		Environment:    "dev",
		Connection:     whdeploy.DefaultConnection,
		ManifestPath:   whdeploy.DefaultManifestFile,
		DefinitionsDir: whdeploy.DefaultDefinitionsDir,
	}
}

func TestDeploymentConfig_NormalizedEnvironment(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"dev", "DEV"},
		{"DEV", "DEV"},
		{"Prod", "PROD"},
		{"  qa ", "QA"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			cfg := whdeploy.DeploymentConfig{Environment: tt.in}
			assert.Equal(t, tt.want, cfg.NormalizedEnvironment())
		})
	}
}

func TestDeploymentConfig_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cfg := validConfig()
		require.NoError(t, cfg.Validate())
	})

	tests := []struct {
		name   string
		mutate func(*whdeploy.DeploymentConfig)
	}{
		{"missing environment", func(c *whdeploy.DeploymentConfig) { c.Environment = "  " }},
		{"missing connection", func(c *whdeploy.DeploymentConfig) { c.Connection = "" }},
		{"missing manifest", func(c *whdeploy.DeploymentConfig) { c.ManifestPath = "" }},
		{"missing definitions", func(c *whdeploy.DeploymentConfig) { c.DefinitionsDir = "" }},
		{"empty override key", func(c *whdeploy.DeploymentConfig) { c.Overrides = map[string]string{"": "x"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, whdeploy.ErrInvalidConfig))
		})
	}

	t.Run("reports every problem", func(t *testing.T) {
		cfg := whdeploy.DeploymentConfig{}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Environment is required")
		assert.Contains(t, err.Error(), "Connection is required")
		assert.Contains(t, err.Error(), "ManifestPath is required")
		assert.Contains(t, err.Error(), "DefinitionsDir is required")
	})
}

func TestDeploymentResult_Counts(t *testing.T) {
	res := &whdeploy.DeploymentResult{
		Files: []whdeploy.FileResult{
			{Statements: []whdeploy.StatementResult{
				{Status: whdeploy.StatementSucceeded},
				{Status: whdeploy.StatementWarned},
			}},
			{Statements: []whdeploy.StatementResult{
				{Status: whdeploy.StatementWarned},
				{Status: whdeploy.StatementSkipped},
			}},
			{},
		},
	}

	assert.Equal(t, 4, res.Statements())
	assert.Equal(t, 2, res.Warnings())
	assert.Equal(t, 1, res.Files[0].Warnings())
}

func TestStatementStatus_String(t *testing.T) {
	assert.Equal(t, "ok", whdeploy.StatementSucceeded.String())
	assert.Equal(t, "warning", whdeploy.StatementWarned.String())
	assert.Equal(t, "skipped", whdeploy.StatementSkipped.String())
	assert.Equal(t, "StatementStatus(9)", whdeploy.StatementStatus(9).String())
}
