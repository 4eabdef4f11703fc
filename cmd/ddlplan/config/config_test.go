package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate_Defaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, filepath.Join(os.TempDir(), "ddlplan"), cfg.ScratchDir)
	assert.Equal(t, "default", cfg.ExplainLevel)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "valid",
			cfg:  Config{ScratchDir: "/tmp/hive", ExplainLevel: "extended", LogLevel: "debug"},
		},
		{
			name:    "bad explain level",
			cfg:     Config{ExplainLevel: "verbose"},
			wantErr: "invalid explain level",
		},
		{
			name:    "bad log level",
			cfg:     Config{LogLevel: "trace"},
			wantErr: "unsupported log level",
		},
		{
			name:    "metrics without sink",
			cfg:     Config{Metrics: MetricsConfig{Enabled: true}},
			wantErr: "metrics push URL or textfile is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_Validate_MetricsJob(t *testing.T) {
	cfg := &Config{Metrics: MetricsConfig{Enabled: true, TextFile: "/var/lib/node_exporter/ddlplan.prom"}}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "ddlplan", cfg.Metrics.Job)

	cfg = &Config{Metrics: MetricsConfig{Enabled: true, PushURL: "http://pushgateway:9091", Job: "nightly"}}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "nightly", cfg.Metrics.Job)
}
