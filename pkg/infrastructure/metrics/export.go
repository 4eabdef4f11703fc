package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// DefaultJob is the Pushgateway job name used when none is configured.
const DefaultJob = "ddlplan"

// ExportConfig names the sinks a one-shot run flushes its metrics to.
type ExportConfig struct {
	// PushURL is the base URL of a Prometheus Pushgateway.
	PushURL string
	// Job groups the pushed metrics on the gateway.
	Job string
	// TextFile is written in the text exposition format, for the
	// node_exporter textfile collector.
	TextFile string
}

// Export gathers from g and writes the result to every configured sink.
// Each sink is attempted; the first failure is returned.
func Export(ctx context.Context, g prometheus.Gatherer, cfg ExportConfig) error {
	var firstErr error

	if cfg.TextFile != "" {
		if err := prometheus.WriteToTextfile(cfg.TextFile, g); err != nil {
			firstErr = fmt.Errorf("failed to write metrics file: %w", err)
		}
	}

	if cfg.PushURL != "" {
		job := cfg.Job
		if job == "" {
			job = DefaultJob
		}
		if err := push.New(cfg.PushURL, job).Gatherer(g).PushContext(ctx); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to push metrics: %w", err)
		}
	}

	return firstErr
}
