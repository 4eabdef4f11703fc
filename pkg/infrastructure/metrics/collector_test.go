package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNoOpCollector(t *testing.T) {
	collector := NewNoOpCollector()

	assert.NotPanics(t, func() {
		collector.IncrementCounter("ddl_compiled", "operation", "show_connectors")
		collector.RecordHistogram("statement_bytes", 1)
		collector.RecordGauge("explain_tables", 1)
	})

	timer := collector.StartTimer("ddl_compile")
	time.Sleep(time.Millisecond)
	assert.Greater(t, timer.Stop(), 0.0)
}
