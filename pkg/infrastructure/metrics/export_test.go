package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pushRecorder struct {
	mu     sync.Mutex
	method string
	path   string
}

func (r *pushRecorder) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mu.Lock()
	r.method = req.Method
	r.path = req.URL.Path
	r.mu.Unlock()
	w.WriteHeader(http.StatusOK)
}

func newCompiledRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	collector := NewPrometheusCollector("ddlplan", reg)
	collector.IncrementCounter("ddl_compiled", "operation", "show_connectors")
	return reg
}

func TestExport_TextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ddlplan.prom")

	err := Export(context.Background(), newCompiledRegistry(), ExportConfig{TextFile: path})
	require.NoError(t, err)

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(body), `ddlplan_ddl_compiled_total{operation="show_connectors"} 1`)
}

func TestExport_Push(t *testing.T) {
	rec := &pushRecorder{}
	gateway := httptest.NewServer(rec)
	defer gateway.Close()

	err := Export(context.Background(), newCompiledRegistry(), ExportConfig{PushURL: gateway.URL})
	require.NoError(t, err)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, http.MethodPut, rec.method)
	assert.Equal(t, "/metrics/job/"+DefaultJob, rec.path)
}

func TestExport_Errors(t *testing.T) {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer gateway.Close()

	missingDir := filepath.Join(t.TempDir(), "missing", "ddlplan.prom")

	err := Export(context.Background(), newCompiledRegistry(), ExportConfig{
		PushURL:  gateway.URL,
		TextFile: missingDir,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write metrics file")

	err = Export(context.Background(), newCompiledRegistry(), ExportConfig{PushURL: gateway.URL, Job: "nightly"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to push metrics")
}

func TestExport_NoSinks(t *testing.T) {
	assert.NoError(t, Export(context.Background(), prometheus.NewRegistry(), ExportConfig{}))
}
