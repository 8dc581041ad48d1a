package metric_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/inventory-management/internal/http/metric"
)

func TestNew(t *testing.T) {
	reg := prometheus.NewRegistry()

	first, err := metric.New(reg)
	require.NoError(t, err)
	second, err := metric.New(reg)
	require.NoError(t, err)

	assert.Same(t, first.RequestsTotal, second.RequestsTotal)
	assert.Same(t, first.RequestDuration, second.RequestDuration)

	first.RequestsTotal.WithLabelValues("GET", "/api/v1/products", "200").Inc()

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "ims_http_requests_total")
	assert.Contains(t, names, "ims_http_inflight_requests")
}
