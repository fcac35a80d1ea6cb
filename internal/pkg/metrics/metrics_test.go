package metrics

import (
	"fmt"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveLookup("liquid", true)
	m.ObserveLookup("liquid", true)
	m.ObserveLookup("dogecoin", false)
	m.ObserveDecodeFailure("override-dir")
	m.ObserveRequest("/api/v1/networks", 200)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Lookups.WithLabelValues("liquid", ResultHit)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Lookups.WithLabelValues(UnknownNetwork, ResultMiss)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DecodeFailures.WithLabelValues("override-dir")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/api/v1/networks", "200")))

	err := testutil.GatherAndCompare(reg, strings.NewReader(`
# HELP network_registry_decode_failures_total Networks documents rejected as malformed, by source.
# TYPE network_registry_decode_failures_total counter
network_registry_decode_failures_total{source="override-dir"} 1
`), "network_registry_decode_failures_total")
	require.NoError(t, err)
}

func TestMetrics_MissesShareOneSeries(t *testing.T) {
	m := New(prometheus.NewRegistry())

	for i := 0; i < 1000; i++ {
		m.ObserveLookup(fmt.Sprintf("junk-%d", i), false)
	}
	assert.Equal(t, 1, testutil.CollectAndCount(m.Lookups))
	assert.Equal(t, 1000.0, testutil.ToFloat64(m.Lookups.WithLabelValues(UnknownNetwork, ResultMiss)))

	m.ObserveLookup("liquid", true)
	assert.Equal(t, 2, testutil.CollectAndCount(m.Lookups))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveLookup("mainnet", true)
		m.ObserveDecodeFailure("bundled")
		m.ObserveRequest("/healthz", 200)
	})

	assert.NotPanics(t, func() { New(nil).ObserveLookup("mainnet", false) })
}
