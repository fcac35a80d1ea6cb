package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "network_registry"

// Lookup results.
const (
	ResultHit  = "hit"
	ResultMiss = "miss"
)

// UnknownNetwork is the network label of every missed lookup. Miss keys come
// from callers and are not used as label values.
const UnknownNetwork = "unknown"

// Metrics groups the registry's Prometheus collectors.
type Metrics struct {
	Lookups        *prometheus.CounterVec
	DecodeFailures *prometheus.CounterVec
	HTTPRequests   *prometheus.CounterVec
}

// New creates the collectors and registers them on reg. A nil reg leaves them
// unregistered.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_total",
			Help:      "Network lookups by network key and result.",
		}, []string{"network", "result"}),
		DecodeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decode_failures_total",
			Help:      "Networks documents rejected as malformed, by source.",
		}, []string{"source"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "status"}),
	}
	if reg != nil {
		reg.MustRegister(m.Lookups, m.DecodeFailures, m.HTTPRequests)
	}
	return m
}

// ObserveLookup counts a lookup of network. Safe on a nil receiver.
func (m *Metrics) ObserveLookup(network string, found bool) {
	if m == nil {
		return
	}
	if !found {
		m.Lookups.WithLabelValues(UnknownNetwork, ResultMiss).Inc()
		return
	}
	m.Lookups.WithLabelValues(network, ResultHit).Inc()
}

// ObserveDecodeFailure counts a rejected document from source.
func (m *Metrics) ObserveDecodeFailure(source string) {
	if m == nil {
		return
	}
	m.DecodeFailures.WithLabelValues(source).Inc()
}

// ObserveRequest counts a served HTTP request.
func (m *Metrics) ObserveRequest(route string, status int) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}
