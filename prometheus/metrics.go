// Package prometheus instruments the placefinder interfaces with
// Prometheus metrics.
package prometheus

import (
	"context"
	"time"

	"github.com/fwojciec/placefinder"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "placefinder"

// Metrics is the set of collectors shared by the instrumented types.
type Metrics struct {
	Requests    *prometheus.CounterVec
	Duration    *prometheus.HistogramVec
	Validations *prometheus.CounterVec
	Sessions    prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
// savedPlaces, if non-nil, is exported as a gauge.
func NewMetrics(reg prometheus.Registerer, savedPlaces func() int) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ai_requests_total",
			Help:      "Requests made to the generative language backend by operation and outcome.",
		}, []string{"op", "outcome"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ai_request_duration_seconds",
			Help:      "Latency of requests to the generative language backend.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		}, []string{"op"}),
		Validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "credential_validations_total",
			Help:      "Credential validation attempts by result.",
		}, []string{"result"}),
		Sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Connected live sessions.",
		}),
	}
	reg.MustRegister(m.Requests, m.Duration, m.Validations, m.Sessions)

	if savedPlaces != nil {
		reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "saved_places",
			Help:      "Places in the saved list.",
		}, func() float64 { return float64(savedPlaces()) }))
	}
	return m
}

func (m *Metrics) observe(op string, begin time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = placefinder.ErrorCode(err)
	}
	m.Requests.WithLabelValues(op, outcome).Inc()
	m.Duration.WithLabelValues(op).Observe(time.Since(begin).Seconds())
}

// Ensure InstrumentedFinder implements placefinder.PlaceFinder.
var _ placefinder.PlaceFinder = (*InstrumentedFinder)(nil)

// InstrumentedFinder records request counts and latency for a PlaceFinder.
type InstrumentedFinder struct {
	next    placefinder.PlaceFinder
	metrics *Metrics
}

// NewInstrumentedFinder creates a new InstrumentedFinder.
func NewInstrumentedFinder(next placefinder.PlaceFinder, metrics *Metrics) *InstrumentedFinder {
	return &InstrumentedFinder{next: next, metrics: metrics}
}

func (f *InstrumentedFinder) SearchPlaces(ctx context.Context, query string) (_ []*placefinder.PlaceSuggestion, err error) {
	defer func(begin time.Time) { f.metrics.observe("search", begin, err) }(time.Now())
	return f.next.SearchPlaces(ctx, query)
}

func (f *InstrumentedFinder) FetchPlaceDetails(ctx context.Context, placeID, name string) (_ *placefinder.PlaceDetails, err error) {
	defer func(begin time.Time) { f.metrics.observe("details", begin, err) }(time.Now())
	return f.next.FetchPlaceDetails(ctx, placeID, name)
}

func (f *InstrumentedFinder) RefreshSummary(ctx context.Context, place *placefinder.PlaceDetails) (_ *placefinder.PlaceDetails, err error) {
	defer func(begin time.Time) { f.metrics.observe("refresh", begin, err) }(time.Now())
	return f.next.RefreshSummary(ctx, place)
}

// Ensure InstrumentedConnector implements placefinder.Connector.
var _ placefinder.Connector = (*InstrumentedConnector)(nil)

// InstrumentedConnector counts credential validations and instruments every
// PlaceFinder it returns.
type InstrumentedConnector struct {
	next    placefinder.Connector
	metrics *Metrics
}

// NewInstrumentedConnector creates a new InstrumentedConnector.
func NewInstrumentedConnector(next placefinder.Connector, metrics *Metrics) *InstrumentedConnector {
	return &InstrumentedConnector{next: next, metrics: metrics}
}

func (c *InstrumentedConnector) ValidateCredential(ctx context.Context, key string) bool {
	ok := c.next.ValidateCredential(ctx, key)
	result := "rejected"
	if ok {
		result = "accepted"
	}
	c.metrics.Validations.WithLabelValues(result).Inc()
	return ok
}

func (c *InstrumentedConnector) Connect(ctx context.Context, key string) (placefinder.PlaceFinder, error) {
	finder, err := c.next.Connect(ctx, key)
	if err != nil {
		return nil, err
	}
	return NewInstrumentedFinder(finder, c.metrics), nil
}
