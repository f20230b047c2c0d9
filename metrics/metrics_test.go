package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/reoring/launchcast/metrics"
)

func TestNewWithRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg)

	if m.FetchesTotal == nil || m.FetchDuration == nil || m.FetchesInFlight == nil {
		t.Fatal("fetch metrics not initialized")
	}
	if m.ShapeMismatches == nil || m.RequestsTotal == nil {
		t.Fatal("validation or server metrics not initialized")
	}
}

func TestFetchesTotal(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegistry(reg)

	m.FetchesTotal.WithLabelValues("launch", metrics.OutcomeOK).Inc()
	m.FetchesTotal.WithLabelValues("query", metrics.OutcomeMismatch).Add(2)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather error: %v", err)
	}
	var total float64
	found := false
	for _, f := range families {
		if f.GetName() != "launchcast_fetches_total" {
			continue
		}
		found = true
		for _, metric := range f.GetMetric() {
			total += metric.GetCounter().GetValue()
		}
	}
	if !found {
		t.Fatal("launchcast_fetches_total not found")
	}
	if total != 3 {
		t.Fatalf("total = %v, want 3", total)
	}
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.NewWithRegistry(reg)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate registration")
		}
	}()
	metrics.NewWithRegistry(reg)
}
