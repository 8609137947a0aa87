package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestMetrics(t *testing.T) (*Metrics, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	return New(reg), reg
}

func TestObserveBuild(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.ObserveBuild("greedy", 2*time.Millisecond, nil)
	m.ObserveBuild("greedy", time.Millisecond, errors.New("boom"))

	if v := testutil.ToFloat64(m.BuildsTotal.WithLabelValues("greedy", "success")); v != 1 {
		t.Errorf("builds_total[greedy,success] = %v, want 1", v)
	}
	if v := testutil.ToFloat64(m.BuildsTotal.WithLabelValues("greedy", "error")); v != 1 {
		t.Errorf("builds_total[greedy,error] = %v, want 1", v)
	}
}

func TestObserveValidation(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.ObserveValidation(3, []string{"GPU Bottleneck", "Low VRAM"})

	if v := testutil.ToFloat64(m.ValidationIssues); v != 3 {
		t.Errorf("validation_issues_total = %v, want 3", v)
	}
	if v := testutil.ToFloat64(m.BottlenecksTotal.WithLabelValues("Low VRAM")); v != 1 {
		t.Errorf("bottlenecks_total[Low VRAM] = %v, want 1", v)
	}
}

func TestObserveCatalog(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.ObserveCatalog(map[string]int{"price": 2}, 1, map[string]int{"cpu": 4, "gpu": 3})
	m.ObserveCatalog(nil, 0, map[string]int{"cpu": 5})

	if v := testutil.ToFloat64(m.CatalogFieldDefault.WithLabelValues("price")); v != 2 {
		t.Errorf("catalog_field_defaults_total[price] = %v, want 2", v)
	}
	if v := testutil.ToFloat64(m.CatalogComponents.WithLabelValues("cpu")); v != 5 {
		t.Errorf("catalog_components[cpu] = %v, want 5", v)
	}
	if n := testutil.CollectAndCount(m.CatalogComponents); n != 1 {
		t.Errorf("stale category gauges should be reset, got %d series", n)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveBuild("greedy", time.Second, nil)
	m.ObserveAllocationFailure("cpu", "no_candidate")
	m.ObserveValidation(1, nil)
	m.ObserveCatalog(nil, 0, nil)
	m.ObserveBotRequest("build", nil)
}

func TestHandlerServesMetrics(t *testing.T) {
	m, reg := newTestMetrics(t)
	m.ObserveAllocationFailure("psu", "insufficient_psu")

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `buildgen_allocation_failures_total{category="psu",reason="insufficient_psu"} 1`) {
		t.Fatalf("metric missing from output:\n%s", body)
	}
}
