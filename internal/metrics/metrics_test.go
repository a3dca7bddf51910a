package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveLoad(t *testing.T) {
	m := New()
	m.ObserveLoad("json", false)
	m.ObserveLoad("json", true)
	m.ObserveLoad("sqlite", false)

	if got := testutil.ToFloat64(m.Loads.WithLabelValues("json")); got != 2 {
		t.Errorf("json loads = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.CorruptLoads.WithLabelValues("json")); got != 1 {
		t.Errorf("json corrupt loads = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.Loads.WithLabelValues("sqlite")); got != 1 {
		t.Errorf("sqlite loads = %v, want 1", got)
	}
}

func TestObserveSave(t *testing.T) {
	m := New()
	m.ObserveSave("json", nil)
	m.ObserveSave("json", errors.New("disk full"))

	if got := testutil.ToFloat64(m.Saves.WithLabelValues("json")); got != 1 {
		t.Errorf("saves = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.SaveFailures.WithLabelValues("json")); got != 1 {
		t.Errorf("save failures = %v, want 1", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveLoad("json", true)
	m.ObserveSave("json", nil)
	samples, err := m.Snapshot()
	if err != nil || samples != nil {
		t.Errorf("Snapshot on nil = %v, %v; want nil, nil", samples, err)
	}
}

func TestSnapshot_Sorted(t *testing.T) {
	m := New()
	m.ObserveLoad("sqlite", false)
	m.ObserveLoad("json", true)
	m.ObserveSave("json", nil)

	samples, err := m.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if len(samples) != 4 {
		t.Fatalf("len(samples) = %d, want 4: %+v", len(samples), samples)
	}
	if samples[0].Name != "azimut_journal_corrupt_loads_total" {
		t.Errorf("first sample = %s, want corrupt_loads first", samples[0].Name)
	}
	if samples[1].Name != "azimut_journal_loads_total" || samples[1].Backend != "json" {
		t.Errorf("second sample = %+v, want json loads", samples[1])
	}
}
