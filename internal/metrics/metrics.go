// Package metrics counts journal store activity on a private Prometheus
// registry. Nothing is exposed over HTTP; the CLI reads a snapshot.
package metrics

import (
	"fmt"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "azimut"

// Metrics holds the journal counters. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry     *prometheus.Registry
	Loads        *prometheus.CounterVec
	CorruptLoads *prometheus.CounterVec
	Saves        *prometheus.CounterVec
	SaveFailures *prometheus.CounterVec
}

// New creates the counters and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "journal",
			Name:      "loads_total",
			Help:      "Journal loads, by backend.",
		}, []string{"backend"}),
		CorruptLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "journal",
			Name:      "corrupt_loads_total",
			Help:      "Loads that found an unreadable or malformed journal and substituted an empty log.",
		}, []string{"backend"}),
		Saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "journal",
			Name:      "saves_total",
			Help:      "Successful whole-journal saves, by backend.",
		}, []string{"backend"}),
		SaveFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "journal",
			Name:      "save_failures_total",
			Help:      "Saves that could not be persisted, by backend.",
		}, []string{"backend"}),
	}
	m.registry.MustRegister(m.Loads, m.CorruptLoads, m.Saves, m.SaveFailures)
	return m
}

// Registry returns the private registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveLoad counts a load; corrupt marks a substituted empty log.
func (m *Metrics) ObserveLoad(backend string, corrupt bool) {
	if m == nil {
		return
	}
	m.Loads.WithLabelValues(backend).Inc()
	if corrupt {
		m.CorruptLoads.WithLabelValues(backend).Inc()
	}
}

// ObserveSave counts a save attempt by outcome.
func (m *Metrics) ObserveSave(backend string, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.SaveFailures.WithLabelValues(backend).Inc()
		return
	}
	m.Saves.WithLabelValues(backend).Inc()
}

// Sample is one flattened counter value.
type Sample struct {
	Name    string
	Backend string
	Value   float64
}

// Snapshot gathers every counter series, sorted by name then backend.
func (m *Metrics) Snapshot() ([]Sample, error) {
	if m == nil {
		return nil, nil
	}
	families, err := m.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("gathering metrics: %w", err)
	}

	var out []Sample
	for _, fam := range families {
		for _, metric := range fam.GetMetric() {
			s := Sample{Name: fam.GetName(), Value: metric.GetCounter().GetValue()}
			for _, lp := range metric.GetLabel() {
				if lp.GetName() == "backend" {
					s.Backend = lp.GetValue()
				}
			}
			out = append(out, s)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Backend < out[j].Backend
	})
	return out, nil
}
