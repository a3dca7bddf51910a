package server

import (
	"strings"
	"testing"
	"time"

	"github.com/HendryAvila/azimut/internal/config"
	"github.com/HendryAvila/azimut/internal/metrics"
	"github.com/HendryAvila/azimut/internal/query"
	"github.com/HendryAvila/azimut/internal/store"
)

func testConfig(t *testing.T, backend string) config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.StorageRoot = t.TempDir()
	cfg.Backend = backend
	cfg.SessionTTL = time.Minute
	return cfg
}

func TestNewService_Backends(t *testing.T) {
	for _, backend := range []string{store.BackendJSON, store.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			svc, err := NewService(testConfig(t, backend), nil, metrics.New())
			if err != nil {
				t.Fatalf("NewService failed: %v", err)
			}

			s := svc.Open("ana", "ana@example.com", "1")
			if _, err := s.Record(1, "", "evitar", "azúcar", nil); err != nil {
				t.Fatalf("Record failed: %v", err)
			}
			if got := s.Query(query.Filter{}); len(got) != 1 {
				t.Errorf("entries = %d, want 1", len(got))
			}
		})
	}
}

func TestNewService_UnknownBackend(t *testing.T) {
	if _, err := NewService(testConfig(t, "redis"), nil, nil); err == nil {
		t.Error("NewService should reject an unknown backend")
	}
}

func TestNew_RegistersEverything(t *testing.T) {
	m := metrics.New()
	svc, err := NewService(testConfig(t, store.BackendJSON), nil, m)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	s := New(svc, m)
	if s == nil {
		t.Fatal("New returned nil")
	}

	tools := s.ListTools()
	for _, name := range []string{
		"journal_append", "journal_query", "journal_insights",
		"journal_export", "journal_profile", "journal_clear", "journal_stats",
	} {
		if _, ok := tools[name]; !ok {
			t.Errorf("tool %s not registered", name)
		}
	}
}

func TestServerInstructions(t *testing.T) {
	text := serverInstructions()
	for _, want := range []string{"journal_append", "session_id", "journal_clear"} {
		if !strings.Contains(text, want) {
			t.Errorf("instructions missing %q", want)
		}
	}
}
