package store

import (
	"errors"
	"os"
	"testing"

	"github.com/HendryAvila/azimut/internal/identity"
	"github.com/HendryAvila/azimut/internal/journal"
)

func TestProfileStore_RoundTrip(t *testing.T) {
	ps := NewProfileStore(t.TempDir())
	key := testKey("ana")
	want := journal.Profile{StartDate: strPtr("2026-01-10"), TargetDaysPerWeek: 5, TargetEntriesPerDay: 2}

	if got := ps.Load(key); got != nil {
		t.Fatalf("Load before save = %+v, want nil", got)
	}
	if err := ps.Save(key, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got := ps.Load(key)
	if got == nil {
		t.Fatal("Load after save returned nil")
	}
	if *got.StartDate != "2026-01-10" || got.TargetDaysPerWeek != 5 || got.TargetEntriesPerDay != 2 {
		t.Errorf("Load = %+v, want %+v", *got, want)
	}
}

func TestProfileStore_RejectsInvalid(t *testing.T) {
	ps := NewProfileStore(t.TempDir())
	if err := ps.Save(testKey("ana"), journal.Profile{TargetDaysPerWeek: 9}); err == nil {
		t.Error("Save should reject 9 days per week")
	}
	if err := ps.Save(identity.Key{}, journal.Profile{}); !errors.Is(err, ErrUnresolved) {
		t.Errorf("Save error = %v, want ErrUnresolved", err)
	}
}

func TestProfileStore_MalformedIsAbsent(t *testing.T) {
	ps := NewProfileStore(t.TempDir())
	key := testKey("ana")
	if err := os.WriteFile(ps.Path(key), []byte("{broken"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if got := ps.Load(key); got != nil {
		t.Errorf("Load = %+v, want nil", got)
	}
}
