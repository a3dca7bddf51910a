package identity

import (
	"regexp"
	"testing"
)

var tokenPattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

func TestResolve_Deterministic(t *testing.T) {
	a := Resolve("Ana", "ana@example.com", "1234")
	b := Resolve("Ana", "ana@example.com", "1234")

	if !a.Resolved() {
		t.Fatal("expected resolved key")
	}
	if a != b {
		t.Errorf("same input gave %s and %s", a, b)
	}
	if !tokenPattern.MatchString(a.Token) {
		t.Errorf("token %q is not 32 lowercase hex chars", a.Token)
	}
}

func TestResolve_Normalization(t *testing.T) {
	base := Resolve("Ana", "ana@example.com", "1234")

	tests := []struct {
		name  string
		parts []string
		same  bool
	}{
		{"whitespace trimmed", []string{"  Ana ", " ana@example.com", "1234 "}, true},
		{"email case folded", []string{"Ana", "ANA@Example.COM", "1234"}, true},
		{"name is case sensitive", []string{"ana", "ana@example.com", "1234"}, false},
		{"different pin", []string{"Ana", "ana@example.com", "1235"}, false},
		{"parts reordered", []string{"ana@example.com", "Ana", "1234"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.parts...)
			if (got == base) != tt.same {
				t.Errorf("Resolve(%q) == base is %v, want %v", tt.parts, got == base, tt.same)
			}
		})
	}
}

func TestResolve_SeparatorPreventsShiftCollisions(t *testing.T) {
	if Resolve("ab", "c") == Resolve("a", "bc") {
		t.Error("shifted boundaries must not collide")
	}
}

func TestResolve_Unresolved(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
	}{
		{"no parts", nil},
		{"empty part", []string{"Ana", "", "1234"}},
		{"blank part", []string{"Ana", "ana@example.com", "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := Resolve(tt.parts...)
			if k.Resolved() {
				t.Errorf("Resolve(%q) should be unresolved, got %s", tt.parts, k)
			}
			if k.String() != "unresolved" {
				t.Errorf("String() = %q, want unresolved", k.String())
			}
		})
	}
}

func TestResolve_DistinctInputsDistinctKeys(t *testing.T) {
	seen := make(map[Key]string)
	for _, name := range []string{"ana", "bea", "carla", "dani", "eva"} {
		for _, pin := range []string{"0000", "1111", "2222"} {
			k := Resolve(name, name+"@example.com", pin)
			if prev, dup := seen[k]; dup {
				t.Fatalf("collision between %s and %s/%s", prev, name, pin)
			}
			seen[k] = name + "/" + pin
		}
	}
}
