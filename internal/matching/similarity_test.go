package matching

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRatioReferenceValues(t *testing.T) {
	// Values pinned against the reference implementation the existing
	// data was scored with.
	cases := []struct {
		a, b string
		want float64
	}{
		{"joão da silva", "joao da silva", 92.3076923076923},
		{"maria souza lima", "maria sousa lima", 93.75},
		{"carlos pereira", "arlos pereira", 96.29629629629629},
		{"ana", "anna", 85.71428571428571},
		{"abc", "xyz", 0},
	}
	for _, tc := range cases {
		got := Ratio(tc.a, tc.b)
		if !almostEqual(got, tc.want) {
			t.Fatalf("Ratio(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestRatioIdentityAndCase(t *testing.T) {
	if got := Ratio("Maria Silva", "maria silva"); !almostEqual(got, 100) {
		t.Fatalf("case-insensitive identity: %v", got)
	}
	if got := Ratio("", "anything"); got != 0 {
		t.Fatalf("empty operand: %v", got)
	}
	if got := Ratio("anything", ""); got != 0 {
		t.Fatalf("empty operand: %v", got)
	}
}

func TestSurname(t *testing.T) {
	if got := Surname("  José  da Silva "); got != "Silva" {
		t.Fatalf("Surname: %q", got)
	}
	if got := Surname("   "); got != "" {
		t.Fatalf("Surname blank: %q", got)
	}
}

func TestHasSurname(t *testing.T) {
	if !HasSurname("Maria da SILVA", "silva") {
		t.Fatalf("expected suffix match")
	}
	// The surname must be its own trailing token.
	if HasSurname("Mariasilva", "silva") {
		t.Fatalf("embedded token should not match")
	}
	if HasSurname("Maria Silva", "") {
		t.Fatalf("empty surname should not match")
	}
}
