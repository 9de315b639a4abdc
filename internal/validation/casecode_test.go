package validation

import (
	"strings"
	"testing"

	"github.com/garelabs/gare-backend/internal/pkg/apperr"
)

func TestCaseCodeValid(t *testing.T) {
	info, err := CaseCode("goainv001")
	if err != nil {
		t.Fatalf("CaseCode: unexpected error %v", err)
	}
	if info.Normalized != "GOAINV001" {
		t.Fatalf("Normalized: %q", info.Normalized)
	}
	if info.Prefix != "GOAINV" || info.Sequence != "001" {
		t.Fatalf("Prefix/Sequence: %q %q", info.Prefix, info.Sequence)
	}
	if info.Label != "Investigação" {
		t.Fatalf("Label: %q", info.Label)
	}
}

func TestCaseCodeUnknownPrefix(t *testing.T) {
	_, err := CaseCode("XXXINV001")
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	// The message enumerates the whole known prefix set.
	for _, p := range sortedCaseCodePrefixes() {
		if !strings.Contains(err.Error(), p) {
			t.Fatalf("error message missing prefix %s: %v", p, err)
		}
	}
}

func TestCaseCodeLength(t *testing.T) {
	// 7 chars: fails the length check before anything else.
	if _, err := CaseCode("GOAINV0"); err == nil {
		t.Fatalf("expected length error for GOAINV0")
	}
	if _, err := CaseCode("GOAINV" + strings.Repeat("1", 95)); err == nil {
		t.Fatalf("expected length error for >100 chars")
	}
	// Exactly 8 is the minimum.
	if _, err := CaseCode("GOAINV01"); err != nil {
		t.Fatalf("GOAINV01: unexpected error %v", err)
	}
}

func TestCaseCodeSequence(t *testing.T) {
	if _, err := CaseCode("GOAINV0A1"); err == nil {
		t.Fatalf("expected error for non-digit sequence")
	}
	if _, err := CaseCode("GOAINV000"); err == nil {
		t.Fatalf("expected error for zero sequence")
	}
}

func TestCaseCodeLabelLookup(t *testing.T) {
	if got := CaseCodeLabel("goatri"); got != "Tributário" {
		t.Fatalf("CaseCodeLabel: %q", got)
	}
	if got := CaseCodeLabel("NOPE"); got != "" {
		t.Fatalf("CaseCodeLabel unknown: %q", got)
	}
}
