package query

import (
	"strings"
	"testing"
)

func TestParseDateExpr_Valid(t *testing.T) {
	tests := []string{
		"2023-01-02",
		"today",
		"yesterday",
		"tomorrow",
		"2023-01-01..2023-01-02",
		"*..2023-01-02",
		"2023-01-01..*",
		"today..*",
		"*..tomorrow",
		"yesterday..today",
	}

	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			got, err := parseDateExpr(raw)
			if err != nil {
				t.Fatalf("parseDateExpr(%q) failed: %v", raw, err)
			}
			if got != raw {
				t.Errorf("parseDateExpr(%q) = %q, want input unchanged", raw, got)
			}
		})
	}
}

func TestParseDateExpr_TrimsWhitespace(t *testing.T) {
	got, err := parseDateExpr("  2023-01-02  ")
	if err != nil {
		t.Fatalf("parseDateExpr failed: %v", err)
	}
	if got != "2023-01-02" {
		t.Errorf("got %q, want trimmed expression", got)
	}
}

func TestParseDateExpr_Invalid(t *testing.T) {
	tests := []struct {
		raw     string
		wantMsg string
	}{
		{"", "empty"},
		{"2023-01-02..today", "cannot mix"},
		{"today..2023-01-02", "cannot mix"},
		{"tomorrow..2024-12-31", "cannot mix"},
		{"*..*", "at least one side"},
		{"..2023-01-02", "both sides"},
		{"2023-01-02..", "both sides"},
		{"*", "only valid inside a range"},
		{"not-a-date", "invalid date"},
		{"2023-13-40", "invalid date"},
		{"2023-1-2", "invalid date"},
		{"2023-01-01..nonsense", "invalid date"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			_, err := parseDateExpr(tt.raw)
			if err == nil {
				t.Fatalf("parseDateExpr(%q) succeeded, want error", tt.raw)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantMsg)
			}
		})
	}
}
