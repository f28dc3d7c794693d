package main

import (
	"testing"
	"time"
)

func TestResolveYear(t *testing.T) {
	now := time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		in   string
		want int
	}{
		{"", 2026},
		{"  ", 2026},
		{"2024", 2024},
		{"last year", 2025},
		{"2 years ago", 2024},
		{"this year", 2026},
		{"Today", 2026},
		{"now", 2026},
	}
	for _, tt := range tests {
		got, err := resolveYear(tt.in, now)
		if err != nil {
			t.Errorf("resolveYear(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("resolveYear(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestResolveYear_OutOfRange(t *testing.T) {
	if _, err := resolveYear("0", time.Now()); err == nil {
		t.Error("expected error for year 0")
	}
}

func TestResolveYear_Unrecognized(t *testing.T) {
	now := time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

	for _, in := range []string{"banana", "202x"} {
		if got, err := resolveYear(in, now); err == nil {
			t.Errorf("resolveYear(%q) = %d, want error", in, got)
		}
	}
}
