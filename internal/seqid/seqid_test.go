package seqid

import (
	"errors"
	"testing"
	"time"
)

func TestPrefixUsesUTCDay(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"utc", time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC), "20250301"},
		{"last second", time.Date(2025, 1, 5, 23, 59, 59, 0, time.UTC), "20250105"},
		{"first second", time.Date(2025, 1, 6, 0, 0, 1, 0, time.UTC), "20250106"},
		{"ahead of utc", time.Date(2025, 1, 6, 2, 0, 0, 0, time.FixedZone("IST", 5*3600+1800)), "20250105"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Prefix(tt.at); got != tt.want {
				t.Errorf("Prefix(%v) = %q, want %q", tt.at, got, tt.want)
			}
		})
	}
}

func TestFormatPadding(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "20250301001"},
		{42, "20250301042"},
		{999, "20250301999"},
		{1000, "202503011000"},
		{12345, "2025030112345"},
	}

	for _, tt := range tests {
		if got := Format("20250301", tt.n); got != tt.want {
			t.Errorf("Format(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestParseValid(t *testing.T) {
	tests := []struct {
		id         string
		wantPrefix string
		wantN      int
	}{
		{"20250301001", "20250301", 1},
		{"20250301999", "20250301", 999},
		{"202503011000", "20250301", 1000},
	}

	for _, tt := range tests {
		prefix, n, err := Parse(tt.id)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.id, err)
		}
		if prefix != tt.wantPrefix || n != tt.wantN {
			t.Errorf("Parse(%q) = (%q, %d), want (%q, %d)", tt.id, prefix, n, tt.wantPrefix, tt.wantN)
		}
	}
}

func TestParseMalformed(t *testing.T) {
	for _, id := range []string{
		"",
		"2025030101",
		"20250301abc",
		"2025030100x",
		"20250301000",
		"20251301001",
		"2025030-001",
		"20250301-01",
	} {
		if _, _, err := Parse(id); !errors.Is(err, ErrMalformed) {
			t.Errorf("Parse(%q) error = %v, want ErrMalformed", id, err)
		}
	}
}
