package core

import (
	"strings"
	"testing"
	"time"
)

func TestNewPresetID_Format(t *testing.T) {
	at := NewTimestamp(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	id := NewPresetID(at)

	if !strings.HasPrefix(id.String(), "preset-1748779200000-") {
		t.Errorf("unexpected preset id format: %s", id)
	}

	parts := strings.Split(id.String(), "-")
	if len(parts) != 3 {
		t.Fatalf("expected 3 segments, got %d (%s)", len(parts), id)
	}
	if parts[2] == "" {
		t.Error("random suffix must not be empty")
	}
}

func TestNewPresetID_Unique(t *testing.T) {
	at := Now()
	seen := make(map[PresetID]bool)
	for i := 0; i < 100; i++ {
		id := NewPresetID(at)
		if seen[id] {
			t.Fatalf("duplicate preset id generated: %s", id)
		}
		seen[id] = true
	}
}

func TestTimestamp_Ordering(t *testing.T) {
	earlier := NewTimestamp(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	later := NewTimestamp(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC))

	if !earlier.Before(later) {
		t.Error("expected earlier.Before(later)")
	}
	if !later.After(earlier) {
		t.Error("expected later.After(earlier)")
	}
	if earlier.IsZero() {
		t.Error("non-zero timestamp reported as zero")
	}
}

func TestTimestamp_RoundTrip(t *testing.T) {
	orig := time.Date(2025, 3, 15, 9, 30, 45, 0, time.UTC)
	ts := NewTimestamp(orig)
	if !ts.Time().Equal(orig) {
		t.Errorf("round trip lost precision: %v != %v", ts.Time(), orig)
	}
}
