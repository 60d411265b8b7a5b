package core

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTimestampOrdering tests Before/After/IsZero semantics
func TestTimestampOrdering(t *testing.T) {
	t0 := NewTimestamp(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	t1 := NewTimestamp(time.Date(2025, 3, 1, 12, 0, 1, 0, time.UTC))

	if !t0.Before(t1) {
		t.Error("Expected t0 to be before t1")
	}
	if !t1.After(t0) {
		t.Error("Expected t1 to be after t0")
	}
	if t0.IsZero() {
		t.Error("Expected t0 not to be zero")
	}

	var zero Timestamp
	if !zero.IsZero() {
		t.Error("Expected zero value to be zero")
	}
}

// TestTimestampJSON tests RFC3339 wire format round-trip
func TestTimestampJSON(t *testing.T) {
	ts := NewTimestamp(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))

	data, err := json.Marshal(ts)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `"2025-03-01T12:00:00Z"` {
		t.Errorf("Unexpected wire format: %s", data)
	}

	var back Timestamp
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !back.Time().Equal(ts.Time()) {
		t.Errorf("Round trip changed the instant: %v vs %v", back.Time(), ts.Time())
	}
}
