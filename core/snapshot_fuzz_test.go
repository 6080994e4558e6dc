package core

import (
	"testing"
)

// FuzzParseSnapshotTime fuzzes the timestamp parser with random inputs.
func FuzzParseSnapshotTime(f *testing.F) {
	// Add some seed inputs
	seeds := []string{
		"2026-08-20T07:30:00Z",
		"2026-08-20T07:30:00.123456789Z",
		"2026-08-20T07:30:00+02:00",
		"2026-08-20T07:30:00",
		"2026-08-20 07:30:00",
		"2026-08-20",
		"1755672600000", // epoch millis, rejected
		"",              // edge case
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(_ *testing.T, input string) {
		_, ok := ParseSnapshotTime(input)
		// We don't assert on the result, just that it doesn't panic
		_ = ok
	})
}

// FuzzParseSnapshot fuzzes the snapshot decoder with arbitrary byte payloads.
func FuzzParseSnapshot(f *testing.F) {
	seeds := [][]byte{
		[]byte("{}"),
		[]byte(`{"exercise_sessions": {"data": []}}`),
		[]byte(`{"deletions": {"record_ids": ["a", "b"]}}`),
		[]byte(`{"weight_records": {"data": [{"record_id": "w1", "weight_kg": 81.5}]}}`),
		[]byte("{broken"),
		[]byte(""),
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(_ *testing.T, input []byte) {
		_, err := ParseSnapshot(input)
		_ = err
	})
}
