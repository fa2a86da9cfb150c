package habit

import (
	"encoding/json"
	"testing"
)

func TestHistoryUnmarshalMixedFormats(t *testing.T) {
	raw := `[
		{"date":"2024-06-11","status":"failed"},
		"2024-06-10T08:00:00.000Z",
		"2024-06-09",
		{"date":"2024-06-08","status":"completed"},
		{"note":"no date"},
		"not a date",
		42
	]`

	var h History
	if err := json.Unmarshal([]byte(raw), &h); err != nil {
		t.Fatalf("mixed history should decode without error: %v", err)
	}

	if len(h) != 4 {
		t.Fatalf("expected 4 normalized entries, got %d: %#v", len(h), h)
	}

	// 旧格式时间戳取日期部分并视为 completed
	if got := h.StatusOn("2024-06-10"); got != StatusCompleted {
		t.Fatalf("legacy timestamp should normalize to completed, got %q", got)
	}
	if got := h.StatusOn("2024-06-09"); got != StatusCompleted {
		t.Fatalf("legacy bare date should normalize to completed, got %q", got)
	}
	if got := h.StatusOn("2024-06-11"); got != StatusFailed {
		t.Fatalf("structured entry should keep its status, got %q", got)
	}
}

func TestHistoryScanValueRoundTrip(t *testing.T) {
	original := History{
		{Date: "2024-06-11", Status: StatusFailed},
		{Date: "2024-06-10", Status: StatusCompleted},
	}

	value, err := original.Value()
	if err != nil {
		t.Fatalf("Value returned error: %v", err)
	}

	var restored History
	if err := restored.Scan(value); err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}

	if len(restored) != len(original) {
		t.Fatalf("expected %d entries, got %d", len(original), len(restored))
	}
	for i := range original {
		if restored[i] != original[i] {
			t.Fatalf("entry %d mismatch: %#v vs %#v", i, restored[i], original[i])
		}
	}
}

func TestHistoryScanLegacyColumn(t *testing.T) {
	var h History
	if err := h.Scan(`["2024-06-10T23:30:00.000Z"]`); err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(h) != 1 || h[0].Date != "2024-06-10" || h[0].Status != StatusCompleted {
		t.Fatalf("unexpected normalization result: %#v", h)
	}

	var empty History
	if err := empty.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) returned error: %v", err)
	}
	if empty != nil {
		t.Fatalf("NULL column should scan to nil history, got %#v", empty)
	}
}

func TestHistoryEarliestDate(t *testing.T) {
	h := History{
		{Date: "2024-06-11", Status: StatusCompleted},
		{Date: "2024-06-01", Status: StatusFailed},
		{Date: "2024-06-05", Status: StatusCompleted},
	}
	if got := h.EarliestDate(); got != "2024-06-01" {
		t.Fatalf("expected earliest 2024-06-01, got %s", got)
	}
	if got := (History{}).EarliestDate(); got != "" {
		t.Fatalf("empty history should have no earliest date, got %q", got)
	}
}
