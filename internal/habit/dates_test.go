package habit

import (
	"testing"
	"time"
)

func TestFormatDateUsesCalendarComponents(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	// 本地已过午夜，UTC 仍是前一天：必须取本地分量
	local := time.Date(2024, 6, 11, 0, 30, 0, 0, loc)
	if got := FormatDate(local); got != "2024-06-11" {
		t.Fatalf("expected local calendar date 2024-06-11, got %s", got)
	}
	if utc := FormatDate(local.UTC()); utc != "2024-06-10" {
		t.Fatalf("sanity check: UTC view should be the previous day, got %s", utc)
	}
}

func TestAddDays(t *testing.T) {
	tests := []struct {
		date string
		n    int
		want string
	}{
		{"2024-06-11", -1, "2024-06-10"},
		{"2024-06-01", -1, "2024-05-31"},
		{"2024-02-28", 1, "2024-02-29"}, // 闰年
		{"2023-12-31", 1, "2024-01-01"},
		{"2024-06-11", 0, "2024-06-11"},
		{"bogus", 1, ""},
	}

	for _, tt := range tests {
		if got := AddDays(tt.date, tt.n); got != tt.want {
			t.Fatalf("AddDays(%s, %d) = %s, want %s", tt.date, tt.n, got, tt.want)
		}
	}
}

func TestWeekdayOf(t *testing.T) {
	if got, err := WeekdayOf("2024-06-09"); err != nil || got != time.Sunday {
		t.Fatalf("2024-06-09 should be Sunday, got %v (%v)", got, err)
	}
	if got, err := WeekdayOf("2024-06-10"); err != nil || got != time.Monday {
		t.Fatalf("2024-06-10 should be Monday, got %v (%v)", got, err)
	}
	if _, err := WeekdayOf("2024-13-40"); err == nil {
		t.Fatal("invalid date should return an error")
	}
}
