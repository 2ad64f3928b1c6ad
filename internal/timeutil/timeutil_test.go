package timeutil

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2024-01-02")
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}
	if got := FormatDate(parsed); got != "2024-01-02" {
		t.Fatalf("expected formatted date to round-trip, got %s", got)
	}
	if _, err := ParseDate("02/01/2024"); err == nil {
		t.Fatal("expected invalid layout to fail")
	}
}

func TestUTCDateCrossesMidnight(t *testing.T) {
	loc := time.FixedZone("test", -5*60*60)
	value := time.Date(2024, 1, 2, 23, 0, 0, 0, loc)
	if got := FormatDate(value); got != "2024-01-02" {
		t.Fatalf("expected local date, got %s", got)
	}
	if got := UTCDate(value); got != "2024-01-03" {
		t.Fatalf("expected utc date, got %s", got)
	}
}

func TestStartOfDayUTC(t *testing.T) {
	got := StartOfDayUTC(time.Date(2024, 3, 4, 15, 30, 0, 0, time.UTC))
	if !got.Equal(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected midnight, got %s", got)
	}
}
