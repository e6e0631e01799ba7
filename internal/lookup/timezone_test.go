package lookup

import (
	"testing"
	"time"
)

// TestTimezones tests timezone resolution at a fixed reference instant.
func TestTimezones(t *testing.T) {
	t.Parallel()

	t.Run("resolves London timezone in summer", func(t *testing.T) {
		t.Parallel()
		num, err := Parse("+442079460958", "US")
		if err != nil {
			t.Fatalf("failed to parse: %v", err)
		}

		// 2026-07-15 12:00 UTC is 13:00 BST in London
		ref := time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC)
		info := Timezones(num, ref)

		if info.Primary != "Europe/London" {
			t.Errorf("expected primary zone 'Europe/London', got %q", info.Primary)
		}
		if info.Count != 1 {
			t.Errorf("expected 1 zone, got %d", info.Count)
		}
		if info.SpansMultiple {
			t.Error("expected a single-zone number")
		}
		if !info.IsDST {
			t.Error("expected DST to be in effect in July")
		}
		if info.UTCOffsetHours != 1 {
			t.Errorf("expected UTC offset +1 during BST, got %v", info.UTCOffsetHours)
		}
		if info.LocalTime12h != "01:00 PM" {
			t.Errorf("expected local time '01:00 PM', got %q", info.LocalTime12h)
		}
		if info.LocalDate != "2026-07-15" {
			t.Errorf("expected local date '2026-07-15', got %q", info.LocalDate)
		}
		if info.UTCOffset != "+0100" {
			t.Errorf("expected UTC offset '+0100', got %q", info.UTCOffset)
		}
	})

	t.Run("resolves London timezone in winter", func(t *testing.T) {
		t.Parallel()
		num, err := Parse("+442079460958", "US")
		if err != nil {
			t.Fatalf("failed to parse: %v", err)
		}

		ref := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
		info := Timezones(num, ref)

		if info.IsDST {
			t.Error("expected DST to not be in effect in January")
		}
		if info.UTCOffsetHours != 0 {
			t.Errorf("expected UTC offset 0 during GMT, got %v", info.UTCOffsetHours)
		}
	})

	t.Run("same instant produces identical results", func(t *testing.T) {
		t.Parallel()
		num, err := Parse("+14155552671", "US")
		if err != nil {
			t.Fatalf("failed to parse: %v", err)
		}

		ref := time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC)
		first := Timezones(num, ref)
		second := Timezones(num, ref)

		if first.LocalTime != second.LocalTime {
			t.Errorf("expected identical local times, got %q and %q", first.LocalTime, second.LocalTime)
		}
		if first.Primary != second.Primary {
			t.Errorf("expected identical primary zones, got %q and %q", first.Primary, second.Primary)
		}
	})
}

// TestZoneDetail tests single zone resolution.
func TestZoneDetail(t *testing.T) {
	t.Parallel()

	t.Run("resolves a known zone", func(t *testing.T) {
		t.Parallel()
		ref := time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC)

		detail, err := zoneDetail("America/New_York", ref)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if detail.Zone != "America/New_York" {
			t.Errorf("expected zone 'America/New_York', got %q", detail.Zone)
		}
		if detail.UTCOffsetHours != -4 {
			t.Errorf("expected UTC offset -4 during EDT, got %v", detail.UTCOffsetHours)
		}
		if detail.Abbreviation != "EDT" {
			t.Errorf("expected abbreviation 'EDT', got %q", detail.Abbreviation)
		}
		if !detail.IsDST {
			t.Error("expected DST to be in effect in July")
		}
	})

	t.Run("returns error for unknown zone", func(t *testing.T) {
		t.Parallel()
		_, err := zoneDetail("Not/AZone", time.Now())
		if err == nil {
			t.Error("expected error for unknown zone")
		}
	})
}

// TestDropUnknownZones tests filtering of the unknown-zone sentinel.
func TestDropUnknownZones(t *testing.T) {
	t.Parallel()

	zones := dropUnknownZones([]string{"Europe/London", "Etc/Unknown", "Europe/Paris"})
	if len(zones) != 2 {
		t.Fatalf("expected 2 zones, got %d", len(zones))
	}
	if zones[0] != "Europe/London" || zones[1] != "Europe/Paris" {
		t.Errorf("unexpected zones: %v", zones)
	}

	if got := dropUnknownZones([]string{"Etc/Unknown"}); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}
